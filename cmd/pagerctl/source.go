package main

import (
	"fmt"

	"github.com/sony/gobreaker"

	"relaypager/internal/config"
	"relaypager/internal/domain/entity"
	"relaypager/internal/infra/graphql"
	"relaypager/internal/infra/memory"
	"relaypager/internal/repository"
)

// healthFunc reports the breaker guarding the source. Sources without one
// report an empty name.
type healthFunc func() (name string, state gobreaker.State)

// source is where the walker reads pages from.
type source struct {
	name      string
	repo      repository.ConnectionRepository
	health    healthFunc
	orderable []string
}

func openSource(opts *walkOptions, table *config.TableConfig) (*source, error) {
	if opts.demo != "" {
		return openDemo(opts.demo, opts.demoSize)
	}

	tc, err := config.LoadTransportConfig()
	if err != nil {
		return nil, fmt.Errorf("transport config: %w", err)
	}
	cfg := graphql.ConfigFromTransport(tc)
	if table != nil {
		cfg.Field = table.Table.Field
		cfg.NodeFields = table.NodeFields()
	}

	client, err := graphql.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &source{
		name:   tc.Endpoint,
		repo:   client,
		health: client.Health,
	}, nil
}

func openDemo(name string, size int) (*source, error) {
	if size < 0 {
		return nil, fmt.Errorf("demo size must not be negative, got %d", size)
	}

	var (
		items     []entity.Item
		orderable []string
		opts      []memory.Option
	)
	switch name {
	case "people":
		items = memory.People(size)
		orderable = []string{"firstName", "lastName", "age", "randomNumber"}
		opts = []memory.Option{
			memory.WithOrderable(orderable...),
			memory.WithFilterable("firstName", "lastName", "alive"),
		}
	case "squares":
		items = memory.Squares(size)
	default:
		return nil, fmt.Errorf("unknown demo data set %q (want people or squares)", name)
	}

	return &source{
		name:      "demo:" + name,
		repo:      memory.NewDataset(items, opts...),
		health:    func() (string, gobreaker.State) { return "", gobreaker.StateClosed },
		orderable: orderable,
	}, nil
}
