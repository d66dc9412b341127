package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"relaypager/internal/common/pagination"
	"relaypager/internal/config"
	"relaypager/internal/observability/logging"
	"relaypager/internal/observability/tracing"
	"relaypager/internal/usecase/paginate"
	envconfig "relaypager/pkg/config"
)

// Simulated list geometry for the infinite variant.
const (
	rowHeight      = 40.0
	viewportHeight = 400.0
)

type walkOptions struct {
	variant     string
	demo        string
	demoSize    int
	steps       int
	tablePath   string
	pageSize    int
	sort        []string
	filters     map[string]string
	format      string
	metricsAddr string
}

func newWalkCmd() *cobra.Command {
	opts := &walkOptions{}

	cmd := &cobra.Command{
		Use:   "walk",
		Short: "Fetch successive pages of a connection",
		Long: `Mounts a paginated view and keeps advancing it until the connection is
exhausted or --steps views have been printed.

  basic      prints the first page only
  load_more  appends the page after the cached end cursor
  pages      moves to the next numbered page
  infinite   scrolls to the bottom of the contiguous run
  table      moves to the next numbered page with the sort and filters applied`,
		Example: `  pagerctl walk --demo people --variant pages --steps 3
  pagerctl walk --variant table --table people.yaml --sort -age --filter alive=true
  PAGER_ENDPOINT=https://api.example.com/graphql pagerctl walk --variant load_more`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWalk(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.variant, "variant", string(paginate.VariantPages), "pagination variant (basic, load_more, pages, infinite, table)")
	f.StringVar(&opts.demo, "demo", "", "serve pages from a built-in data set (people, squares) instead of the endpoint")
	f.IntVar(&opts.demoSize, "demo-size", 57, "number of items in the demo data set")
	f.IntVar(&opts.steps, "steps", 5, "maximum number of views to print")
	f.StringVar(&opts.tablePath, "table", "", "YAML table definition")
	f.IntVar(&opts.pageSize, "page-size", 0, "items per page (default PAGINATION_DEFAULT_PAGE_SIZE)")
	f.StringSliceVar(&opts.sort, "sort", nil, "sort fields in precedence order, '-' prefix for descending")
	f.StringToStringVar(&opts.filters, "filter", nil, "filter criteria as field=value")
	f.StringVar(&opts.format, "format", formatText, "output format (text, json)")
	f.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve /metrics and /health on this address while walking")

	return cmd
}

func runWalk(cmd *cobra.Command, opts *walkOptions) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	variant, err := paginate.ParseVariant(opts.variant)
	if err != nil {
		return err
	}
	if opts.steps < 1 {
		return fmt.Errorf("steps must be at least 1, got %d", opts.steps)
	}

	var table *config.TableConfig
	if opts.tablePath != "" {
		if table, err = config.LoadTableConfig(opts.tablePath); err != nil {
			return err
		}
	}

	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		EndpointURL: envconfig.GetEnvString("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName: "pagerctl",
		SampleRatio: envconfig.GetEnvFloat("PAGER_TRACE_SAMPLE_RATIO", 1),
	})
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("trace flush failed", slog.Any("error", err))
		}
	}()

	src, err := openSource(opts, table)
	if err != nil {
		return err
	}

	ctrlCfg, err := controllerConfig(variant, opts, table, src)
	if err != nil {
		return err
	}
	ctrlCfg.Logger = logger
	ctrl, err := paginate.NewController(ctrlCfg)
	if err != nil {
		return err
	}
	runner := paginate.NewRunner(ctrl, src.repo, nil)
	out := newPrinter(cmd.OutOrStdout(), opts.format, table)

	logger.Info("walk starting",
		slog.String("variant", string(variant)),
		slog.String("source", src.name),
		slog.Int("steps", opts.steps))

	g, gctx := errgroup.WithContext(ctx)
	serveCtx, stopServing := context.WithCancel(gctx)
	defer stopServing()

	if opts.metricsAddr != "" {
		srv := newMetricsServer(opts.metricsAddr, src.health)
		g.Go(func() error {
			return srv.run(serveCtx, logger)
		})
	}
	g.Go(func() error {
		defer stopServing()
		return walk(gctx, runner, variant, filterValues(opts.filters), opts.steps, out)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return runner.Shutdown(drainCtx)
}

// controllerConfig merges pagination defaults from the environment with the
// flags and the table definition. Flags win over the table.
func controllerConfig(variant paginate.Variant, opts *walkOptions, table *config.TableConfig, src *source) (paginate.Config, error) {
	pcfg := pagination.LoadFromEnv()
	if table != nil && table.Table.PageSize > 0 {
		pcfg.DefaultPageSize = table.Table.PageSize
	}
	if opts.pageSize > 0 {
		pcfg.DefaultPageSize = opts.pageSize
	}
	if pcfg.DefaultPageSize > pcfg.MaxPageSize {
		return paginate.Config{}, fmt.Errorf("page size %d exceeds PAGINATION_MAX_PAGE_SIZE %d", pcfg.DefaultPageSize, pcfg.MaxPageSize)
	}

	cfg := paginate.Config{
		Variant:    variant,
		Pagination: pcfg,
		Orderable:  src.orderable,
	}
	if table != nil {
		cfg.Orderable = table.Orderable()
		cfg.DefaultSort = table.DefaultSort()
	}
	if len(opts.sort) > 0 {
		cfg.DefaultSort = pagination.ParseOrderBy(strings.Join(opts.sort, ","))
		for _, k := range cfg.DefaultSort {
			if !slices.Contains(cfg.Orderable, k.Field) {
				cfg.Orderable = append(cfg.Orderable, k.Field)
			}
		}
	}
	return cfg, nil
}

// walk mounts the view and advances it until it is exhausted, fails or has
// printed steps views.
func walk(ctx context.Context, runner *paginate.Runner, variant paginate.Variant, filters map[string]any, steps int, out *printer) error {
	var first paginate.Event = paginate.Mount{}
	if len(filters) > 0 {
		first = paginate.SubmitFilters{Values: filters}
	}

	view, _ := runner.Do(ctx, first)
	for step := 1; ; step++ {
		if err := out.print(view); err != nil {
			return err
		}
		if view.Err != nil {
			if errors.Is(view.Err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("fetch page %d: %w", view.State.PageIndex+1, view.Err)
		}
		if step >= steps || ctx.Err() != nil {
			return nil
		}

		ev := advance(variant, view)
		if ev == nil || !view.HasNextPage() {
			return nil
		}
		next, fetched := runner.Do(ctx, ev)
		if !fetched {
			return nil
		}
		view = next
	}
}

// advance returns the event that moves view forward, or nil when the variant
// has nowhere to go.
func advance(variant paginate.Variant, view paginate.View) paginate.Event {
	switch variant {
	case paginate.VariantLoadMore:
		return paginate.LoadMore{}
	case paginate.VariantPages, paginate.VariantTable:
		return paginate.NextPage{}
	case paginate.VariantInfinite:
		content := float64(view.Collection.Len()) * rowHeight
		return paginate.Scroll{Position: paginate.ScrollPosition{
			Offset:   max(content-viewportHeight, 0),
			Viewport: viewportHeight,
			Content:  content,
		}}
	default:
		return nil
	}
}

// filterValues types flag values the way a form would submit them.
func filterValues(raw map[string]string) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		if n, err := strconv.Atoi(v); err == nil {
			out[k] = n
			continue
		}
		if b, err := strconv.ParseBool(v); err == nil {
			out[k] = b
			continue
		}
		out[k] = v
	}
	return out
}
