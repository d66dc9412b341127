// Package circuitbreaker guards calls to the GraphQL endpoint.
// It uses the github.com/sony/gobreaker library to stop hammering a failing server.
package circuitbreaker

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"relaypager/internal/observability/metrics"
)

// Config holds the configuration for a circuit breaker.
type Config struct {
	// Name labels the breaker in logs and the state gauge
	Name string

	// MaxRequests is the number of probe requests allowed while half-open
	MaxRequests uint32

	// Interval clears the closed-state counts; zero never clears them
	Interval time.Duration

	// Timeout is how long the circuit stays open before probing
	Timeout time.Duration

	// FailureThreshold is the failure ratio that trips the circuit, e.g. 0.6
	FailureThreshold float64

	// MinRequests is the number of requests seen before the ratio is considered
	MinRequests uint32

	// IsSuccessful decides whether an error counts against the breaker.
	// nil counts every non-nil error as a failure.
	IsSuccessful func(err error) bool
}

// GraphQLConfig returns configuration for a GraphQL connection endpoint.
// Page fetches are interactive, so the open state is kept short.
func GraphQLConfig() Config {
	return Config{
		Name:             "graphql",
		MaxRequests:      2,
		Interval:         30 * time.Second,
		Timeout:          15 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// tripAt returns the ReadyToTrip function for cfg.
func tripAt(cfg Config) func(gobreaker.Counts) bool {
	return func(counts gobreaker.Counts) bool {
		if counts.Requests < cfg.MinRequests {
			return false
		}
		return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureThreshold
	}
}

// CircuitBreaker wraps gobreaker.CircuitBreaker and publishes its state.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
}

// New creates a closed circuit breaker.
func New(cfg Config) *CircuitBreaker {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:         cfg.Name,
		MaxRequests:  cfg.MaxRequests,
		Interval:     cfg.Interval,
		Timeout:      cfg.Timeout,
		ReadyToTrip:  tripAt(cfg),
		IsSuccessful: cfg.IsSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.RecordBreakerState(name, int(to))
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})
	metrics.RecordBreakerState(cfg.Name, int(gobreaker.StateClosed))
	return &CircuitBreaker{breaker: cb}
}

// Do runs fn through cb. While the circuit is open it returns
// gobreaker.ErrOpenState without calling fn.
func Do[T any](cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	res, err := cb.breaker.Execute(func() (interface{}, error) {
		return fn()
	})
	v, _ := res.(T)
	return v, err
}

// State returns the current state of the circuit breaker.
func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

// Name returns the name of the circuit breaker.
func (cb *CircuitBreaker) Name() string {
	return cb.breaker.Name()
}
