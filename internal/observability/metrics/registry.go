package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Transport metrics track GraphQL request patterns and performance
var (
	// TransportRequestsTotal counts GraphQL round trips by connection field and outcome.
	// Outcome is the HTTP status code, "network", "graphql" or "schema".
	TransportRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relaypager_transport_requests_total",
			Help: "Total number of GraphQL connection requests",
		},
		[]string{"field", "outcome"},
	)

	// TransportRequestDuration measures GraphQL round-trip duration in seconds
	TransportRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relaypager_transport_request_duration_seconds",
			Help:    "GraphQL connection request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"field"},
	)

	// TransportResponseSize measures response body size in bytes
	TransportResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relaypager_transport_response_size_bytes",
			Help:    "GraphQL response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 6),
		},
		[]string{"field"},
	)

	// TransportRetriesTotal counts retried attempts
	TransportRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relaypager_transport_retries_total",
			Help: "Total number of retried GraphQL requests",
		},
		[]string{"field"},
	)

	// CircuitBreakerState tracks breaker state (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "relaypager_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// RateLimitWaitSeconds measures time spent waiting for the client-side rate limiter
	RateLimitWaitSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "relaypager_rate_limit_wait_seconds",
			Help:    "Time spent waiting for a rate limiter token",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)
)

// RecordTransportRequest records one GraphQL round trip.
func RecordTransportRequest(field, outcome string, duration time.Duration) {
	TransportRequestsTotal.WithLabelValues(field, outcome).Inc()
	TransportRequestDuration.WithLabelValues(field).Observe(duration.Seconds())
}

// RecordResponseSize records the size of a response body.
func RecordResponseSize(field string, bytes int) {
	TransportResponseSize.WithLabelValues(field).Observe(float64(bytes))
}

// RecordRetry records a retried attempt.
func RecordRetry(field string) {
	TransportRetriesTotal.WithLabelValues(field).Inc()
}

// RecordBreakerState records the state of a named circuit breaker.
func RecordBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordRateLimitWait records time spent waiting for the rate limiter.
func RecordRateLimitWait(d time.Duration) {
	RateLimitWaitSeconds.Observe(d.Seconds())
}
