package graphql

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"relaypager/internal/observability/metrics"
)

// RateLimiter is a client-side token bucket in front of the endpoint.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a limiter allowing requestsPerSecond sustained with
// the given burst. A non-positive rate disables limiting.
//
// Example:
//
//	limiter := NewRateLimiter(10, 5) // 10 req/s with burst of 5
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	if requestsPerSecond <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

// Wait blocks until a token is available or ctx is done, and records how
// long it waited.
func (r *RateLimiter) Wait(ctx context.Context) error {
	start := time.Now()
	err := r.limiter.Wait(ctx)
	metrics.RecordRateLimitWait(time.Since(start))
	return err
}
