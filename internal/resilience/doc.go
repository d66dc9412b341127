// Package resilience groups the fault tolerance used by the GraphQL transport.
//
// Subpackages:
//   - circuitbreaker: stops calling an endpoint that keeps failing
//   - retry: retries transient failures with exponential backoff and jitter
//
// The client retries around the breaker, so an open circuit is one failed
// attempt and not a retry storm:
//
//	cb := circuitbreaker.New(circuitbreaker.GraphQLConfig())
//	conn, err := retry.Do(ctx, retry.GraphQLConfig(), func() (*entity.Connection, error) {
//	    return circuitbreaker.Do(cb, fetchOnce)
//	})
package resilience
