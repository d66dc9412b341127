// Package metrics provides the Prometheus metrics of the GraphQL transport.
//
// Pagination metrics (fetch outcomes, cache size, window violations) live with
// the pagination rules in internal/common/pagination; this package covers the
// wire: requests, attempts, breaker state and rate limiting.
//
// Example usage:
//
//	start := time.Now()
//	resp, err := do(req)
//	metrics.RecordTransportRequest("people", status, time.Since(start))
package metrics
