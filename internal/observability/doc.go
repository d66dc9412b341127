// Package observability groups the structured logging, Prometheus metrics and
// OpenTelemetry tracing used by the pagination runner and the GraphQL transport.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics of the GraphQL transport
//   - tracing: OpenTelemetry tracer, OTLP exporter setup and a tracing http.RoundTripper
package observability
