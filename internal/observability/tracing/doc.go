// Package tracing provides OpenTelemetry tracing integration.
//
// Spans are created through the global tracer provider, so nothing is exported
// until the binary installs one.
//
// Example usage:
//
//	import "relaypager/internal/observability/tracing"
//
//	func fetch(ctx context.Context) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "paginate.fetch")
//	    defer span.End()
//	    // ... fetch page ...
//	}
//
//	client := &http.Client{Transport: tracing.NewTransport(http.DefaultTransport)}
package tracing
