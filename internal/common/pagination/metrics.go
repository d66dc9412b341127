package pagination

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FetchesTotal counts completed connection fetches.
	// Labels: variant (basic, load_more, pages, infinite, table),
	// status (success, error, form_error, stale), page_range (page bucket: 1-10, 11-50, etc.)
	FetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relaypager_fetches_total",
			Help: "Total number of connection fetches",
		},
		[]string{"variant", "status", "page_range"},
	)

	// FetchDuration tracks the time between issuing a request and its completion.
	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relaypager_fetch_duration_seconds",
			Help:    "Connection fetch duration distribution",
			Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0},
		},
		[]string{"variant"},
	)

	// CachedEdges tracks the number of edges held in the normalized cache.
	CachedEdges = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "relaypager_cached_edges",
			Help: "Number of edges currently cached per variant",
		},
		[]string{"variant"},
	)

	// WindowViolations counts page descriptors reporting more than one current page.
	WindowViolations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "relaypager_window_violations_total",
			Help: "Total number of page descriptors with more than one current page",
		},
	)

	// CursorErrors counts cursors that could not be decoded.
	// Labels: reason (decode error reason)
	CursorErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relaypager_cursor_errors_total",
			Help: "Total number of cursor decode failures",
		},
		[]string{"reason"},
	)
)

// RecordFetch records a completed fetch.
// status should be one of: "success", "error", "form_error", "stale"
func RecordFetch(variant, status string, page int, seconds float64) {
	FetchesTotal.WithLabelValues(variant, status, getPageRangeBucket(page)).Inc()
	FetchDuration.WithLabelValues(variant).Observe(seconds)
}

// UpdateCachedEdges updates the cached edges gauge.
func UpdateCachedEdges(variant string, count int) {
	CachedEdges.WithLabelValues(variant).Set(float64(count))
}

// RecordWindowViolations adds n multi-current violations.
func RecordWindowViolations(n int) {
	if n > 0 {
		WindowViolations.Add(float64(n))
	}
}

// RecordCursorError records a cursor decode failure.
func RecordCursorError(err error) {
	reason := "unknown"
	var de *DecodeError
	if errors.As(err, &de) {
		reason = de.Reason
	}
	CursorErrors.WithLabelValues(reason).Inc()
}

// getPageRangeBucket returns the page range bucket for a 1-based page number.
func getPageRangeBucket(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
