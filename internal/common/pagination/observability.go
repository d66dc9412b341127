package pagination

import (
	"log/slog"
	"time"
)

// LogRequest logs an issued connection request with structured fields.
func LogRequest(logger *slog.Logger, requestID string, seq uint64, q QueryParams) {
	logger.Debug("Connection request",
		"request_id", requestID,
		"seq", seq,
		"first", q.First,
		"after", q.After,
		"order_by", q.OrderBy,
		"filters", len(q.Filters))
}

// LogResponse logs an applied connection response with duration.
func LogResponse(logger *slog.Logger, requestID string, seq uint64, returnedCount, cachedCount int, duration time.Duration) {
	logger.Info("Connection response",
		"request_id", requestID,
		"seq", seq,
		"returned_count", returnedCount,
		"cached_count", cachedCount,
		"duration_ms", duration.Milliseconds())
}

// LogStale logs a response discarded because a newer request was issued.
func LogStale(logger *slog.Logger, requestID string, seq, current uint64) {
	logger.Debug("Stale response discarded",
		"request_id", requestID,
		"seq", seq,
		"current_seq", current)
}

// LogError logs a failed connection request.
func LogError(logger *slog.Logger, requestID string, seq uint64, err error, errorType string) {
	logger.Error("Connection error",
		"request_id", requestID,
		"seq", seq,
		"error", err.Error(),
		"error_type", errorType)
}
