// Package logging sets up log/slog for the pager and carries the logger and
// the fetch request ID through context.Context.
//
// LOG_LEVEL selects the level (debug, info, warn, error). The request ID set by
// the runner is sent by the transport as X-Request-ID, so client and server
// logs of one fetch can be joined.
//
//	logger := logging.New(logging.FormatText, os.Stderr)
//	ctx := logging.WithLogger(ctx, logger)
//	ctx = logging.WithRequestID(ctx, req.ID)
//	logging.FromContext(ctx).Info("fetching page")
package logging
