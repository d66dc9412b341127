package paginate

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"relaypager/internal/observability/logging"
	"relaypager/internal/observability/tracing"
	"relaypager/internal/repository"
)

// Runner executes the requests a Controller issues against a repository.
type Runner struct {
	ctrl     *Controller
	repo     repository.ConnectionRepository
	onUpdate func(View)

	wg sync.WaitGroup // Tracks in-flight fetches
}

// NewRunner creates a runner. onUpdate, if set, receives the view after
// every completed fetch, including discarded stale ones.
func NewRunner(ctrl *Controller, repo repository.ConnectionRepository, onUpdate func(View)) *Runner {
	return &Runner{ctrl: ctrl, repo: repo, onUpdate: onUpdate}
}

// Controller returns the controller the runner drives.
func (r *Runner) Controller() *Controller {
	return r.ctrl
}

// Do applies ev and, when it calls for a fetch, performs it before returning.
// The boolean reports whether a fetch was issued.
func (r *Runner) Do(ctx context.Context, ev Event) (View, bool) {
	req, ok := r.ctrl.Begin(ev)
	if !ok {
		return r.ctrl.View(), false
	}
	return r.fetch(ctx, req), true
}

// Dispatch applies ev and performs the resulting fetch in the background.
// Fetches overlap freely; only the latest request's response is applied.
func (r *Runner) Dispatch(ctx context.Context, ev Event) bool {
	req, ok := r.ctrl.Begin(ev)
	if !ok {
		return false
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.fetch(ctx, req)
	}()
	return true
}

// Wait blocks until every dispatched fetch has completed.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// Shutdown waits for in-flight fetches or until ctx is done.
func (r *Runner) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("paginate: shutdown: %w", ctx.Err())
	}
}

func (r *Runner) fetch(ctx context.Context, req Request) View {
	ctx = logging.WithRequestID(ctx, req.ID)
	ctx, span := tracing.GetTracer().Start(ctx, "paginate.fetch")
	defer span.End()
	span.SetAttributes(
		attribute.String("paginate.variant", string(r.ctrl.Variant())),
		attribute.String("paginate.trigger", req.Trigger),
		attribute.Int64("paginate.seq", int64(req.Seq)),
		attribute.Int("paginate.page_index", req.PageIndex),
		attribute.Bool("paginate.reset", req.Reset),
	)

	conn, err := r.repo.FetchConnection(ctx, req.Params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	view := r.ctrl.Complete(req, conn, err)
	span.SetAttributes(
		attribute.Bool("paginate.applied", view.Seq == req.Seq),
		attribute.Int("paginate.visible", view.Collection.Len()),
	)
	if r.onUpdate != nil {
		r.onUpdate(view)
	}
	return view
}
