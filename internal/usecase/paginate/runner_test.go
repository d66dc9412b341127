package paginate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"relaypager/internal/common/pagination"
	"relaypager/internal/domain/entity"
	"relaypager/internal/observability/logging"
	"relaypager/internal/repository"
)

func TestRunner_DispatchLastRequestWins(t *testing.T) {
	ds := people(23)
	release := make(chan struct{})
	repo := repository.ConnectionRepositoryFunc(func(ctx context.Context, q pagination.QueryParams) (*entity.Connection, error) {
		if q.After == "" {
			<-release // hold the mount response until the newer page has landed
		}
		return ds.FetchConnection(ctx, q)
	})

	updates := make(chan View, 2)
	r := NewRunner(newTestController(t, testCfg(VariantPages)), repo, func(v View) { updates <- v })
	ctx := context.Background()

	require.True(t, r.Dispatch(ctx, Mount{}))
	require.True(t, r.Dispatch(ctx, GoToPage{Index: 2}))

	newer := <-updates
	assert.Equal(t, uint64(2), newer.Seq)
	assert.Equal(t, "Person:11", newer.Collection.Edges[0].Node.ID)

	close(release)
	r.Wait()

	stale := <-updates
	assert.Equal(t, 1, stale.Stale)
	assert.Equal(t, "Person:11", stale.Collection.Edges[0].Node.ID)

	final := r.Controller().View()
	assert.Equal(t, 2, final.State.PageIndex)
	assert.Equal(t, Idle, final.Status)
}

func TestRunner_DispatchWithoutFetch(t *testing.T) {
	t.Parallel()

	r := NewRunner(newTestController(t, testCfg(VariantBasic)), people(3), nil)
	assert.False(t, r.Dispatch(context.Background(), NextPage{}))
	require.NoError(t, r.Shutdown(context.Background()))
}

func TestRunner_ShutdownTimeout(t *testing.T) {
	block := make(chan struct{})
	repo := repository.ConnectionRepositoryFunc(func(ctx context.Context, q pagination.QueryParams) (*entity.Connection, error) {
		<-block
		return nil, nil
	})
	r := NewRunner(newTestController(t, testCfg(VariantBasic)), repo, nil)
	require.True(t, r.Dispatch(context.Background(), Mount{}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, r.Shutdown(ctx), context.DeadlineExceeded)

	close(block)
	r.Wait()
}

func TestRunner_FetchCarriesRequestIDAndSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(sdktrace.NewTracerProvider()) })

	ds := people(5)
	var gotID string
	repo := repository.ConnectionRepositoryFunc(func(ctx context.Context, q pagination.QueryParams) (*entity.Connection, error) {
		gotID = logging.RequestID(ctx)
		return ds.FetchConnection(ctx, q)
	})

	r := NewRunner(newTestController(t, testCfg(VariantBasic)), repo, nil)
	_, ok := r.Do(context.Background(), Mount{})
	require.True(t, ok)
	assert.NotEmpty(t, gotID)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "paginate.fetch", spans[0].Name)

	attrs := map[string]any{}
	for _, kv := range spans[0].Attributes {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	assert.Equal(t, "basic", attrs["paginate.variant"])
	assert.Equal(t, "mount", attrs["paginate.trigger"])
	assert.Equal(t, true, attrs["paginate.applied"])
	assert.Equal(t, int64(5), attrs["paginate.visible"])
}
