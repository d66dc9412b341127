package cache_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"relaypager/internal/cache"
)

func TestStore_Apply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		policy  cache.Policy
		pages   [][]int64
		wantPKs []int64
	}{
		{name: "replace", policy: cache.ReplacePolicy(), pages: [][]int64{{1, 2}, {3, 4}}, wantPKs: []int64{3, 4}},
		{name: "append", policy: cache.AppendPolicy(), pages: [][]int64{{1, 2}, {3, 4}}, wantPKs: []int64{1, 2, 3, 4}},
		{
			name:    "contiguous",
			policy:  cache.ContiguousPolicy(cache.KeyBounds{Min: 1, Max: 10}),
			pages:   [][]int64{{1, 2}, {6, 7}},
			wantPKs: []int64{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := cache.NewStore(tt.policy)
			for _, p := range tt.pages {
				s.Apply(page(true, p...))
			}
			assert.Equal(t, tt.wantPKs, pks(s.View()))
		})
	}
}

func TestStore_ResetAndRemove(t *testing.T) {
	t.Parallel()

	s := cache.NewStore(cache.AppendPolicy())
	s.Apply(page(true, 1, 2, 3))

	assert.True(t, s.Remove("person:2"))
	assert.False(t, s.Remove("person:99"))
	snap := s.Snapshot()
	assert.Equal(t, []int64{1, 3}, pks(snap))
	assert.Equal(t, edge(3).Cursor, snap.PageInfo.EndCursor)

	s.Reset()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, "", s.Snapshot().PageInfo.EndCursor)
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	t.Parallel()

	s := cache.NewStore(cache.ReplacePolicy())
	s.Apply(page(true, 1, 2))

	snap := s.Snapshot()
	snap.Edges[0].Cursor = "changed"
	assert.Equal(t, edge(1).Cursor, s.Snapshot().Edges[0].Cursor)
}

func TestStore_ConcurrentApply(t *testing.T) {
	t.Parallel()

	s := cache.NewStore(cache.AppendPolicy())

	var wg sync.WaitGroup
	for i := int64(0); i < 50; i++ {
		wg.Add(1)
		go func(pk int64) {
			defer wg.Done()
			s.Apply(page(true, pk))
			_ = s.View()
		}(i + 1)
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
}
