package cache

import (
	"sort"

	"relaypager/internal/domain/entity"
)

// KeyBounds are the first and last sequential keys of the full data set.
// Max is zero when the server has not reported it.
type KeyBounds struct {
	Min int64
	Max int64
}

// DefaultKeyBounds starts at key 1 with an unknown upper bound.
func DefaultKeyBounds() KeyBounds {
	return KeyBounds{Min: 1}
}

// Contiguous returns the longest gapless run of c's edges, ordered by PK and
// starting at bounds.Min. A repeated PK is an overlap and is skipped; the
// first occurrence wins.
//
// The returned PageInfo points at the run: EndCursor is the cursor of the last
// edge kept, so a forward fetch resumes at the first missing key.
func Contiguous(c *entity.Collection, bounds KeyBounds) *entity.Collection {
	if bounds.Min == 0 {
		bounds.Min = 1
	}

	out := &entity.Collection{
		Edges:    []entity.Edge{},
		PageInfo: entity.PageInfo{HasNextPage: true},
	}
	if c.Len() == 0 {
		return out
	}

	sorted := append([]entity.Edge(nil), c.Edges...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Node.PK < sorted[j].Node.PK
	})
	if sorted[0].Node.PK != bounds.Min {
		return out
	}

	out.Edges = append(out.Edges, sorted[0])
	prev := sorted[0].Node.PK
	for _, e := range sorted[1:] {
		pk := e.Node.PK
		if pk == prev {
			continue
		}
		if pk != prev+1 {
			break
		}
		out.Edges = append(out.Edges, e)
		prev = pk
	}

	out.PageInfo.EndCursor = out.Edges[len(out.Edges)-1].Cursor
	switch {
	case bounds.Max > 0:
		out.PageInfo.HasNextPage = prev != bounds.Max
	default:
		coversAll := prev == sorted[len(sorted)-1].Node.PK
		out.PageInfo.HasNextPage = !coversAll || c.PageInfo.HasNextPage
	}
	return out
}
