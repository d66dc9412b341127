// Package cache holds the single normalized collection a paginated view renders
// from, and the merge and read functions that decide how fetched pages fold
// into it.
package cache

import "relaypager/internal/domain/entity"

// MergeFunc folds an incoming page into the existing collection.
// Implementations must not mutate either argument.
type MergeFunc func(existing, incoming *entity.Collection) *entity.Collection

// Append concatenates incoming edges after existing ones and takes the
// incoming PageInfo, keeping the start cursor of the first page ever merged.
// Edges are not deduplicated, so overlapping or out-of-order pages produce
// duplicates; the infinite variant hides them with Contiguous.
func Append(existing, incoming *entity.Collection) *entity.Collection {
	if existing == nil {
		existing = entity.NewCollection()
	}
	if incoming == nil {
		return existing
	}

	edges := make([]entity.Edge, 0, len(existing.Edges)+len(incoming.Edges))
	edges = append(edges, existing.Edges...)
	edges = append(edges, incoming.Edges...)

	info := incoming.PageInfo
	info.StartCursor = existing.PageInfo.StartCursor

	return &entity.Collection{Edges: edges, PageInfo: info}
}

// Replace discards existing and keeps incoming. An absent incoming keeps existing.
func Replace(existing, incoming *entity.Collection) *entity.Collection {
	if incoming == nil {
		if existing == nil {
			return entity.NewCollection()
		}
		return existing
	}
	return incoming.Clone()
}
