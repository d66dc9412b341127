package cache_test

import (
	"fmt"

	"relaypager/internal/common/pagination"
	"relaypager/internal/domain/entity"
)

// edge builds the edge for sequential key pk, with the array-connection cursor
// of its zero-based position.
func edge(pk int64) entity.Edge {
	return entity.Edge{
		Node:   entity.Item{ID: fmt.Sprintf("person:%d", pk), PK: pk},
		Cursor: pagination.EncodeCursor(int(pk - 1)),
	}
}

// page builds a collection holding the given keys with a consistent PageInfo.
func page(hasNext bool, pks ...int64) *entity.Collection {
	c := entity.NewCollection()
	for _, pk := range pks {
		c.Edges = append(c.Edges, edge(pk))
	}
	if len(c.Edges) > 0 {
		c.PageInfo.StartCursor = c.Edges[0].Cursor
		c.PageInfo.EndCursor = c.Edges[len(c.Edges)-1].Cursor
	}
	c.PageInfo.HasNextPage = hasNext
	return c
}

func pks(c *entity.Collection) []int64 {
	out := make([]int64, 0, c.Len())
	for _, e := range c.Edges {
		out = append(out, e.Node.PK)
	}
	return out
}
