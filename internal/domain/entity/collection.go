package entity

import "fmt"

// PageInfo carries the boundary metadata of a forward/backward paginated collection.
type PageInfo struct {
	HasPreviousPage bool
	HasNextPage     bool
	StartCursor     string
	EndCursor       string
}

// CheckBoundary reports whether EndCursor matches the cursor of the last edge.
// Empty edge lists are always consistent.
func (p PageInfo) CheckBoundary(edges []Edge) error {
	if len(edges) == 0 {
		return nil
	}
	last := edges[len(edges)-1].Cursor
	if p.EndCursor != last {
		return &ValidationError{
			Field:   "pageInfo.endCursor",
			Message: fmt.Sprintf("got %q, last edge cursor is %q", p.EndCursor, last),
		}
	}
	return nil
}

// Collection is an ordered sequence of edges plus one PageInfo.
// A nil *Collection means "absent" to the merge layer.
type Collection struct {
	Edges    []Edge
	PageInfo PageInfo
}

// NewCollection returns the empty default collection with all-false/empty PageInfo.
func NewCollection() *Collection {
	return &Collection{Edges: []Edge{}}
}

// Len returns the number of edges, treating nil as empty.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Edges)
}

// Clone returns a copy whose edge slice can be modified independently.
func (c *Collection) Clone() *Collection {
	if c == nil {
		return nil
	}
	edges := make([]Edge, len(c.Edges))
	copy(edges, c.Edges)
	return &Collection{Edges: edges, PageInfo: c.PageInfo}
}

// Without returns a copy of the collection with every edge whose node ID equals id
// removed. Start and end cursors are recomputed from the remaining edges and are
// empty when nothing remains; the has-page flags are kept.
func (c *Collection) Without(id string) *Collection {
	if c == nil {
		return nil
	}
	edges := make([]Edge, 0, len(c.Edges))
	for _, e := range c.Edges {
		if e.Node.ID != id {
			edges = append(edges, e)
		}
	}

	info := c.PageInfo
	info.StartCursor = ""
	info.EndCursor = ""
	if len(edges) > 0 {
		info.StartCursor = edges[0].Cursor
		info.EndCursor = edges[len(edges)-1].Cursor
	}
	return &Collection{Edges: edges, PageInfo: info}
}

// NodeIDs returns the node IDs in edge order.
func (c *Collection) NodeIDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, len(c.Edges))
	for i, e := range c.Edges {
		ids[i] = e.Node.ID
	}
	return ids
}

// Connection is one decoded server response for a paginated field.
// Pages is set only by servers that support page-number pagination, in which
// case PageInfo is left zero.
type Connection struct {
	Collection
	Pages      *PageDescriptor
	Total      int
	TotalPages int
	FormErrors FormErrors
}

// AsCollection returns the connection's edges and page info as a standalone collection.
func (c *Connection) AsCollection() *Collection {
	if c == nil {
		return nil
	}
	return c.Collection.Clone()
}
