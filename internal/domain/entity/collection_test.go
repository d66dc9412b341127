package entity

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func edges(ids ...string) []Edge {
	out := make([]Edge, len(ids))
	for i, id := range ids {
		out[i] = Edge{Node: Item{ID: id}, Cursor: "c-" + id}
	}
	return out
}

func TestNewCollection(t *testing.T) {
	c := NewCollection()

	require.NotNil(t, c)
	assert.Equal(t, 0, c.Len())
	assert.NotNil(t, c.Edges)
	assert.Equal(t, PageInfo{}, c.PageInfo)
}

func TestCollection_LenNil(t *testing.T) {
	var c *Collection
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.Clone())
	assert.Nil(t, c.Without("x"))
	assert.Nil(t, c.NodeIDs())
}

func TestCollection_CloneIsIndependent(t *testing.T) {
	orig := &Collection{Edges: edges("a", "b"), PageInfo: PageInfo{EndCursor: "c-b"}}
	clone := orig.Clone()

	clone.Edges[0].Cursor = "changed"

	assert.Equal(t, "c-a", orig.Edges[0].Cursor)
	assert.Equal(t, orig.PageInfo, clone.PageInfo)
}

func TestCollection_Without(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     *Collection
		remove string
		want   *Collection
	}{
		{
			name: "remove middle keeps boundaries",
			in: &Collection{
				Edges:    edges("a", "b", "c"),
				PageInfo: PageInfo{HasNextPage: true, StartCursor: "c-a", EndCursor: "c-c"},
			},
			remove: "b",
			want: &Collection{
				Edges:    edges("a", "c"),
				PageInfo: PageInfo{HasNextPage: true, StartCursor: "c-a", EndCursor: "c-c"},
			},
		},
		{
			name: "remove last moves end cursor",
			in: &Collection{
				Edges:    edges("a", "b"),
				PageInfo: PageInfo{StartCursor: "c-a", EndCursor: "c-b"},
			},
			remove: "b",
			want: &Collection{
				Edges:    edges("a"),
				PageInfo: PageInfo{StartCursor: "c-a", EndCursor: "c-a"},
			},
		},
		{
			name: "remove only edge clears cursors",
			in: &Collection{
				Edges:    edges("a"),
				PageInfo: PageInfo{HasNextPage: true, StartCursor: "c-a", EndCursor: "c-a"},
			},
			remove: "a",
			want: &Collection{
				Edges:    []Edge{},
				PageInfo: PageInfo{HasNextPage: true},
			},
		},
		{
			name: "unknown id recomputes from edges",
			in: &Collection{
				Edges:    edges("a", "b"),
				PageInfo: PageInfo{StartCursor: "", EndCursor: "c-b"},
			},
			remove: "zzz",
			want: &Collection{
				Edges:    edges("a", "b"),
				PageInfo: PageInfo{StartCursor: "c-a", EndCursor: "c-b"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Without(tt.remove)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Without(%q) mismatch (-want +got):\n%s", tt.remove, diff)
			}
		})
	}
}

func TestPageInfo_CheckBoundary(t *testing.T) {
	assert.NoError(t, PageInfo{}.CheckBoundary(nil))
	assert.NoError(t, PageInfo{EndCursor: "c-b"}.CheckBoundary(edges("a", "b")))

	err := PageInfo{EndCursor: "c-a"}.CheckBoundary(edges("a", "b"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidationFailed))

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "pageInfo.endCursor", vErr.Field)
}

func TestConnection_AsCollection(t *testing.T) {
	var nilConn *Connection
	assert.Nil(t, nilConn.AsCollection())

	conn := &Connection{
		Collection: Collection{Edges: edges("a"), PageInfo: PageInfo{EndCursor: "c-a"}},
		Total:      10,
	}
	c := conn.AsCollection()
	c.Edges[0].Cursor = "x"

	assert.Equal(t, "c-a", conn.Edges[0].Cursor)
	assert.Equal(t, []string{"a"}, c.NodeIDs())
}

func TestPageDescriptor_LastPageNumber(t *testing.T) {
	var d *PageDescriptor
	assert.Equal(t, 0, d.LastPageNumber())
	assert.Equal(t, 0, (&PageDescriptor{}).LastPageNumber())
	assert.Equal(t, 7, (&PageDescriptor{Last: &PageCursor{PageNumber: 7}}).LastPageNumber())
}
