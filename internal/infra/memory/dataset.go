// Package memory serves array connections from an in-process data set. It
// answers the same arguments a page-number GraphQL server does and is used for
// offline walks and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"relaypager/internal/common/pagination"
	"relaypager/internal/domain/entity"
)

// Dataset is an ordered list of items exposed as one connection field.
// It is safe for concurrent use.
type Dataset struct {
	mu         sync.RWMutex
	items      []entity.Item
	orderable  map[string]bool
	filterable map[string]bool
	radius     int
}

// Option configures a Dataset.
type Option func(*Dataset)

// WithOrderable lists the attributes that may appear in orderBy.
// "pk" is always orderable.
func WithOrderable(fields ...string) Option {
	return func(d *Dataset) {
		for _, f := range fields {
			d.orderable[f] = true
		}
	}
}

// WithFilterable lists the attributes that may be filtered on.
func WithFilterable(fields ...string) Option {
	return func(d *Dataset) {
		for _, f := range fields {
			d.filterable[f] = true
		}
	}
}

// WithAroundRadius sets how many pages either side of the current one the
// page descriptor lists.
func WithAroundRadius(radius int) Option {
	return func(d *Dataset) {
		d.radius = radius
	}
}

// NewDataset creates a dataset over items, kept in the given order.
func NewDataset(items []entity.Item, opts ...Option) *Dataset {
	d := &Dataset{
		items:      append([]entity.Item(nil), items...),
		orderable:  map[string]bool{"pk": true},
		filterable: map[string]bool{},
		radius:     pagination.DefaultConfig().AroundRadius,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Len returns the number of items.
func (d *Dataset) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.items)
}

// Delete removes the item with the given ID and reports whether it existed.
func (d *Dataset) Delete(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, it := range d.items {
		if it.ID == id {
			d.items = append(d.items[:i], d.items[i+1:]...)
			return true
		}
	}
	return false
}

// FetchConnection returns the page described by q.
//
// Item i of the filtered and ordered list carries the cursor for offset i.
// An empty after starts at the first item; any other after starts at the item
// following the decoded offset. When q.PageSize is set the response carries a
// page descriptor instead of PageInfo. Unknown filter or order fields are
// reported as form errors with no edges.
func (d *Dataset) FetchConnection(ctx context.Context, q pagination.QueryParams) (*entity.Connection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if fe := d.checkArguments(q); len(fe) > 0 {
		return &entity.Connection{
			Collection: entity.Collection{Edges: []entity.Edge{}},
			FormErrors: fe,
		}, nil
	}

	rows := d.filter(q.Filters)
	sortRows(rows, pagination.ParseOrderBy(q.OrderBy))

	start := 0
	if q.After != "" {
		offset, err := pagination.DecodeCursor(q.After)
		if err != nil {
			return nil, fmt.Errorf("resolve after: %w", err)
		}
		start = offset + 1
	}
	if start > len(rows) {
		start = len(rows)
	}

	end := len(rows)
	if q.First > 0 && start+q.First < end {
		end = start + q.First
	}

	conn := &entity.Connection{
		Collection: entity.Collection{Edges: make([]entity.Edge, 0, end-start)},
		Total:      len(rows),
	}
	for i := start; i < end; i++ {
		conn.Edges = append(conn.Edges, entity.Edge{Node: rows[i], Cursor: pagination.EncodeCursor(i)})
	}

	if q.PageSize > 0 {
		conn.Pages = pagination.DescribePages(start, len(rows), q.PageSize, d.radius)
		conn.TotalPages = pagination.CalculateTotalPages(int64(len(rows)), q.PageSize)
		return conn, nil
	}

	conn.PageInfo = entity.PageInfo{
		HasPreviousPage: start > 0,
		HasNextPage:     end < len(rows),
	}
	if n := len(conn.Edges); n > 0 {
		conn.PageInfo.StartCursor = conn.Edges[0].Cursor
		conn.PageInfo.EndCursor = conn.Edges[n-1].Cursor
	}
	if q.First > 0 {
		conn.TotalPages = pagination.CalculateTotalPages(int64(len(rows)), q.First)
	}
	return conn, nil
}

func (d *Dataset) checkArguments(q pagination.QueryParams) entity.FormErrors {
	var fe entity.FormErrors
	for _, k := range pagination.ParseOrderBy(q.OrderBy) {
		if !d.orderable[k.Field] {
			fe = append(fe, entity.FormError{
				Field:  entity.NonFieldErrors,
				Errors: []string{fmt.Sprintf("cannot order by %q", k.Field)},
			})
		}
	}

	fields := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	for _, k := range fields {
		if !d.filterable[k] {
			fe = append(fe, entity.FormError{Field: k, Errors: []string{"not a filterable field"}})
		}
	}
	return fe
}

func (d *Dataset) filter(filters map[string]any) []entity.Item {
	rows := make([]entity.Item, 0, len(d.items))
	for _, it := range d.items {
		if matches(it, filters) {
			rows = append(rows, it)
		}
	}
	return rows
}

// matches reports whether every filter holds. String criteria match
// case-insensitive substrings, anything else compares by its printed form.
func matches(it entity.Item, filters map[string]any) bool {
	for k, want := range filters {
		got := it.Attr(k)
		if got == nil {
			return false
		}
		if s, isString := want.(string); isString {
			if !strings.Contains(strings.ToLower(fmt.Sprint(got)), strings.ToLower(s)) {
				return false
			}
			continue
		}
		if fmt.Sprint(got) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

// sortRows orders rows by keys, breaking ties on pk ascending.
func sortRows(rows []entity.Item, keys []pagination.SortKey) {
	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			c := compare(value(rows[i], k.Field), value(rows[j], k.Field))
			if c == 0 {
				continue
			}
			if k.Direction == pagination.Descending {
				return c > 0
			}
			return c < 0
		}
		return rows[i].PK < rows[j].PK
	})
}

func value(it entity.Item, field string) any {
	if field == "pk" {
		return it.PK
	}
	return it.Attr(field)
}

func compare(a, b any) int {
	fa, aNum := number(a)
	fb, bNum := number(b)
	if aNum && bNum {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
