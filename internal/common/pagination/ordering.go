package pagination

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotOrderable is returned when toggling a column that cannot be ordered.
var ErrNotOrderable = errors.New("column is not orderable")

// Direction is a column's position in the unordered -> ascending -> descending cycle.
type Direction int

const (
	Unordered Direction = iota
	Ascending
	Descending
)

// Next returns the direction that follows d in the toggle cycle.
func (d Direction) Next() Direction {
	return (d + 1) % 3
}

// String implements fmt.Stringer.
func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return ""
	}
}

// SortKey is one column of a multi-column sort order.
// Lower precedence sorts first.
type SortKey struct {
	Field      string
	Direction  Direction
	Precedence int
}

// OrderBy renders the server ordering argument: ordered fields sorted by
// precedence, joined with commas, descending fields prefixed with "-".
func OrderBy(keys []SortKey) string {
	active := activeKeys(keys)
	parts := make([]string, len(active))
	for i, k := range active {
		if k.Direction == Descending {
			parts[i] = "-" + k.Field
		} else {
			parts[i] = k.Field
		}
	}
	return strings.Join(parts, ",")
}

// ParseOrderBy is the inverse of OrderBy. Precedence follows position.
func ParseOrderBy(s string) []SortKey {
	var keys []SortKey
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" || part == "-" {
			continue
		}
		k := SortKey{Field: part, Direction: Ascending, Precedence: len(keys)}
		if strings.HasPrefix(part, "-") {
			k.Field = part[1:]
			k.Direction = Descending
		}
		keys = append(keys, k)
	}
	return keys
}

func activeKeys(keys []SortKey) []SortKey {
	active := make([]SortKey, 0, len(keys))
	for _, k := range keys {
		if k.Direction != Unordered {
			active = append(active, k)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Precedence < active[j].Precedence
	})
	return active
}

// Ordering tracks the direction and precedence of every orderable column.
// A column entering ascending takes the next value of a counter that only
// grows, so it sorts after every column already ordered. Removing a column
// leaves the other precedences untouched.
type Ordering struct {
	keys []SortKey
	next int
}

// NewOrdering creates an Ordering over the given orderable fields.
// Initial directions and precedences come from defaults; defaults naming a
// field that is not orderable are rejected.
func NewOrdering(fields []string, defaults []SortKey) (*Ordering, error) {
	o := &Ordering{keys: make([]SortKey, len(fields))}
	for i, f := range fields {
		o.keys[i] = SortKey{Field: f}
	}
	for _, d := range defaults {
		i := o.index(d.Field)
		if i < 0 {
			return nil, fmt.Errorf("default ordering on %q: %w", d.Field, ErrNotOrderable)
		}
		o.keys[i] = d
		if d.Direction != Unordered && d.Precedence >= o.next {
			o.next = d.Precedence + 1
		}
	}
	return o, nil
}

func (o *Ordering) index(field string) int {
	for i, k := range o.keys {
		if k.Field == field {
			return i
		}
	}
	return -1
}

// Orderable reports whether field can be toggled.
func (o *Ordering) Orderable(field string) bool {
	return o.index(field) >= 0
}

// Toggle advances field one step through the direction cycle and returns its new key.
func (o *Ordering) Toggle(field string) (SortKey, error) {
	i := o.index(field)
	if i < 0 {
		return SortKey{}, fmt.Errorf("toggle %q: %w", field, ErrNotOrderable)
	}

	k := o.keys[i]
	k.Direction = k.Direction.Next()
	switch k.Direction {
	case Ascending:
		k.Precedence = o.next
		o.next++
	case Unordered:
		k.Precedence = 0
	}
	o.keys[i] = k
	return k, nil
}

// Direction returns the current direction of field.
func (o *Ordering) Direction(field string) Direction {
	if i := o.index(field); i >= 0 {
		return o.keys[i].Direction
	}
	return Unordered
}

// Keys returns the ordered columns sorted by precedence.
func (o *Ordering) Keys() []SortKey {
	return activeKeys(o.keys)
}

// OrderBy renders the current ordering for the server.
func (o *Ordering) OrderBy() string {
	return OrderBy(o.keys)
}
