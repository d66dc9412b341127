// Package entity defines the core domain types of a Relay-style connection:
// items, edges, page boundaries, accumulated collections and page descriptors,
// together with their validation rules and domain-specific errors.
package entity

import (
	"fmt"
	"strconv"
)

// Item is an opaque server record.
// PK is the sequential numeric key used by the infinite-scroll variant;
// it is zero when the server does not expose one.
type Item struct {
	ID         string
	PK         int64
	Attributes map[string]any
}

// Attr returns the named attribute, or nil if the item does not carry it.
func (i Item) Attr(name string) any {
	if i.Attributes == nil {
		return nil
	}
	return i.Attributes[name]
}

// ParsePK converts a wire primary key into its numeric form.
// GraphQL serialises ID fields as strings, so both "12" and 12 are accepted.
func ParsePK(v any) (int64, error) {
	switch pk := v.(type) {
	case nil:
		return 0, nil
	case string:
		if pk == "" {
			return 0, nil
		}
		n, err := strconv.ParseInt(pk, 10, 64)
		if err != nil {
			return 0, &ValidationError{Field: "pk", Message: fmt.Sprintf("not an integer: %q", pk)}
		}
		return n, nil
	case float64:
		if pk != float64(int64(pk)) {
			return 0, &ValidationError{Field: "pk", Message: fmt.Sprintf("not an integer: %v", pk)}
		}
		return int64(pk), nil
	case int64:
		return pk, nil
	case int:
		return int64(pk), nil
	default:
		return 0, &ValidationError{Field: "pk", Message: fmt.Sprintf("unsupported type %T", v)}
	}
}

// Edge pairs an Item with the cursor denoting its position in the server ordering.
type Edge struct {
	Node   Item
	Cursor string
}
