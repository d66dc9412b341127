// Package paginate drives one paginated view: it turns user events into
// connection requests, applies responses to the cache in request order and
// publishes the resulting view.
package paginate

import (
	"fmt"

	"relaypager/internal/cache"
	"relaypager/internal/common/pagination"
)

// Variant selects how pages are requested and merged.
type Variant string

const (
	// VariantBasic always shows the first page.
	VariantBasic Variant = "basic"
	// VariantLoadMore appends the page after the cached end cursor.
	VariantLoadMore Variant = "load_more"
	// VariantPages shows one numbered page at a time using the server's page descriptor.
	VariantPages Variant = "pages"
	// VariantInfinite appends pages on scroll and shows the contiguous run of keys.
	VariantInfinite Variant = "infinite"
	// VariantTable shows one numbered page at a time with sorting and filtering.
	VariantTable Variant = "table"
)

// Variants lists every supported variant.
var Variants = []Variant{VariantBasic, VariantLoadMore, VariantPages, VariantInfinite, VariantTable}

// ParseVariant parses a variant name.
func ParseVariant(s string) (Variant, error) {
	for _, v := range Variants {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown variant %q", s)
}

// Policy returns the cache policy of the variant.
func (v Variant) Policy(bounds cache.KeyBounds) cache.Policy {
	switch v {
	case VariantLoadMore:
		return cache.AppendPolicy()
	case VariantInfinite:
		return cache.ContiguousPolicy(bounds)
	default:
		return cache.ReplacePolicy()
	}
}

// Strategy returns how the variant computes request cursors.
func (v Variant) Strategy() pagination.Strategy {
	if v.paged() {
		return pagination.OffsetStrategy{}
	}
	return pagination.ForwardStrategy{}
}

func (v Variant) paged() bool {
	return v == VariantPages || v == VariantTable
}

func (v Variant) appends() bool {
	return v == VariantLoadMore || v == VariantInfinite
}
