package graphql

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"relaypager/internal/common/pagination"
)

// Reserved variable names of the connection arguments.
const (
	varFirst    = "first"
	varAfter    = "after"
	varOrderBy  = "orderBy"
	varPageSize = "pageSize"
)

var nameRE = regexp.MustCompile(`^[_A-Za-z][_0-9A-Za-z]*$`)

const pageCursorSelection = "{ cursor pageNumber isCurrent }"

// Document is a GraphQL request body.
type Document struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables"`
}

// queryBuilder renders the connection query for one field path.
type queryBuilder struct {
	path       []string
	nodeFields []string
	formErrors bool
}

func newQueryBuilder(field string, nodeFields []string, formErrors bool) (*queryBuilder, error) {
	path := strings.Split(field, ".")
	for _, seg := range path {
		if !nameRE.MatchString(seg) {
			return nil, fmt.Errorf("field path %q: segment %q is not a GraphQL name", field, seg)
		}
	}

	fields := []string{"id"}
	seen := map[string]bool{"id": true}
	for _, f := range nodeFields {
		if seen[f] {
			continue
		}
		if !nameRE.MatchString(f) {
			return nil, fmt.Errorf("node field %q is not a GraphQL name", f)
		}
		seen[f] = true
		fields = append(fields, f)
	}

	return &queryBuilder{path: path, nodeFields: fields, formErrors: formErrors}, nil
}

// Build renders the document for q. A positive q.PageSize selects the page
// descriptor, otherwise pageInfo is selected.
func (b *queryBuilder) Build(q pagination.QueryParams) (Document, error) {
	vars := map[string]any{
		varFirst:   q.First,
		varAfter:   q.After,
		varOrderBy: q.OrderBy,
	}
	decls := []string{"$first: Int", "$after: String", "$orderBy: String"}
	args := []string{"first: $first", "after: $after", "orderBy: $orderBy"}

	paged := q.PageSize > 0
	if paged {
		vars[varPageSize] = q.PageSize
		decls = append(decls, "$pageSize: Int")
	}

	filters := pagination.CleanFilters(q.Filters)
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !nameRE.MatchString(k) {
			return Document{}, fmt.Errorf("filter %q is not a GraphQL name", k)
		}
		if _, reserved := vars[k]; reserved || k == varPageSize {
			return Document{}, fmt.Errorf("filter %q collides with a connection argument", k)
		}
		v, typ := filterVariable(filters[k])
		vars[k] = v
		decls = append(decls, fmt.Sprintf("$%s: %s", k, typ))
		args = append(args, fmt.Sprintf("%s: $%s", k, k))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "query Connection(%s) {\n", strings.Join(decls, ", "))
	depth := 1
	for _, seg := range b.path[:len(b.path)-1] {
		fmt.Fprintf(&sb, "%s%s {\n", indent(depth), seg)
		depth++
	}

	leaf := b.path[len(b.path)-1]
	fmt.Fprintf(&sb, "%s%s(%s) {\n", indent(depth), leaf, strings.Join(args, ", "))
	in := indent(depth + 1)
	fmt.Fprintf(&sb, "%sedges { cursor node { %s } }\n", in, strings.Join(b.nodeFields, " "))
	if paged {
		fmt.Fprintf(&sb, "%spages(pageSize: $pageSize) {\n", in)
		for _, p := range []string{"first", "last", "previous", "around"} {
			fmt.Fprintf(&sb, "%s%s %s\n", indent(depth+2), p, pageCursorSelection)
		}
		fmt.Fprintf(&sb, "%s}\n", in)
		fmt.Fprintf(&sb, "%stotalPages\n", in)
	} else {
		fmt.Fprintf(&sb, "%spageInfo { hasNextPage hasPreviousPage startCursor endCursor }\n", in)
	}
	fmt.Fprintf(&sb, "%stotal\n", in)
	if b.formErrors {
		fmt.Fprintf(&sb, "%sformErrors { field messages }\n", in)
	}
	fmt.Fprintf(&sb, "%s}\n", indent(depth))

	for depth > 1 {
		depth--
		fmt.Fprintf(&sb, "%s}\n", indent(depth))
	}
	sb.WriteString("}\n")

	return Document{Query: sb.String(), OperationName: "Connection", Variables: vars}, nil
}

// filterVariable returns the JSON value and GraphQL type of a filter value.
// Values that are not scalars are sent as their string form.
func filterVariable(v any) (any, string) {
	switch x := v.(type) {
	case string:
		return x, "String"
	case bool:
		return x, "Boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32:
		return x, "Int"
	case float32, float64:
		return x, "Float"
	default:
		return fmt.Sprint(x), "String"
	}
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}
