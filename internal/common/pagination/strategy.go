package pagination

// Strategy decides where the next page starts and how its metadata reads.
// Offset strategies translate the page index into a cursor; forward
// strategies continue from the end cursor of what is already cached.
type Strategy interface {
	// CalculateQuery returns the request arguments for state.
	// endCursor is the end cursor of the cached collection and is only used
	// by forward strategies.
	CalculateQuery(state State, endCursor string) QueryParams

	// BuildMetadata constructs display metadata for a response.
	BuildMetadata(state State, total int, shown int) Metadata
}

// QueryParams are the variables sent with a connection query.
type QueryParams struct {
	First    int            // Page size
	After    string         // Opaque cursor, empty meaning "from start"
	OrderBy  string         // Comma-joined fields, "-" prefix for descending
	PageSize int            // Page size argument of the pages descriptor
	Filters  map[string]any // Cleaned filter criteria
}

// OffsetStrategy implements page-number pagination over array-connection cursors.
type OffsetStrategy struct{}

// CalculateQuery maps the page index to an exclusive cursor offset.
func (s OffsetStrategy) CalculateQuery(state State, _ string) QueryParams {
	return QueryParams{
		First:    state.PageSize,
		After:    CursorForPage(state.PageIndex, state.PageSize),
		OrderBy:  state.OrderBy(),
		PageSize: state.PageSize,
		Filters:  CleanFilters(state.Filters),
	}
}

// BuildMetadata constructs page-number metadata.
func (s OffsetStrategy) BuildMetadata(state State, total int, shown int) Metadata {
	return Metadata{
		Total:      total,
		PageIndex:  state.PageIndex,
		PageSize:   state.PageSize,
		TotalPages: CalculateTotalPages(int64(total), state.PageSize),
		Shown:      shown,
	}
}

// ForwardStrategy implements load-more and infinite-scroll pagination: each
// request continues after the end cursor of the cached collection.
type ForwardStrategy struct{}

// CalculateQuery continues after endCursor.
func (s ForwardStrategy) CalculateQuery(state State, endCursor string) QueryParams {
	return QueryParams{
		First:   state.PageSize,
		After:   endCursor,
		OrderBy: state.OrderBy(),
		Filters: CleanFilters(state.Filters),
	}
}

// BuildMetadata constructs metadata for an accumulated collection.
// The page index is not meaningful here and is left at zero.
func (s ForwardStrategy) BuildMetadata(state State, total int, shown int) Metadata {
	return Metadata{
		Total:      total,
		PageSize:   state.PageSize,
		TotalPages: CalculateTotalPages(int64(total), state.PageSize),
		Shown:      shown,
	}
}
