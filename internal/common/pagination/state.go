package pagination

import (
	"fmt"
	"maps"
)

// State is the UI-local pagination state. Only the controller mutates it.
type State struct {
	PageIndex int            // 0-based page index
	PageSize  int            // Items per page
	Sort      []SortKey      // Sort keys, any order
	Filters   map[string]any // Untyped filter criteria; absent key means no filter
}

// Validate validates the state against the configuration.
// Returns an error if:
//   - page index is negative
//   - page size is less than 1 or greater than config.MaxPageSize
func (s State) Validate(config Config) error {
	if s.PageIndex < 0 {
		return fmt.Errorf("page index must be non-negative")
	}
	if s.PageSize < 1 || s.PageSize > config.MaxPageSize {
		return fmt.Errorf("page size must be between 1 and %d", config.MaxPageSize)
	}
	return nil
}

// WithDefaults applies default values from config to the state.
//
// Rules:
//   - If page index < 0, set to 0
//   - If page size <= 0, set to config.DefaultPageSize
//   - If page size > config.MaxPageSize, cap to config.MaxPageSize
func (s State) WithDefaults(config Config) State {
	if s.PageIndex < 0 {
		s.PageIndex = 0
	}
	if s.PageSize <= 0 {
		s.PageSize = config.DefaultPageSize
	}
	if s.PageSize > config.MaxPageSize {
		s.PageSize = config.MaxPageSize
	}
	return s
}

// Offset returns the cursor offset of the current page.
func (s State) Offset() int {
	return CalculateOffset(s.PageIndex, s.PageSize)
}

// OrderBy returns the server ordering argument for the sort keys.
func (s State) OrderBy() string {
	return OrderBy(s.Sort)
}

// Clone returns a copy that shares nothing mutable with s.
func (s State) Clone() State {
	c := s
	if s.Sort != nil {
		c.Sort = append([]SortKey(nil), s.Sort...)
	}
	if s.Filters != nil {
		c.Filters = maps.Clone(s.Filters)
	}
	return c
}
