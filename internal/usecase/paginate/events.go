package paginate

import "relaypager/internal/domain/entity"

// Event is a user interaction the controller reacts to.
type Event interface {
	Name() string
}

type (
	// Mount starts the view from its initial state.
	Mount struct{}
	// FirstPage moves to page 1.
	FirstPage struct{}
	// PreviousPage moves one page back.
	PreviousPage struct{}
	// NextPage moves one page forward.
	NextPage struct{}
	// LastPage moves to the last known page.
	LastPage struct{}
	// GoToPage moves to a 0-based page index.
	GoToPage struct {
		Index int
	}
	// SelectPage moves to a page button from the window.
	SelectPage struct {
		Page entity.PageCursor
	}
	// LoadMore fetches the page after the visible collection.
	LoadMore struct{}
	// SetPageSize changes the page size and restarts from page 1.
	SetPageSize struct {
		Size int
	}
	// ToggleSort advances one column through unordered, ascending and descending.
	ToggleSort struct {
		Field string
	}
	// SubmitFilters replaces the filter criteria and restarts from page 1.
	SubmitFilters struct {
		Values map[string]any
	}
	// Scroll reports the scroll position of the list container.
	Scroll struct {
		Position ScrollPosition
	}
)

func (Mount) Name() string         { return "mount" }
func (FirstPage) Name() string     { return "first_page" }
func (PreviousPage) Name() string  { return "previous_page" }
func (NextPage) Name() string      { return "next_page" }
func (LastPage) Name() string      { return "last_page" }
func (GoToPage) Name() string      { return "go_to_page" }
func (SelectPage) Name() string    { return "select_page" }
func (LoadMore) Name() string      { return "load_more" }
func (SetPageSize) Name() string   { return "set_page_size" }
func (ToggleSort) Name() string    { return "toggle_sort" }
func (SubmitFilters) Name() string { return "submit_filters" }
func (Scroll) Name() string        { return "scroll" }
