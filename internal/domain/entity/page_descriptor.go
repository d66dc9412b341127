package entity

// PageCursor is one navigable page: the cursor to request it with, its 1-based
// number, and whether it is the page currently displayed.
type PageCursor struct {
	Cursor     string
	PageNumber int
	IsCurrent  bool
}

// PageDescriptor is the server-computed set of navigable pages.
// Around is the neighbourhood of the current page; First and Last are the
// boundary pages; Previous is the page before the current one.
type PageDescriptor struct {
	First    *PageCursor
	Last     *PageCursor
	Previous *PageCursor
	Around   []PageCursor
}

// LastPageNumber returns the number of the last page, or zero when unknown.
func (d *PageDescriptor) LastPageNumber() int {
	if d == nil || d.Last == nil {
		return 0
	}
	return d.Last.PageNumber
}
