package pagination

import "fmt"

// Metadata contains pagination metadata for display.
type Metadata struct {
	Total      int `json:"total"`       // Total number of items across all pages, 0 if unknown
	PageIndex  int `json:"page_index"`  // Current page index (0-based)
	PageSize   int `json:"page_size"`   // Items per page
	TotalPages int `json:"total_pages"` // Calculated total number of pages
	Shown      int `json:"shown"`       // Items currently visible
}

// Summary renders the "showing N of M" line. When the server did not report a
// total the upper bound is estimated from the page count.
func (m Metadata) Summary() string {
	if m.Total > 0 {
		return fmt.Sprintf("Showing %d of %d results", m.Shown, m.Total)
	}
	estimate := m.TotalPages * m.PageSize
	if estimate < m.Shown {
		estimate = m.Shown
	}
	return fmt.Sprintf("Showing %d of ~%d results", m.Shown, estimate)
}
