package pagination

// CalculateOffset calculates the cursor offset for a 0-based page index.
// Cursors are exclusive ("after this position"), so the offset names the last
// item of the previous page rather than the first item of the wanted one.
//
// Formula: offset = pageIndex == 0 ? 0 : pageIndex*pageSize - 1
//
// Examples:
//   - Index 0, Size 5 -> Offset 0 (no cursor)
//   - Index 1, Size 5 -> Offset 4
//   - Index 2, Size 5 -> Offset 9
func CalculateOffset(pageIndex, pageSize int) int {
	if pageIndex <= 0 {
		return 0
	}
	return pageIndex*pageSize - 1
}

// PageToIndex is CalculateOffset for a 1-based page number.
func PageToIndex(page, pageSize int) int {
	return CalculateOffset(page-1, pageSize)
}

// CursorForPage returns the "after" cursor that requests the page at pageIndex.
func CursorForPage(pageIndex, pageSize int) string {
	return EncodeCursor(CalculateOffset(pageIndex, pageSize))
}

// PageNumber returns the 1-based page that contains the item at index.
func PageNumber(index, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	return index/pageSize + 1
}

// CalculateTotalPages calculates the total number of pages based on total items and page size.
// Uses ceiling division to ensure all items are included.
//
// Special cases:
//   - If total is 0, returns 1 (always at least 1 page)
//   - If total < pageSize, returns 1
//   - Otherwise, returns ceil(total / pageSize)
func CalculateTotalPages(total int64, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 1
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
