package pagination

import (
	"fmt"

	"relaypager/internal/domain/entity"
)

// PageButton is one numbered page control.
type PageButton struct {
	Number int
	Cursor string
	Active bool
}

// Window is the set of navigation controls derived from a PageDescriptor.
// A nil control is hidden.
type Window struct {
	First    *entity.PageCursor
	Previous *entity.PageCursor
	Pages    []PageButton
	Next     *entity.PageCursor
	Last     *entity.PageCursor

	// Current is the page being displayed, or nil if the descriptor names none.
	Current *entity.PageCursor

	// Violations lists descriptor inconsistencies. They are reported, not fatal.
	Violations []string
}

// BuildWindow derives the visible navigation controls from desc.
//
// Rules:
//   - First is shown if present and not current
//   - Previous is shown if present
//   - every Around entry is a page button, active when current
//   - Next is shown if the current page is not Last; it targets the Around
//     entry after the current one, falling back to Last
//   - Last is shown if present and not current
//
// When several Around entries claim to be current the first one wins and
// each extra claim is recorded in Violations.
func BuildWindow(desc entity.PageDescriptor) Window {
	var w Window

	currentIdx := -1
	for i, p := range desc.Around {
		if !p.IsCurrent {
			continue
		}
		if currentIdx >= 0 {
			w.Violations = append(w.Violations, fmt.Sprintf(
				"page %d also reports isCurrent, keeping page %d",
				p.PageNumber, desc.Around[currentIdx].PageNumber))
			continue
		}
		currentIdx = i
	}

	w.Pages = make([]PageButton, len(desc.Around))
	for i, p := range desc.Around {
		w.Pages[i] = PageButton{Number: p.PageNumber, Cursor: p.Cursor, Active: i == currentIdx}
	}

	switch {
	case currentIdx >= 0:
		c := desc.Around[currentIdx]
		w.Current = &c
	case desc.First != nil && desc.First.IsCurrent:
		c := *desc.First
		w.Current = &c
	case desc.Last != nil && desc.Last.IsCurrent:
		c := *desc.Last
		w.Current = &c
	}

	if desc.First != nil && !isCurrent(desc.First, w.Current) {
		f := *desc.First
		w.First = &f
	}
	if desc.Previous != nil {
		p := *desc.Previous
		w.Previous = &p
	}
	if desc.Last != nil && !isCurrent(desc.Last, w.Current) {
		l := *desc.Last
		w.Last = &l
	}

	if w.Current != nil && !isCurrent(desc.Last, w.Current) {
		if currentIdx >= 0 && currentIdx+1 < len(desc.Around) {
			n := desc.Around[currentIdx+1]
			n.IsCurrent = false
			w.Next = &n
		} else if desc.Last != nil {
			l := *desc.Last
			w.Next = &l
		}
	}

	return w
}

func isCurrent(p, current *entity.PageCursor) bool {
	if p == nil {
		return false
	}
	if p.IsCurrent {
		return true
	}
	return current != nil && current.PageNumber == p.PageNumber
}

// DescribePages builds the PageDescriptor a page-number server returns for a
// page starting at startIndex. Page 1 always has the empty cursor; every other
// page's cursor names the last item of the page before it. Returns nil when
// total is zero.
func DescribePages(startIndex, total, pageSize, radius int) *entity.PageDescriptor {
	if total <= 0 || pageSize <= 0 {
		return nil
	}

	current := PageNumber(startIndex, pageSize)
	last := PageNumber(total-1, pageSize)
	if current > last {
		current = last
	}

	cursorFor := func(page int) entity.PageCursor {
		return entity.PageCursor{
			Cursor:     EncodeCursor(PageToIndex(page, pageSize)),
			PageNumber: page,
			IsCurrent:  page == current,
		}
	}

	first := entity.PageCursor{Cursor: "", PageNumber: 1, IsCurrent: current == 1}
	lastPage := cursorFor(last)
	desc := &entity.PageDescriptor{
		First:  &first,
		Last:   &lastPage,
		Around: []entity.PageCursor{},
	}
	if current > 1 {
		prev := cursorFor(current - 1)
		desc.Previous = &prev
	}
	for p := current - radius; p <= current+radius; p++ {
		if p >= 1 && p <= last {
			desc.Around = append(desc.Around, cursorFor(p))
		}
	}
	return desc
}
