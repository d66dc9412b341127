package paginate

import (
	"relaypager/internal/common/pagination"
	"relaypager/internal/domain/entity"
)

// View is an immutable snapshot of what a paginated view renders.
type View struct {
	Variant    Variant
	State      pagination.State
	Status     Status
	Seq        uint64
	Collection *entity.Collection
	Window     pagination.Window
	Metadata   pagination.Metadata
	FormErrors entity.FormErrors
	Err        error

	// Stale counts responses discarded because a newer request was issued.
	Stale int
}

// Summary renders the "showing N of M" line.
func (v View) Summary() string {
	return v.Metadata.Summary()
}

// HasNextPage reports whether a forward fetch could return more items.
func (v View) HasNextPage() bool {
	if v.Window.Current != nil {
		return v.Window.Next != nil
	}
	return v.Collection.PageInfo.HasNextPage
}

// View returns the current snapshot.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller) viewLocked() View {
	visible := c.store.View()
	return View{
		Variant:    c.variant,
		State:      c.state.Clone(),
		Status:     c.status,
		Seq:        c.seq,
		Collection: visible,
		Window:     c.window,
		Metadata:   c.strategy.BuildMetadata(c.state, c.total, visible.Len()),
		FormErrors: c.formErrors,
		Err:        c.lastErr,
		Stale:      c.stale,
	}
}
