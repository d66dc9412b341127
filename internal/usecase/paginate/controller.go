package paginate

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"relaypager/internal/cache"
	"relaypager/internal/common/pagination"
	"relaypager/internal/domain/entity"
)

// Status is the fetch state of the controller.
type Status int

const (
	Idle Status = iota
	Fetching
)

// String implements fmt.Stringer.
func (s Status) String() string {
	if s == Fetching {
		return "fetching"
	}
	return "idle"
}

// Request is one connection fetch issued by the controller.
type Request struct {
	Seq       uint64 // Monotonic; only the latest is applied
	ID        string // Log correlation
	Trigger   string // Name of the event that issued the request
	Params    pagination.QueryParams
	Reset     bool // Start a fresh collection instead of merging
	PageIndex int

	issuedAt time.Time
}

// Config configures a Controller.
type Config struct {
	Variant    Variant
	Pagination pagination.Config

	// Bounds are the sequential key bounds used by the Infinite variant.
	Bounds cache.KeyBounds

	// Orderable lists the fields ToggleSort accepts; DefaultSort seeds them.
	Orderable   []string
	DefaultSort []pagination.SortKey

	// Store is the cache the controller writes to. A store with the variant's
	// policy is created when nil.
	Store *cache.Store

	Logger *slog.Logger
}

// Controller is the pagination state machine of one view.
// It is safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	variant  Variant
	cfg      pagination.Config
	strategy pagination.Strategy
	store    *cache.Store
	ordering *pagination.Ordering
	logger   *slog.Logger

	state    pagination.State
	status   Status
	seq      uint64
	inflight *Request

	pages      *entity.PageDescriptor
	window     pagination.Window
	total      int
	totalPages int
	formErrors entity.FormErrors
	lastErr    error
	stale      int
}

// NewController creates an idle controller on page index 0 with the default page size.
func NewController(cfg Config) (*Controller, error) {
	if _, err := ParseVariant(string(cfg.Variant)); err != nil {
		return nil, err
	}
	if err := cfg.Pagination.Validate(); err != nil {
		return nil, fmt.Errorf("pagination config: %w", err)
	}
	if cfg.Bounds.Min == 0 {
		cfg.Bounds.Min = cfg.Pagination.MinKey
	}

	ordering, err := pagination.NewOrdering(cfg.Orderable, cfg.DefaultSort)
	if err != nil {
		return nil, err
	}

	store := cfg.Store
	if store == nil {
		store = cache.NewStore(cfg.Variant.Policy(cfg.Bounds))
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Controller{
		variant:  cfg.Variant,
		cfg:      cfg.Pagination,
		strategy: cfg.Variant.Strategy(),
		store:    store,
		ordering: ordering,
		logger:   logger.With("variant", string(cfg.Variant)),
	}
	c.state = c.initialState()
	return c, nil
}

func (c *Controller) initialState() pagination.State {
	return pagination.State{
		PageIndex: 0,
		PageSize:  c.cfg.DefaultPageSize,
		Sort:      c.ordering.Keys(),
	}
}

// Variant returns the controller's variant.
func (c *Controller) Variant() Variant {
	return c.variant
}

// Begin applies ev to the pagination state and returns the request to issue.
// It returns false when the event does not call for a fetch.
func (c *Controller) Begin(ev Event) (Request, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, reset, ok := c.transition(ev)
	if !ok {
		return Request{}, false
	}
	if !reset && c.inflight != nil && c.inflight.Reset {
		// The cache still holds the previous query until the reset lands.
		if c.variant.appends() {
			return Request{}, false
		}
		reset = true
	}

	after := ""
	if c.variant.appends() && !reset {
		after = c.store.View().PageInfo.EndCursor
	}
	params := c.strategy.CalculateQuery(next, after)
	if c.variant != VariantPages {
		params.PageSize = 0
	}

	if c.variant.appends() && !reset && c.inflight != nil && c.inflight.Params.After == params.After {
		return Request{}, false
	}

	c.state = next
	c.seq++
	req := Request{
		Seq:       c.seq,
		ID:        uuid.NewString(),
		Trigger:   ev.Name(),
		Params:    params,
		Reset:     reset,
		PageIndex: next.PageIndex,
		issuedAt:  time.Now(),
	}
	c.status = Fetching
	c.inflight = &req

	pagination.LogRequest(c.logger, req.ID, req.Seq, req.Params)
	return req, true
}

// transition computes the state ev leads to. reset reports whether the
// query identity changed.
func (c *Controller) transition(ev Event) (next pagination.State, reset bool, ok bool) {
	next = c.state.Clone()

	switch e := ev.(type) {
	case Mount:
		return c.initialState(), true, true

	case SubmitFilters:
		next.Filters = pagination.CleanFilters(e.Values)
		next.PageIndex = 0
		return next, true, true

	case SetPageSize:
		if e.Size < 1 || e.Size > c.cfg.MaxPageSize {
			c.lastErr = fmt.Errorf("page size %d: must be between 1 and %d", e.Size, c.cfg.MaxPageSize)
			return next, false, false
		}
		next.PageSize = e.Size
		next.PageIndex = 0
		return next, true, true

	case ToggleSort:
		if _, err := c.ordering.Toggle(e.Field); err != nil {
			c.lastErr = err
			return next, false, false
		}
		next.Sort = c.ordering.Keys()
		next.PageIndex = 0
		return next, true, true
	}

	if c.variant.paged() {
		return c.pageTransition(ev, next)
	}
	if c.variant.appends() {
		return c.forwardTransition(ev, next)
	}
	return next, false, false
}

func (c *Controller) pageTransition(ev Event, next pagination.State) (pagination.State, bool, bool) {
	switch e := ev.(type) {
	case FirstPage:
		next.PageIndex = 0
	case PreviousPage:
		if next.PageIndex == 0 {
			return next, false, false
		}
		next.PageIndex--
	case NextPage:
		if !c.hasNextPage() {
			return next, false, false
		}
		next.PageIndex++
	case LastPage:
		last := c.lastPageNumber()
		if last == 0 {
			return next, false, false
		}
		next.PageIndex = last - 1
	case GoToPage:
		if e.Index < 0 {
			return next, false, false
		}
		if last := c.lastPageNumber(); last > 0 && e.Index >= last {
			return next, false, false
		}
		next.PageIndex = e.Index
	case SelectPage:
		index, err := c.pageIndexOf(e.Page)
		if err != nil {
			c.cursorFailure(err)
			return next, false, false
		}
		next.PageIndex = index
	default:
		return next, false, false
	}
	return next, false, true
}

func (c *Controller) forwardTransition(ev Event, next pagination.State) (pagination.State, bool, bool) {
	switch e := ev.(type) {
	case LoadMore:
	case Scroll:
		if !NearBottom(e.Position, c.cfg.ScrollThreshold) {
			return next, false, false
		}
	default:
		return next, false, false
	}

	visible := c.store.View()
	if c.store.Len() > 0 && !visible.PageInfo.HasNextPage {
		return next, false, false
	}
	return next, false, true
}

// pageIndexOf resolves a page button to a page index. The button's cursor
// must decode; its page number wins over the offset when present.
func (c *Controller) pageIndexOf(p entity.PageCursor) (int, error) {
	offset, err := pagination.DecodeCursor(p.Cursor)
	if err != nil {
		return 0, err
	}
	if p.PageNumber > 0 {
		return p.PageNumber - 1, nil
	}
	if offset == 0 {
		return 0, nil
	}
	return (offset + 1) / c.state.PageSize, nil
}

func (c *Controller) hasNextPage() bool {
	if c.window.Current != nil {
		return c.window.Next != nil
	}
	if c.total > 0 {
		return (c.state.PageIndex+1)*c.state.PageSize < c.total
	}
	return c.store.View().PageInfo.HasNextPage
}

func (c *Controller) lastPageNumber() int {
	if n := c.pages.LastPageNumber(); n > 0 {
		return n
	}
	return c.totalPages
}

// cursorFailure records an undecodable cursor. In strict mode it panics.
func (c *Controller) cursorFailure(err error) {
	pagination.RecordCursorError(err)
	if c.cfg.StrictCursors {
		panic(fmt.Sprintf("paginate: %v", err))
	}
	c.lastErr = err
	c.logger.Warn("cursor rejected", slog.Any("error", err))
}

// Complete applies the outcome of req and returns the new view.
// Responses to any request but the latest are discarded without touching the
// cache. A failed fetch keeps the cache and records the error, and a response
// with form errors only replaces the displayed form errors.
func (c *Controller) Complete(req Request, conn *entity.Connection, fetchErr error) View {
	c.mu.Lock()
	defer c.mu.Unlock()

	elapsed := time.Since(req.issuedAt)
	page := req.PageIndex + 1

	if req.Seq != c.seq {
		c.stale++
		pagination.LogStale(c.logger, req.ID, req.Seq, c.seq)
		pagination.RecordFetch(string(c.variant), "stale", page, elapsed.Seconds())
		return c.viewLocked()
	}

	c.status = Idle
	c.inflight = nil

	if fetchErr != nil {
		if errors.Is(fetchErr, pagination.ErrInvalidCursor) {
			c.cursorFailure(fetchErr)
		}
		c.lastErr = fetchErr
		pagination.LogError(c.logger, req.ID, req.Seq, fetchErr, errorType(fetchErr))
		pagination.RecordFetch(string(c.variant), "error", page, elapsed.Seconds())
		return c.viewLocked()
	}

	c.lastErr = nil
	if conn == nil {
		pagination.RecordFetch(string(c.variant), "success", page, elapsed.Seconds())
		return c.viewLocked()
	}

	if len(conn.FormErrors) > 0 {
		c.formErrors = conn.FormErrors
		pagination.RecordFetch(string(c.variant), "form_error", page, elapsed.Seconds())
		c.logger.Info("query rejected by form validation",
			slog.String("request_id", req.ID),
			slog.Int("fields", len(conn.FormErrors)))
		return c.viewLocked()
	}

	if req.Reset {
		c.store.Reset()
	}
	visible := c.store.Apply(conn.AsCollection())

	c.formErrors = conn.FormErrors
	c.total = conn.Total
	c.totalPages = conn.TotalPages
	if c.totalPages == 0 && c.total > 0 {
		c.totalPages = pagination.CalculateTotalPages(int64(c.total), c.state.PageSize)
	}
	c.updateWindow(conn)

	pagination.UpdateCachedEdges(string(c.variant), c.store.Len())
	pagination.RecordFetch(string(c.variant), "success", page, elapsed.Seconds())
	pagination.LogResponse(c.logger, req.ID, req.Seq, len(conn.Edges), visible.Len(), elapsed)
	return c.viewLocked()
}

func (c *Controller) updateWindow(conn *entity.Connection) {
	c.pages = nil
	c.window = pagination.Window{}
	if !c.variant.paged() {
		return
	}

	switch {
	case conn.Pages != nil:
		c.pages = conn.Pages
	case conn.Total > 0:
		start := c.state.PageIndex * c.state.PageSize
		c.pages = pagination.DescribePages(start, conn.Total, c.state.PageSize, c.cfg.AroundRadius)
	}
	if c.pages == nil {
		return
	}

	c.window = pagination.BuildWindow(*c.pages)
	if n := len(c.window.Violations); n > 0 {
		pagination.RecordWindowViolations(n)
		for _, v := range c.window.Violations {
			c.logger.Warn("inconsistent page descriptor", slog.String("violation", v))
		}
	}
	if c.window.Current != nil {
		c.state.PageIndex = c.window.Current.PageNumber - 1
	}
}

// Remove drops a node from the cache, as after a delete mutation.
func (c *Controller) Remove(id string) (View, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := c.store.Remove(id)
	if removed {
		pagination.UpdateCachedEdges(string(c.variant), c.store.Len())
	}
	return c.viewLocked(), removed
}

func errorType(err error) string {
	var ve *entity.ValidationError
	switch {
	case errors.Is(err, pagination.ErrInvalidCursor):
		return "cursor"
	case errors.As(err, &ve):
		return "validation"
	default:
		return "fetch"
	}
}
