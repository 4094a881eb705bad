// internal/core/controller/collection.go

// Package controller implements the two generic building blocks behind
// every entity screen: a paginated collection controller and a
// derived-field form controller. Screens bind them to entity-specific
// gateway functions and form tables; the controllers own the fetch,
// debounce, derivation and submit lifecycles.
package controller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/stockline/stockline-go/internal/core/domain"
	"github.com/stockline/stockline-go/internal/core/ports"
)

// Defaults shared by every collection unless overridden.
const (
	DefaultPageSize       = 20
	DefaultSearchDebounce = 300 * time.Millisecond
)

// CollectionConfig tunes a Collection. Zero values fall back to defaults.
type CollectionConfig struct {
	Entity   domain.Entity
	PageSize int
	Debounce time.Duration
	Logger   *slog.Logger
	// OnChange is invoked after every observable state change, outside the
	// controller's lock. UI layers use it to re-render from Snapshot.
	OnChange func()
}

// Snapshot is the externally visible state of a Collection at one instant.
type Snapshot[T any] struct {
	Items      []T
	TotalCount int64
	TotalPages int
	Page       int
	PageSize   int
	Search     string
	Status     domain.StatusFilter
	Filter     string
	Loading    bool
	Err        string
}

// Collection fetches and exposes one page of a filterable, searchable,
// paginated collection. Search input is debounced; fetch results are
// applied in dispatch order by sequence number, so a slow superseded
// request can never overwrite a newer page. A failed fetch keeps the
// previously displayed page and surfaces an inline message.
type Collection[T any] struct {
	fetch    ports.FetchFunc[T]
	entity   domain.Entity
	debounce time.Duration
	logger   *slog.Logger
	onChange func()

	mu            sync.Mutex
	params        ports.ListParams
	debounceTimer *time.Timer
	seq           uint64
	applied       uint64
	result        *ports.ListResult[T]
	errMsg        string
	loading       bool
	ctx           context.Context
	cancel        context.CancelFunc
	closed        bool
}

// NewCollection binds a collection controller to an entity list fetcher.
// Call Start to issue the eager initial fetch.
func NewCollection[T any](fetch ports.FetchFunc[T], cfg CollectionConfig) *Collection[T] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultSearchDebounce
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Collection[T]{
		fetch:    fetch,
		entity:   cfg.Entity,
		debounce: cfg.Debounce,
		logger:   cfg.Logger.With(slog.String("controller", "collection"), slog.String("entity", string(cfg.Entity))),
		onChange: cfg.OnChange,
		params: ports.ListParams{
			Page:     1,
			PageSize: cfg.PageSize,
			Status:   domain.StatusAll,
		},
		loading: true,
	}
}

// Start issues the eager initial fetch. The controller stays live until
// Close; ctx bounds every fetch it dispatches.
func (c *Collection[T]) Start(ctx context.Context) {
	c.mu.Lock()
	if c.closed || c.ctx != nil {
		c.mu.Unlock()
		return
	}
	c.ctx, c.cancel = context.WithCancel(ctx)
	// Parameters staged before Start may have armed the search debounce;
	// the eager fetch already carries the staged term.
	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
		c.debounceTimer = nil
	}
	c.dispatchLocked()
	c.mu.Unlock()
	c.notify()
}

// SetPage moves to the given page and refetches.
func (c *Collection[T]) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	if c.closed || page == c.params.Page {
		c.mu.Unlock()
		return
	}
	c.params.Page = page
	c.dispatchLocked()
	c.mu.Unlock()
	c.notify()
}

// SetPageSize changes the page size, resets to page 1 and refetches. A
// page number pinned to a filtered-out range must never survive a
// parameter change.
func (c *Collection[T]) SetPageSize(size int) {
	if size < 1 {
		size = 1
	}
	c.mu.Lock()
	if c.closed || size == c.params.PageSize {
		c.mu.Unlock()
		return
	}
	c.params.PageSize = size
	c.params.Page = 1
	c.dispatchLocked()
	c.mu.Unlock()
	c.notify()
}

// SetStatus changes the status filter, resets to page 1 and refetches.
func (c *Collection[T]) SetStatus(status domain.StatusFilter) {
	c.mu.Lock()
	if c.closed || status == c.params.Status {
		c.mu.Unlock()
		return
	}
	c.params.Status = status
	c.params.Page = 1
	c.dispatchLocked()
	c.mu.Unlock()
	c.notify()
}

// SetFilter changes the entity-specific extra filter, resets to page 1
// and refetches.
func (c *Collection[T]) SetFilter(filter string) {
	c.mu.Lock()
	if c.closed || filter == c.params.Filter {
		c.mu.Unlock()
		return
	}
	c.params.Filter = filter
	c.params.Page = 1
	c.dispatchLocked()
	c.mu.Unlock()
	c.notify()
}

// SetSearch records the raw search term immediately (so the UI echoes
// keystrokes) and resets to page 1, but only dispatches a fetch once input
// has been quiet for the debounce interval. A burst of keystrokes collapses
// into a single request carrying the final term.
func (c *Collection[T]) SetSearch(term string) {
	c.mu.Lock()
	if c.closed || term == c.params.Search {
		c.mu.Unlock()
		return
	}
	c.params.Search = term
	c.params.Page = 1
	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
	}
	c.debounceTimer = time.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return
		}
		c.dispatchLocked()
		c.mu.Unlock()
		c.notify()
	})
	c.mu.Unlock()
	c.notify()
}

// Refresh refetches the current page with the current parameters. Bound
// as the post-submit refetch of the companion form.
func (c *Collection[T]) Refresh() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.dispatchLocked()
	c.mu.Unlock()
	c.notify()
}

// Snapshot returns the current observable state.
func (c *Collection[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot[T]{
		Page:     c.params.Page,
		PageSize: c.params.PageSize,
		Search:   c.params.Search,
		Status:   c.params.Status,
		Filter:   c.params.Filter,
		Loading:  c.loading,
		Err:      c.errMsg,
	}
	if c.result != nil {
		snap.Items = c.result.Items
		snap.TotalCount = c.result.TotalCount
		snap.TotalPages = c.result.TotalPages
	}
	return snap
}

// Close tears the controller down: pending debounce timers are stopped
// and in-flight fetches can no longer mutate state.
func (c *Collection[T]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()
}

// dispatchLocked issues a fetch for the current parameters. Caller holds mu.
func (c *Collection[T]) dispatchLocked() {
	if c.ctx == nil {
		// Not started yet; Start will issue the eager fetch.
		return
	}
	c.seq++
	seq := c.seq
	c.loading = true
	c.errMsg = ""
	params := c.params
	ctx := c.ctx
	go func() {
		res, err := c.fetch(ctx, params)
		c.apply(seq, params, res, err)
	}()
}

// apply installs a fetch result, last-request-wins. Results for sequence
// numbers at or below the newest applied one are discarded on arrival.
func (c *Collection[T]) apply(seq uint64, params ports.ListParams, res *ports.ListResult[T], err error) {
	c.mu.Lock()
	if c.closed || seq <= c.applied {
		c.mu.Unlock()
		return
	}
	c.applied = seq
	if seq == c.seq {
		c.loading = false
	}
	if err != nil {
		// Stale-but-valid: keep the previous page on screen.
		c.errMsg = ports.LoadFailedMessage(c.entity)
		c.logger.ErrorContext(c.ctx, "failed to fetch page",
			slog.Int("page", params.Page),
			slog.String("search", params.Search),
			slog.String("error", err.Error()))
		c.mu.Unlock()
		c.notify()
		return
	}
	// A success supersedes any failure message an older in-flight fetch
	// may have left behind.
	c.errMsg = ""
	c.result = res
	c.logger.DebugContext(c.ctx, "page applied",
		slog.Int("page", res.Page),
		slog.Int("items", len(res.Items)),
		slog.Int64("total_count", res.TotalCount))
	c.mu.Unlock()
	c.notify()
}

func (c *Collection[T]) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}
