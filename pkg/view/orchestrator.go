package view

import (
	"context"
	"sync"

	"github.com/matst80/slask-view/pkg/filter"
	"github.com/matst80/slask-view/pkg/logger"
	"github.com/matst80/slask-view/pkg/pagination"
	"github.com/matst80/slask-view/pkg/sorting"
	"github.com/matst80/slask-view/pkg/types"
	"github.com/matst80/slask-view/pkg/urlstate"
)

const DefaultCategoryField = "category"

type Options struct {
	PageSize      int
	CategoryField string
	Logger        logger.Logger
	Tracker       types.Tracking
	SessionId     string
	// Compare replaces the default field comparator.
	Compare sorting.CompareFunc
}

type ViewModel struct {
	Items      []types.Record   `json:"items"`
	Sort       types.SortState  `json:"sort"`
	Pagination pagination.State `json:"pagination"`
	Category   string           `json:"category"`
	Categories []string         `json:"categories"`
	Loading    bool             `json:"loading"`
	URL        string           `json:"url"`
}

// Orchestrator runs category filter, sort and pagination over one record
// set and mirrors the resulting state into a Location.
type Orchestrator struct {
	loc  *urlstate.Location
	opts Options
	log  logger.Logger

	category *urlstate.Binding[string]
	sortKey  *urlstate.Binding[string]
	sortDir  *urlstate.Binding[string]
	page     *urlstate.Binding[int]
	release  func()

	mu         sync.Mutex
	filter     *filter.Filter
	sorter     *sorting.Sorter
	pager      *pagination.Paginator[types.Record]
	records    []types.Record
	categories []string
	selected   string
	loading    bool
	seeded     bool
	closed     bool
	generation int
}

func New(loc *urlstate.Location, opts Options) *Orchestrator {
	if opts.PageSize == 0 {
		opts.PageSize = pagination.DefaultPageSize
	}
	if opts.CategoryField == "" {
		opts.CategoryField = DefaultCategoryField
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	o := &Orchestrator{
		loc:      loc,
		opts:     opts,
		log:      opts.Logger,
		category: urlstate.Bind(loc, types.CategoryKey, types.AllCategories),
		sortKey:  urlstate.Bind(loc, types.SortKey, ""),
		sortDir:  urlstate.Bind(loc, types.DirKey, ""),
		page:     urlstate.Bind(loc, types.PageKey, 1),
		filter:   filter.NewFilter(nil),
		sorter:   sorting.NewSorter(types.Unsorted(), sorterOptions(opts)...),
		selected: types.AllCategories,
	}
	o.pager = pagination.New[types.Record](pagination.Options{
		PageSize: opts.PageSize,
	})
	// registered after the bindings so they see the new location first
	o.release = loc.OnPopState(o.popped)
	return o
}

func sorterOptions(opts Options) []sorting.SorterOption {
	if opts.Compare == nil {
		return nil
	}
	return []sorting.SorterOption{sorting.WithComparator(opts.Compare)}
}

// Load fetches the record set from src. A failed fetch is logged and
// leaves the view empty. Results that arrive after Close, or after a newer
// Load started, are dropped.
func (o *Orchestrator) Load(ctx context.Context, src types.RecordSource) {
	var generation int
	if !o.locked(func() {
		o.generation++
		generation = o.generation
		o.loading = true
	}) {
		return
	}

	records, err := src.FetchAll(ctx)
	if err != nil {
		o.log.Error("failed to load records", "err", err)
		records = []types.Record{}
	}

	current := false
	if !o.locked(func() {
		if generation != o.generation {
			return
		}
		current = true
		o.loading = false
		o.setRecords(records)
	}) || !current {
		return
	}
	o.afterChange(o.loc.Replace)
}

// SetRecords replaces the record set. Adjustments it makes to the location
// overwrite the current entry.
func (o *Orchestrator) SetRecords(records []types.Record) {
	if o.locked(func() {
		o.generation++
		o.loading = false
		o.setRecords(records)
	}) {
		o.afterChange(o.loc.Replace)
	}
}

// locked runs fn holding the lock and reports false, without running it,
// once the view is closed. The lock is released even when fn panics.
func (o *Orchestrator) locked(fn func()) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return false
	}
	fn()
	return true
}

func (o *Orchestrator) setRecords(records []types.Record) {
	o.records = records
	o.categories = types.DistinctValues(records, o.opts.CategoryField)
	if !o.seeded {
		o.seeded = true
		o.seed()
		return
	}
	o.recompute()
}

// seed reads category, sort and page from the location.
func (o *Orchestrator) seed() {
	o.selected = o.category.Value()
	o.filter.ByField(o.opts.CategoryField, o.selected)

	key, dir := o.sortKey.Value(), o.sortDir.Value()
	if key != "" && dir != "" {
		o.sorter.SetState(types.SortState{Key: key, Direction: types.ParseSortDirection(dir)})
	} else {
		o.sorter.SetState(types.Unsorted())
	}
	o.recompute()
	o.goToPage(o.page.Value())
}

func (o *Orchestrator) recompute() {
	filtered := o.filter.Apply(o.records)
	o.pager.SetData(o.sorter.Apply(filtered))
}

func (o *Orchestrator) goToPage(page int) {
	if err := o.pager.GoToPage(page); err != nil {
		o.log.Warn("page change rejected", "page", page, "err", err)
	}
}

// popped re-seeds from the entry history moved to. Corrections, like a
// clamped page, overwrite that entry so the history around it survives.
func (o *Orchestrator) popped() {
	seeded := false
	o.locked(func() {
		if o.seeded {
			o.seed()
			seeded = true
		}
	})
	if seeded {
		o.afterChange(o.loc.Replace)
	}
}

// Sync re-reads the view from the location after it was navigated
// directly.
func (o *Orchestrator) Sync() {
	o.popped()
}

// afterChange mirrors engine state into the location through commit, either
// Location.Batch or Location.Replace, and reports the view.
func (o *Orchestrator) afterChange(commit func(func())) {
	var selected string
	var sort types.SortState
	var state pagination.State
	if !o.locked(func() {
		selected = o.selected
		sort = o.sorter.State()
		state = o.pager.State()
	}) {
		return
	}

	commit(func() {
		o.category.SetValue(selected)
		if sort.Active() {
			o.sortKey.SetValue(sort.Key)
			o.sortDir.SetValue(sort.Direction.String())
		} else {
			o.sortKey.ClearValue()
			o.sortDir.ClearValue()
		}
		o.page.SetValue(state.CurrentPage)
	})

	if o.opts.Tracker != nil {
		event := types.ViewEvent{
			Category:   selected,
			Page:       state.CurrentPage,
			TotalItems: state.TotalItems,
		}
		if sort.Active() {
			event.Sort = sort.Key
			event.Dir = sort.Direction.String()
		}
		o.opts.Tracker.TrackView(o.opts.SessionId, event)
	}
}

// act runs fn on the engines and commits the outcome as one history entry.
func (o *Orchestrator) act(fn func()) {
	if o.locked(fn) {
		o.afterChange(o.loc.Batch)
	}
}

func (o *Orchestrator) SetCategory(category string) {
	o.act(func() {
		if category == "" {
			category = types.AllCategories
		}
		o.selected = category
		o.filter.ByField(o.opts.CategoryField, category)
		o.recompute()
		o.goToPage(1)
	})
}

// HandleSort cycles the direction of key, or starts sorting by it.
func (o *Orchestrator) HandleSort(key string) {
	o.act(func() {
		o.sorter.HandleSort(key)
		o.recompute()
		o.goToPage(1)
	})
}

// SetSortField sorts by key keeping the current direction. An empty key or
// "none" clears sorting.
func (o *Orchestrator) SetSortField(key string) {
	o.act(func() {
		o.sorter.SetField(key)
		o.recompute()
		o.goToPage(1)
	})
}

func (o *Orchestrator) SetSortDirection(direction types.SortDirection) {
	o.act(func() {
		o.sorter.SetDirection(direction)
		o.recompute()
		o.goToPage(1)
	})
}

func (o *Orchestrator) ClearSort() {
	o.act(func() {
		o.sorter.SetState(types.Unsorted())
		o.recompute()
		o.goToPage(1)
	})
}

func (o *Orchestrator) GoToPage(page int) {
	o.act(func() { o.goToPage(page) })
}

func (o *Orchestrator) NextPage() {
	o.act(func() { o.goToPage(o.pager.CurrentPage() + 1) })
}

func (o *Orchestrator) PreviousPage() {
	o.act(func() { o.goToPage(o.pager.CurrentPage() - 1) })
}

func (o *Orchestrator) FirstPage() {
	o.act(func() { o.goToPage(1) })
}

func (o *Orchestrator) LastPage() {
	o.act(func() { o.goToPage(o.pager.TotalPages()) })
}

// SetPageSize changes the rows per page, keeping the page when it still
// exists. The page size is not part of the URL.
func (o *Orchestrator) SetPageSize(size int) {
	o.act(func() {
		o.pager.SetPageSize(size)
	})
}

func (o *Orchestrator) View() ViewModel {
	o.mu.Lock()
	defer o.mu.Unlock()
	items := o.pager.Items()
	if o.loading || items == nil {
		items = []types.Record{}
	}
	categories := o.categories
	if categories == nil {
		categories = []string{}
	}
	return ViewModel{
		Items:      items,
		Sort:       o.sorter.State(),
		Pagination: o.pager.State(),
		Category:   o.selected,
		Categories: categories,
		Loading:    o.loading,
		URL:        o.loc.String(),
	}
}

func (o *Orchestrator) Loading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.loading
}

// Close releases every location listener. Later loads and actions are
// ignored.
func (o *Orchestrator) Close() {
	if !o.locked(func() { o.closed = true }) {
		return
	}
	o.release()
	o.category.Close()
	o.sortKey.Close()
	o.sortDir.Close()
	o.page.Close()
}
