package pagination

// Paginator owns the page position of a single view.
type Paginator[T any] struct {
	initialPage  int
	currentPage  int
	pageSize     int
	mode         Mode
	serverTotal  int
	onPageChange PageChangeFunc

	data    []T
	seenLen int
	seen    bool
}

func New[T any](opts Options) *Paginator[T] {
	if opts.InitialPage < 1 {
		opts.InitialPage = 1
	}
	if opts.PageSize == 0 {
		opts.PageSize = DefaultPageSize
	}
	return &Paginator[T]{
		initialPage:  opts.InitialPage,
		currentPage:  opts.InitialPage,
		pageSize:     opts.PageSize,
		mode:         opts.Mode,
		serverTotal:  opts.TotalItems,
		onPageChange: opts.OnPageChange,
	}
}

// SetData hands the paginator its input. In client mode a change in length
// means a fresh load or filter, so the position goes back to page 1; the
// first data set seen keeps the initial page.
func (p *Paginator[T]) SetData(data []T) {
	if p.mode == Client && p.seen && len(data) != p.seenLen {
		p.currentPage = 1
	}
	p.data = data
	p.seenLen = len(data)
	p.seen = true
	p.clamp()
}

// SetTotalItems updates the external count used in server mode.
func (p *Paginator[T]) SetTotalItems(total int) {
	p.serverTotal = max(total, 0)
	p.clamp()
}

func (p *Paginator[T]) SetPageSize(size int) {
	p.pageSize = size
	p.clamp()
}

func (p *Paginator[T]) SetOnPageChange(fn PageChangeFunc) {
	p.onPageChange = fn
}

// clamp pulls the page down to the last page in one step.
func (p *Paginator[T]) clamp() {
	totalPages := p.TotalPages()
	if totalPages > 0 && p.currentPage > totalPages {
		p.currentPage = totalPages
	}
	if p.currentPage < 1 {
		p.currentPage = 1
	}
}

func (p *Paginator[T]) Mode() Mode {
	return p.mode
}

func (p *Paginator[T]) PageSize() int {
	return p.pageSize
}

func (p *Paginator[T]) CurrentPage() int {
	return p.currentPage
}

func (p *Paginator[T]) TotalItems() int {
	if p.mode == Server {
		return p.serverTotal
	}
	return len(p.data)
}

func (p *Paginator[T]) TotalPages() int {
	return TotalPages(p.TotalItems(), p.pageSize)
}

// StartIndex is the 1-indexed position of the first item on the page.
func (p *Paginator[T]) StartIndex() int {
	if p.TotalPages() == 0 {
		return 0
	}
	return (p.currentPage-1)*p.pageSize + 1
}

// EndIndex is the 1-indexed position of the last item on the page.
func (p *Paginator[T]) EndIndex() int {
	total := p.TotalItems()
	if p.TotalPages() == 0 {
		return 0
	}
	return min(p.currentPage*p.pageSize, total)
}

func (p *Paginator[T]) HasPrevious() bool {
	return p.currentPage > 1
}

func (p *Paginator[T]) HasNext() bool {
	return p.currentPage < p.TotalPages()
}

// Items is the visible page: a slice of the data in client mode, the data
// as supplied in server mode.
func (p *Paginator[T]) Items() []T {
	if p.mode == Server {
		return p.data
	}
	return Slice(p.data, p.currentPage, p.pageSize)
}

func (p *Paginator[T]) State() State {
	return State{
		CurrentPage: p.currentPage,
		PageSize:    p.pageSize,
		TotalItems:  p.TotalItems(),
		TotalPages:  p.TotalPages(),
		StartIndex:  p.StartIndex(),
		EndIndex:    p.EndIndex(),
		HasPrevious: p.HasPrevious(),
		HasNext:     p.HasNext(),
		Mode:        p.mode,
	}
}

// GoToPage clamps page into range and commits it. In server mode the page
// change callback runs first and a failure keeps the current page.
func (p *Paginator[T]) GoToPage(page int) error {
	valid := ClampPage(page, p.TotalPages())
	if p.mode == Server && p.onPageChange != nil {
		if err := p.onPageChange(valid); err != nil {
			return err
		}
	}
	p.currentPage = valid
	return nil
}

func (p *Paginator[T]) NextPage() error {
	if !p.HasNext() {
		return nil
	}
	return p.GoToPage(p.currentPage + 1)
}

func (p *Paginator[T]) PreviousPage() error {
	if !p.HasPrevious() {
		return nil
	}
	return p.GoToPage(p.currentPage - 1)
}

func (p *Paginator[T]) FirstPage() error {
	return p.GoToPage(1)
}

func (p *Paginator[T]) LastPage() error {
	return p.GoToPage(p.TotalPages())
}

// Reset returns to the initial page, clamped to the current data.
func (p *Paginator[T]) Reset() {
	p.currentPage = p.initialPage
	p.clamp()
}
