package urlstate

import (
	"net/url"
	"sync"
)

// PopStateFunc is called after the location moved through its history.
type PopStateFunc func()

type Option func(*Location)

// WithReplace makes committed updates overwrite the current history entry
// instead of pushing a new one.
func WithReplace() Option {
	return func(l *Location) {
		l.replace = true
	}
}

// Location is the single shared URL of a process together with its
// back/forward history. Every binding and view reads and writes through it.
type Location struct {
	mu      sync.Mutex
	replace bool
	entries []*url.URL
	index   int

	batchDepth   int
	batchPushed  bool
	replaceDepth int

	nextListener int
	listeners    map[int]PopStateFunc
	order        []int
}

func NewLocation(raw string, opts ...Option) (*Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	l := &Location{
		entries:   []*url.URL{u},
		listeners: make(map[int]PopStateFunc),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

func (l *Location) current() *url.URL {
	return l.entries[l.index]
}

func (l *Location) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current().String()
}

func (l *Location) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current().Path
}

// Query returns a copy of the current query values.
func (l *Location) Query() url.Values {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current().Query()
}

// Update applies fn to the latest query values and commits the result.
// Nothing is recorded when the URL is left unchanged.
func (l *Location) Update(fn func(query url.Values)) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cur := l.current()
	query := cur.Query()
	before := query.Encode()
	fn(query)

	after := query.Encode()
	if after == before {
		return
	}
	next := *cur
	next.RawQuery = after
	l.commit(&next)
}

func (l *Location) commit(u *url.URL) {
	if l.replace || l.replaceDepth > 0 || (l.batchDepth > 0 && l.batchPushed) {
		l.entries[l.index] = u
		return
	}
	l.push(u)
	if l.batchDepth > 0 {
		l.batchPushed = true
	}
}

func (l *Location) push(u *url.URL) {
	l.entries = append(l.entries[:l.index+1], u)
	l.index = len(l.entries) - 1
}

// Batch runs fn and records all updates made inside it as a single
// history entry.
func (l *Location) Batch(fn func()) {
	l.mu.Lock()
	l.batchDepth++
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.batchDepth--
		if l.batchDepth == 0 {
			l.batchPushed = false
		}
		l.mu.Unlock()
	}()
	fn()
}

// Replace runs fn and records its updates by overwriting the current entry,
// leaving the rest of the history as it is.
func (l *Location) Replace(fn func()) {
	l.mu.Lock()
	l.replaceDepth++
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.replaceDepth--
		l.mu.Unlock()
	}()
	fn()
}

// Navigate pushes raw as a new entry. Like following a link it does not
// notify pop listeners.
func (l *Location) Navigate(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if u.String() == l.current().String() {
		return nil
	}
	l.push(u)
	return nil
}

func (l *Location) Back() bool {
	return l.Go(-1)
}

func (l *Location) Forward() bool {
	return l.Go(1)
}

// Go moves delta entries through the history and notifies pop listeners.
// It reports false, without notifying, when the target is out of range.
func (l *Location) Go(delta int) bool {
	l.mu.Lock()
	target := l.index + delta
	if delta == 0 || target < 0 || target >= len(l.entries) {
		l.mu.Unlock()
		return false
	}
	l.index = target
	listeners := make([]PopStateFunc, 0, len(l.order))
	for _, id := range l.order {
		listeners = append(listeners, l.listeners[id])
	}
	l.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
	return true
}

func (l *Location) CanGoBack() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.index > 0
}

func (l *Location) CanGoForward() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.index < len(l.entries)-1
}

// History returns every entry and the index of the current one.
func (l *Location) History() ([]string, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ret := make([]string, len(l.entries))
	for i, u := range l.entries {
		ret[i] = u.String()
	}
	return ret, l.index
}

// OnPopState registers fn and returns the function that removes it.
// Listeners run in registration order.
func (l *Location) OnPopState(fn PopStateFunc) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextListener
	l.nextListener++
	l.listeners[id] = fn
	l.order = append(l.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			delete(l.listeners, id)
			for i, o := range l.order {
				if o == id {
					l.order = append(l.order[:i], l.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (l *Location) Listeners() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.listeners)
}
