package urlstate

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocation(t *testing.T, raw string, opts ...Option) *Location {
	t.Helper()
	loc, err := NewLocation(raw, opts...)
	require.NoError(t, err)
	return loc
}

func TestLocationUpdatePushesOnChange(t *testing.T) {
	loc := newLocation(t, "/products")

	loc.Update(func(q url.Values) { q.Set("page", "2") })
	loc.Update(func(q url.Values) { q.Set("page", "2") })

	history, index := loc.History()
	assert.Equal(t, []string{"/products", "/products?page=2"}, history)
	assert.Equal(t, 1, index)
	assert.Equal(t, "/products", loc.Path())
}

func TestLocationUpdateKeepsOtherKeys(t *testing.T) {
	loc := newLocation(t, "/products?utm=mail&page=3")

	loc.Update(func(q url.Values) { q.Del("page") })

	assert.Equal(t, "/products?utm=mail", loc.String())
}

func TestLocationQueryIsACopy(t *testing.T) {
	loc := newLocation(t, "/?a=1")

	q := loc.Query()
	q.Set("a", "2")

	assert.Equal(t, "1", loc.Query().Get("a"))
}

func TestLocationReplace(t *testing.T) {
	loc := newLocation(t, "/", WithReplace())

	loc.Update(func(q url.Values) { q.Set("page", "2") })
	loc.Update(func(q url.Values) { q.Set("page", "3") })

	history, _ := loc.History()
	assert.Equal(t, []string{"/?page=3"}, history)
	assert.False(t, loc.CanGoBack())
}

func TestLocationBatchIsOneEntry(t *testing.T) {
	loc := newLocation(t, "/")

	loc.Batch(func() {
		loc.Update(func(q url.Values) { q.Set("sort", "price") })
		loc.Update(func(q url.Values) { q.Set("dir", "asc") })
		loc.Batch(func() {
			loc.Update(func(q url.Values) { q.Set("page", "2") })
		})
	})
	loc.Update(func(q url.Values) { q.Set("page", "3") })

	history, index := loc.History()
	assert.Equal(t, []string{"/", "/?dir=asc&page=2&sort=price", "/?dir=asc&page=3&sort=price"}, history)
	assert.Equal(t, 2, index)
}

func TestLocationHistoryNavigation(t *testing.T) {
	loc := newLocation(t, "/")
	loc.Update(func(q url.Values) { q.Set("page", "2") })
	loc.Update(func(q url.Values) { q.Set("page", "3") })

	var seen []string
	loc.OnPopState(func() { seen = append(seen, loc.Query().Get("page")) })

	assert.True(t, loc.Back())
	assert.True(t, loc.Back())
	assert.False(t, loc.Back())
	assert.True(t, loc.Forward())
	assert.False(t, loc.Go(5))

	assert.Equal(t, []string{"2", "", "2"}, seen)

	loc.Update(func(q url.Values) { q.Set("page", "9") })
	assert.False(t, loc.CanGoForward(), "a new entry drops the forward history")
	history, _ := loc.History()
	assert.Equal(t, []string{"/", "/?page=2", "/?page=9"}, history)
}

func TestLocationNavigateDoesNotNotify(t *testing.T) {
	loc := newLocation(t, "/")
	called := 0
	loc.OnPopState(func() { called++ })

	require.NoError(t, loc.Navigate("/?category=B"))

	assert.Equal(t, 0, called)
	assert.Equal(t, "B", loc.Query().Get("category"))
	assert.True(t, loc.CanGoBack())

	assert.Error(t, loc.Navigate("%zz"))
}

func TestLocationListenersOrderAndRelease(t *testing.T) {
	loc := newLocation(t, "/")
	loc.Update(func(q url.Values) { q.Set("page", "2") })

	var order []int
	first := loc.OnPopState(func() { order = append(order, 1) })
	second := loc.OnPopState(func() { order = append(order, 2) })
	third := loc.OnPopState(func() { order = append(order, 3) })
	assert.Equal(t, 3, loc.Listeners())

	loc.Back()
	second()
	second()
	loc.Forward()

	assert.Equal(t, []int{1, 2, 3, 1, 3}, order)
	first()
	third()
	assert.Equal(t, 0, loc.Listeners())
}

func TestLocationListenerMayUpdate(t *testing.T) {
	loc := newLocation(t, "/?page=2")
	loc.Update(func(q url.Values) { q.Set("page", "50") })
	loc.OnPopState(func() {
		loc.Update(func(q url.Values) { q.Set("page", "1") })
	})

	loc.Back()

	assert.Equal(t, "1", loc.Query().Get("page"))
}

func TestLocationUpdateIgnoresKeyOrder(t *testing.T) {
	loc := newLocation(t, "/products?sort=price&category=B")

	loc.Update(func(q url.Values) { q.Set("category", "B") })

	history, _ := loc.History()
	assert.Equal(t, []string{"/products?sort=price&category=B"}, history)
}

func TestLocationReplaceBlockKeepsForwardHistory(t *testing.T) {
	loc := newLocation(t, "/products")
	require.NoError(t, loc.Navigate("/products?page=50"))
	require.NoError(t, loc.Navigate("/products?page=4"))
	require.True(t, loc.Back())

	loc.Replace(func() {
		loc.Update(func(q url.Values) { q.Set("page", "3") })
		loc.Update(func(q url.Values) { q.Set("sort", "name") })
	})

	history, index := loc.History()
	assert.Equal(t, []string{"/products", "/products?page=3&sort=name", "/products?page=4"}, history)
	assert.Equal(t, 1, index)

	loc.Update(func(q url.Values) { q.Set("page", "1") })
	history, _ = loc.History()
	assert.Len(t, history, 3, "updates after the block push again")
}
