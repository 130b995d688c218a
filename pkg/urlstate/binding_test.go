package urlstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type direction string

func TestBindingRoundTrip(t *testing.T) {
	loc := newLocation(t, "/products")
	page := Bind(loc, "page", 1)

	page.SetValue(5)
	assert.Equal(t, "5", loc.Query().Get("page"))
	assert.Equal(t, 5, page.Value())

	page.SetValue(1)
	assert.False(t, loc.Query().Has("page"))
	assert.Equal(t, "/products", loc.String())

	var changed []int
	page.OnChange(func(v int) { changed = append(changed, v) })

	_ = loc.Navigate("/products?page=7")
	page.SetValue(2)
	loc.Back()

	assert.Equal(t, 7, page.Value())
	assert.Equal(t, []int{7}, changed)
}

func TestBindingKeysAreIndependent(t *testing.T) {
	loc := newLocation(t, "/")
	category := Bind(loc, "category", "all")
	sort := Bind(loc, "sort", "")
	dir := Bind(loc, "dir", direction(""))

	category.SetValue("B")
	sort.SetValue("price")
	dir.SetValue("desc")
	category.ClearValue()

	assert.Equal(t, "all", category.Value())
	assert.Equal(t, "price", sort.Value())
	assert.Equal(t, direction("desc"), dir.Value())
	assert.Equal(t, "/?dir=desc&sort=price", loc.String())
}

func TestBindingInvalidValuesFallBack(t *testing.T) {
	loc := newLocation(t, "/?page=abc&size=2.5&ratio=NaN&flag=yes&count=300")

	assert.Equal(t, 1, Bind(loc, "page", 1).Value())
	assert.Equal(t, 10, Bind(loc, "size", 10).Value())
	assert.Equal(t, 0.5, Bind(loc, "ratio", 0.5).Value())
	assert.False(t, Bind(loc, "flag", false).Value())
	assert.Equal(t, uint8(7), Bind(loc, "count", uint8(7)).Value())
	assert.Equal(t, "x", Bind(loc, "missing", "x").Value())
}

func TestBindingEmptyStringIsAValue(t *testing.T) {
	loc := newLocation(t, "/?category=")

	assert.Equal(t, "", Bind(loc, "category", "all").Value())
	assert.Equal(t, 1, Bind(loc, "page", 1).Value())
}

func TestBindingOnChangeOnlyOnDifference(t *testing.T) {
	loc := newLocation(t, "/")
	page := Bind(loc, "page", 1)
	sort := Bind(loc, "sort", "")
	sort.SetValue("name")
	page.SetValue(3)

	var pages []int
	page.OnChange(func(v int) { pages = append(pages, v) })
	var sorts []string
	sort.OnChange(func(v string) { sorts = append(sorts, v) })

	loc.Back()
	loc.Back()

	assert.Equal(t, []int{1}, pages)
	assert.Equal(t, []string{""}, sorts)
}

func TestBindingClose(t *testing.T) {
	loc := newLocation(t, "/")
	page := Bind(loc, "page", 1)
	sort := Bind(loc, "sort", "")
	assert.Equal(t, 2, loc.Listeners())

	page.Close()
	sort.Close()

	assert.Equal(t, 0, loc.Listeners())
}

func TestParseAndFormat(t *testing.T) {
	assert.Equal(t, 3.25, Parse("3.25", 0.0))
	assert.Equal(t, float32(1.5), Parse("1.5", float32(0)))
	assert.Equal(t, int64(-4), Parse("-4", int64(0)))
	assert.Equal(t, uint(9), Parse("-1", uint(9)))
	assert.True(t, Parse("true", false))

	assert.Equal(t, "3.25", Format(3.25))
	assert.Equal(t, "1.5", Format(float32(1.5)))
	assert.Equal(t, "-4", Format(int64(-4)))
	assert.Equal(t, "true", Format(true))
	assert.Equal(t, "desc", Format(direction("desc")))
}
