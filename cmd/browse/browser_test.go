package main

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/matst80/slask-view/pkg/format"
	"github.com/matst80/slask-view/pkg/storage"
	"github.com/matst80/slask-view/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func products() []types.Record {
	list := make([]types.Product, 0, 25)
	for i := 1; i <= 25; i++ {
		category := "A"
		if i%2 == 0 {
			category = "B"
		}
		list = append(list, types.Product{
			Id:       i,
			Name:     "Product",
			Category: category,
			Price:    float64(i) * 1.5,
			Stock:    i,
		})
	}
	return types.ProductRecords(list)
}

func newTestBrowser(t *testing.T, src types.RecordSource) (*browser, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	b, err := newBrowser(browserOptions{
		Source:    src,
		PageSize:  10,
		Formatter: format.New("en-US", "USD"),
		Out:       out,
	})
	require.NoError(t, err)
	t.Cleanup(b.Close)
	b.Reload(context.Background())
	return b, out
}

func TestBrowseRendersTable(t *testing.T) {
	_, out := newTestBrowser(t, storage.Static(products()))

	rendered := out.String()
	assert.Contains(t, rendered, "Product Name")
	assert.Contains(t, rendered, "$1.50")
	assert.Contains(t, rendered, "Showing 1-10 of 25  page 1/3  [1] 2 3")
	assert.Contains(t, rendered, "categories: [all] A B")
}

func TestBrowseCommandsWalkHistory(t *testing.T) {
	b, out := newTestBrowser(t, storage.Static(products()))
	ctx := context.Background()

	b.Exec(ctx, "category B")
	b.Exec(ctx, "sort price")
	b.Exec(ctx, "sort price")
	assert.Equal(t, "/products?category=B&dir=desc&sort=price", b.loc.String())
	assert.Contains(t, out.String(), "Price ▼")

	b.Exec(ctx, "back")
	assert.Equal(t, "/products?category=B&dir=asc&sort=price", b.loc.String())
	assert.Equal(t, types.SortAscending, b.view.View().Sort.Direction)

	b.Exec(ctx, "forward")
	assert.Equal(t, types.SortDescending, b.view.View().Sort.Direction)

	out.Reset()
	b.Exec(ctx, "forward")
	assert.Contains(t, out.String(), "no later view")
}

func TestBrowseOpenAndPaging(t *testing.T) {
	b, out := newTestBrowser(t, storage.Static(products()))
	ctx := context.Background()

	b.Exec(ctx, "open /products?page=3")
	assert.Equal(t, 3, b.view.View().Pagination.CurrentPage)

	b.Exec(ctx, "prev")
	b.Exec(ctx, "first")
	assert.Equal(t, 1, b.view.View().Pagination.CurrentPage)
	b.Exec(ctx, "last")
	assert.Equal(t, 3, b.view.View().Pagination.CurrentPage)
	b.Exec(ctx, "page 99")
	assert.Equal(t, 3, b.view.View().Pagination.CurrentPage)

	out.Reset()
	b.Exec(ctx, "page two")
	assert.Contains(t, out.String(), "not a page number: two")

	out.Reset()
	b.Exec(ctx, "sort stock")
	assert.Contains(t, out.String(), "stock is not sortable")

	out.Reset()
	b.Exec(ctx, "frobnicate")
	assert.Contains(t, out.String(), "unknown command: frobnicate")

	assert.True(t, b.Exec(ctx, "quit"))
}

func TestBrowseRecoversFromPanic(t *testing.T) {
	broken := true
	src := types.RecordSourceFunc(func(context.Context) ([]types.Record, error) {
		if broken {
			panic("corrupt record")
		}
		return products(), nil
	})
	b, out := newTestBrowser(t, src)
	ctx := context.Background()

	require.Error(t, b.failure)
	assert.Contains(t, out.String(), "view failed: panic: corrupt record")
	assert.Equal(t, "view (failed)> ", b.Prompt())

	out.Reset()
	b.Exec(ctx, "next")
	assert.Contains(t, out.String(), "(reset or reload)")

	b.Exec(ctx, "reset")
	assert.NoError(t, b.failure)

	broken = false
	out.Reset()
	b.Exec(ctx, "reload")
	assert.NoError(t, b.failure)
	assert.Contains(t, out.String(), "page 1/3")
	assert.Equal(t, "view> ", b.Prompt())
}

func TestBrowsePageSizeAndSave(t *testing.T) {
	b, out := newTestBrowser(t, storage.Static(products()))
	ctx := context.Background()

	b.Exec(ctx, "last")
	b.Exec(ctx, "pagesize 20")
	view := b.view.View()
	assert.Equal(t, 20, view.Pagination.PageSize)
	assert.Equal(t, 2, view.Pagination.CurrentPage)
	assert.Len(t, view.Items, 5)

	out.Reset()
	b.Exec(ctx, "pagesize 7")
	assert.Contains(t, out.String(), "page size must be one of [5 10 20 50 100]")
	assert.Equal(t, 20, b.view.View().Pagination.PageSize)

	fileName := filepath.Join(t.TempDir(), "page.json")
	out.Reset()
	b.Exec(ctx, "save "+fileName)
	assert.Contains(t, out.String(), "saved 5 rows to "+fileName)

	saved, err := (&storage.JsonFile{Path: fileName}).FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, saved, 5)
	assert.Equal(t, "21", fmt.Sprint(saved[0]["id"]))
}
