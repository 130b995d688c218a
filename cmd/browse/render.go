package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/matst80/slask-view/pkg/format"
	"github.com/matst80/slask-view/pkg/pagination"
	"github.com/matst80/slask-view/pkg/types"
	"github.com/matst80/slask-view/pkg/view"
)

func renderView(w io.Writer, columns []view.Column, model view.ViewModel, f *format.Formatter) {
	_, _ = fmt.Fprintf(w, "%s\n", model.URL)
	if model.Loading {
		_, _ = fmt.Fprintln(w, "loading...")
		return
	}
	_, _ = fmt.Fprintf(w, "categories: %s\n", categoryLine(model.Category, model.Categories))

	if len(model.Items) == 0 {
		_, _ = fmt.Fprintln(w, "(no records)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, c := range columns {
		header[i] = headerCell(c, model.Sort)
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align(c.Align), AlignHeader: align(c.Align)}
	}
	t.AppendHeader(header)
	t.SetColumnConfigs(configs)

	for _, record := range model.Items {
		row := make(table.Row, len(columns))
		for i, c := range columns {
			row[i] = cell(c.Key, record, f)
		}
		t.AppendRow(row)
	}
	t.Render()

	p := model.Pagination
	_, _ = fmt.Fprintf(w, "Showing %d-%d of %d  page %d/%d  %s\n",
		p.StartIndex, p.EndIndex, p.TotalItems, p.CurrentPage, p.TotalPages,
		pageLine(p.CurrentPage, p.TotalPages))
}

func headerCell(c view.Column, sort types.SortState) string {
	if !sort.Active() || sort.Key != c.Key {
		return c.Header
	}
	if sort.Direction == types.SortAscending {
		return c.Header + " ▲"
	}
	return c.Header + " ▼"
}

func align(a view.Align) text.Align {
	if a == view.AlignRight {
		return text.AlignRight
	}
	return text.AlignLeft
}

func cell(key string, record types.Record, f *format.Formatter) string {
	v, ok := record.Get(key)
	if !ok || v == nil {
		return ""
	}
	if key == "price" {
		if n, ok := asFloat(v); ok {
			return f.Currency(n)
		}
	}
	return record.String(key)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case string:
		return format.ParseCurrency(n)
	}
	return 0, false
}

func categoryLine(selected string, categories []string) string {
	all := append([]string{types.AllCategories}, categories...)
	parts := make([]string, len(all))
	for i, c := range all {
		if c == selected {
			parts[i] = "[" + c + "]"
		} else {
			parts[i] = c
		}
	}
	return strings.Join(parts, " ")
}

func pageLine(current, total int) string {
	pages := pagination.Range(current, total, pagination.DefaultMaxVisible)
	parts := make([]string, len(pages))
	for i, page := range pages {
		switch page {
		case pagination.Ellipsis:
			parts[i] = "…"
		case current:
			parts[i] = "[" + strconv.Itoa(page) + "]"
		default:
			parts[i] = strconv.Itoa(page)
		}
	}
	return strings.Join(parts, " ")
}
