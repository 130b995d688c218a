package server

import (
	"github.com/matst80/slask-view/pkg/pagination"
	"github.com/matst80/slask-view/pkg/sorting"
	"github.com/matst80/slask-view/pkg/types"
)

type PageLink struct {
	Page     int    `json:"page,omitempty"`
	Href     string `json:"href,omitempty"`
	Current  bool   `json:"current,omitempty"`
	Ellipsis bool   `json:"ellipsis,omitempty"`
}

// Links are ready made URLs for every transition of a view.
type Links struct {
	Self       string            `json:"self"`
	First      string            `json:"first,omitempty"`
	Prev       string            `json:"prev,omitempty"`
	Next       string            `json:"next,omitempty"`
	Last       string            `json:"last,omitempty"`
	Sort       map[string]string `json:"sort"`
	Categories map[string]string `json:"categories"`
	Pages      []PageLink        `json:"pages"`
}

// BuildLinks derives the links of the view described by q and state.
// Category and sort links lead back to page 1.
func BuildLinks(path string, q types.ViewQuery, state pagination.State, sortKeys, categories []string) Links {
	withPage := func(page int) string {
		next := q
		next.Page = page
		return next.Href(path)
	}

	links := Links{
		Self:       q.Href(path),
		Sort:       make(map[string]string, len(sortKeys)),
		Categories: make(map[string]string, len(categories)+1),
		Pages:      make([]PageLink, 0),
	}
	if state.TotalPages > 0 {
		links.First = withPage(1)
		links.Last = withPage(state.TotalPages)
	}
	if state.HasPrevious {
		links.Prev = withPage(state.CurrentPage - 1)
	}
	if state.HasNext {
		links.Next = withPage(state.CurrentPage + 1)
	}

	current := q.SortState()
	for _, key := range sortKeys {
		next := q
		st := sorting.Next(current, key)
		next.Sort, next.Dir, next.Page = st.Key, st.Direction.String(), 1
		links.Sort[key] = next.Href(path)
	}

	for _, category := range append([]string{types.AllCategories}, categories...) {
		next := q
		next.Category, next.Page = category, 1
		links.Categories[category] = next.Href(path)
	}

	for _, page := range pagination.Range(state.CurrentPage, state.TotalPages, pagination.DefaultMaxVisible) {
		if page == pagination.Ellipsis {
			links.Pages = append(links.Pages, PageLink{Ellipsis: true})
			continue
		}
		links.Pages = append(links.Pages, PageLink{
			Page:    page,
			Href:    withPage(page),
			Current: page == state.CurrentPage,
		})
	}
	return links
}
