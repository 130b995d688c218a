package pagination

import "fmt"

const DefaultPageSize = 10

var PageSizeOptions = []int{5, 10, 20, 50, 100}

type Mode int

const (
	// Client slices the full data set locally.
	Client Mode = iota
	// Server receives data that is already sliced; totals come from outside.
	Server
)

func (m Mode) String() string {
	if m == Server {
		return "server"
	}
	return "client"
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// PageChangeFunc asks an external provider for page. Returning an error
// leaves the current page unchanged.
type PageChangeFunc func(page int) error

type Options struct {
	InitialPage  int
	PageSize     int
	Mode         Mode
	TotalItems   int
	OnPageChange PageChangeFunc
}

type State struct {
	CurrentPage int  `json:"currentPage"`
	PageSize    int  `json:"pageSize"`
	TotalItems  int  `json:"totalItems"`
	TotalPages  int  `json:"totalPages"`
	StartIndex  int  `json:"startIndex"`
	EndIndex    int  `json:"endIndex"`
	HasPrevious bool `json:"hasPrevious"`
	HasNext     bool `json:"hasNext"`
	Mode        Mode `json:"mode"`
}

// TotalPages is ceil(totalItems / pageSize), or 0 for a non-positive size.
func TotalPages(totalItems, pageSize int) int {
	if pageSize <= 0 || totalItems <= 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}

// ClampPage forces page into [1, totalPages]; with no pages at all the
// only valid page is 1.
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Slice returns the items of page (1-indexed) without copying.
func Slice[T any](data []T, page, pageSize int) []T {
	if pageSize <= 0 || page < 1 {
		return data[:0]
	}
	start := (page - 1) * pageSize
	if start >= len(data) {
		return data[:0]
	}
	end := min(start+pageSize, len(data))
	return data[start:end]
}

func (s State) String() string {
	return fmt.Sprintf("page %d/%d (%d-%d of %d)", s.CurrentPage, s.TotalPages, s.StartIndex, s.EndIndex, s.TotalItems)
}
