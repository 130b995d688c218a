package types

import (
	"net/url"
	"strconv"

	"github.com/gorilla/schema"
)

const (
	CategoryKey = "category"
	SortKey     = "sort"
	DirKey      = "dir"
	PageKey     = "page"

	AllCategories = "all"
)

// ViewQuery is the addressable part of a view: everything needed to
// reproduce it from a URL.
type ViewQuery struct {
	Category string `json:"category" schema:"category,default:all"`
	Sort     string `json:"sort,omitempty" schema:"sort,omitempty"`
	Dir      string `json:"dir,omitempty" schema:"dir,omitempty"`
	Page     int    `json:"page" schema:"page,default:1"`
}

var decoder = schema.NewDecoder()
var encoder = schema.NewEncoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

func clamp[T int | float64](value, min, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func DefaultViewQuery() ViewQuery {
	return ViewQuery{
		Category: AllCategories,
		Page:     1,
	}
}

// Sanitize forces every field into its valid domain. Sort and dir only
// make sense together, so one without the other clears both.
func (q *ViewQuery) Sanitize() {
	if q.Category == "" {
		q.Category = AllCategories
	}
	q.Page = clamp(q.Page, 1, 1<<30)
	dir := ParseSortDirection(q.Dir)
	if q.Sort == "" || dir == SortNone {
		q.Sort = ""
		q.Dir = ""
	} else {
		q.Dir = string(dir)
	}
}

func (q ViewQuery) SortState() SortState {
	if q.Sort == "" {
		return Unsorted()
	}
	return SortState{Key: q.Sort, Direction: ParseSortDirection(q.Dir)}
}

// ViewQueryFromValues decodes a query string. Malformed values fall back to
// their defaults, so this never fails.
func ViewQueryFromValues(values url.Values) ViewQuery {
	q := DefaultViewQuery()
	// a field that fails to convert keeps its default
	_ = decoder.Decode(&q, values)
	q.Sanitize()
	return q
}

// Values encodes the query, leaving out every key that holds its default.
func (q ViewQuery) Values() url.Values {
	values := url.Values{}
	if err := encoder.Encode(q, values); err != nil {
		values = url.Values{}
		values.Set(CategoryKey, q.Category)
		values.Set(SortKey, q.Sort)
		values.Set(DirKey, q.Dir)
		values.Set(PageKey, strconv.Itoa(q.Page))
	}
	if q.Category == AllCategories || q.Category == "" {
		values.Del(CategoryKey)
	}
	if q.Sort == "" {
		values.Del(SortKey)
	}
	if q.Dir == "" {
		values.Del(DirKey)
	}
	if q.Page <= 1 {
		values.Del(PageKey)
	}
	return values
}

// Href renders the query onto path.
func (q ViewQuery) Href(path string) string {
	encoded := q.Values().Encode()
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}
