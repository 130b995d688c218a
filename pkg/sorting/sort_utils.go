package sorting

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/matst80/slask-view/pkg/types"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CompareFunc orders two field values for the given direction and returns
// -1, 0 or 1. It is never called with types.SortNone.
type CompareFunc func(a, b any, direction types.SortDirection) int

// Comparator orders heterogeneous field values. Strings are collated for a
// language; a collator is not safe for concurrent use so they are pooled.
type Comparator struct {
	collators sync.Pool
}

func NewComparator(tag language.Tag) *Comparator {
	return &Comparator{
		collators: sync.Pool{
			New: func() any {
				return collate.New(tag)
			},
		},
	}
}

var defaultComparator = NewComparator(language.Und)

// Compare orders a and b with the default (root locale) comparator.
func Compare(a, b any, direction types.SortDirection) int {
	return defaultComparator.Compare(a, b, direction)
}

func (c *Comparator) Compare(a, b any, direction types.SortDirection) int {
	result := c.ascending(a, b)
	if direction == types.SortDescending {
		return -result
	}
	return result
}

func (c *Comparator) ascending(a, b any) int {
	// missing values always end up after present ones
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return 1
	}
	if b == nil {
		return -1
	}

	if as, ok := asString(a); ok {
		if bs, ok := asString(b); ok {
			return c.collate(strings.ToLower(as), strings.ToLower(bs))
		}
	}

	switch av := a.(type) {
	case bool:
		if bv, ok := b.(bool); ok {
			return compareBool(av, bv)
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	}

	if an, ok := asNumber(a); ok {
		if bn, ok := asNumber(b); ok {
			return sign(an - bn)
		}
	}

	return c.collate(fmt.Sprint(a), fmt.Sprint(b))
}

func (c *Comparator) collate(a, b string) int {
	col := c.collators.Get().(*collate.Collator)
	defer c.collators.Put(col)
	return col.CompareString(a, b)
}

func compareBool(a, b bool) int {
	if a == b {
		return 0
	}
	if !a {
		return -1
	}
	return 1
}

func sign(f float64) int {
	if f < 0 {
		return -1
	}
	if f > 0 {
		return 1
	}
	return 0
}

// asString accepts string and every named string kind except json.Number,
// which orders as a number.
func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return "", false
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

// asNumber widens every Go numeric kind to float64.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
