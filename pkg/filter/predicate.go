package filter

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/matst80/slask-view/pkg/types"
)

// Predicate decides whether a record stays in the view. A nil Predicate
// accepts everything.
type Predicate func(types.Record) bool

// AcceptAll reports whether value is one of the "no filter" markers.
func AcceptAll(value any) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && (s == "" || s == types.AllCategories)
}

// ByField keeps records whose field key equals value.
func ByField(key string, value any) Predicate {
	return func(r types.Record) bool {
		if AcceptAll(value) {
			return true
		}
		return strictEqual(r[key], value)
	}
}

// BySearch keeps records where any string field contains term, ignoring
// case, or any number field's decimal form contains it.
func BySearch(term string) Predicate {
	needle := strings.ToLower(strings.TrimSpace(term))
	return func(r types.Record) bool {
		if needle == "" {
			return true
		}
		for _, v := range r {
			if s, ok := v.(string); ok {
				if strings.Contains(strings.ToLower(s), needle) {
					return true
				}
				continue
			}
			if n, ok := numberString(v); ok && strings.Contains(n, needle) {
				return true
			}
		}
		return false
	}
}

// Apply returns data itself for a nil predicate, otherwise the matching
// records in their original order.
func Apply(data []types.Record, p Predicate) []types.Record {
	if p == nil {
		return data
	}
	out := make([]types.Record, 0, len(data))
	for _, r := range data {
		if p(r) {
			out = append(out, r)
		}
	}
	return out
}

// strictEqual compares numbers by value across kinds; everything else must
// share a dynamic type and be comparable.
func strictEqual(a, b any) bool {
	if af, ok := number(a); ok {
		bf, ok := number(b)
		return ok && af == bf
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

func number(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func numberString(v any) (string, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	}
	return "", false
}
