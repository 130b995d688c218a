package types

import (
	"fmt"
	"slices"
)

// Record is a single row of tabular data keyed by field name.
type Record map[string]any

// Get returns the value of field key and whether it was present.
func (r Record) Get(key string) (any, bool) {
	v, ok := r[key]
	return v, ok
}

// String returns the value of field key formatted for display.
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, isString := v.(string); isString {
		return s
	}
	return fmt.Sprint(v)
}

// DistinctValues collects the distinct non-empty values of field key,
// sorted lexicographically.
func DistinctValues(records []Record, key string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, r := range records {
		v := r.String(key)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	slices.Sort(values)
	return values
}

type Product struct {
	Id       int     `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
}

func (p Product) Record() Record {
	return Record{
		"id":       p.Id,
		"name":     p.Name,
		"category": p.Category,
		"price":    p.Price,
		"stock":    p.Stock,
	}
}

func ProductRecords(products []Product) []Record {
	records := make([]Record, len(products))
	for i, p := range products {
		records[i] = p.Record()
	}
	return records
}
