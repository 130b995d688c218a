package sorting

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/matst80/slask-view/pkg/types"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestCompare(t *testing.T) {
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)

	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"both nil", nil, nil, 0},
		{"nil last", nil, 1, 1},
		{"nil after string", "a", nil, -1},
		{"strings ignore case", "apple", "Banana", -1},
		{"equal strings differing in case", "Widget", "widget", 0},
		{"numbers", 10, 2, 1},
		{"mixed numeric kinds", int64(3), 3.5, -1},
		{"json number", json.Number("12"), 4, 1},
		{"json numbers", json.Number("12"), json.Number("4"), 1},
		{"booleans", false, true, -1},
		{"equal booleans", true, true, 0},
		{"dates", late, early, 1},
		{"mixed types fall back to strings", "10", 9, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b, types.SortAscending))
			assert.Equal(t, -tt.want, Compare(tt.a, tt.b, types.SortDescending))
		})
	}
}

type label string

func TestCompareNamedStringKinds(t *testing.T) {
	assert.Equal(t, 1, Compare(label("banana"), label("Apple"), types.SortAscending))
	assert.Equal(t, 0, Compare(label("Widget"), label("widget"), types.SortAscending))
	assert.Equal(t, -1, Compare(label("apple"), "Banana", types.SortAscending))
}

func TestCompareNilFirstWhenDescending(t *testing.T) {
	assert.Equal(t, -1, Compare(nil, "x", types.SortDescending))
	assert.Equal(t, 1, Compare("x", nil, types.SortDescending))
}

func TestComparatorLanguage(t *testing.T) {
	sv := NewComparator(language.Swedish)
	// Swedish sorts å after z, the root collation next to a
	assert.Equal(t, 1, sv.Compare("åsa", "zeta", types.SortAscending))
	assert.Equal(t, -1, Compare("åsa", "zeta", types.SortAscending))
}
