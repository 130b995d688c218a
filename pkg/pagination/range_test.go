package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRange(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    []int
	}{
		{"no pages", 1, 0, []int{}},
		{"fits", 2, 4, []int{1, 2, 3, 4}},
		{"start", 1, 10, []int{1, 2, 3, 4, 5, Ellipsis, 10}},
		{"middle", 5, 10, []int{1, Ellipsis, 3, 4, 5, 6, 7, Ellipsis, 10}},
		{"end", 10, 10, []int{1, Ellipsis, 6, 7, 8, 9, 10}},
		{"adjacent to first", 4, 10, []int{1, 2, 3, 4, 5, 6, Ellipsis, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Range(tt.current, tt.total, DefaultMaxVisible))
		})
	}
}

func TestTotalPagesAndClamp(t *testing.T) {
	assert.Equal(t, 3, TotalPages(23, 10))
	assert.Equal(t, 2, TotalPages(20, 10))
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 0, TotalPages(10, 0))

	assert.Equal(t, 1, ClampPage(0, 3))
	assert.Equal(t, 3, ClampPage(7, 3))
	assert.Equal(t, 1, ClampPage(5, 0))
}
