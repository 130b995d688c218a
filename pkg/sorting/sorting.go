package sorting

import (
	"slices"

	"github.com/matst80/slask-view/pkg/types"
)

// Sort orders data by field key using the default comparator.
func Sort(data []types.Record, key string, direction types.SortDirection) []types.Record {
	return SortWith(Compare, data, key, direction)
}

// SortWith returns data itself when there is nothing to sort by, otherwise a
// stably sorted copy; ties keep their original relative order.
func SortWith(compare CompareFunc, data []types.Record, key string, direction types.SortDirection) []types.Record {
	if key == "" || direction == types.SortNone || direction == "" {
		return data
	}
	sorted := slices.Clone(data)
	slices.SortStableFunc(sorted, func(a, b types.Record) int {
		return compare(a[key], b[key], direction)
	})
	return sorted
}

// NextDirection cycles none -> asc -> desc -> asc.
func NextDirection(current types.SortDirection) types.SortDirection {
	switch current {
	case types.SortAscending:
		return types.SortDescending
	default:
		return types.SortAscending
	}
}

// Next is the state after selecting key: the same key cycles its
// direction, a different key starts over ascending.
func Next(state types.SortState, key string) types.SortState {
	if state.Key == key {
		return types.SortState{Key: key, Direction: NextDirection(state.Direction)}
	}
	return types.SortState{Key: key, Direction: types.SortAscending}
}
