package sorting

import (
	"github.com/matst80/slask-view/pkg/types"
)

// Sorter owns the sort state of a single view.
type Sorter struct {
	initial types.SortState
	state   types.SortState
	compare CompareFunc
}

type SorterOption func(*Sorter)

// WithComparator replaces the value ordering. Panics from fn are not
// recovered.
func WithComparator(fn CompareFunc) SorterOption {
	return func(s *Sorter) {
		s.compare = fn
	}
}

func NewSorter(initial types.SortState, opts ...SorterOption) *Sorter {
	if initial.Direction == "" {
		initial.Direction = types.SortNone
	}
	s := &Sorter{
		initial: initial,
		state:   initial,
		compare: Compare,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sorter) State() types.SortState {
	return s.state
}

func (s *Sorter) HandleSort(key string) types.SortState {
	s.state = Next(s.state, key)
	return s.state
}

func (s *Sorter) SetState(state types.SortState) {
	if state.Direction == "" {
		state.Direction = types.SortNone
	}
	s.state = state
}

// SetField switches the sort key but keeps the direction, starting
// ascending when nothing was sorted. An empty or "none" key clears sorting.
func (s *Sorter) SetField(key string) types.SortState {
	if key == "" || key == string(types.SortNone) {
		s.state = types.Unsorted()
		return s.state
	}
	direction := s.state.Direction
	if direction == types.SortNone || direction == "" {
		direction = types.SortAscending
	}
	s.state = types.SortState{Key: key, Direction: direction}
	return s.state
}

// SetDirection is ignored until a key is selected.
func (s *Sorter) SetDirection(direction types.SortDirection) types.SortState {
	if s.state.Key == "" {
		return s.state
	}
	s.state.Direction = direction
	return s.state
}

func (s *Sorter) Reset() {
	s.state = s.initial
}

func (s *Sorter) Apply(data []types.Record) []types.Record {
	return SortWith(s.compare, data, s.state.Key, s.state.Direction)
}
