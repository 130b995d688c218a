package types

import "strings"

type SortDirection string

const (
	SortNone       SortDirection = "none"
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// ParseSortDirection maps anything that is not asc or desc to SortNone.
func ParseSortDirection(s string) SortDirection {
	switch SortDirection(strings.ToLower(strings.TrimSpace(s))) {
	case SortAscending:
		return SortAscending
	case SortDescending:
		return SortDescending
	default:
		return SortNone
	}
}

func (d SortDirection) String() string {
	return string(d)
}

type SortState struct {
	Key       string        `json:"key,omitempty"`
	Direction SortDirection `json:"direction"`
}

// Active reports whether the state reorders anything at all.
func (s SortState) Active() bool {
	return s.Key != "" && s.Direction != SortNone && s.Direction != ""
}

func Unsorted() SortState {
	return SortState{Direction: SortNone}
}
