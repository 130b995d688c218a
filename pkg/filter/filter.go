package filter

import "github.com/matst80/slask-view/pkg/types"

// Filter owns the predicate of a single view. Every change replaces the
// predicate; predicates are never combined.
type Filter struct {
	predicate Predicate
}

func NewFilter(initial Predicate) *Filter {
	return &Filter{predicate: initial}
}

func (f *Filter) Set(p Predicate) {
	f.predicate = p
}

func (f *Filter) Clear() {
	f.predicate = nil
}

func (f *Filter) ByField(key string, value any) {
	f.predicate = ByField(key, value)
}

func (f *Filter) BySearch(term string) {
	f.predicate = BySearch(term)
}

func (f *Filter) Predicate() Predicate {
	return f.predicate
}

func (f *Filter) Active() bool {
	return f.predicate != nil
}

func (f *Filter) Apply(data []types.Record) []types.Record {
	return Apply(data, f.predicate)
}
