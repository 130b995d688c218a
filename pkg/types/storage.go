package types

import "context"

// RecordSource provides the full record set of a view.
type RecordSource interface {
	FetchAll(ctx context.Context) ([]Record, error)
}

type RecordSourceFunc func(ctx context.Context) ([]Record, error)

func (f RecordSourceFunc) FetchAll(ctx context.Context) ([]Record, error) {
	return f(ctx)
}
