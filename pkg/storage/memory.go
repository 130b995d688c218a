package storage

import (
	"context"
	"time"

	"github.com/matst80/slask-view/pkg/types"
)

const DefaultMockDelay = 1500 * time.Millisecond

// Static serves a fixed record set.
type Static []types.Record

func (s Static) FetchAll(ctx context.Context) ([]types.Record, error) {
	return s, nil
}

// Mock serves fixed records after a simulated network delay.
type Mock struct {
	Records []types.Record
	Delay   time.Duration
}

func NewMock(records []types.Record) *Mock {
	return &Mock{Records: records, Delay: DefaultMockDelay}
}

func (m *Mock) FetchAll(ctx context.Context) ([]types.Record, error) {
	if m.Delay > 0 {
		timer := time.NewTimer(m.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return m.Records, nil
}
