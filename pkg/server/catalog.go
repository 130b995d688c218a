package server

import (
	"context"
	"sync"

	"github.com/matst80/slask-view/pkg/logger"
	"github.com/matst80/slask-view/pkg/types"
)

type invalidator interface {
	Invalidate(ctx context.Context) error
}

// Catalog holds the record set every request views.
type Catalog struct {
	source types.RecordSource
	field  string
	log    logger.Logger

	mu         sync.RWMutex
	records    []types.Record
	categories []string
	loading    bool
	loaded     bool
}

func NewCatalog(source types.RecordSource, categoryField string, log logger.Logger) *Catalog {
	return &Catalog{
		source:  source,
		field:   categoryField,
		log:     log,
		records: []types.Record{},
	}
}

// Load fetches the records. A failure is counted, logged and leaves the
// catalog empty; the error is returned for callers that report it.
func (c *Catalog) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	records, err := c.source.FetchAll(ctx)
	if err != nil {
		fetchErrors.Inc()
		c.log.Error("failed to load catalog", "err", err)
		records = []types.Record{}
	}

	c.mu.Lock()
	c.records = records
	c.categories = types.DistinctValues(records, c.field)
	c.loading = false
	c.loaded = true
	c.mu.Unlock()

	totalRecords.Set(float64(len(records)))
	c.log.Info("catalog loaded", "records", len(records))
	return err
}

// Reload drops any cached copy before loading again.
func (c *Catalog) Reload(ctx context.Context) error {
	if inv, ok := c.source.(invalidator); ok {
		if err := inv.Invalidate(ctx); err != nil {
			c.log.Warn("failed to invalidate cache", "err", err)
		}
	}
	return c.Load(ctx)
}

// Records returns the current records and whether they are still coming,
// which holds only until the first load finishes. A reload keeps serving
// the previous records until the new set is swapped in.
func (c *Catalog) Records() ([]types.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.records, !c.loaded
}

// Loading reports whether a fetch is running, the first one or a reload.
func (c *Catalog) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.categories
}

// Ready reports whether the first load has finished.
func (c *Catalog) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}
