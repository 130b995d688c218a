package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/matst80/slask-view/pkg/logger"
	"github.com/matst80/slask-view/pkg/storage"
	"github.com/matst80/slask-view/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogLoadFailureLeavesEmpty(t *testing.T) {
	source := types.RecordSourceFunc(func(context.Context) ([]types.Record, error) {
		return nil, errors.New("boom")
	})
	c := NewCatalog(source, "category", logger.Nop())
	_, pending := c.Records()
	assert.True(t, pending)
	assert.False(t, c.Ready())

	require.Error(t, c.Load(context.Background()))
	records, pending := c.Records()
	assert.False(t, pending)
	assert.Empty(t, records)
	assert.NotNil(t, records)
	assert.True(t, c.Ready())
}

func TestCatalogReloadInvalidatesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := storage.NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { client.Close() })

	current := products()[:3]
	source := types.RecordSourceFunc(func(context.Context) ([]types.Record, error) {
		return current, nil
	})
	c := NewCatalog(storage.NewCached(source, client, "products", time.Minute, nil), "category", logger.Nop())
	require.NoError(t, c.Load(context.Background()))

	current = products()
	require.NoError(t, c.Load(context.Background()))
	records, _ := c.Records()
	assert.Len(t, records, 3, "served from cache")

	require.NoError(t, c.Reload(context.Background()))
	records, _ = c.Records()
	assert.Len(t, records, 25)
	assert.Equal(t, []string{"A", "B"}, c.Categories())
}
