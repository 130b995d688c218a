package storage

import (
	"context"
	"time"

	"github.com/matst80/slask-view/pkg/common/jsoncompat"
	"github.com/matst80/slask-view/pkg/logger"
	"github.com/matst80/slask-view/pkg/types"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const DefaultCacheTTL = 5 * time.Minute

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// Cached reads through redis in front of another source. Redis failures
// fall back to the wrapped source.
type Cached struct {
	Source types.RecordSource
	Client *redis.Client
	Key    string
	TTL    time.Duration
	Logger logger.Logger
}

func NewCached(source types.RecordSource, client *redis.Client, key string, ttl time.Duration, log logger.Logger) *Cached {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Cached{Source: source, Client: client, Key: key, TTL: ttl, Logger: log}
}

func (c *Cached) FetchAll(ctx context.Context) ([]types.Record, error) {
	data, err := c.Client.Get(ctx, c.Key).Bytes()
	switch {
	case err == nil:
		records, decodeErr := DecodeRecords(data)
		if decodeErr == nil {
			return records, nil
		}
		c.Logger.Warn("ignoring unreadable cache entry", "key", c.Key, "err", decodeErr)
	case !errors.Is(err, redis.Nil):
		c.Logger.Warn("cache unavailable", "key", c.Key, "err", err)
	}

	records, err := c.Source.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.store(ctx, records); err != nil {
		c.Logger.Warn("failed to cache records", "key", c.Key, "err", err)
	}
	return records, nil
}

func (c *Cached) store(ctx context.Context, records []types.Record) error {
	data, err := jsoncompat.Marshal(records)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal")
	}
	return c.Client.Set(ctx, c.Key, data, c.TTL).Err()
}

// Invalidate drops the cached copy so the next fetch reaches the source.
func (c *Cached) Invalidate(ctx context.Context) error {
	return c.Client.Del(ctx, c.Key).Err()
}
