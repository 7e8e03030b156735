package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"sherialink/internal/domain"
)

const (
	// casesSnapshotKey holds the raw case list as returned by the record store.
	casesSnapshotKey = "sherialink:dashboard:cases"

	DefaultSnapshotTTL = 30 * time.Second
)

// RedisCache stores the case snapshot as one JSON value with a TTL. The TTL
// bounds staleness; intake and status updates also drop it explicitly.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache constructs a Redis-backed snapshot cache. A non-positive ttl
// falls back to DefaultSnapshotTTL.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Get returns the cached snapshot. A missing key is a miss, not an error.
func (c *RedisCache) Get(ctx context.Context) ([]domain.CaseReport, bool, error) {
	raw, err := c.client.Get(ctx, casesSnapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read case snapshot: %w", err)
	}
	var records []domain.CaseReport
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, false, fmt.Errorf("decode case snapshot: %w", err)
	}
	return records, true, nil
}

func (c *RedisCache) Set(ctx context.Context, records []domain.CaseReport) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode case snapshot: %w", err)
	}
	return c.client.Set(ctx, casesSnapshotKey, raw, c.ttl).Err()
}

// Invalidate drops the snapshot so the next read goes to the record store.
func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, casesSnapshotKey).Err()
}

// NoopCache is used when no Redis URL is configured. Every Get misses.
type NoopCache struct{}

func (NoopCache) Get(context.Context) ([]domain.CaseReport, bool, error) { return nil, false, nil }
func (NoopCache) Set(context.Context, []domain.CaseReport) error { return nil }
func (NoopCache) Invalidate(context.Context) error { return nil }
