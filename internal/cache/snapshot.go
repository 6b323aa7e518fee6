// Package cache stores per-outlet catalog snapshots in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "menu:snapshot:"
	genPrefix = "menu:generation:"
)

// setIfGeneration writes the snapshot only while the outlet's generation
// still equals the one read before loading it.
var setIfGeneration = redis.NewScript(`
local gen = redis.call("GET", KEYS[1])
if not gen then gen = "0" end
if gen ~= ARGV[1] then return 0 end
redis.call("SET", KEYS[2], ARGV[2], "PX", ARGV[3])
return 1
`)

// SnapshotCache is a JSON cache keyed by outlet. A nil client disables it:
// reads miss and writes are no-ops.
type SnapshotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSnapshotCache(rdb *redis.Client, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{rdb: rdb, ttl: ttl}
}

// NewClient parses a redis:// URL. An empty URL returns a nil client.
func NewClient(url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

func Key(outletID uuid.UUID) string {
	return keyPrefix + outletID.String()
}

// GenerationKey holds a counter bumped on every invalidation.
func GenerationKey(outletID uuid.UUID) string {
	return genPrefix + outletID.String()
}

func (c *SnapshotCache) Enabled() bool {
	return c != nil && c.rdb != nil && c.ttl > 0
}

// Get decodes the cached snapshot into out. It reports false on a miss.
func (c *SnapshotCache) Get(ctx context.Context, outletID uuid.UUID, out any) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	val, err := c.rdb.Get(ctx, Key(outletID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get: %w", err)
	}
	if err := json.Unmarshal(val, out); err != nil {
		// A stale shape from an older release; treat as a miss and drop it.
		_ = c.rdb.Del(ctx, Key(outletID)).Err()
		return false, nil
	}
	return true, nil
}

// Generation returns the outlet's invalidation counter. Read it before
// loading a snapshot and pass it to Set.
func (c *SnapshotCache) Generation(ctx context.Context, outletID uuid.UUID) (int64, error) {
	if !c.Enabled() {
		return 0, nil
	}
	gen, err := c.rdb.Get(ctx, GenerationKey(outletID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get generation: %w", err)
	}
	return gen, nil
}

// Set stores v unless the outlet was invalidated after gen was read. It
// reports whether the value was stored.
func (c *SnapshotCache) Set(ctx context.Context, outletID uuid.UUID, gen int64, v any) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return false, fmt.Errorf("encode snapshot: %w", err)
	}
	keys := []string{GenerationKey(outletID), Key(outletID)}
	stored, err := setIfGeneration.Run(ctx, c.rdb, keys, gen, data, c.ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("redis set: %w", err)
	}
	return stored == 1, nil
}

// Invalidate drops the snapshot and bumps the generation so a load already
// in flight cannot put the old catalog back.
func (c *SnapshotCache) Invalidate(ctx context.Context, outletID uuid.UUID) error {
	if !c.Enabled() {
		return nil
	}
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, GenerationKey(outletID))
		pipe.Del(ctx, Key(outletID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis invalidate: %w", err)
	}
	return nil
}

func (c *SnapshotCache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}
