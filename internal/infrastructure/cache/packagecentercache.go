package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/buildingai/cozepkg/internal/application/cozepackage/dto"
	"github.com/buildingai/cozepkg/internal/application/cozepackage/usecases"
	"github.com/buildingai/cozepkg/internal/shared/biztime"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

// DefaultCenterTTL bounds how stale the package center may be.
const DefaultCenterTTL = 5 * time.Minute

const centerKey = "cozepkg:package:center"

var (
	_ usecases.PackageCenterCache = (*MemoryPackageCenterCache)(nil)
	_ usecases.PackageCenterCache = (*RedisPackageCenterCache)(nil)
)

// MemoryPackageCenterCache keeps one snapshot per process.
type MemoryPackageCenterCache struct {
	mu       sync.RWMutex
	snapshot *dto.CenterSnapshot
	storedAt time.Time
	ttl      time.Duration
	clock    biztime.Clock
}

func NewMemoryPackageCenterCache(ttl time.Duration, clock biztime.Clock) *MemoryPackageCenterCache {
	if ttl <= 0 {
		ttl = DefaultCenterTTL
	}
	if clock == nil {
		clock = biztime.SystemClock()
	}
	return &MemoryPackageCenterCache{ttl: ttl, clock: clock}
}

func (c *MemoryPackageCenterCache) Get(_ context.Context) (*dto.CenterSnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot == nil || c.clock.Now().Sub(c.storedAt) >= c.ttl {
		return nil, false
	}
	return c.snapshot, true
}

func (c *MemoryPackageCenterCache) Set(_ context.Context, snapshot *dto.CenterSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = snapshot
	c.storedAt = c.clock.Now()
}

func (c *MemoryPackageCenterCache) Invalidate(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = nil
}

// RedisPackageCenterCache shares the snapshot between instances. Redis
// errors degrade to a cache miss.
type RedisPackageCenterCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

func NewRedisPackageCenterCache(client *redis.Client, ttl time.Duration, logger logger.Interface) *RedisPackageCenterCache {
	if ttl <= 0 {
		ttl = DefaultCenterTTL
	}
	return &RedisPackageCenterCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisPackageCenterCache) Get(ctx context.Context) (*dto.CenterSnapshot, bool) {
	raw, err := c.client.Get(ctx, centerKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warnw("failed to read package center cache", "error", err)
		}
		return nil, false
	}

	var snapshot dto.CenterSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		c.logger.Warnw("discarding malformed package center cache entry", "error", err)
		c.Invalidate(ctx)
		return nil, false
	}
	return &snapshot, true
}

func (c *RedisPackageCenterCache) Set(ctx context.Context, snapshot *dto.CenterSnapshot) {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		c.logger.Warnw("failed to encode package center snapshot", "error", err)
		return
	}
	if err := c.client.Set(ctx, centerKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warnw("failed to write package center cache", "error", err)
	}
}

func (c *RedisPackageCenterCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, centerKey).Err(); err != nil {
		c.logger.Warnw("failed to invalidate package center cache", "error", err)
	}
}
