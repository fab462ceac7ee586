package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/buildingai/cozepkg/internal/shared/biztime"
	"github.com/buildingai/cozepkg/internal/shared/goroutine"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

const packageConfigChannel = "cozepkg:package:config:changed"

// PackageConfigChangedEvent announces a package config write to the other
// instances.
type PackageConfigChangedEvent struct {
	Timestamp  int64  `json:"timestamp"`
	InstanceID string `json:"instance_id"`
}

// LocalInvalidator drops state held by this process.
type LocalInvalidator interface {
	Invalidate(ctx context.Context)
}

// RedisConfigEventBus invalidates the local package center on write and
// relays the invalidation to every other instance.
type RedisConfigEventBus struct {
	client     *redis.Client
	local      LocalInvalidator
	logger     logger.Interface
	instanceID string
}

func NewRedisConfigEventBus(client *redis.Client, local LocalInvalidator, logger logger.Interface) *RedisConfigEventBus {
	return &RedisConfigEventBus{
		client:     client,
		local:      local,
		logger:     logger,
		instanceID: uuid.NewString(),
	}
}

// Invalidate never fails the write that triggered it; a publish error only
// leaves peers stale until their TTL runs out.
func (b *RedisConfigEventBus) Invalidate(ctx context.Context) {
	if b.local != nil {
		b.local.Invalidate(ctx)
	}
	if err := b.Publish(ctx); err != nil {
		b.logger.Warnw("failed to relay package config change", "error", err)
	}
}

func (b *RedisConfigEventBus) Publish(ctx context.Context) error {
	data, err := json.Marshal(PackageConfigChangedEvent{
		Timestamp:  biztime.NowUTC().Unix(),
		InstanceID: b.instanceID,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal config event: %w", err)
	}
	if err := b.client.Publish(ctx, packageConfigChannel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish config event: %w", err)
	}
	return nil
}

// Subscribe blocks until ctx is done, invalidating the local cache for every
// change made by another instance. Dropped connections are retried with
// exponential backoff.
func (b *RedisConfigEventBus) Subscribe(ctx context.Context) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := b.subscribe(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		b.logger.Warnw("config event subscription disconnected, reconnecting",
			"channel", packageConfigChannel,
			"error", err,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

func (b *RedisConfigEventBus) subscribe(ctx context.Context) error {
	ps := b.client.Subscribe(ctx, packageConfigChannel)
	defer ps.Close()

	if _, err := ps.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", packageConfigChannel, err)
	}

	b.logger.Infow("subscribed to config event channel", "channel", packageConfigChannel)

	ch := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			b.handle(ctx, msg.Payload)
		}
	}
}

func (b *RedisConfigEventBus) handle(ctx context.Context, payload string) {
	var event PackageConfigChangedEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		b.logger.Warnw("failed to unmarshal config event", "payload", payload, "error", err)
		return
	}
	if event.InstanceID == b.instanceID || b.local == nil {
		return
	}
	b.local.Invalidate(ctx)
	b.logger.Debugw("package center invalidated by peer", "instance_id", event.InstanceID)
}

// Start runs Subscribe in the background.
func (b *RedisConfigEventBus) Start(ctx context.Context) {
	goroutine.SafeGo(b.logger, "config-event-subscriber", func() {
		_ = b.Subscribe(ctx)
	})
}
