package pubsub

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildingai/cozepkg/internal/shared/logger"
)

type countingInvalidator struct{ n atomic.Int32 }

func (c *countingInvalidator) Invalidate(context.Context) { c.n.Add(1) }

func TestRedisConfigEventBus_RelaysToPeers(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	writerLocal := &countingInvalidator{}
	peerLocal := &countingInvalidator{}
	writer := NewRedisConfigEventBus(client, writerLocal, logger.NewNop())
	peer := NewRedisConfigEventBus(client, peerLocal, logger.NewNop())

	writer.Start(ctx)
	peer.Start(ctx)

	require.Eventually(t, func() bool {
		return len(mr.PubSubChannels(packageConfigChannel)) == 1 &&
			mr.PubSubNumSub(packageConfigChannel)[packageConfigChannel] == 2
	}, 2*time.Second, 10*time.Millisecond)

	writer.Invalidate(ctx)

	require.Eventually(t, func() bool { return peerLocal.n.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	// The writer only invalidates itself once, not again from its own event.
	time.Sleep(50 * time.Millisecond)
	assert.EqualValues(t, 1, writerLocal.n.Load())
}

func TestRedisConfigEventBus_PublishFailureStillInvalidatesLocally(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	local := &countingInvalidator{}
	bus := NewRedisConfigEventBus(client, local, logger.NewNop())
	bus.Invalidate(context.Background())

	assert.EqualValues(t, 1, local.n.Load())
	assert.Error(t, bus.Publish(context.Background()))
}
