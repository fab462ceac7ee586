package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/buildingai/cozepkg/internal/shared/biztime"
)

func TestKeyedLimiter_BurstThenRefill(t *testing.T) {
	clock := biztime.NewFixedClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	l := NewKeyedLimiter(1, 2, clock)

	assert.True(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("1.1.1.1"))
	assert.False(t, l.Allow("1.1.1.1"), "burst exhausted")
	assert.True(t, l.Allow("2.2.2.2"), "keys are independent")

	clock.Advance(time.Second)
	assert.True(t, l.Allow("1.1.1.1"))
	assert.False(t, l.Allow("1.1.1.1"))
}

func TestKeyedLimiter_Sweep(t *testing.T) {
	clock := biztime.NewFixedClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	l := NewKeyedLimiter(5, 5, clock)

	l.Allow("old")
	clock.Advance(11 * time.Minute)
	l.Allow("fresh")

	assert.Equal(t, 1, l.Sweep())
	assert.Len(t, l.visitors, 1)
	assert.Contains(t, l.visitors, "fresh")
}
