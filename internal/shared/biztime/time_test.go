package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayBoundariesInShanghai(t *testing.T) {
	MustInit("Asia/Shanghai")

	at := time.Date(2025, 1, 7, 20, 0, 0, 0, time.UTC) // 2025-01-08 04:00 in Shanghai
	assert.Equal(t, time.Date(2025, 1, 7, 16, 0, 0, 0, time.UTC), StartOfDayUTC(at))
	assert.Equal(t, time.Date(2025, 1, 8, 15, 59, 59, 999999999, time.UTC), EndOfDayUTC(at))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 28, 16, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("2025-03-01T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Hour())

	_, err = ParseDate("yesterday")
	assert.Error(t, err)
}

func TestFixedClock(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewFixedClock(start)
	c.Advance(time.Hour)
	assert.Equal(t, start.Add(time.Hour), c.Now())
}
