// Package biztime fixes the business timezone. Storage and transport are UTC;
// the business zone only decides date boundaries for filters.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const DefaultTimezone = "Asia/Shanghai"

var (
	location *time.Location
	once     sync.Once
	initErr  error
)

// Init loads the business timezone once. Empty means Asia/Shanghai.
func Init(tz string) error {
	once.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		location, initErr = time.LoadLocation(tz)
	})
	return initErr
}

func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(fmt.Sprintf("biztime: load timezone %q: %v", tz, err))
	}
}

// Location returns the business timezone, initialising the default lazily.
func Location() *time.Location {
	if err := Init(""); err != nil {
		panic(fmt.Sprintf("biztime: load default timezone: %v", err))
	}
	return location
}

func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfDayUTC is 00:00 of t's business day, in UTC.
func StartOfDayUTC(t time.Time) time.Time {
	b := t.In(Location())
	return time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, Location()).UTC()
}

// EndOfDayUTC is the last nanosecond of t's business day, in UTC.
func EndOfDayUTC(t time.Time) time.Time {
	return StartOfDayUTC(t).Add(24*time.Hour - time.Nanosecond)
}

// ParseDate accepts YYYY-MM-DD (business midnight) or RFC3339 and returns UTC.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(time.DateOnly, s, Location()); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t.UTC(), nil
}

// Clock abstracts the wall clock for code whose behavior depends on "now".
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return NowUTC() }

// SystemClock returns the UTC wall clock.
func SystemClock() Clock { return systemClock{} }

// FixedClock is a settable Clock for tests.
type FixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func NewFixedClock(t time.Time) *FixedClock { return &FixedClock{t: t} }

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}
