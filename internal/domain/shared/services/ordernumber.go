package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/buildingai/cozepkg/internal/shared/biztime"
)

// OrderNumberGenerator produces order numbers of the form
// <prefix><yyyyMMddHHmmss><microseconds, 6 digits>.
type OrderNumberGenerator interface {
	Generate(prefix string) string
}

// DefaultOrderNumberGenerator is monotonic within one process: two calls in
// the same microsecond get consecutive numbers. Cross-process uniqueness is
// left to the unique index on order_no.
type DefaultOrderNumberGenerator struct {
	mu    sync.Mutex
	last  time.Time
	clock biztime.Clock
}

func NewOrderNumberGenerator() *DefaultOrderNumberGenerator {
	return &DefaultOrderNumberGenerator{clock: biztime.SystemClock()}
}

func NewOrderNumberGeneratorWithClock(clock biztime.Clock) *DefaultOrderNumberGenerator {
	return &DefaultOrderNumberGenerator{clock: clock}
}

func (g *DefaultOrderNumberGenerator) Generate(prefix string) string {
	g.mu.Lock()
	now := g.clock.Now().Truncate(time.Microsecond)
	if !now.After(g.last) {
		now = g.last.Add(time.Microsecond)
	}
	g.last = now
	g.mu.Unlock()

	local := now.In(biztime.Location())
	return fmt.Sprintf("%s%s%06d", prefix, local.Format("20060102150405"), local.Nanosecond()/1000)
}
