package multiplayer

import (
	"sync"
	"time"
)

// SeedGenerator issues game seeds. Seeds are derived from the clock in
// microsecond units and never repeat or decrease within one generator.
type SeedGenerator struct {
	now func() time.Time

	mu   sync.Mutex
	last uint64
}

// NewSeedGenerator returns a SeedGenerator reading now, or time.Now when
// now is nil.
func NewSeedGenerator(now func() time.Time) *SeedGenerator {
	if now == nil {
		now = time.Now
	}
	return &SeedGenerator{now: now}
}

// Next returns max(last+1, unixMillis*1000).
func (g *SeedGenerator) Next() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	next := uint64(g.now().UnixMilli()) * 1000
	if next <= g.last {
		next = g.last + 1
	}
	g.last = next

	return next
}
