package types

import (
	"strings"
	"sync"
	"time"
)

const (
	// IDPrefix is the fixed tag in front of every student ID.
	IDPrefix = "STU"

	idLayout = "20060102150405"

	// maxObserveAhead bounds how far past the clock an observed ID may be.
	// Stores written in another time zone are at most a day ahead; anything
	// later is ignored so Next keeps to the 14-digit timestamp.
	maxObserveAhead = 24 * time.Hour
)

// GenerateID returns IDPrefix followed by t formatted as YYYYMMDDHHMMSS.
//
// Two calls within the same second return the same value. Use IDGenerator
// when more than one ID may be issued per second.
func GenerateID(t time.Time) string {
	return IDPrefix + t.Format(idLayout)
}

// IDGenerator issues IDs in GenerateID's format that never repeat within
// one generator. When the clock has not moved past the last issued second,
// the next ID is one second after the last one.
type IDGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	last time.Time
}

// NewIDGenerator returns a generator reading time from now. A nil now means
// time.Now.
func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

// Next returns a new ID.
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	t := g.now().Truncate(time.Second)
	if !g.last.IsZero() && !t.After(g.last) {
		t = g.last.Add(time.Second)
	}
	g.last = t

	return GenerateID(t)
}

// Observe records an already issued ID so that Next never returns it or an
// earlier one. IDs that do not follow GenerateID's format, or that lie more
// than a day past the clock, are ignored.
func (g *IDGenerator) Observe(id string) {
	ts, ok := strings.CutPrefix(id, IDPrefix)
	if !ok {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	t, err := time.ParseInLocation(idLayout, ts, now.Location())
	if err != nil || t.After(now.Add(maxObserveAhead)) {
		return
	}
	if t.After(g.last) {
		g.last = t
	}
}
