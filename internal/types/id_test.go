package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGenerateID(t *testing.T) {
	ts := time.Date(2025, 12, 31, 23, 59, 58, 999, time.UTC)
	assert.Equal(t, "STU20251231235958", GenerateID(ts))
}

func TestIDGenerator_NeverRepeatsWithinSameSecond(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	g := NewIDGenerator(fixedClock(now))

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		id := g.Next()
		require.Regexp(t, idPattern, id)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}

	assert.True(t, seen["STU20240501100000"])
	assert.True(t, seen["STU20240501100004"])
}

func TestIDGenerator_FollowsClock(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	g := NewIDGenerator(func() time.Time { return now })

	assert.Equal(t, "STU20240501100000", g.Next())

	now = now.Add(time.Minute)
	assert.Equal(t, "STU20240501100100", g.Next())
}

func TestIDGenerator_Observe(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	g := NewIDGenerator(fixedClock(now))

	g.Observe("STU20240501100010")
	g.Observe("STU20240101000000") // older, no effect
	g.Observe("not-an-id")
	g.Observe("STUgarbage")

	assert.Equal(t, "STU20240501100011", g.Next())
}

func TestIDGenerator_ObserveIgnoresFarFuture(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	g := NewIDGenerator(fixedClock(now))

	g.Observe("STU99991231235959")
	assert.Equal(t, "STU20240501100000", g.Next())

	// a few hours ahead is still honoured
	g.Observe("STU20240501150000")
	id := g.Next()
	assert.Equal(t, "STU20240501150001", id)
	assert.Regexp(t, idPattern, id)
}
