package testutil

import (
	"sync"
	"time"
)

// DeterministicClock is a test clock that starts at a fixed instant and
// advances by a fixed step on every Now call.
//
// This makes creation timestamps reproducible so the same scenario always
// produces the same DateAdded values and the same date ordering.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type DeterministicClock struct {
	mu    sync.Mutex
	start time.Time
	step  time.Duration
	now   time.Time
}

// Epoch2024 is the default start instant: 2024-01-01T00:00:00Z.
var Epoch2024 = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// NewDeterministicClock creates a clock starting at Epoch2024 that advances
// one minute per call.
//
// The first call to Now() returns Epoch2024.
func NewDeterministicClock() *DeterministicClock {
	return NewDeterministicClockAt(Epoch2024, time.Minute)
}

// NewDeterministicClockAt creates a clock starting at start, advancing by step.
func NewDeterministicClockAt(start time.Time, step time.Duration) *DeterministicClock {
	return &DeterministicClock{start: start, step: step, now: start}
}

// Now returns the current instant and advances the clock.
func (c *DeterministicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// Peek returns the instant the next Now call will return.
func (c *DeterministicClock) Peek() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Reset rewinds the clock to its start instant.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.start
}
