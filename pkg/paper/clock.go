package paper

import (
	"sync"
	"time"
)

// Clock reports elapsed wall-clock time in seconds. Readings must not
// decrease under normal operation; Paper clamps negative deltas anyway.
type Clock interface {
	Seconds() float64
}

// SystemClock measures monotonic time since it was created.
type SystemClock struct {
	start time.Time
}

// NewSystemClock starts a clock at zero.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Seconds returns the time elapsed since NewSystemClock.
func (c *SystemClock) Seconds() float64 {
	return time.Since(c.start).Seconds()
}

// ManualClock only moves when told to. Used by tests and by headless
// simulation where frames advance by a fixed step.
type ManualClock struct {
	mu  sync.Mutex
	now float64
}

// Seconds returns the current reading.
func (c *ManualClock) Seconds() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock by d seconds. A negative d moves it backwards.
func (c *ManualClock) Advance(d float64) {
	c.mu.Lock()
	c.now += d
	c.mu.Unlock()
}

// Set jumps the clock to t.
func (c *ManualClock) Set(t float64) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}
