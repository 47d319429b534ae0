package core

import (
	"sync"
	"time"
)

// Clock supplies wall time to the frame driver.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real time.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a Clock moved by hand, for tests and replays.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock starts a manual clock at t.
func NewManualClock(t time.Time) *ManualClock {
	return &ManualClock{now: t}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set jumps the clock to t.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Advance moves the clock forward by d and returns the new time.
func (c *ManualClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// PauseClock converts wall time into game time by subtracting every
// interval spent paused. The zero value is running and has never paused.
type PauseClock struct {
	paused   bool
	pausedAt time.Time
	total    time.Duration
}

// Paused reports whether the clock is currently stopped.
func (p *PauseClock) Paused() bool {
	return p.paused
}

// Pause stops game time at wall. Pausing twice is a no-op.
func (p *PauseClock) Pause(wall time.Time) {
	if p.paused {
		return
	}
	p.paused = true
	p.pausedAt = wall
}

// Resume restarts game time at wall.
func (p *PauseClock) Resume(wall time.Time) {
	if !p.paused {
		return
	}
	if d := wall.Sub(p.pausedAt); d > 0 {
		p.total += d
	}
	p.paused = false
}

// GameTime maps a wall-clock instant to game time.
// While paused, game time is frozen at the moment of pausing.
func (p *PauseClock) GameTime(wall time.Time) time.Time {
	if p.paused {
		wall = p.pausedAt
	}
	return wall.Add(-p.total)
}
