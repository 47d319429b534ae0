package core

import (
	"testing"
	"time"
)

func TestPauseClockFreezesGameTime(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	var p PauseClock

	if got := p.GameTime(start); !got.Equal(start) {
		t.Fatalf("running clock should pass wall time through, got %v", got)
	}

	p.Pause(start.Add(2 * time.Second))
	if got := p.GameTime(start.Add(10 * time.Second)); !got.Equal(start.Add(2 * time.Second)) {
		t.Errorf("paused game time = %v, expected frozen at +2s", got)
	}

	p.Resume(start.Add(7 * time.Second))
	if p.Paused() {
		t.Error("clock should be running after Resume")
	}
	if got := p.GameTime(start.Add(8 * time.Second)); !got.Equal(start.Add(3 * time.Second)) {
		t.Errorf("game time after 5s pause = %v, expected +3s", got)
	}
}

func TestPauseClockIdempotent(t *testing.T) {
	start := time.Unix(1000, 0)
	var p PauseClock

	p.Resume(start) // not paused, no effect
	p.Pause(start)
	p.Pause(start.Add(time.Second)) // second pause keeps the first instant
	p.Resume(start.Add(4 * time.Second))

	if got := p.GameTime(start.Add(4 * time.Second)); !got.Equal(start) {
		t.Errorf("GameTime = %v, expected %v", got, start)
	}
}

func TestManualClock(t *testing.T) {
	start := time.Unix(0, 0)
	c := NewManualClock(start)

	if got := c.Advance(16 * time.Millisecond); !got.Equal(start.Add(16 * time.Millisecond)) {
		t.Errorf("Advance() = %v", got)
	}
	c.Set(start)
	if !c.Now().Equal(start) {
		t.Errorf("Set() did not move the clock")
	}
}
