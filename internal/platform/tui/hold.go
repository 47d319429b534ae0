package tui

import (
	"time"

	"github.com/vovakirdan/brickbreaker/internal/core"
)

// Terminals report presses and auto-repeats but never releases, so a
// direction counts as held until no key event has refreshed it for a while.
// The first press waits out the typical auto-repeat delay; repeats then
// keep it alive with a shorter window.
const (
	DefaultInitialHold = 300 * time.Millisecond
	DefaultRepeatHold  = 120 * time.Millisecond
)

type heldKey struct {
	player core.PlayerID
	action core.Action
}

// HoldTracker turns key press events into held directions.
type HoldTracker struct {
	initial time.Duration
	repeat  time.Duration
	until   map[heldKey]time.Time
}

// NewHoldTracker creates a tracker with the given hold windows.
func NewHoldTracker(initial, repeat time.Duration) *HoldTracker {
	return &HoldTracker{
		initial: initial,
		repeat:  repeat,
		until:   make(map[heldKey]time.Time),
	}
}

// Press records a key event for a held action at now.
// Pressing one direction releases the opposite one immediately.
func (h *HoldTracker) Press(player core.PlayerID, a core.Action, now time.Time) {
	opposite := core.ActionRight
	if a == core.ActionRight {
		opposite = core.ActionLeft
	}
	delete(h.until, heldKey{player, opposite})

	k := heldKey{player, a}
	window := h.initial
	if until, ok := h.until[k]; ok && now.Before(until) {
		window = h.repeat
	}
	h.until[k] = now.Add(window)
}

// Held reports whether the action is held at now.
func (h *HoldTracker) Held(player core.PlayerID, a core.Action, now time.Time) bool {
	until, ok := h.until[heldKey{player, a}]
	return ok && now.Before(until)
}

// Apply sets every action held at now on the frame and forgets expired ones.
func (h *HoldTracker) Apply(frame *core.MultiInputFrame, now time.Time) {
	for k, until := range h.until {
		if !now.Before(until) {
			delete(h.until, k)
			continue
		}
		f := frame.Player(k.player)
		f.Set(k.action)
		frame.SetPlayer(k.player, f)
	}
}

// ReleaseAll forgets every held key.
func (h *HoldTracker) ReleaseAll() {
	clear(h.until)
}
