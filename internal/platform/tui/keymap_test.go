package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brickbreaker/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKeySinglePlayer(t *testing.T) {
	km := NewKeyMapper(false)
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
		quit bool
	}{
		{runeKey("a"), core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{runeKey("d"), core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeySpace}, core.ActionLaunch, false},
		{runeKey("w"), core.ActionLaunch, false},
		{runeKey("p"), core.ActionPause, false},
		{runeKey("r"), core.ActionRestart, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{runeKey("q"), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runeKey("x"), core.ActionNone, false},
	}

	for _, tt := range tests {
		b, quit := km.MapKey(tt.msg)
		if b.Action != tt.want || quit != tt.quit {
			t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), b.Action, quit, tt.want, tt.quit)
		}
		if b.Player != core.Player1 {
			t.Errorf("MapKey(%q) player = %v, want P1", tt.msg.String(), b.Player)
		}
	}
}

func TestMapKeyVersusSplitsKeyboard(t *testing.T) {
	km := NewKeyMapper(true)
	tests := []struct {
		msg    tea.KeyMsg
		player core.PlayerID
		want   core.Action
	}{
		{runeKey("a"), core.Player1, core.ActionLeft},
		{runeKey("d"), core.Player1, core.ActionRight},
		{runeKey("s"), core.Player1, core.ActionLaunch},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.Player2, core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.Player2, core.ActionRight},
		{tea.KeyMsg{Type: tea.KeySpace}, core.Player2, core.ActionLaunch},
		{tea.KeyMsg{Type: tea.KeyUp}, core.Player2, core.ActionLaunch},
		{runeKey("p"), core.Player1, core.ActionPause},
	}

	for _, tt := range tests {
		b, _ := km.MapKey(tt.msg)
		if b.Player != tt.player || b.Action != tt.want {
			t.Errorf("MapKey(%q) = %v/%v, want %v/%v", tt.msg.String(), b.Player, b.Action, tt.player, tt.want)
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper(false)
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey("q"), MenuActionQuit},
		{runeKey("z"), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestHoldTracker(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	h := NewHoldTracker(300*time.Millisecond, 100*time.Millisecond)

	h.Press(core.Player1, core.ActionLeft, start)
	if !h.Held(core.Player1, core.ActionLeft, start.Add(299*time.Millisecond)) {
		t.Error("first press should hold for the initial window")
	}
	if h.Held(core.Player1, core.ActionLeft, start.Add(300*time.Millisecond)) {
		t.Error("hold should expire at the end of the window")
	}

	// an auto-repeat inside the window refreshes with the shorter window
	h.Press(core.Player1, core.ActionLeft, start.Add(200*time.Millisecond))
	if !h.Held(core.Player1, core.ActionLeft, start.Add(299*time.Millisecond)) {
		t.Error("repeat should keep the key held")
	}
	if h.Held(core.Player1, core.ActionLeft, start.Add(300*time.Millisecond)) {
		t.Error("repeat window should be shorter than the initial one")
	}

	// pressing the opposite direction releases immediately
	h.Press(core.Player1, core.ActionRight, start.Add(210*time.Millisecond))
	if h.Held(core.Player1, core.ActionLeft, start.Add(211*time.Millisecond)) {
		t.Error("left should be released by pressing right")
	}
	if !h.Held(core.Player1, core.ActionRight, start.Add(211*time.Millisecond)) {
		t.Error("right should be held")
	}
}

func TestHoldTrackerApplyPerPlayer(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	h := NewHoldTracker(DefaultInitialHold, DefaultRepeatHold)
	h.Press(core.Player1, core.ActionLeft, start)
	h.Press(core.Player2, core.ActionRight, start)

	frame := core.NewMultiInputFrame()
	h.Apply(&frame, start.Add(10*time.Millisecond))
	if !frame.Player(core.Player1).Has(core.ActionLeft) || frame.Player(core.Player1).Has(core.ActionRight) {
		t.Error("P1 should hold left only")
	}
	if !frame.Player(core.Player2).Has(core.ActionRight) {
		t.Error("P2 should hold right")
	}

	late := core.NewMultiInputFrame()
	h.Apply(&late, start.Add(time.Second))
	if late.Any(core.ActionLeft) || late.Any(core.ActionRight) {
		t.Error("expired holds should not apply")
	}

	h.Press(core.Player1, core.ActionLeft, start.Add(time.Second))
	h.ReleaseAll()
	if h.Held(core.Player1, core.ActionLeft, start.Add(time.Second)) {
		t.Error("ReleaseAll should forget held keys")
	}
}
