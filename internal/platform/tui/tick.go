// Package tui provides the Bubble Tea integration for brick breaker.
// It handles the terminal UI loop, input mapping, menus, the scoreboard
// and SSH sessions.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation frame. Loop names the model
// that scheduled it; a tick left over from a finished game is dropped.
type TickMsg struct {
	Time time.Time
	Loop uint64
}

var tickLoops atomic.Uint64

func newTickLoop() uint64 {
	return tickLoops.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, loop uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Loop: loop}
	})
}
