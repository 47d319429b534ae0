package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brickbreaker/internal/core"
)

// Binding is an action performed by a seat.
type Binding struct {
	Player core.PlayerID
	Action core.Action
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
//
// Single player uses A/D or the arrows with Space to launch. In versus
// mode the keyboard is split: player 1 on A/D/S, player 2 on the arrows
// with Up or Space to launch. P, R and Esc belong to the whole match.
type KeyMapper struct {
	versus bool
}

// NewKeyMapper creates a key mapper for a single player or a split keyboard.
func NewKeyMapper(versus bool) *KeyMapper {
	return &KeyMapper{versus: versus}
}

// MapKey translates a key message to a seat action.
// Returns ActionNone for unbound keys and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (b Binding, isQuit bool) {
	key := msg.String()
	p1 := func(a core.Action) Binding { return Binding{Player: core.Player1, Action: a} }
	p2 := func(a core.Action) Binding { return Binding{Player: core.Player2, Action: a} }

	// Global keys
	switch key {
	case "ctrl+c", "q":
		return p1(core.ActionQuit), true
	case "p":
		return p1(core.ActionPause), false
	case "r":
		return p1(core.ActionRestart), false
	case "b", "esc":
		return p1(core.ActionBack), false
	case "enter":
		return p1(core.ActionConfirm), false
	}

	if km.versus {
		switch key {
		case "a":
			return p1(core.ActionLeft), false
		case "d":
			return p1(core.ActionRight), false
		case "s", "w":
			return p1(core.ActionLaunch), false
		case "left":
			return p2(core.ActionLeft), false
		case "right":
			return p2(core.ActionRight), false
		case "up", " ":
			return p2(core.ActionLaunch), false
		}
		return p1(core.ActionNone), false
	}

	switch key {
	case "a", "left":
		return p1(core.ActionLeft), false
	case "d", "right":
		return p1(core.ActionRight), false
	case " ", "w", "up", "s":
		return p1(core.ActionLaunch), false
	}

	return p1(core.ActionNone), false
}

// IsHeld reports whether an action is a held direction rather than a trigger.
func IsHeld(a core.Action) bool {
	return a == core.ActionLeft || a == core.ActionRight
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
