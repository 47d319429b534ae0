package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickbreaker/internal/config"
	"github.com/vovakirdan/brickbreaker/internal/core"
	"github.com/vovakirdan/brickbreaker/internal/registry"
)

// DefaultPublishEvery is how many frames pass between spectator updates.
const DefaultPublishEvery = 3

// Hooks are optional services a running game reports to.
type Hooks struct {
	Logger *log.Logger

	// Publish receives the game's spectator view, if the mode has one.
	Publish      func(view any)
	PublishEvery int

	// Renderer styles frames for the player's terminal; nil uses stdout's.
	Renderer *ScreenRenderer
}

// Model is the Bubble Tea model for running a game mode.
type Model struct {
	game    registry.Game
	screen  *core.Screen
	config  core.RuntimeConfig
	hooks   Hooks
	keys    *KeyMapper
	hold    *HoldTracker
	clock   core.Clock
	pending core.MultiInputFrame // one-shot actions since the last tick
	loop    uint64

	gameState  core.GameState
	lastErr    error
	frames     uint64
	quitting   bool
	backToMenu bool
	standalone bool // Back quits the program instead of returning to a menu
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, hooks Hooks) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if hooks.Logger == nil {
		hooks.Logger = log.New(os.Stderr)
	}
	if hooks.PublishEvery <= 0 {
		hooks.PublishEvery = DefaultPublishEvery
	}
	if hooks.Renderer == nil {
		hooks.Renderer = defaultRenderer
	}
	_, versus := game.(registry.MultiPlayer)

	return Model{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:  cfg,
		hooks:   hooks,
		keys:    NewKeyMapper(versus),
		hold:    NewHoldTracker(DefaultInitialHold, DefaultRepeatHold),
		clock:   core.SystemClock{},
		pending: core.NewMultiInputFrame(),
		loop:    newTickLoop(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The surface has a fixed size; only the terminal buffer follows the window.
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick(msg.Time)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if err := m.saveScreenshot(); err != nil {
			m.hooks.Logger.Warn("screenshot failed", "err", err)
		}
		return m, nil
	}

	b, quit := m.keys.MapKey(msg)
	if quit {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case b.Action == core.ActionNone:
	case b.Action == core.ActionBack:
		// Leaving is only offered once the run stops moving.
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			m.hold.ReleaseAll()
			if m.standalone {
				m.quitting = true
				return m, tea.Quit
			}
		}
	case IsHeld(b.Action):
		m.hold.Press(b.Player, b.Action, m.clock.Now())
	default:
		f := m.pending.Player(b.Player)
		f.Set(b.Action)
		m.pending.SetPlayer(b.Player, f)
	}

	return m, nil
}

// handleTick advances the game by one frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	frame := m.pending
	m.pending = core.NewMultiInputFrame()
	m.hold.Apply(&frame, now)

	var result core.StepResult
	if mp, ok := m.game.(registry.MultiPlayer); ok {
		result = mp.StepMulti(frame)
	} else {
		result = m.game.Step(frame.Player(core.Player1))
	}
	m.gameState = result.State

	if result.Err != nil && result.Err != m.lastErr {
		m.hooks.Logger.Error("run failed", "game", m.game.ID(), "err", result.Err)
	}
	m.lastErr = result.Err

	m.frames++
	m.publish()

	return m, tickCmd(m.config.TickRate, m.loop)
}

// publish hands the spectator view to the hook every few frames.
func (m Model) publish() {
	if m.hooks.Publish == nil || m.frames%uint64(m.hooks.PublishEvery) != 0 {
		return
	}
	sp, ok := m.game.(registry.Spectatable)
	if !ok {
		return
	}
	if view := sp.SpectatorView(); view != nil {
		m.hooks.Publish(view)
	}
}

// saveScreenshot saves the current screen to a text file under the user directory.
func (m *Model) saveScreenshot() error {
	m.game.Render(m.screen)

	base := config.UserDir()
	if base == "" {
		return fmt.Errorf("no home directory for screenshots")
	}
	dir := filepath.Join(base, "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	return os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// BackToMenu reports whether the player asked to leave the game.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.hooks.Renderer.Render(m.screen)
}

// Run plays a single mode until the player quits.
func Run(game registry.Game, cfg core.RuntimeConfig, hooks Hooks) error {
	model := NewModel(game, cfg, hooks)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
