package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brickbreaker/internal/core"
	"github.com/vovakirdan/brickbreaker/internal/registry"
	"github.com/vovakirdan/brickbreaker/internal/storage"
)

// SessionDeps are the services shared by every game a session starts.
type SessionDeps struct {
	// Env is the base environment; PlayerName and StartLevel are set per game.
	Env   registry.Env
	Store *storage.Store // may be nil
	Hooks Hooks
}

type sessionView int

const (
	viewMenu sessionView = iota
	viewLevels
	viewGame
	viewScores
)

// SessionModel manages the full session flow: menu -> level -> game -> menu,
// with the score table one key away. It is the top-level model for both
// local play and SSH sessions.
type SessionModel struct {
	deps     SessionDeps
	config   core.RuntimeConfig
	player   string
	view     sessionView
	mode     MenuItem
	menu     MenuModel
	levels   LevelMenuModel
	scores   ScoreboardModel
	game     *Model
	quitting bool
}

// NewSessionModel creates a new session model for the named player.
func NewSessionModel(deps SessionDeps, cfg core.RuntimeConfig, player string) SessionModel {
	deps.Env = deps.Env.WithDefaults()
	if player != "" {
		deps.Env.PlayerName = player
	}

	m := SessionModel{
		deps:   deps,
		config: cfg,
		player: deps.Env.PlayerName,
	}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	best := 0
	if m.deps.Store != nil {
		if hs, err := m.deps.Store.HighScore(); err == nil {
			best = hs
		}
	}
	return NewMenuModel(m.config.ScreenW, m.config.ScreenH, best)
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewLevels:
		return m.updateLevels(msg)
	case viewGame:
		return m.updateGame(msg)
	case viewScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.deps.Store, m.config.ScreenW, m.config.ScreenH)
		m.view = viewScores
		return m, m.scores.Init()

	case m.menu.Selected() != nil:
		m.mode = *m.menu.Selected()
		m.levels = NewLevelMenuModel(m.mode.Title, m.deps.Env.Config.Levels, m.config.ScreenW, m.config.ScreenH)
		m.view = viewLevels
		return m, m.levels.Init()
	}

	return m, cmd
}

func (m SessionModel) updateLevels(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.levels.Update(msg)
	m.levels = next.(LevelMenuModel)

	if m.levels.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.levels.WantsBack() {
		return m.backToMenu()
	}
	if start, ok := m.levels.Start(); ok {
		return m.startGame(start)
	}
	return m, cmd
}

// startGame creates the selected mode beginning at the given level.
func (m SessionModel) startGame(start int) (tea.Model, tea.Cmd) {
	env := m.deps.Env
	env.StartLevel = start

	game, err := registry.Create(m.mode.GameID, env)
	if err != nil {
		// The menu only lists registered modes
		if env.Logger != nil {
			env.Logger.Error("cannot create game", "id", m.mode.GameID, "err", err)
		}
		return m.backToMenu()
	}

	model := NewModel(game, m.config, m.deps.Hooks)
	m.game = &model
	m.view = viewGame
	return m, m.game.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	model := next.(Model)
	m.game = &model

	if m.game.quitting {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		m.game = nil
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	m.scores = next.(ScoreboardModel)

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.menu = m.newMenu()
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewLevels:
		return m.levels.View()
	case viewGame:
		return m.game.View()
	case viewScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the menu-driven session locally.
func RunSession(deps SessionDeps, cfg core.RuntimeConfig, player string) error {
	p := tea.NewProgram(
		NewSessionModel(deps, cfg, player),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
