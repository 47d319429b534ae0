package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/brickbreaker/internal/config"
)

// LevelMenuModel lets users start the campaign or pick a starting level.
type LevelMenuModel struct {
	title         string
	levels        []config.LevelConfig
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	keyMapper     *KeyMapper
	start         int
	chosen        bool
	quitting      bool
	back          bool
}

// NewLevelMenuModel creates a level menu for the given mode title.
func NewLevelMenuModel(title string, levels []config.LevelConfig, width, height int) LevelMenuModel {
	return LevelMenuModel{
		title:     title,
		levels:    levels,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(false),
	}
}

// Init initializes the model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelSelectKey(action)
		}
		return m.handleModeSelectKey(action)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m LevelMenuModel) handleModeSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = 0
	case MenuActionDown:
		m.cursor = 1
	case MenuActionSelect:
		if m.cursor == 0 {
			m.chosen = true
			m.start = 0
			return m, nil
		}
		m.inLevelSelect = true
		m.levelCursor = 0
	case MenuActionBack:
		m.back = true
	}
	return m, nil
}

func (m LevelMenuModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.chosen = true
		m.start = m.levelCursor
	case MenuActionBack:
		m.inLevelSelect = false
	}
	return m, nil
}

// View renders the mode or level selection.
func (m LevelMenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")

	if m.inLevelSelect {
		b.WriteString(centerText("SELECT LEVEL", m.width))
		b.WriteString("\n\n")
		for i, lvl := range m.levels {
			cursor := "  "
			if i == m.levelCursor {
				cursor = "> "
			}
			name := lvl.Name
			if name == "" {
				name = "Level"
			}
			b.WriteString(centerText(fmt.Sprintf("%s%2d. %s", cursor, i+1, name), m.width))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(centerText(strings.ToUpper(m.title), m.width))
		b.WriteString("\n\n")
		options := []string{
			fmt.Sprintf("Campaign (%d levels)", len(m.levels)),
			"Select Level...",
		}
		for i, opt := range options {
			cursor := "  "
			if i == m.cursor {
				cursor = "> "
			}
			b.WriteString(centerText(cursor+opt, m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))
	return b.String()
}

// Start returns the chosen zero-based starting level and whether a choice was made.
func (m LevelMenuModel) Start() (int, bool) {
	return m.start, m.chosen
}

// IsQuitting returns true if user wants to quit.
func (m LevelMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelMenuModel) WantsBack() bool {
	return m.back
}
