// Package registry provides a global registry for game mode factories.
// Modes register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickbreaker/internal/config"
	"github.com/vovakirdan/brickbreaker/internal/core"
)

// Game is the interface every mode implements.
// Games contain pure logic with no Bubble Tea dependency.
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this mode (e.g., "breakout").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a fresh run, discarding the previous one entirely.
	// The RuntimeConfig provides screen dimensions and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one frame.
	// Input is abstracted to platform-level actions.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// MultiPlayer is implemented by modes that take one input frame per player.
// The platform splits the keyboard between players for these modes.
type MultiPlayer interface {
	StepMulti(in core.MultiInputFrame) core.StepResult
}

// Spectatable is implemented by modes that can publish a serialisable,
// read-only view of themselves for spectators.
type Spectatable interface {
	SpectatorView() any
}

// Env carries the collaborators a mode is built with. Every field is
// optional; factories fill gaps with defaults so a zero Env works.
type Env struct {
	Config     config.BreakoutConfig
	Logger     *log.Logger
	Audio      core.AudioSink
	Scores     core.ScoreSaver
	Clock      core.Clock
	PlayerName string
	StartLevel int // zero-based
	OnFault    func(error)
}

// WithDefaults returns env with its empty fields filled in.
func (e Env) WithDefaults() Env {
	if len(e.Config.Levels) == 0 {
		e.Config = config.DefaultBreakoutConfig()
	}
	if e.Clock == nil {
		e.Clock = core.SystemClock{}
	}
	if e.Audio == nil {
		e.Audio = core.NopAudio{}
	}
	if e.PlayerName == "" {
		e.PlayerName = "player"
	}
	return e
}

// GameInfo contains metadata about a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a mode.
type Factory func(env Env) Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a mode factory to the registry.
// Typically called from an init() function.
// Panics if a mode with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	titles[id] = f(Env{}).Title()
}

// List returns information about all registered modes, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a mode by its ID.
// Returns an error if the ID is not registered.
func Create(id string, env Env) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(env), nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
