package breakout

import (
	"github.com/vovakirdan/brickbreaker/internal/core"
	"github.com/vovakirdan/brickbreaker/internal/registry"
)

// Controller turns per-frame input frames into the run's discrete events.
// Held directions become start/stop edges.
type Controller struct {
	left, right bool
}

// Events returns the events implied by one frame of input.
func (c *Controller) Events(in core.InputFrame) []InputEvent {
	var evs []InputEvent
	if l := in.Has(core.ActionLeft); l != c.left {
		c.left = l
		evs = append(evs, edge(l, MoveLeftStart, MoveLeftStop))
	}
	if r := in.Has(core.ActionRight); r != c.right {
		c.right = r
		evs = append(evs, edge(r, MoveRightStart, MoveRightStop))
	}
	if in.Has(core.ActionLaunch) {
		evs = append(evs, Launch)
	}
	if in.Has(core.ActionPause) {
		evs = append(evs, Pause)
	}
	if in.Has(core.ActionRestart) {
		evs = append(evs, Restart)
	}
	return evs
}

// Reset forgets held directions, for use with a fresh run.
func (c *Controller) Reset() {
	c.left, c.right = false, false
}

func edge(on bool, start, stop InputEvent) InputEvent {
	if on {
		return start
	}
	return stop
}

// Game adapts a Run to the registry interface: single player on one keyboard.
type Game struct {
	env     registry.Env
	runtime core.RuntimeConfig
	run     *Run
	ctrl    Controller
	err     error // set when the run could not be built
}

// New creates a single-player game. Call Reset before stepping.
func New(env registry.Env) *Game {
	return &Game{env: env.WithDefaults()}
}

// ID returns the unique identifier for this mode.
func (g *Game) ID() string {
	return "breakout"
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	return "Brick Breaker"
}

// Reset replaces the current run with a new one.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.ctrl.Reset()
	g.run, g.err = NewRun(Options{
		Config:     g.env.Config,
		Seed:       runtime.Seed,
		StartLevel: g.env.StartLevel,
		PlayerName: g.env.PlayerName,
	}, g.collaborators(), g.env.Clock.Now())

	if g.err != nil {
		if g.env.Logger != nil {
			g.env.Logger.Error("cannot start run", "err", g.err)
		}
		if g.env.OnFault != nil {
			g.env.OnFault(g.err)
		}
	}
}

func (g *Game) collaborators() Collaborators {
	return Collaborators{
		Audio:   g.env.Audio,
		Scores:  g.env.Scores,
		Logger:  g.env.Logger,
		OnFault: g.env.OnFault,
	}
}

// Run returns the active run, or nil if it could not be built.
func (g *Game) Run() *Run {
	return g.run
}

// Err returns why the last Reset failed.
func (g *Game) Err() error {
	return g.err
}

// Step delivers one frame of input and advances the run.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.run == nil {
		return core.StepResult{State: g.State(), Err: g.err}
	}

	for _, ev := range g.ctrl.Events(in) {
		g.run.Handle(ev)
	}
	if g.run.RestartRequested() {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State(), Err: g.err}
	}

	err := g.run.Step(g.env.Clock.Now())
	return core.StepResult{State: g.State(), Err: err}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.run == nil {
		dst.DrawTextCentered(dst.Height()/2-1, "Cannot start game")
		if g.err != nil {
			dst.DrawTextCenteredIn(dst.Bounds(), dst.Height()/2+1, g.err.Error(), core.ColorRed)
		}
		return
	}
	RenderSnapshot(dst, dst.Bounds(), g.run.Snapshot())
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.run == nil {
		return core.GameState{GameOver: true}
	}
	return g.run.State()
}

// SpectatorView returns the run snapshot for spectators.
func (g *Game) SpectatorView() any {
	if g.run == nil {
		return nil
	}
	return g.run.Snapshot()
}

// Register the modes with the registry
func init() {
	registry.Register("breakout", func(env registry.Env) registry.Game {
		return New(env)
	})
	registry.Register("breakout_versus", func(env registry.Env) registry.Game {
		return NewVersus(env)
	})
}
