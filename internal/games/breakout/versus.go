package breakout

import (
	"errors"

	"github.com/vovakirdan/brickbreaker/internal/core"
	"github.com/vovakirdan/brickbreaker/internal/registry"
)

// seat is one player of a versus match.
type seat struct {
	id   core.PlayerID
	run  *Run
	ctrl Controller
}

// Versus runs two independent games side by side on one keyboard.
// Each player has their own run, random stream and score entry.
// The match ends when both runs are terminal.
type Versus struct {
	env     registry.Env
	runtime core.RuntimeConfig
	seats   [2]seat
	err     error
}

// NewVersus creates a two-player match. Call Reset before stepping.
func NewVersus(env registry.Env) *Versus {
	return &Versus{env: env.WithDefaults()}
}

// ID returns the unique identifier for this mode.
func (v *Versus) ID() string {
	return "breakout_versus"
}

// Title returns the display name for this mode.
func (v *Versus) Title() string {
	return "Brick Breaker (Versus)"
}

// Reset starts fresh runs for both players.
func (v *Versus) Reset(runtime core.RuntimeConfig) {
	v.runtime = runtime
	now := v.env.Clock.Now()
	var errs []error
	for i, id := range []core.PlayerID{core.Player1, core.Player2} {
		run, err := NewRun(Options{
			Config:     v.env.Config,
			Seed:       runtime.Seed + int64(i),
			StartLevel: v.env.StartLevel,
			PlayerName: seatName(v.env.PlayerName, id),
		}, Collaborators{
			Audio:   v.env.Audio,
			Scores:  v.env.Scores,
			Logger:  v.env.Logger,
			OnFault: v.env.OnFault,
		}, now)
		errs = append(errs, err)
		v.seats[i] = seat{id: id, run: run}
	}
	v.err = errors.Join(errs...)
	if v.err != nil && v.env.OnFault != nil {
		v.env.OnFault(v.err)
	}
}

func seatName(name string, id core.PlayerID) string {
	if id == core.Player2 {
		return name + "-p2"
	}
	return name + "-p1"
}

// Runs returns both runs, player 1 first.
func (v *Versus) Runs() [2]*Run {
	return [2]*Run{v.seats[0].run, v.seats[1].run}
}

func (v *Versus) ready() bool {
	return v.seats[0].run != nil && v.seats[1].run != nil
}

// Step treats a single input frame as player 1.
func (v *Versus) Step(in core.InputFrame) core.StepResult {
	m := core.NewMultiInputFrame()
	m.SetPlayer(core.Player1, in)
	return v.StepMulti(m)
}

// StepMulti advances both runs with their own input.
// Pause and restart from either player apply to the whole match.
func (v *Versus) StepMulti(in core.MultiInputFrame) core.StepResult {
	if !v.ready() {
		return core.StepResult{State: v.State(), Err: v.err}
	}

	pause := in.Any(core.ActionPause)
	restart := in.Any(core.ActionRestart)
	if restart && v.restartAllowed() {
		v.Reset(v.runtime)
		return core.StepResult{State: v.State(), Err: v.err}
	}

	now := v.env.Clock.Now()
	var errs []error
	for i := range v.seats {
		s := &v.seats[i]
		frame := in.Player(s.id).Clone()
		delete(frame.Actions, core.ActionPause)
		delete(frame.Actions, core.ActionRestart)
		for _, ev := range s.ctrl.Events(frame) {
			s.run.Handle(ev)
		}
		if pause {
			s.run.Handle(Pause)
		}
		errs = append(errs, s.run.Step(now))
	}
	return core.StepResult{State: v.State(), Err: errors.Join(errs...)}
}

// restartAllowed is true once both runs are over, or while the match is paused.
func (v *Versus) restartAllowed() bool {
	a, b := v.seats[0].run, v.seats[1].run
	return (a.Terminal() && b.Terminal()) || a.Paused() || b.Paused()
}

// Render draws both runs split vertically.
func (v *Versus) Render(dst *core.Screen) {
	dst.Clear()
	if !v.ready() {
		dst.DrawTextCentered(dst.Height()/2, "Cannot start match")
		return
	}
	half := dst.Width() / 2
	left := core.NewRect(0, 0, half, dst.Height())
	right := core.NewRect(half, 0, dst.Width()-half, dst.Height())
	RenderSnapshot(dst, left, v.seats[0].run.Snapshot())
	RenderSnapshot(dst, right, v.seats[1].run.Snapshot())
	// seat labels sit on the bottom border
	dst.DrawTextColor(left.X+2, left.Bottom()-1, " P1 ", core.ColorBrightCyan)
	dst.DrawTextColor(right.X+2, right.Bottom()-1, " P2 ", core.ColorBrightMagenta)
}

// State reports the match: the higher score, and over only when both runs are.
func (v *Versus) State() core.GameState {
	if !v.ready() {
		return core.GameState{GameOver: true}
	}
	a, b := v.seats[0].run.State(), v.seats[1].run.State()
	return core.GameState{
		Score:    max(a.Score, b.Score),
		Lives:    a.Lives + b.Lives,
		Level:    max(a.Level, b.Level),
		GameOver: a.GameOver && b.GameOver,
		GameWon:  a.GameWon || b.GameWon,
		Paused:   a.Paused && b.Paused,
	}
}

// SpectatorView returns both snapshots.
func (v *Versus) SpectatorView() any {
	if !v.ready() {
		return nil
	}
	return []Snapshot{v.seats[0].run.Snapshot(), v.seats[1].run.Snapshot()}
}
