package breakout

import (
	"slices"
	"time"

	"github.com/vovakirdan/brickbreaker/internal/config"
	"github.com/vovakirdan/brickbreaker/internal/core"
)

// PowerUpKind represents the type of a falling pickup.
type PowerUpKind int

const (
	PowerUpExtraBall PowerUpKind = iota
	PowerUpExpandPaddle
	PowerUpShrinkPaddle
	PowerUpSpeedUp
	PowerUpSlowDown
	PowerUpExtraLife
	powerUpKindCount // Sentinel for counting kinds
)

// PowerUpKinds lists every kind in declaration order.
func PowerUpKinds() []PowerUpKind {
	kinds := make([]PowerUpKind, 0, powerUpKindCount)
	for k := range powerUpKindCount {
		kinds = append(kinds, k)
	}
	return kinds
}

// String returns the event-style name of the kind.
func (k PowerUpKind) String() string {
	switch k {
	case PowerUpExtraBall:
		return "extraBall"
	case PowerUpExpandPaddle:
		return "expandPaddle"
	case PowerUpShrinkPaddle:
		return "shrinkPaddle"
	case PowerUpSpeedUp:
		return "speedUp"
	case PowerUpSlowDown:
		return "slowDown"
	case PowerUpExtraLife:
		return "extraLife"
	default:
		return "unknown"
	}
}

// Glyph returns the display character for a pickup.
func (k PowerUpKind) Glyph() rune {
	switch k {
	case PowerUpExtraBall:
		return 'B'
	case PowerUpExpandPaddle:
		return 'W'
	case PowerUpShrinkPaddle:
		return 'S'
	case PowerUpSpeedUp:
		return '+'
	case PowerUpSlowDown:
		return '-'
	case PowerUpExtraLife:
		return '♥'
	default:
		return '?'
	}
}

// Color returns the display colour for a pickup.
func (k PowerUpKind) Color() core.Color {
	switch k {
	case PowerUpExtraBall:
		return core.ColorBrightCyan
	case PowerUpExpandPaddle:
		return core.ColorBrightGreen
	case PowerUpShrinkPaddle:
		return core.ColorBrightRed
	case PowerUpSpeedUp:
		return core.ColorBrightYellow
	case PowerUpSlowDown:
		return core.ColorBrightBlue
	case PowerUpExtraLife:
		return core.ColorBrightMagenta
	default:
		return core.ColorWhite
	}
}

// Timed reports whether the kind stays active for a duration and is reverted.
func (k PowerUpKind) Timed() bool {
	return k >= 0 && k < powerUpKindCount && behaviors[k].timed
}

// Duration returns how long a timed kind stays active.
func (k PowerUpKind) Duration(cfg config.PowerUpConfig) time.Duration {
	switch k {
	case PowerUpExpandPaddle:
		return cfg.Durations.Expand
	case PowerUpShrinkPaddle:
		return cfg.Durations.Shrink
	case PowerUpSpeedUp:
		return cfg.Durations.SpeedUp
	case PowerUpSlowDown:
		return cfg.Durations.SlowDown
	default:
		return 0
	}
}

// powerUpBehavior is the apply/revert pair of one kind. Revert is nil for
// one-shot kinds.
type powerUpBehavior struct {
	timed  bool
	apply  func(*Run)
	revert func(*Run)
}

// behaviors is indexed by kind. Width and speed kinds apply and revert by
// recomputing from base values and the current registry, so reversion can
// never drift.
var behaviors = [powerUpKindCount]powerUpBehavior{
	PowerUpExtraBall:    {apply: (*Run).addExtraBall},
	PowerUpExpandPaddle: {timed: true, apply: (*Run).applyPaddleWidth, revert: (*Run).applyPaddleWidth},
	PowerUpShrinkPaddle: {timed: true, apply: (*Run).applyPaddleWidth, revert: (*Run).applyPaddleWidth},
	PowerUpSpeedUp:      {timed: true, apply: (*Run).applyBallSpeed, revert: (*Run).applyBallSpeed},
	PowerUpSlowDown:     {timed: true, apply: (*Run).applyBallSpeed, revert: (*Run).applyBallSpeed},
	PowerUpExtraLife:    {apply: (*Run).addLife},
}

// activeEffect is one registry entry: when it expires and the scheduled
// task that will revert it.
type activeEffect struct {
	expires time.Time
	task    TaskID
}

// Registry holds the active timed power-ups, at most one entry per kind.
type Registry struct {
	entries map[PowerUpKind]activeEffect
}

func newRegistry() Registry {
	return Registry{entries: make(map[PowerUpKind]activeEffect)}
}

// Has reports whether kind is active.
func (r Registry) Has(kind PowerUpKind) bool {
	_, ok := r.entries[kind]
	return ok
}

// Expiry returns when kind expires.
func (r Registry) Expiry(kind PowerUpKind) (time.Time, bool) {
	e, ok := r.entries[kind]
	return e.expires, ok
}

// Len returns the number of active kinds.
func (r Registry) Len() int {
	return len(r.entries)
}

// Kinds returns the active kinds in ascending order.
func (r Registry) Kinds() []PowerUpKind {
	kinds := make([]PowerUpKind, 0, len(r.entries))
	for k := range r.entries {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// activate applies a collected pickup at game time now.
// An already active timed kind only has its expiry moved to now+duration:
// the old reversion task is cancelled and the effect is not applied again.
func (r *Run) activate(kind PowerUpKind, now time.Time) {
	b := behaviors[kind]
	r.emit(core.SoundPowerUpCollected)
	r.fx.Spawn(EffectBurst, core.Vec{X: r.paddle.CenterX(), Y: r.paddle.Y})
	r.log.Debug("power-up collected", "kind", kind, "frame", r.frame)

	if !b.timed {
		b.apply(r)
		return
	}

	expires := now.Add(kind.Duration(r.cfg.PowerUps))
	cur, extending := r.active.entries[kind]
	if extending {
		r.sched.Cancel(cur.task)
	}
	r.active.entries[kind] = activeEffect{expires: expires, task: r.scheduleExpiry(kind, expires)}
	if !extending {
		b.apply(r)
	}
}

func (r *Run) scheduleExpiry(kind PowerUpKind, at time.Time) TaskID {
	var id TaskID
	id = r.sched.After(at, func() { r.expire(kind, id) })
	return id
}

// expire removes kind from the registry and reverts it. A task whose token
// no longer matches the registry entry is stale and does nothing.
func (r *Run) expire(kind PowerUpKind, id TaskID) {
	cur, ok := r.active.entries[kind]
	if !ok || cur.task != id {
		return
	}
	delete(r.active.entries, kind)
	behaviors[kind].revert(r)
	r.log.Debug("power-up expired", "kind", kind, "frame", r.frame)
}

// widthFactor is the product of every active paddle width factor.
func (r *Run) widthFactor() float64 {
	f := 1.0
	if r.active.Has(PowerUpExpandPaddle) {
		f *= r.cfg.PowerUps.ExpandFactor
	}
	if r.active.Has(PowerUpShrinkPaddle) {
		f *= r.cfg.PowerUps.ShrinkFactor
	}
	return f
}

// applyPaddleWidth recomputes the paddle width from its base width.
// With no width kind active the paddle returns exactly to BaseWidth.
func (r *Run) applyPaddleWidth() {
	w := r.paddle.BaseWidth
	if f := r.widthFactor(); f != 1 {
		pc := r.cfg.PowerUps
		w = core.ClampF(w*f, pc.MinPaddleWidth, pc.MaxPaddleWidth)
	}
	r.paddle.SetWidth(w, r.cfg.Surface.Width)
}

// applyBallSpeed recomputes the ball travel factor from the active kinds.
func (r *Run) applyBallSpeed() {
	f := 1.0
	if r.active.Has(PowerUpSpeedUp) {
		f *= r.cfg.PowerUps.SpeedUpFactor
	}
	if r.active.Has(PowerUpSlowDown) {
		f *= r.cfg.PowerUps.SlowDownFactor
	}
	r.speedFactor = f
}

// addExtraBall clones the first free-flying ball, or the first ball if all
// are stuck, and launches the clone in the mirrored direction.
func (r *Run) addExtraBall() {
	if len(r.balls) == 0 {
		return
	}
	src := r.balls[0]
	for _, b := range r.balls {
		if !b.Stuck {
			src = b
			break
		}
	}
	clone := src.Clone()
	clone.Stuck = false
	r.balls = append(r.balls, clone)
}

// addLife grants one life if below the cap.
func (r *Run) addLife() {
	if r.lives < r.cfg.Lives.Max {
		r.lives++
	}
}

// maybeSpawn rolls for a pickup at a destroyed block's centre.
// The chance is multiplied while few pickups have spawned this level,
// and nothing spawns once the per-level cap is reached.
func (r *Run) maybeSpawn(at core.Vec) {
	pc := r.cfg.PowerUps
	if r.spawned >= pc.MaxPerLevel {
		return
	}
	chance := pc.Chance
	if r.spawned < pc.BonusBelow {
		chance *= pc.BonusMultiplier
	}
	if r.rng.Float64() >= chance {
		return
	}
	kind := PowerUpKind(r.rng.IntN(int(powerUpKindCount)))
	r.pickups = append(r.pickups, &Pickup{Pos: at, Kind: kind, Size: pc.Size, Active: true})
	r.spawned++
}
