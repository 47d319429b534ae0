package breakout

import (
	"iter"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/vovakirdan/brickbreaker/internal/core"
)

// EffectKind selects the particle recipe of a transient effect.
type EffectKind int

const (
	EffectHit      EffectKind = iota // small puff where a ball strikes a block
	EffectBurst                      // ring around the paddle on pickup
	EffectFirework                   // win celebration
)

type effectRecipe struct {
	particles int
	speed     float64 // max speed for random spreads
	lifetime  int     // frames
	gravity   float64
	random    bool // random directions and speeds instead of an even ring
}

var recipes = map[EffectKind]effectRecipe{
	EffectHit:      {particles: 8, speed: 2, lifetime: 20},
	EffectBurst:    {particles: 16, speed: 4, lifetime: 40},
	EffectFirework: {particles: 50, speed: 4, lifetime: 100, gravity: 0.05, random: true},
}

var fireworkColors = []core.Color{
	core.ColorBrightRed,
	core.ColorBrightYellow,
	core.ColorBrightGreen,
	core.ColorBrightCyan,
	core.ColorBrightMagenta,
}

// Particle is one decorative dot. Alpha fades from 1 to 0 over its life.
type Particle struct {
	Pos   core.Vec
	Vel   core.Vec
	Life  int
	Max   int
	Color core.Color
}

// Alpha returns the remaining opacity in [0,1].
func (p Particle) Alpha() float64 {
	if p.Max == 0 {
		return 0
	}
	return float64(p.Life) / float64(p.Max)
}

// Effect is a finite group of particles. Once every particle has expired
// it stays dead; an effect is never restarted.
type Effect struct {
	Kind      EffectKind
	particles []Particle
	gravity   float64
}

func newEffect(kind EffectKind, at core.Vec, color core.Color, rng *rand.Rand) *Effect {
	rc := recipes[kind]
	e := &Effect{Kind: kind, gravity: rc.gravity, particles: make([]Particle, rc.particles)}
	for i := range e.particles {
		angle := 2 * math.Pi * float64(i) / float64(rc.particles)
		speed := rc.speed
		if rc.random {
			angle = rng.Float64() * 2 * math.Pi
			speed = 1 + rng.Float64()*(rc.speed-1)
		}
		e.particles[i] = Particle{
			Pos:   at,
			Vel:   core.Vec{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed},
			Life:  rc.lifetime,
			Max:   rc.lifetime,
			Color: color,
		}
	}
	return e
}

// advance moves every live particle one frame and reports whether any remain.
func (e *Effect) advance() bool {
	alive := false
	for i := range e.particles {
		p := &e.particles[i]
		if p.Life <= 0 {
			continue
		}
		p.Pos = p.Pos.Add(p.Vel)
		p.Vel.Y += e.gravity
		p.Life--
		if p.Life > 0 {
			alive = true
		}
	}
	return alive
}

// Particles yields the live particles of the effect.
func (e *Effect) Particles() iter.Seq[Particle] {
	return func(yield func(Particle) bool) {
		for _, p := range e.particles {
			if p.Life <= 0 {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

// Effects is the transient effect list of a run. It draws on its own
// random stream so decoration never shifts gameplay randomness.
type Effects struct {
	list []*Effect
	rng  *rand.Rand
}

func newEffects(seed uint64) Effects {
	return Effects{rng: rand.New(rand.NewPCG(seed, 0xf1e1d))}
}

// Spawn starts an effect at a point on the surface.
func (fx *Effects) Spawn(kind EffectKind, at core.Vec) {
	color := core.ColorWhite
	switch kind {
	case EffectHit:
		color = core.ColorBrightYellow
	case EffectBurst:
		color = core.ColorBrightCyan
	case EffectFirework:
		color = fireworkColors[fx.rng.IntN(len(fireworkColors))]
	}
	fx.list = append(fx.list, newEffect(kind, at, color, fx.rng))
}

// SpawnFirework starts a firework at a random point in the upper half of a w×h surface.
func (fx *Effects) SpawnFirework(w, h float64) {
	at := core.Vec{X: w * (0.1 + 0.8*fx.rng.Float64()), Y: h * (0.1 + 0.4*fx.rng.Float64())}
	fx.Spawn(EffectFirework, at)
}

// Advance moves every effect one frame and drops the expired ones.
func (fx *Effects) Advance() {
	fx.list = slices.DeleteFunc(fx.list, func(e *Effect) bool { return !e.advance() })
}

// Len returns the number of live effects.
func (fx *Effects) Len() int {
	return len(fx.list)
}

// Particles yields every live particle of every effect.
func (fx *Effects) Particles() iter.Seq[Particle] {
	return func(yield func(Particle) bool) {
		for _, e := range fx.list {
			for p := range e.Particles() {
				if !yield(p) {
					return
				}
			}
		}
	}
}
