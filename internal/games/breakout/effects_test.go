package breakout

import (
	"testing"

	"github.com/vovakirdan/brickbreaker/internal/core"
)

func countParticles(fx *Effects) int {
	n := 0
	for range fx.Particles() {
		n++
	}
	return n
}

func TestEffectLifetime(t *testing.T) {
	fx := newEffects(1)
	fx.Spawn(EffectHit, core.Vec{X: 100, Y: 100})
	if got := countParticles(&fx); got != 8 {
		t.Fatalf("hit effect has %d particles, want 8", got)
	}

	for range 19 {
		fx.Advance()
	}
	if fx.Len() != 1 {
		t.Fatal("effect expired early")
	}
	fx.Advance()
	if fx.Len() != 0 || countParticles(&fx) != 0 {
		t.Errorf("effect should be gone after its lifetime")
	}
}

func TestParticleAlphaFades(t *testing.T) {
	fx := newEffects(1)
	fx.Spawn(EffectBurst, core.Vec{})
	prev := 1.0
	for range 10 {
		fx.Advance()
		for p := range fx.Particles() {
			if a := p.Alpha(); a >= prev || a < 0 {
				t.Fatalf("alpha %v did not fade from %v", a, prev)
			}
			prev = p.Alpha()
			break
		}
	}
}

func TestFireworkGravity(t *testing.T) {
	fx := newEffects(3)
	fx.SpawnFirework(600, 600)
	if got := countParticles(&fx); got != 50 {
		t.Fatalf("firework has %d particles, want 50", got)
	}

	var before []core.Vec
	for p := range fx.Particles() {
		before = append(before, p.Vel)
	}
	fx.Advance()
	i := 0
	for p := range fx.Particles() {
		if !near(p.Vel.Y, before[i].Y+0.05) {
			t.Fatalf("particle %d: vy %v, want %v", i, p.Vel.Y, before[i].Y+0.05)
		}
		i++
	}
}

func TestEffectsSeeded(t *testing.T) {
	a, b := newEffects(9), newEffects(9)
	a.SpawnFirework(600, 600)
	b.SpawnFirework(600, 600)
	var pa, pb []Particle
	for p := range a.Particles() {
		pa = append(pa, p)
	}
	for p := range b.Particles() {
		pb = append(pb, p)
	}
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("particle %d differs with the same seed", i)
		}
	}
}
