// Package breakout implements the brick breaker simulation: paddle, balls,
// blocks and falling power-ups on a continuous surface, driven one frame at
// a time by the platform.
package breakout

import (
	"math"

	"github.com/vovakirdan/brickbreaker/internal/core"
)

// Paddle is the player-controlled bar near the bottom of the surface.
type Paddle struct {
	X, Y      float64 // top-left corner
	Width     float64
	Height    float64
	BaseWidth float64 // width with no power-up applied
	Speed     float64 // px per frame before the ramp multiplier
}

// Box returns the paddle bounds.
func (p *Paddle) Box() core.Box {
	return core.Box{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// CenterX returns the horizontal centre of the paddle.
func (p *Paddle) CenterX() float64 {
	return p.X + p.Width/2
}

// Move shifts the paddle by dx and keeps it inside [0, surfaceW-Width].
func (p *Paddle) Move(dx, surfaceW float64) {
	p.X = core.ClampF(p.X+dx, 0, surfaceW-p.Width)
}

// SetWidth resizes the paddle around its centre, then re-clamps it.
func (p *Paddle) SetWidth(w, surfaceW float64) {
	cx := p.CenterX()
	p.Width = math.Min(w, surfaceW)
	p.X = core.ClampF(cx-p.Width/2, 0, surfaceW-p.Width)
}

// Ball is a circle moving along a unit direction.
// Travel per frame is Dir * Speed * (power-up factor) * (ramp multiplier).
type Ball struct {
	Pos       core.Vec
	Dir       core.Vec
	Radius    float64
	BaseSpeed float64
	Speed     float64 // grows on paddle hits, capped
	Stuck     bool
	Explosive bool
}

// Box returns the bounding box of the ball.
func (b *Ball) Box() core.Box {
	return core.BoxAround(b.Pos, 2*b.Radius, 2*b.Radius)
}

// Advance moves the ball by its speed scaled by k.
func (b *Ball) Advance(k float64) {
	b.Pos = b.Pos.Add(b.Dir.Scale(b.Speed * k))
}

// StickTo places the ball on top of the paddle centre, offset pixels above it.
func (b *Ball) StickTo(p *Paddle, offset float64) {
	b.Pos = core.Vec{X: p.CenterX(), Y: p.Y - b.Radius - offset}
}

// Clone copies the ball with its horizontal direction mirrored so the two diverge.
func (b *Ball) Clone() *Ball {
	c := *b
	c.Dir.X = -c.Dir.X
	return &c
}

// Block is one brick of the level grid.
type Block struct {
	X, Y      float64
	W, H      float64
	Color     core.Color
	Health    int
	MaxHealth int
	visible   bool
}

// NewBlock creates a visible block with the given number of hits.
func NewBlock(x, y, w, h float64, color core.Color, health int) *Block {
	health = max(health, 1)
	return &Block{X: x, Y: y, W: w, H: h, Color: color, Health: health, MaxHealth: health, visible: true}
}

// Visible reports whether the block is still in play. Once false it stays false.
func (b *Block) Visible() bool {
	return b.visible
}

// Box returns the block bounds.
func (b *Block) Box() core.Box {
	return core.Box{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// Hit takes one point of health and reports whether the block was destroyed.
// Hitting an invisible block does nothing.
func (b *Block) Hit() bool {
	if !b.visible {
		return false
	}
	b.Health--
	if b.Health <= 0 {
		b.Health = 0
		b.visible = false
		return true
	}
	return false
}

// Pickup is a falling power-up. Pos is its centre.
type Pickup struct {
	Pos    core.Vec
	Kind   PowerUpKind
	Size   float64
	Active bool
}

// Box returns the pickup bounds.
func (p *Pickup) Box() core.Box {
	return core.BoxAround(p.Pos, p.Size, p.Size)
}

// Fall moves the pickup down by dy.
func (p *Pickup) Fall(dy float64) {
	p.Pos.Y += dy
}
