package breakout

import (
	"math"

	"github.com/vovakirdan/brickbreaker/internal/core"
)

// Paddle bounce angles in degrees. A hit on the left edge leaves at the
// maximum angle (up-left), the right edge at the minimum (up-right).
const (
	minBounceAngle = 30.0
	maxBounceAngle = 150.0
)

// ReflectWalls bounces the ball off the left, right and top bounds of a
// surface w pixels wide. It sets the sign of the direction component rather
// than flipping it, so a ball still outside a bound never re-inverts, and
// pulls the centre back inside. Reports whether any wall was touched.
func ReflectWalls(b *Ball, w float64) bool {
	hit := false
	if b.Pos.X-b.Radius < 0 {
		b.Pos.X = b.Radius
		b.Dir.X = math.Abs(b.Dir.X)
		hit = true
	} else if b.Pos.X+b.Radius > w {
		b.Pos.X = w - b.Radius
		b.Dir.X = -math.Abs(b.Dir.X)
		hit = true
	}
	if b.Pos.Y-b.Radius < 0 {
		b.Pos.Y = b.Radius
		b.Dir.Y = math.Abs(b.Dir.Y)
		hit = true
	}
	return hit
}

// FellOut reports whether the ball's bottom edge has passed the bottom bound.
func FellOut(b *Ball, h float64) bool {
	return b.Pos.Y+b.Radius > h
}

// PaddleBounce deflects a downward-moving ball that overlaps the paddle.
//
// The outgoing direction depends only on where the ball struck:
// hitPoint in [0,1] maps linearly onto 150°..30°, so a centre hit leaves
// vertically and an edge hit leaves at 30° from the horizontal. This is an
// angle-based bounce, not a physical reflection, and guarantees a vertical
// component of at least sin(30°). The ball keeps its direction length,
// gains step speed up to maxSpeed, and is lifted onto the paddle top.
func PaddleBounce(b *Ball, p *Paddle, step, maxSpeed float64) bool {
	if b.Stuck || b.Dir.Y <= 0 || !b.Box().Overlaps(p.Box()) {
		return false
	}

	hitPoint := core.ClampF((b.Pos.X-p.X)/p.Width, 0, 1)
	angle := (maxBounceAngle - hitPoint*(maxBounceAngle-minBounceAngle)) * math.Pi / 180
	mag := b.Dir.Len()
	b.Dir = core.Vec{X: math.Cos(angle) * mag, Y: -math.Sin(angle) * mag}

	b.Speed = math.Min(b.Speed+step, maxSpeed)
	b.Pos.Y = p.Y - b.Radius
	return true
}

// BlockHit reports whether the ball touches a visible block, using the
// closest point of the block to the ball centre.
func BlockHit(b *Ball, blk *Block) bool {
	return blk.Visible() && blk.Box().IntersectsCircle(b.Pos, b.Radius)
}

// ReflectOffBlock inverts the dominant axis of travel. It approximates
// which face was struck instead of reflecting about the true normal.
func ReflectOffBlock(b *Ball) {
	if math.Abs(b.Dir.X) > math.Abs(b.Dir.Y) {
		b.Dir.X = -b.Dir.X
	} else {
		b.Dir.Y = -b.Dir.Y
	}
}

// PickupCaught reports whether a falling pickup touches the paddle.
func PickupCaught(pk *Pickup, p *Paddle) bool {
	return pk.Active && pk.Box().Overlaps(p.Box())
}

// PickupMissed reports whether a pickup has left through the bottom bound.
func PickupMissed(pk *Pickup, h float64) bool {
	return pk.Box().Y > h
}
