// Package core provides fundamental types and utilities shared by the
// simulation and the platform layers. It has no external dependencies
// (especially no Bubble Tea) to keep game logic pure and testable.
package core

import "math"

// Rect is an axis-aligned rectangle in terminal cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inset shrinks the rectangle by n cells on every side.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: Max(r.W-2*n, 0), H: Max(r.H-2*n, 0)}
}

// Vec is a point or direction on the continuous simulation surface.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v multiplied by k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec{X: v.X / l, Y: v.Y / l}
}

// Box is an axis-aligned rectangle on the simulation surface.
// X and Y are the top-left corner; y grows downward.
type Box struct {
	X, Y float64
	W, H float64
}

// BoxAround returns a w×h box centred on c.
func BoxAround(c Vec, w, h float64) Box {
	return Box{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Center returns the centre point of the box.
func (b Box) Center() Vec {
	return Vec{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Overlaps reports whether two boxes share interior area.
// Boxes that only touch along an edge do not overlap.
func (b Box) Overlaps(o Box) bool {
	return b.X < o.Right() && b.Right() > o.X &&
		b.Y < o.Bottom() && b.Bottom() > o.Y
}

// ClosestPoint returns the point of the box nearest to p.
func (b Box) ClosestPoint(p Vec) Vec {
	return Vec{
		X: ClampF(p.X, b.X, b.Right()),
		Y: ClampF(p.Y, b.Y, b.Bottom()),
	}
}

// IntersectsCircle reports whether a circle centred on c with radius r
// touches the box, using the closest point on the box to the centre.
func (b Box) IntersectsCircle(c Vec, r float64) bool {
	p := b.ClosestPoint(c)
	dx, dy := c.X-p.X, c.Y-p.Y
	return dx*dx+dy*dy <= r*r
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
