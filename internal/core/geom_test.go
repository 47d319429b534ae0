package core

import (
	"math"
	"testing"
)

func TestBoxOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 5, Y: 5, W: 10, H: 10},
			expected: true,
		},
		{
			name:     "separate horizontally",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 15, Y: 0, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "touching edge is not overlap",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 10, Y: 0, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "contained box",
			a:        Box{X: 0, Y: 0, W: 20, H: 20},
			b:        Box{X: 5, Y: 5, W: 2.5, H: 2.5},
			expected: true,
		},
		{
			name:     "fractional sliver",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 9.9, Y: 9.9, W: 1, H: 1},
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() is not symmetric: %v", got)
			}
		})
	}
}

func TestBoxIntersectsCircle(t *testing.T) {
	box := Box{X: 100, Y: 50, W: 50, H: 20}

	tests := []struct {
		name     string
		c        Vec
		r        float64
		expected bool
	}{
		{"centre inside", Vec{X: 125, Y: 60}, 5, true},
		{"touching bottom face", Vec{X: 125, Y: 75}, 5, true},
		{"just below bottom face", Vec{X: 125, Y: 75.01}, 5, false},
		{"near corner outside", Vec{X: 154, Y: 74}, 5, false},
		{"near corner inside", Vec{X: 153, Y: 73}, 5, true},
		{"far away", Vec{X: 0, Y: 0}, 5, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := box.IntersectsCircle(tc.c, tc.r); got != tc.expected {
				t.Errorf("IntersectsCircle(%v, %v) = %v, expected %v", tc.c, tc.r, got, tc.expected)
			}
		})
	}
}

func TestBoxClosestPoint(t *testing.T) {
	box := Box{X: 0, Y: 0, W: 10, H: 10}

	if p := box.ClosestPoint(Vec{X: 5, Y: 5}); p != (Vec{X: 5, Y: 5}) {
		t.Errorf("inside point should map to itself, got %v", p)
	}
	if p := box.ClosestPoint(Vec{X: -3, Y: 20}); p != (Vec{X: 0, Y: 10}) {
		t.Errorf("expected bottom-left corner, got %v", p)
	}
}

func TestBoxAround(t *testing.T) {
	b := BoxAround(Vec{X: 50, Y: 40}, 30, 30)
	if b.X != 35 || b.Y != 25 || b.W != 30 || b.H != 30 {
		t.Errorf("BoxAround() = %+v", b)
	}
	if c := b.Center(); c != (Vec{X: 50, Y: 40}) {
		t.Errorf("Center() = %v, expected {50 40}", c)
	}
}

func TestVecNormalize(t *testing.T) {
	v := Vec{X: 3, Y: -4}.Normalize()
	if math.Abs(v.Len()-1) > 1e-12 {
		t.Errorf("normalized length = %v, expected 1", v.Len())
	}
	if zero := (Vec{}).Normalize(); zero != (Vec{}) {
		t.Errorf("zero vector should stay zero, got %v", zero)
	}
}

func TestRectInset(t *testing.T) {
	r := NewRect(2, 3, 10, 6).Inset(1)
	if r != NewRect(3, 4, 8, 4) {
		t.Errorf("Inset(1) = %+v", r)
	}
	if tiny := NewRect(0, 0, 1, 1).Inset(2); tiny.W != 0 || tiny.H != 0 {
		t.Errorf("Inset on tiny rect should clamp to zero size, got %+v", tiny)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d",
				tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	if got := ClampF(-0.5, 0, 500); got != 0 {
		t.Errorf("ClampF(-0.5) = %v", got)
	}
	if got := ClampF(512.25, 0, 500); got != 500 {
		t.Errorf("ClampF(512.25) = %v", got)
	}
}
