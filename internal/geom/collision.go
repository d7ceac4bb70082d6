// Package geom holds the pure shape types and overlap tests shared by gameplay
// code. Nothing here keeps state.
package geom

import "math"

// Circle is a round body centred on (X, Y).
type Circle struct {
	X, Y   float64
	Radius float64
}

// Rect is an axis-aligned box with its top-left corner at (X, Y).
type Rect struct {
	X, Y float64
	W, H float64
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W*0.5, r.Y + r.H*0.5
}

// Bounds returns the smallest Rect enclosing c.
func (c Circle) Bounds() Rect {
	return Rect{X: c.X - c.Radius, Y: c.Y - c.Radius, W: c.Radius * 2, H: c.Radius * 2}
}

// Distance is the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// CirclesCollide reports whether the centres are closer than the sum of the
// radii. Circles that exactly touch do not collide.
func CirclesCollide(a, b Circle) bool {
	return Distance(a.X, a.Y, b.X, b.Y) < a.Radius+b.Radius
}

// RectsCollide reports whether a and b overlap on both axes. Touching edges
// do not count as overlap.
func RectsCollide(a, b Rect) bool {
	return a.X < b.X+b.W &&
		a.X+a.W > b.X &&
		a.Y < b.Y+b.H &&
		a.Y+a.H > b.Y
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
