// Package core provides fundamental value types shared by the world state,
// the object registry, the frame producer and the presenters.
// It contains no external dependencies and no synchronization so that the
// math stays pure and testable.
package core

import "math"

// Vec2 is a world-space coordinate pair.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Mul multiplies component-wise.
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{X: v.X * o.X, Y: v.Y * o.Y}
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Positive reports whether both components are strictly greater than zero.
func (v Vec2) Positive() bool {
	return v.X > 0 && v.Y > 0
}

// Finite reports whether neither component is infinite or NaN.
func (v Vec2) Finite() bool {
	return !math.IsInf(v.X, 0) && !math.IsNaN(v.X) && !math.IsInf(v.Y, 0) && !math.IsNaN(v.Y)
}

// Vec2f is a coordinate pair at rendering precision.
type Vec2f struct {
	X, Y float32
}

// Size is a window size in physical units (pixels, or cells for terminals).
type Size struct {
	W, H uint32
}

// Valid reports whether both dimensions are non-zero.
func (s Size) Valid() bool {
	return s.W > 0 && s.H > 0
}

// Center returns the center point of the window in physical units.
func (s Size) Center() (float32, float32) {
	return float32(s.W) / 2, float32(s.H) / 2
}

// Rect represents an axis-aligned cell rectangle on a Screen.
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

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}
