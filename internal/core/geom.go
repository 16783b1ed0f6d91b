// Package core provides fundamental types and utilities shared by the game,
// the terminal platform and the tooling around them.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Vec2 is a point or displacement in world units. Y grows upward.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Box is an axis-aligned bounding box in world units.
// (X, Y) is the bottom-left corner; Y grows upward.
type Box struct {
	X, Y float64
	W, H float64
}

// NewBox builds a box from its bottom-left corner and size.
func NewBox(pos Vec2, w, h float64) Box {
	return Box{X: pos.X, Y: pos.Y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Top returns the y-coordinate of the upper edge.
func (b Box) Top() float64 {
	return b.Y + b.H
}

// Bottom returns the y-coordinate of the lower edge.
func (b Box) Bottom() float64 {
	return b.Y
}

// Center returns the center point of the box.
func (b Box) Center() Vec2 {
	return Vec2{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Overlaps reports whether two boxes share interior area.
// Boxes that only touch along an edge do not overlap.
func (b Box) Overlaps(other Box) bool {
	if b.X >= other.Right() || other.X >= b.Right() {
		return false
	}
	if b.Y >= other.Top() || other.Y >= b.Top() {
		return false
	}
	return true
}

// Rect represents an axis-aligned rectangle in screen cells.
// Unlike Box, Y grows downward.
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

// Sign returns -1, 0 or 1 according to the sign of x.
func Sign(x float64) float64 {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}

// AbsF returns the absolute value of a float64.
func AbsF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
