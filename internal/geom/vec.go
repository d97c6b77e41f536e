package geom

import "math"

// Vec2 is a continuous 2D coordinate or displacement.
// Screen convention: X grows right, Y grows down.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Length returns the Euclidean magnitude.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// IsFinite reports whether neither component is NaN or infinite.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Normalize returns the unit vector in the direction of v.
// The zero vector normalizes to itself.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// WithLength returns a vector pointing like v with magnitude l.
// A zero vector stays zero: it has no direction to scale along.
func (v Vec2) WithLength(l float64) Vec2 {
	if v.IsZero() {
		return v
	}
	return v.Normalize().Scale(l)
}

// ClampLength returns v with its magnitude restricted to [min, max].
func (v Vec2) ClampLength(min, max float64) Vec2 {
	l := v.Length()
	switch {
	case l == 0:
		return v
	case l < min:
		return v.WithLength(min)
	case l > max:
		return v.WithLength(max)
	}
	return v
}

// Perp returns v rotated 90 degrees clockwise on screen.
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}
