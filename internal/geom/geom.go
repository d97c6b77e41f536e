// Package geom provides the 2D primitives shared by the arena, the entity
// model and the collision engine. It has no dependencies outside the standard
// library so every simulation package can import it.
package geom

import "math"

// Rect is an integer box anchored at its top-left corner.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect returns the w×h box whose top-left corner is (x, y).
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectAround returns the w×h box centered on p.
// The center is truncated to integer coordinates first, so an entity at
// (10.9, 4.2) has the same box as one at (10, 4).
func RectAround(p Vec2, w, h int) Rect {
	cx := int(math.Floor(p.X))
	cy := int(math.Floor(p.Y))
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Right is the exclusive right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom is the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Empty reports whether the box has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersects reports a positive-area overlap. Boxes that only share an edge,
// and boxes without area, never intersect.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// ContainsRect reports whether o lies entirely within r. Edges may coincide.
func (r Rect) ContainsRect(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return o.X >= r.X && o.Y >= r.Y &&
		o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// Center returns the middle cell, rounding toward the top-left.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}
