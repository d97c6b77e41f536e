package geom

import "math"

// Direction is one of the eight compass headings, or none.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
	DirUpLeft
	DirUpRight
	DirDownLeft
	DirDownRight
)

var diag = 1 / math.Sqrt2

// Vector returns the unit displacement for the direction (Y grows down).
func (d Direction) Vector() Vec2 {
	switch d {
	case DirUp:
		return V(0, -1)
	case DirDown:
		return V(0, 1)
	case DirLeft:
		return V(-1, 0)
	case DirRight:
		return V(1, 0)
	case DirUpLeft:
		return V(-diag, -diag)
	case DirUpRight:
		return V(diag, -diag)
	case DirDownLeft:
		return V(-diag, diag)
	case DirDownRight:
		return V(diag, diag)
	default:
		return Vec2{}
	}
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirNone:
		return "none"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUpLeft:
		return "up-left"
	case DirUpRight:
		return "up-right"
	case DirDownLeft:
		return "down-left"
	case DirDownRight:
		return "down-right"
	default:
		return "unknown"
	}
}

// Compass lists the eight headings in clockwise order starting at up.
var Compass = []Direction{DirUp, DirUpRight, DirRight, DirDownRight, DirDown, DirDownLeft, DirLeft, DirUpLeft}

// Toward returns the heading closest to v, or DirNone for a zero or
// non-finite vector.
func Toward(v Vec2) Direction {
	if v.IsZero() || !v.IsFinite() {
		return DirNone
	}
	n := v.Normalize()
	best, bestDot := DirNone, math.Inf(-1)
	for _, d := range Compass {
		u := d.Vector()
		if dot := n.X*u.X + n.Y*u.Y; dot > bestDot {
			best, bestDot = d, dot
		}
	}
	return best
}
