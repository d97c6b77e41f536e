package entity

import (
	"math"

	"github.com/vovakirdan/tui-shooter/internal/geom"
)

// SpeedProfile bounds the per-tick displacement of a movable entity.
type SpeedProfile struct {
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Accel float64 `yaml:"accel"` // Added to the magnitude every tick by Accelerate
}

// Clamp restricts the magnitude of v to [Min, Max]. A zero vector stays zero.
func (s SpeedProfile) Clamp(v geom.Vec2) geom.Vec2 {
	return v.ClampLength(s.Min, s.Max)
}

// Accelerate returns the next tick's magnitude given the current one.
func (s SpeedProfile) Accelerate(length float64) float64 {
	return math.Min(s.Max, math.Max(s.Min, length+s.Accel))
}

// Motion is the state shared by every movable entity.
type Motion struct {
	Vector geom.Vec2 // Displacement applied by the last committed move
	Speed  SpeedProfile
}
