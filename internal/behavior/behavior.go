// Package behavior provides the chase strategies enemies consult every tick.
// A strategy sees only the enemy's position, the target position and the
// enemy's nominal speed; it never touches the world. Strategies may ask for
// more than the nominal speed; the engine caps the request when enemy speed
// clamping is on.
package behavior

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-shooter/internal/geom"
)

// Behavior computes an enemy's desired movement vector for one tick.
type Behavior interface {
	// Name returns the registry name of the strategy.
	Name() string

	// NextMove returns the displacement the enemy wants to apply this tick.
	NextMove(from, target geom.Vec2, speed float64) geom.Vec2
}

// DefaultSurge is the gain the registered chasing strategies apply to the
// nominal speed.
const DefaultSurge = 1.5

// surge returns the step length for a gain and a remaining distance. A
// non-positive gain means 1. The step never overshoots the target.
func surge(gain, speed, dist float64) float64 {
	if gain <= 0 {
		gain = 1
	}
	return math.Min(speed*gain, dist)
}

// Chase heads straight at the target, Surge times faster than nominal.
type Chase struct {
	Surge float64
}

// Name implements Behavior.
func (Chase) Name() string { return "chase" }

// NextMove implements Behavior.
func (c Chase) NextMove(from, target geom.Vec2, speed float64) geom.Vec2 {
	off := target.Sub(from)
	return off.WithLength(surge(c.Surge, speed, off.Length()))
}

// Idle never moves. Useful for turrets and tests.
type Idle struct{}

// Name implements Behavior.
func (Idle) Name() string { return "idle" }

// NextMove implements Behavior.
func (Idle) NextMove(_, _ geom.Vec2, _ float64) geom.Vec2 {
	return geom.Vec2{}
}

// Jitter chases the target with a random sideways wobble.
type Jitter struct {
	rng    *rand.Rand
	Amount float64 // Maximum sideways component as a fraction of speed
	Surge  float64
}

// NewJitter creates a Jitter strategy with its own seeded generator so that
// replays with the same seed move identically.
func NewJitter(seed int64, amount float64) *Jitter {
	return &Jitter{rng: rand.New(rand.NewSource(seed)), Amount: amount, Surge: DefaultSurge}
}

// Name implements Behavior.
func (j *Jitter) Name() string { return "jitter" }

// NextMove implements Behavior.
func (j *Jitter) NextMove(from, target geom.Vec2, speed float64) geom.Vec2 {
	off := target.Sub(from)
	dir := off.Normalize()
	if dir.IsZero() {
		return dir
	}
	wobble := (j.rng.Float64()*2 - 1) * j.Amount
	return dir.Add(dir.Perp().Scale(wobble)).WithLength(surge(j.Surge, speed, off.Length()))
}
