package loop

import (
	"math"

	"github.com/vovakirdan/tui-shooter/internal/entity"
	"github.com/vovakirdan/tui-shooter/internal/geom"
	"github.com/vovakirdan/tui-shooter/internal/input"
	"github.com/vovakirdan/tui-shooter/internal/world"
)

// DefaultRetreat is the enemy distance at which the autopilot backs off.
const DefaultRetreat = 96

// Autopilot derives intents from snapshots. It turns toward the nearest
// enemy and fires, backs away from enemies closer than Retreat and collects
// bonuses once the arena is clear.
type Autopilot struct {
	Retreat float64
}

// Next returns the intent for the state in s.
func (a Autopilot) Next(s *world.Snapshot) input.Intent {
	if s == nil || !s.PlayerAlive {
		return input.Intent{}
	}
	retreat := a.Retreat
	if retreat <= 0 {
		retreat = DefaultRetreat
	}

	var (
		player geom.Vec2
		found  bool
	)
	for _, e := range s.Entities {
		if e.Kind == entity.KindPlayer {
			player, found = e.Pos, true
			break
		}
	}
	if !found {
		return input.Intent{}
	}

	if to, ok := nearest(s, entity.KindEnemy, player); ok {
		if to.Length() < retreat {
			return input.Intent{Direction: geom.Toward(to.Scale(-1))}
		}
		return input.Intent{Direction: geom.Toward(to), Fire: true}
	}
	if to, ok := nearest(s, entity.KindBonus, player); ok {
		return input.Intent{Direction: geom.Toward(to)}
	}
	return input.Intent{}
}

// nearest returns the offset from p to the closest entity of kind.
func nearest(s *world.Snapshot, kind entity.Kind, p geom.Vec2) (geom.Vec2, bool) {
	var (
		best     geom.Vec2
		bestDist = math.Inf(1)
	)
	for _, e := range s.Entities {
		if e.Kind != kind {
			continue
		}
		if d := e.Pos.Sub(p); d.Length() < bestDist {
			best, bestDist = d, d.Length()
		}
	}
	return best, !math.IsInf(bestDist, 1)
}
