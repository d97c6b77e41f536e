package world

import (
	"math"

	"github.com/vovakirdan/tui-shooter/internal/entity"
	"github.com/vovakirdan/tui-shooter/internal/geom"
)

// EntityView is the read-only projection of one entity.
type EntityView struct {
	ID      entity.ID
	Kind    entity.Kind
	Variant entity.Variant // Enemies only
	Tier    entity.Tier    // Bonuses only
	Pos     geom.Vec2
	Bounds  geom.Rect
}

// Snapshot is an immutable copy of the world taken between ticks. It shares
// no memory with the World and is safe to read from any goroutine.
type Snapshot struct {
	Tick      uint64
	Level     int
	LevelName string
	Wave      int

	Score        int
	Health       int
	MaxHealth    int
	PlayerAlive  bool
	Invulnerable bool
	Heading      geom.Direction

	Panel    geom.Rect // Full logical panel, HUD included
	Playable geom.Rect
	Entities []EntityView // Live entities: stable first, then movable, in insertion order
}

// Snapshot copies the current state of the world.
func (w *World) Snapshot() *Snapshot {
	s := &Snapshot{
		Tick:      w.tick,
		Level:     w.level,
		LevelName: w.levelCfg.Name,
		Wave:      w.wave,
	}
	if w.arena != nil {
		p := w.arena.Params()
		s.Panel = geom.NewRect(0, 0, p.PanelWidth, p.PanelHeight)
		s.Playable = w.arena.Playable()
	}
	if p := w.player; p != nil {
		s.Score = p.Player.Score.Value()
		s.Health = p.Player.Health
		s.MaxHealth = p.Player.MaxHealth
		s.PlayerAlive = !p.Dead
		s.Invulnerable = p.Player.Invulnerable > 0
		s.Heading = p.Player.Heading
	}

	s.Entities = make([]EntityView, 0, len(w.stable)+len(w.movable))
	for _, ids := range [][]entity.ID{w.stable, w.movable} {
		for _, id := range ids {
			e := w.entities[id]
			if e.Dead {
				continue
			}
			v := EntityView{ID: e.ID, Kind: e.Kind, Pos: e.Pos, Bounds: e.Bounds()}
			if e.Enemy != nil {
				v.Variant = e.Enemy.Variant
			}
			if e.Bonus != nil {
				v.Tier = e.Bonus.Tier
			}
			s.Entities = append(s.Entities, v)
		}
	}
	return s
}

// Count returns the number of live entities of kind in the snapshot.
func (s *Snapshot) Count(kind entity.Kind) int {
	n := 0
	for _, e := range s.Entities {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Hash returns a deterministic hash of the snapshot for replay comparisons.
func (s *Snapshot) Hash() uint64 {
	h := s.Tick
	h = h*31 + uint64(s.Level)   //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Wave)    //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Score)   //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Health)  //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Heading) //#nosec G115 -- hash computation
	h = h*31 + boolBit(s.PlayerAlive)

	for _, e := range s.Entities {
		h = h*31 + uint64(e.ID)
		h = h*31 + uint64(e.Kind)
		h = h*31 + uint64(e.Variant)
		h = h*31 + uint64(e.Tier)
		h = h*31 + math.Float64bits(e.Pos.X)
		h = h*31 + math.Float64bits(e.Pos.Y)
	}
	return h
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
