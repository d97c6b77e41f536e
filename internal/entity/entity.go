// Package entity defines the single entity representation shared by every
// participant in the simulation. An Entity carries a closed Kind tag and a
// payload pointer for the kind-specific state; the engine dispatches on Kind.
//
// Entities never hold a reference to the world that owns them. They are
// addressed by ID and all sibling queries go through the world.
package entity

import (
	"github.com/vovakirdan/tui-shooter/internal/geom"
)

// ID identifies an entity inside one world. Zero is never assigned.
type ID uint32

// NoID is the zero ID, used for "no entity".
const NoID ID = 0

// Kind is the closed set of entity kinds.
type Kind uint8

const (
	KindWall Kind = iota
	KindEnemy
	KindBullet
	KindBonus
	KindPlayer
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindWall:
		return "wall"
	case KindEnemy:
		return "enemy"
	case KindBullet:
		return "bullet"
	case KindBonus:
		return "bonus"
	case KindPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// Movable reports whether entities of this kind are advanced every tick.
func (k Kind) Movable() bool {
	return k == KindEnemy || k == KindBullet || k == KindPlayer
}

// Size is the fixed bounding-box size of an entity.
type Size struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Entity is anything with a position and a bounding box.
type Entity struct {
	ID   ID
	Kind Kind
	Pos  geom.Vec2 // Center
	Size Size
	Dead bool

	// Kind-specific payloads; exactly the ones matching Kind are non-nil.
	Motion *Motion      // Enemy, Bullet, Player
	Enemy  *EnemyState  // Enemy
	Bullet *BulletState // Bullet
	Bonus  *BonusState  // Bonus
	Player *PlayerState // Player
}

// Bounds returns the bounding box centered on the entity's position.
func (e *Entity) Bounds() geom.Rect {
	return geom.RectAround(e.Pos, e.Size.W, e.Size.H)
}

// BoundsAt returns the box the entity would occupy if centered at p.
func (e *Entity) BoundsAt(p geom.Vec2) geom.Rect {
	return geom.RectAround(p, e.Size.W, e.Size.H)
}

// Intersects reports whether the two entities' boxes overlap.
func (e *Entity) Intersects(o *Entity) bool {
	return e.Bounds().Intersects(o.Bounds())
}

// Alive reports whether the entity still takes part in the simulation.
func (e *Entity) Alive() bool {
	return !e.Dead
}

// Kill flags the entity dead. The world removes it at the end of the tick.
func (e *Entity) Kill() {
	e.Dead = true
}

// Movable reports whether the entity has motion state.
func (e *Entity) Movable() bool {
	return e.Motion != nil
}

// NewWall creates a static obstacle.
func NewWall(pos geom.Vec2, size Size) *Entity {
	return &Entity{Kind: KindWall, Pos: pos, Size: size}
}
