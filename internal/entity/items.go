package entity

import (
	"math/rand"

	"github.com/vovakirdan/tui-shooter/internal/geom"
	"github.com/vovakirdan/tui-shooter/internal/score"
)

// BulletState is the payload of a projectile.
type BulletState struct {
	Remaining float64 // Travel distance left before the bullet expires
}

// NewBullet creates a projectile at pos travelling along heading at the
// profile's minimum speed.
func NewBullet(pos geom.Vec2, heading geom.Direction, size Size, speed SpeedProfile, distance float64) *Entity {
	return &Entity{
		Kind: KindBullet,
		Pos:  pos,
		Size: size,
		Motion: &Motion{
			Vector: heading.Vector().WithLength(speed.Min),
			Speed:  speed,
		},
		Bullet: &BulletState{Remaining: distance},
	}
}

// Tier is the rarity class of a score bonus.
type Tier uint8

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
)

// Bonus values per tier.
const (
	LowBonus    = 10
	MediumBonus = 50
	HighBonus   = 150
)

// Value returns the points a bonus of this tier is worth.
func (t Tier) Value() int {
	switch t {
	case TierMedium:
		return MediumBonus
	case TierHigh:
		return HighBonus
	default:
		return LowBonus
	}
}

// String returns a human-readable name for the tier.
func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMedium:
		return "medium"
	case TierHigh:
		return "high"
	default:
		return "unknown"
	}
}

// DrawTier picks a tier with weights 70/25/5 from 1000 buckets.
func DrawTier(rng *rand.Rand) Tier {
	roll := rng.Intn(1000)
	switch {
	case roll <= 700:
		return TierLow
	case roll <= 950:
		return TierMedium
	default:
		return TierHigh
	}
}

// BonusState is the payload of a collectable. Value never changes after creation.
type BonusState struct {
	Tier  Tier
	Value int
}

// NewBonus creates a stationary score bonus with a randomly drawn tier.
func NewBonus(pos geom.Vec2, size Size, rng *rand.Rand) *Entity {
	tier := DrawTier(rng)
	return &Entity{
		Kind:  KindBonus,
		Pos:   pos,
		Size:  size,
		Bonus: &BonusState{Tier: tier, Value: tier.Value()},
	}
}

// PlayerState is the payload of the player character.
type PlayerState struct {
	Score     score.Ledger
	Health    int
	MaxHealth int

	Heading geom.Direction // Last non-none movement direction; orients bullets
	Intent  geom.Direction // Direction requested for the current tick

	FireCooldown int // Ticks until the next shot is allowed
	Invulnerable int // Ticks of immunity left after a hit
}

// Turn records the requested direction and updates the heading when the
// request is an actual direction.
func (p *PlayerState) Turn(d geom.Direction) {
	p.Intent = d
	if d != geom.DirNone {
		p.Heading = d
	}
}

// Hurt applies damage unless the player is still invulnerable from the last
// hit. It returns true if damage was applied.
func (p *PlayerState) Hurt(damage, graceTicks int) bool {
	if damage <= 0 || p.Invulnerable > 0 {
		return false
	}
	p.Health -= damage
	p.Invulnerable = graceTicks
	return true
}

// NewPlayer creates the player character facing right.
func NewPlayer(pos geom.Vec2, size Size, speed SpeedProfile, health int) *Entity {
	return &Entity{
		Kind:   KindPlayer,
		Pos:    pos,
		Size:   size,
		Motion: &Motion{Speed: speed},
		Player: &PlayerState{
			Health:    health,
			MaxHealth: health,
			Heading:   geom.DirRight,
		},
	}
}
