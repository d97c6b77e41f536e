package entity

import (
	"fmt"

	"github.com/vovakirdan/tui-shooter/internal/behavior"
	"github.com/vovakirdan/tui-shooter/internal/geom"
)

// Variant identifies an enemy type. Variants differ only in their behavior,
// size, speed, score value and damage value.
type Variant uint8

const (
	VariantBasic Variant = iota
	VariantRunner
	VariantBrute
)

// Variants lists every variant in spawn-table order.
var Variants = []Variant{VariantBasic, VariantRunner, VariantBrute}

// String returns the config name of the variant.
func (v Variant) String() string {
	switch v {
	case VariantBasic:
		return "basic"
	case VariantRunner:
		return "runner"
	case VariantBrute:
		return "brute"
	default:
		return "unknown"
	}
}

// ParseVariant converts a config name to a Variant.
func ParseVariant(name string) (Variant, error) {
	for _, v := range Variants {
		if v.String() == name {
			return v, nil
		}
	}
	return 0, fmt.Errorf("entity: unknown enemy variant %q", name)
}

// VariantSpec holds the tunables of one enemy variant.
type VariantSpec struct {
	Size     Size         `yaml:"size"`
	Speed    SpeedProfile `yaml:"speed"`
	Score    int          `yaml:"score"`
	Damage   int          `yaml:"damage"`
	Behavior string       `yaml:"behavior"`
}

// DefaultVariantSpecs returns the built-in variant table.
func DefaultVariantSpecs() map[Variant]VariantSpec {
	return map[Variant]VariantSpec{
		VariantBasic: {
			Size:     Size{W: 24, H: 24},
			Speed:    SpeedProfile{Min: 0, Max: 1.5},
			Score:    10,
			Damage:   1,
			Behavior: "chase",
		},
		VariantRunner: {
			Size:     Size{W: 20, H: 20},
			Speed:    SpeedProfile{Min: 0, Max: 2.5},
			Score:    20,
			Damage:   1,
			Behavior: "jitter",
		},
		VariantBrute: {
			Size:     Size{W: 30, H: 30},
			Speed:    SpeedProfile{Min: 0, Max: 0.8},
			Score:    40,
			Damage:   2,
			Behavior: "chase",
		},
	}
}

// EnemyState is the payload of an enemy entity.
type EnemyState struct {
	Variant  Variant
	Behavior behavior.Behavior
	Score    int // Awarded to the player when this enemy is shot
	Damage   int // Applied to the player on contact
}

// NewEnemy creates an enemy of the given variant driven by b.
func NewEnemy(pos geom.Vec2, v Variant, spec VariantSpec, b behavior.Behavior) *Entity {
	return &Entity{
		Kind:   KindEnemy,
		Pos:    pos,
		Size:   spec.Size,
		Motion: &Motion{Speed: spec.Speed},
		Enemy: &EnemyState{
			Variant:  v,
			Behavior: b,
			Score:    spec.Score,
			Damage:   spec.Damage,
		},
	}
}
