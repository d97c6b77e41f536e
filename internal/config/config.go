// Package config provides YAML-based configuration loading, validation and
// difficulty management for the shooter.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-shooter/internal/arena"
	"github.com/vovakirdan/tui-shooter/internal/behavior"
	"github.com/vovakirdan/tui-shooter/internal/entity"
)

// ErrInvalid is returned by Validate for configurations the simulation
// cannot run with.
var ErrInvalid = errors.New("config: invalid")

// Config contains all tunables of the game.
type Config struct {
	Arena      ArenaConfig                   `yaml:"arena"`
	Sizes      SizesConfig                   `yaml:"sizes"`
	Speeds     SpeedsConfig                  `yaml:"speeds"`
	Gameplay   GameplayConfig                `yaml:"gameplay"`
	Enemies    map[string]entity.VariantSpec `yaml:"enemies"`
	Difficulty DifficultyConfig              `yaml:"difficulty"`
	Levels     []LevelConfig                 `yaml:"levels"`
}

// ArenaConfig defines the logical panel the arena is tiled on.
type ArenaConfig struct {
	PanelWidth  int `yaml:"panel_width"`
	PanelHeight int `yaml:"panel_height"`
	HUDHeight   int `yaml:"hud_height"`
	CellSize    int `yaml:"cell_size"` // Also the wall size
}

// Params converts the section to arena construction parameters.
func (a ArenaConfig) Params() arena.Params {
	return arena.Params{
		PanelHeight: a.PanelHeight,
		PanelWidth:  a.PanelWidth,
		HUDHeight:   a.HUDHeight,
		CellSize:    a.CellSize,
	}
}

// SizesConfig holds bounding-box sizes for kinds without variants.
type SizesConfig struct {
	Player entity.Size `yaml:"player"`
	Bullet entity.Size `yaml:"bullet"`
	Bonus  entity.Size `yaml:"bonus"`
}

// SpeedsConfig holds speed profiles for kinds without variants.
type SpeedsConfig struct {
	Player entity.SpeedProfile `yaml:"player"`
	Bullet entity.SpeedProfile `yaml:"bullet"`
}

// GameplayConfig defines rules that are not tied to a single entity kind.
type GameplayConfig struct {
	TickRate           int     `yaml:"tick_rate"` // Simulation ticks per second
	PlayerHealth       int     `yaml:"player_health"`
	InvulnerableTicks  int     `yaml:"invulnerable_ticks"`
	FireCooldownTicks  int     `yaml:"fire_cooldown_ticks"`
	BulletRange        float64 `yaml:"bullet_range"`
	BulletRangeJitter  int     `yaml:"bullet_range_jitter"` // Random extra range in [0, jitter)
	ClampEnemySpeed    bool    `yaml:"clamp_enemy_speed"`
	BonusIntervalTicks int     `yaml:"bonus_interval_ticks"` // 0 disables respawn
	MilestoneStep      int     `yaml:"milestone_step"`       // 0 disables milestones
	SpawnAttempts      int     `yaml:"spawn_attempts"`
}

// Cell addresses one grid cell of the arena tiling.
type Cell struct {
	Col int `yaml:"col"`
	Row int `yaml:"row"`
}

// LevelConfig is one level preset.
type LevelConfig struct {
	Name      string         `yaml:"name"`
	Enemies   map[string]int `yaml:"enemies"` // Variant name -> count in the first wave
	Bonuses   int            `yaml:"bonuses"`
	MaxBonus  int            `yaml:"max_bonuses"` // Cap for respawned bonuses
	Obstacles []Cell         `yaml:"obstacles"`   // Interior walls
}

// EnemyCount returns the first-wave count of variant v.
func (l LevelConfig) EnemyCount(v entity.Variant) int {
	return l.Enemies[v.String()]
}

// TotalEnemies returns the size of the first wave.
func (l LevelConfig) TotalEnemies() int {
	n := 0
	for _, v := range entity.Variants {
		n += l.EnemyCount(v)
	}
	return n
}

// VariantSpecs resolves the enemies section into the typed table, filling
// variants missing from the file with the built-in defaults.
func (c *Config) VariantSpecs() map[entity.Variant]entity.VariantSpec {
	out := entity.DefaultVariantSpecs()
	for name, spec := range c.Enemies {
		v, err := entity.ParseVariant(name)
		if err != nil {
			continue // rejected by Validate
		}
		out[v] = spec
	}
	return out
}

// LevelCount returns the number of level presets.
func (c *Config) LevelCount() int {
	return len(c.Levels)
}

// Validate checks the configuration for values the simulation cannot run with.
func (c *Config) Validate() error {
	a := c.Arena
	if a.PanelWidth <= 0 || a.PanelHeight <= 0 || a.CellSize <= 0 || a.HUDHeight < 0 {
		return fmt.Errorf("%w: arena dimensions must be positive", ErrInvalid)
	}
	if c.Gameplay.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate must be positive", ErrInvalid)
	}
	if c.Gameplay.PlayerHealth <= 0 {
		return fmt.Errorf("%w: player_health must be positive", ErrInvalid)
	}
	if c.Gameplay.BulletRangeJitter < 0 || c.Gameplay.BulletRange < 0 {
		return fmt.Errorf("%w: bullet range must not be negative", ErrInvalid)
	}

	for name, s := range map[string]entity.Size{
		"player": c.Sizes.Player,
		"bullet": c.Sizes.Bullet,
		"bonus":  c.Sizes.Bonus,
	} {
		if s.W <= 0 || s.H <= 0 {
			return fmt.Errorf("%w: %s size must be positive", ErrInvalid, name)
		}
	}
	if err := validateSpeed("player", c.Speeds.Player); err != nil {
		return err
	}
	if err := validateSpeed("bullet", c.Speeds.Bullet); err != nil {
		return err
	}
	// Bullets launch at the minimum speed; zero would leave them without a heading.
	if c.Speeds.Bullet.Min <= 0 {
		return fmt.Errorf("%w: bullet speed min must be positive", ErrInvalid)
	}

	for name, spec := range c.Enemies {
		if _, err := entity.ParseVariant(name); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		if !behavior.Exists(spec.Behavior) {
			return fmt.Errorf("%w: enemy %s: unknown behavior %q", ErrInvalid, name, spec.Behavior)
		}
		if spec.Size.W <= 0 || spec.Size.H <= 0 {
			return fmt.Errorf("%w: enemy %s: size must be positive", ErrInvalid, name)
		}
		if err := validateSpeed("enemy "+name, spec.Speed); err != nil {
			return err
		}
	}

	if len(c.Levels) == 0 {
		return fmt.Errorf("%w: at least one level is required", ErrInvalid)
	}
	for i, l := range c.Levels {
		for name, n := range l.Enemies {
			if _, err := entity.ParseVariant(name); err != nil {
				return fmt.Errorf("%w: level %d: %v", ErrInvalid, i, err)
			}
			if n < 0 {
				return fmt.Errorf("%w: level %d: negative %s count", ErrInvalid, i, name)
			}
		}
		if l.Bonuses < 0 || l.MaxBonus < 0 {
			return fmt.Errorf("%w: level %d: negative bonus count", ErrInvalid, i)
		}
	}
	return nil
}

func validateSpeed(name string, s entity.SpeedProfile) error {
	if s.Min < 0 || s.Max < s.Min {
		return fmt.Errorf("%w: %s speed needs 0 <= min <= max", ErrInvalid, name)
	}
	return nil
}
