package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-shooter/internal/entity"
)

//go:embed defaults/shooter.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultYAML))
	copy(out, defaultYAML)
	return out
}

// Default returns the hard-coded configuration used when no YAML source,
// not even the embedded one, can be parsed.
func Default() Config {
	enemies := make(map[string]entity.VariantSpec)
	for v, spec := range entity.DefaultVariantSpecs() {
		enemies[v.String()] = spec
	}

	return Config{
		Arena: ArenaConfig{
			PanelWidth:  800,
			PanelHeight: 600,
			HUDHeight:   50,
			CellSize:    32,
		},
		Sizes: SizesConfig{
			Player: entity.Size{W: 24, H: 24},
			Bullet: entity.Size{W: 6, H: 6},
			Bonus:  entity.Size{W: 16, H: 16},
		},
		Speeds: SpeedsConfig{
			Player: entity.SpeedProfile{Min: 0, Max: 4},
			Bullet: entity.SpeedProfile{Min: 6, Max: 14, Accel: 0.5},
		},
		Gameplay: GameplayConfig{
			TickRate:           30,
			PlayerHealth:       3,
			InvulnerableTicks:  30,
			FireCooldownTicks:  6,
			BulletRange:        500,
			BulletRangeJitter:  500,
			ClampEnemySpeed:    true,
			BonusIntervalTicks: 300,
			MilestoneStep:      500,
			SpawnAttempts:      100,
		},
		Enemies: enemies,
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 2000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
		Levels: defaultLevels(),
	}
}

func defaultLevels() []LevelConfig {
	return []LevelConfig{
		{
			Name:     "Open Ground",
			Enemies:  map[string]int{"basic": 3},
			Bonuses:  2,
			MaxBonus: 3,
		},
		{
			Name:      "Pillars",
			Enemies:   map[string]int{"basic": 4},
			Bonuses:   2,
			MaxBonus:  3,
			Obstacles: []Cell{{7, 6}, {17, 6}, {7, 10}, {17, 10}},
		},
		{
			Name:      "Crossfire",
			Enemies:   map[string]int{"basic": 3, "runner": 2},
			Bonuses:   3,
			MaxBonus:  4,
			Obstacles: []Cell{{12, 4}, {12, 5}, {12, 11}, {12, 12}},
		},
		{
			Name:      "Bunker",
			Enemies:   map[string]int{"basic": 4, "runner": 1, "brute": 1},
			Bonuses:   2,
			MaxBonus:  3,
			Obstacles: []Cell{{9, 7}, {9, 8}, {9, 9}, {15, 7}, {15, 8}, {15, 9}},
		},
		{
			Name:      "Runners",
			Enemies:   map[string]int{"runner": 5},
			Bonuses:   3,
			MaxBonus:  4,
			Obstacles: []Cell{{5, 5}, {19, 5}, {5, 11}, {19, 11}},
		},
		{
			Name:      "Heavy",
			Enemies:   map[string]int{"basic": 2, "brute": 3},
			Bonuses:   3,
			MaxBonus:  4,
			Obstacles: []Cell{{10, 4}, {14, 4}, {10, 12}, {14, 12}},
		},
		{
			Name:      "Maze",
			Enemies:   map[string]int{"basic": 3, "runner": 2, "brute": 1},
			Bonuses:   3,
			MaxBonus:  4,
			Obstacles: []Cell{{6, 4}, {6, 5}, {6, 6}, {18, 10}, {18, 11}, {18, 12}},
		},
		{
			Name:      "Swarm",
			Enemies:   map[string]int{"basic": 6, "runner": 3},
			Bonuses:   2,
			MaxBonus:  3,
			Obstacles: []Cell{{4, 8}, {20, 8}},
		},
		{
			Name:      "Fortress",
			Enemies:   map[string]int{"basic": 3, "runner": 3, "brute": 2},
			Bonuses:   4,
			MaxBonus:  5,
			Obstacles: []Cell{{8, 5}, {16, 5}, {8, 11}, {16, 11}, {12, 6}, {12, 10}},
		},
		{
			Name:      "Last Stand",
			Enemies:   map[string]int{"basic": 5, "runner": 4, "brute": 3},
			Bonuses:   4,
			MaxBonus:  6,
			Obstacles: []Cell{{4, 4}, {20, 4}, {4, 12}, {20, 12}},
		},
	}
}
