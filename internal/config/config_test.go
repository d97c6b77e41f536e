package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-shooter/internal/arena"
	"github.com/vovakirdan/tui-shooter/internal/entity"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := parse(defaultYAML)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.LevelCount())
}

func TestDefaultLevelObstaclesAreInterior(t *testing.T) {
	cfg := Default()
	a, err := arena.New(cfg.Arena.Params())
	require.NoError(t, err)

	player := entity.NewPlayer(a.Center(), cfg.Sizes.Player, cfg.Speeds.Player, 1)
	for i, l := range cfg.Levels {
		assert.Positive(t, l.TotalEnemies(), "level %d", i)
		for _, c := range l.Obstacles {
			wall := entity.NewWall(a.CellCenter(c.Col, c.Row), entity.Size{W: a.CellSize(), H: a.CellSize()})
			assert.True(t, a.IsInside(wall.Bounds()), "level %d cell %+v", i, c)
			assert.False(t, wall.Intersects(player), "level %d cell %+v blocks the start", i, c)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero cell", func(c *Config) { c.Arena.CellSize = 0 }},
		{"zero tick rate", func(c *Config) { c.Gameplay.TickRate = 0 }},
		{"no health", func(c *Config) { c.Gameplay.PlayerHealth = 0 }},
		{"negative jitter", func(c *Config) { c.Gameplay.BulletRangeJitter = -1 }},
		{"empty bullet", func(c *Config) { c.Sizes.Bullet = entity.Size{} }},
		{"inverted speed", func(c *Config) { c.Speeds.Bullet = entity.SpeedProfile{Min: 5, Max: 1} }},
		{"motionless bullet", func(c *Config) { c.Speeds.Bullet = entity.SpeedProfile{Min: 0, Max: 10, Accel: 1} }},
		{"unknown variant", func(c *Config) { c.Enemies["dragon"] = c.Enemies["basic"] }},
		{"unknown behavior", func(c *Config) {
			s := c.Enemies["basic"]
			s.Behavior = "teleport"
			c.Enemies["basic"] = s
		}},
		{"no levels", func(c *Config) { c.Levels = nil }},
		{"unknown level variant", func(c *Config) { c.Levels[0].Enemies = map[string]int{"ghost": 1} }},
		{"negative bonuses", func(c *Config) { c.Levels[3].Bonuses = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
		})
	}
}

func TestLoadCustomPathOverridesKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	doc := `
gameplay:
  tick_rate: 60
  player_health: 9
levels:
  - name: Solo
    enemies: { brute: 1 }
    bonuses: 1
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, source, err := LoadWithSource(path)
	require.NoError(t, err)
	assert.Equal(t, path, source)
	assert.Equal(t, 60, cfg.Gameplay.TickRate)
	assert.Equal(t, 9, cfg.Gameplay.PlayerHealth)
	assert.Equal(t, Default().Gameplay.FireCooldownTicks, cfg.Gameplay.FireCooldownTicks)
	require.Len(t, cfg.Levels, 1)
	assert.Equal(t, 1, cfg.Levels[0].EnemyCount(entity.VariantBrute))
	assert.Len(t, cfg.Enemies, 3)
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("gameplay: [oops"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("gameplay:\n  tick_rate: -1\n"), 0o644))
	_, err = Load(invalid)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadSearchPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, source, err := LoadWithSource("")
	require.NoError(t, err)
	assert.Equal(t, "embedded", source)
	assert.Equal(t, Default(), cfg)

	dir := filepath.Join(home, ".shooter", "configs")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("gameplay:\n  milestone_step: 42\n"), 0o644))

	cfg, source, err = LoadWithSource("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), source)
	assert.Equal(t, 42, cfg.Gameplay.MilestoneStep)
}

func TestVariantSpecsFallsBackToDefaults(t *testing.T) {
	cfg := Default()
	delete(cfg.Enemies, "runner")
	brute := cfg.Enemies["brute"]
	brute.Score = 99
	cfg.Enemies["brute"] = brute

	specs := cfg.VariantSpecs()
	assert.Equal(t, entity.DefaultVariantSpecs()[entity.VariantRunner], specs[entity.VariantRunner])
	assert.Equal(t, 99, specs[entity.VariantBrute].Score)
}
