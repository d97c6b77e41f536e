package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreset(t *testing.T) {
	for _, name := range []string{"easy", "normal", "hard", "fixed"} {
		p, err := ParsePreset(name)
		require.NoError(t, err)
		assert.Equal(t, DifficultyPreset(name), p)
	}
	_, err := ParsePreset("nightmare")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		health  int
		clamp   bool
		initial float64
	}{
		{DifficultyEasy, true, 5, true, 0},
		{DifficultyNormal, true, 3, true, 0.3},
		{DifficultyHard, true, 2, false, 0.7},
		{DifficultyFixed, false, 3, true, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := Default()
			ApplyPreset(&cfg, tt.preset)
			assert.Equal(t, tt.enabled, cfg.Difficulty.Enabled)
			assert.Equal(t, tt.health, cfg.Gameplay.PlayerHealth)
			assert.Equal(t, tt.clamp, cfg.Gameplay.ClampEnemySpeed)
			assert.InDelta(t, tt.initial, cfg.Difficulty.InitialLevel, 1e-9)
		})
	}
}

func TestDifficultyLevel(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 1000},
		Scaling:      ScalingConfig{SpeedMultiplier: 1},
	})

	assert.InDelta(t, 0.2, d.Level(0, 0), 1e-9)
	assert.InDelta(t, 0.6, d.Level(500, 0), 1e-9)
	assert.InDelta(t, 1.0, d.Level(5000, 0), 1e-9)
	assert.InDelta(t, 1.6, d.SpeedFactor(500, 0), 1e-9)

	timed := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 100},
	})
	assert.InDelta(t, 0.5, timed.Level(9999, 50), 1e-9)

	off := NewDifficultyManager(DifficultyConfig{InitialLevel: 0.4, Progression: ProgressionConfig{Type: "score", MaxAt: 10}})
	assert.InDelta(t, 0.4, off.Level(100, 100), 1e-9)
}

func TestWaveSize(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{Enabled: true, Scaling: ScalingConfig{ExtraPerWave: 1}})
	assert.Equal(t, 3, d.WaveSize(3, 0))
	assert.Equal(t, 5, d.WaveSize(3, 1))
	assert.Equal(t, 7, d.WaveSize(3, 2))

	fixed := NewDifficultyManager(DifficultyConfig{Scaling: ScalingConfig{ExtraPerWave: 5}})
	assert.Equal(t, 4, fixed.WaveSize(3, 1))
}
