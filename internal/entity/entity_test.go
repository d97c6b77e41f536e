package entity

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-shooter/internal/behavior"
	"github.com/vovakirdan/tui-shooter/internal/geom"
)

func TestBoundsCenteredOnTruncatedPosition(t *testing.T) {
	w := NewWall(geom.V(100.9, 50.2), Size{W: 32, H: 32})
	assert.Equal(t, geom.NewRect(84, 34, 32, 32), w.Bounds())
	assert.Equal(t, geom.NewRect(0, 0, 32, 32), w.BoundsAt(geom.V(16, 16)))
	assert.False(t, w.Movable())
}

func TestKillFlagsDead(t *testing.T) {
	e := NewWall(geom.V(0, 0), Size{W: 1, H: 1})
	require.True(t, e.Alive())
	e.Kill()
	assert.False(t, e.Alive())
}

func TestSpeedProfile(t *testing.T) {
	s := SpeedProfile{Min: 2, Max: 6, Accel: 1.5}

	assert.InDelta(t, 2, s.Accelerate(0), 1e-9)
	assert.InDelta(t, 3.5, s.Accelerate(2), 1e-9)
	assert.InDelta(t, 6, s.Accelerate(5.5), 1e-9)

	v := s.Clamp(geom.V(30, 40))
	assert.InDelta(t, 6, v.Length(), 1e-9)
	assert.True(t, s.Clamp(geom.Vec2{}).IsZero())
}

func TestBulletStartsAtMinSpeedAlongHeading(t *testing.T) {
	b := NewBullet(geom.V(100, 100), geom.DirRight, Size{W: 6, H: 6}, SpeedProfile{Min: 4, Max: 12, Accel: 1}, 600)

	require.Equal(t, KindBullet, b.Kind)
	assert.InDelta(t, 4, b.Motion.Vector.X, 1e-9)
	assert.InDelta(t, 0, b.Motion.Vector.Y, 1e-9)
	assert.InDelta(t, 600, b.Bullet.Remaining, 1e-9)
}

func TestDrawTierDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	counts := map[Tier]int{}
	const n = 100000
	for i := 0; i < n; i++ {
		counts[DrawTier(rng)]++
	}

	assert.InDelta(t, 0.701, float64(counts[TierLow])/n, 0.01)
	assert.InDelta(t, 0.25, float64(counts[TierMedium])/n, 0.01)
	assert.InDelta(t, 0.049, float64(counts[TierHigh])/n, 0.005)
}

func TestBonusValueMatchesTier(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		b := NewBonus(geom.V(0, 0), Size{W: 16, H: 16}, rng)
		assert.Equal(t, b.Bonus.Tier.Value(), b.Bonus.Value)
		assert.Contains(t, []int{LowBonus, MediumBonus, HighBonus}, b.Bonus.Value)
	}
}

func TestPlayerTurnKeepsLastHeading(t *testing.T) {
	p := NewPlayer(geom.V(0, 0), Size{W: 24, H: 24}, SpeedProfile{Min: 3, Max: 3}, 3)
	require.Equal(t, geom.DirRight, p.Player.Heading)

	p.Player.Turn(geom.DirUp)
	assert.Equal(t, geom.DirUp, p.Player.Heading)

	p.Player.Turn(geom.DirNone)
	assert.Equal(t, geom.DirNone, p.Player.Intent)
	assert.Equal(t, geom.DirUp, p.Player.Heading)
}

func TestPlayerHurtRespectsInvulnerability(t *testing.T) {
	p := NewPlayer(geom.V(0, 0), Size{W: 24, H: 24}, SpeedProfile{}, 3).Player

	assert.True(t, p.Hurt(1, 10))
	assert.Equal(t, 2, p.Health)
	assert.False(t, p.Hurt(1, 10))
	assert.Equal(t, 2, p.Health)

	p.Invulnerable = 0
	assert.False(t, p.Hurt(0, 10))
	assert.True(t, p.Hurt(2, 0))
	assert.Equal(t, 0, p.Health)
}

func TestVariants(t *testing.T) {
	specs := DefaultVariantSpecs()
	for _, v := range Variants {
		parsed, err := ParseVariant(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, parsed)

		spec, ok := specs[v]
		require.True(t, ok, v.String())
		assert.True(t, behavior.Exists(spec.Behavior), spec.Behavior)
	}

	basic := specs[VariantBasic]
	assert.Equal(t, 10, basic.Score)
	assert.Equal(t, 1, basic.Damage)

	_, err := ParseVariant("dragon")
	assert.Error(t, err)
}

func TestNewEnemyCopiesSpec(t *testing.T) {
	spec := DefaultVariantSpecs()[VariantBrute]
	e := NewEnemy(geom.V(10, 10), VariantBrute, spec, behavior.Chase{})

	assert.Equal(t, KindEnemy, e.Kind)
	assert.Equal(t, spec.Size, e.Size)
	assert.Equal(t, spec.Score, e.Enemy.Score)
	assert.Equal(t, spec.Damage, e.Enemy.Damage)
	assert.True(t, e.Movable())
}
