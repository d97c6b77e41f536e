package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/entity"
	"github.com/vovakirdan/tui-shooter/internal/geom"
)

func newWorld(t *testing.T, level int) *World {
	t.Helper()
	w := New(config.Default(), 42)
	require.NoError(t, w.Initialize(level))
	return w
}

func TestInitializeRejectsUnknownLevel(t *testing.T) {
	w := New(config.Default(), 1)
	for _, level := range []int{-1, 10, 99} {
		err := w.Initialize(level)
		assert.ErrorIs(t, err, ErrUnknownLevel, "level %d", level)
	}
	assert.False(t, w.Initialized())
}

func TestInitializePopulatesEveryLevel(t *testing.T) {
	cfg := config.Default()
	for level := 0; level < cfg.LevelCount(); level++ {
		w := New(cfg, int64(level))
		require.NoError(t, w.Initialize(level), "level %d", level)
		lc := cfg.Levels[level]

		walls := len(w.Arena().Walls()) + len(lc.Obstacles)
		assert.Equal(t, walls, w.Count(entity.KindWall), "level %d walls", level)
		assert.Equal(t, lc.TotalEnemies(), w.Count(entity.KindEnemy), "level %d enemies", level)
		assert.Equal(t, lc.Bonuses, w.Count(entity.KindBonus), "level %d bonuses", level)

		p := w.Player()
		require.NotNil(t, p)
		assert.Equal(t, w.Arena().Center(), p.Pos)
		assert.Equal(t, cfg.Gameplay.PlayerHealth, p.Player.Health)

		// Nothing spawns on top of anything else, and movers start inside.
		all := append(w.Stable(), w.Movable()...)
		for i, a := range all {
			if a.Kind != entity.KindWall {
				assert.True(t, w.Arena().IsInside(a.Bounds()), "level %d %s %d outside", level, a.Kind, a.ID)
			}
			for _, b := range all[i+1:] {
				assert.False(t, a.Intersects(b), "level %d: %s %d overlaps %s %d", level, a.Kind, a.ID, b.Kind, b.ID)
			}
		}
	}
}

func TestInitializeResetsState(t *testing.T) {
	w := newWorld(t, 0)
	w.Advance()
	w.Player().Player.Score.Add(100)

	require.NoError(t, w.Initialize(1))
	assert.Equal(t, uint64(0), w.Tick())
	assert.Equal(t, 1, w.Level())
	assert.Equal(t, "Pillars", w.LevelName())
	assert.Equal(t, 0, w.Player().Player.Score.Value())
}

func TestMovableKeepsInsertionOrder(t *testing.T) {
	w := newWorld(t, 0)
	movable := w.Movable()
	require.NotEmpty(t, movable)
	assert.Equal(t, entity.KindPlayer, movable[0].Kind)

	b := w.SpawnBullet(geom.V(200, 200), geom.DirUp)
	movable = w.Movable()
	assert.Equal(t, b.ID, movable[len(movable)-1].ID)
	for i := 1; i < len(movable); i++ {
		assert.Less(t, movable[i-1].ID, movable[i].ID)
	}
}

func TestCollidingSkipsDeadAndExcluded(t *testing.T) {
	w := newWorld(t, 0)
	a := w.Add(entity.NewWall(geom.V(300, 300), entity.Size{W: 10, H: 10}))
	b := w.Add(entity.NewWall(geom.V(305, 300), entity.Size{W: 10, H: 10}))

	box := geom.RectAround(geom.V(302, 300), 4, 4)
	hits := w.Colliding(box, entity.KindWall, entity.NoID)
	require.Len(t, hits, 2)

	hits = w.Colliding(box, entity.KindWall, a)
	require.Len(t, hits, 1)
	assert.Equal(t, b, hits[0].ID)

	e, ok := w.Get(b)
	require.True(t, ok)
	e.Kill()
	hits = w.Colliding(box, entity.KindWall, a)
	assert.Empty(t, hits)

	assert.Empty(t, w.Colliding(box, entity.KindEnemy, entity.NoID))
}

func TestPruneRemovesOnlyDead(t *testing.T) {
	w := newWorld(t, 3)
	before := w.Movable()

	var killed []entity.ID
	for i, e := range before {
		if e.Kind == entity.KindEnemy && i%2 == 0 {
			e.Kill()
			killed = append(killed, e.ID)
		}
	}
	require.NotEmpty(t, killed)

	assert.Equal(t, len(killed), w.Prune())
	assert.Equal(t, 0, w.Prune())

	after := w.Movable()
	assert.Len(t, after, len(before)-len(killed))
	for _, id := range killed {
		_, ok := w.Get(id)
		assert.False(t, ok)
	}
	for i := 1; i < len(after); i++ {
		assert.Less(t, after[i-1].ID, after[i].ID)
	}
}

func TestPlayerReferenceSurvivesPrune(t *testing.T) {
	w := newWorld(t, 0)
	p := w.Player()
	p.Player.Score.Add(70)
	p.Kill()
	w.Prune()

	_, ok := w.Get(p.ID)
	assert.False(t, ok)
	require.NotNil(t, w.Player())
	assert.Equal(t, 70, w.Player().Player.Score.Value())
	assert.False(t, w.Snapshot().PlayerAlive)
}

func TestReplenishStartsLargerWave(t *testing.T) {
	w := newWorld(t, 0)
	first := w.Count(entity.KindEnemy)
	for _, e := range w.Movable() {
		if e.Kind == entity.KindEnemy {
			e.Kill()
		}
	}
	w.Prune()

	r := w.Replenish()
	assert.True(t, r.NewWave)
	assert.Equal(t, 1, r.Wave)
	assert.Equal(t, first+1, r.Enemies)
	assert.Equal(t, first+1, w.Count(entity.KindEnemy))

	r = w.Replenish()
	assert.False(t, r.NewWave)
}

func TestReplenishRespawnsBonusUpToCap(t *testing.T) {
	w := newWorld(t, 0)
	interval := w.Config().Gameplay.BonusIntervalTicks
	limit := w.Config().Levels[0].MaxBonus
	require.Positive(t, interval)

	for i := 0; i < interval*(limit+2); i++ {
		w.Advance()
		w.Replenish()
	}
	assert.Equal(t, limit, w.Count(entity.KindBonus))
}

func TestSpawnBulletRange(t *testing.T) {
	w := newWorld(t, 0)
	g := w.Config().Gameplay
	for i := 0; i < 50; i++ {
		b := w.SpawnBullet(geom.V(200, 200), geom.DirRight)
		assert.GreaterOrEqual(t, b.Bullet.Remaining, g.BulletRange)
		assert.Less(t, b.Bullet.Remaining, g.BulletRange+float64(g.BulletRangeJitter))
	}
}

func TestSpawnEnemyKeepsClearanceFromPlayer(t *testing.T) {
	w := newWorld(t, 0)
	clearance := float64(spawnClearance * w.Arena().CellSize())
	for i := 0; i < 20; i++ {
		e, err := w.SpawnEnemy(entity.VariantRunner)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, e.Pos.Sub(w.Player().Pos).Length(), clearance)
	}
}

func TestSpawnFailsWhenArenaIsFull(t *testing.T) {
	cfg := config.Default()
	cfg.Levels = []config.LevelConfig{{Name: "crowded", Enemies: map[string]int{"brute": 200}}}
	cfg.Gameplay.SpawnAttempts = 5

	w := New(cfg, 3)
	err := w.Initialize(0)
	assert.ErrorIs(t, err, ErrNoFreeSpace)
}

func TestObstaclesOutsideArenaAreSkipped(t *testing.T) {
	cfg := config.Default()
	cfg.Levels = []config.LevelConfig{{
		Name:      "broken",
		Enemies:   map[string]int{"basic": 1},
		Obstacles: []config.Cell{{Col: 0, Row: 0}, {Col: 5, Row: 5}},
	}}

	w := New(cfg, 3)
	require.NoError(t, w.Initialize(0))
	assert.Equal(t, len(w.Arena().Walls())+1, w.Count(entity.KindWall))
}

func TestSnapshotIsDeterministicAndDetached(t *testing.T) {
	a := newWorld(t, 5)
	b := newWorld(t, 5)
	sa, sb := a.Snapshot(), b.Snapshot()
	assert.Equal(t, sa.Hash(), sb.Hash())
	assert.Equal(t, sa.Count(entity.KindEnemy), a.Count(entity.KindEnemy))

	a.Player().Pos = a.Player().Pos.Add(geom.V(4, 0))
	assert.NotEqual(t, sa.Hash(), a.Snapshot().Hash())
	assert.Equal(t, sb.Hash(), sa.Hash(), "old snapshot must not change")

	c := New(config.Default(), 43)
	require.NoError(t, c.Initialize(5))
	assert.NotEqual(t, sb.Hash(), c.Snapshot().Hash())
}
