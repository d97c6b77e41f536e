package world

import (
	"fmt"

	"github.com/vovakirdan/tui-shooter/internal/behavior"
	"github.com/vovakirdan/tui-shooter/internal/entity"
	"github.com/vovakirdan/tui-shooter/internal/geom"
)

// WaveReport describes what Replenish spawned at the end of a tick.
type WaveReport struct {
	NewWave bool
	Wave    int
	Enemies int // Enemies spawned for the new wave
	Bonuses int // Bonuses respawned this tick
}

// SpawnEnemy adds an enemy of variant v at a free position away from the
// player. Its maximum speed is scaled by the current difficulty level.
func (w *World) SpawnEnemy(v entity.Variant) (*entity.Entity, error) {
	spec, ok := w.variants[v]
	if !ok {
		return nil, fmt.Errorf("world: no spec for variant %s", v)
	}

	b, err := behavior.Create(spec.Behavior, w.rng.Int63())
	if err != nil {
		return nil, fmt.Errorf("world: enemy %s: %w", v, err)
	}

	score := 0
	if p := w.player; p != nil {
		score = p.Player.Score.Value()
	}
	spec.Speed.Max *= w.difficulty.SpeedFactor(score, int(w.tick))
	if spec.Speed.Min > spec.Speed.Max {
		spec.Speed.Min = spec.Speed.Max
	}

	clearance := float64(spawnClearance * w.arena.CellSize())
	pos, err := w.freePosition(spec.Size, clearance, true)
	if err != nil {
		return nil, fmt.Errorf("world: enemy %s: %w", v, err)
	}

	e := entity.NewEnemy(pos, v, spec, b)
	w.Add(e)
	return e, nil
}

// SpawnBonus adds a bonus with a freshly drawn tier at a free position.
func (w *World) SpawnBonus() (*entity.Entity, error) {
	size := w.cfg.Sizes.Bonus
	pos, err := w.freePosition(size, 0, false)
	if err != nil {
		return nil, fmt.Errorf("world: bonus: %w", err)
	}
	e := entity.NewBonus(pos, size, w.rng)
	w.Add(e)
	return e, nil
}

// SpawnBullet adds a projectile at pos travelling along heading. Its range
// is the configured base plus a random jitter.
func (w *World) SpawnBullet(pos geom.Vec2, heading geom.Direction) *entity.Entity {
	g := w.cfg.Gameplay
	distance := g.BulletRange
	if g.BulletRangeJitter > 0 {
		distance += float64(w.rng.Intn(g.BulletRangeJitter))
	}
	e := entity.NewBullet(pos, heading, w.cfg.Sizes.Bullet, w.cfg.Speeds.Bullet, distance)
	w.Add(e)
	return e
}

// Replenish runs after pruning: bonuses respawn every bonus interval up to
// the level cap, and a new, larger wave starts once every enemy is dead.
func (w *World) Replenish() WaveReport {
	var r WaveReport
	g := w.cfg.Gameplay

	if g.BonusIntervalTicks > 0 && w.tick > 0 && w.tick%uint64(g.BonusIntervalTicks) == 0 {
		if w.Count(entity.KindBonus) < w.levelCfg.MaxBonus {
			if _, err := w.SpawnBonus(); err == nil {
				r.Bonuses++
			} else {
				w.logger.Warn("bonus respawn failed", "err", err)
			}
		}
	}

	if w.Count(entity.KindEnemy) > 0 {
		return r
	}

	first := w.levelCfg.TotalEnemies()
	if first == 0 {
		return r
	}
	w.wave++
	plan := w.wavePlan(w.difficulty.WaveSize(first, w.wave))
	for _, v := range plan {
		if _, err := w.SpawnEnemy(v); err != nil {
			w.logger.Warn("wave spawn failed", "wave", w.wave, "variant", v, "err", err)
			continue
		}
		r.Enemies++
	}
	r.NewWave = true
	r.Wave = w.wave
	w.logger.Debug("new wave", "wave", w.wave, "enemies", r.Enemies)
	return r
}

// wavePlan lists n variants: the level's first-wave mix, then extra enemies
// cycling over the variants the level uses.
func (w *World) wavePlan(n int) []entity.Variant {
	var plan, used []entity.Variant
	for _, v := range entity.Variants {
		c := w.levelCfg.EnemyCount(v)
		if c > 0 {
			used = append(used, v)
		}
		for i := 0; i < c && len(plan) < n; i++ {
			plan = append(plan, v)
		}
	}
	for i := 0; len(plan) < n; i++ {
		plan = append(plan, used[i%len(used)])
	}
	return plan
}

// freePosition finds a random center where a box of size overlaps no live
// entity. With useSpawnPoints set, registered spawn points are tried first.
// Positions closer than clearance to the player are rejected.
func (w *World) freePosition(size entity.Size, clearance float64, useSpawnPoints bool) (geom.Vec2, error) {
	free := func(p geom.Vec2) bool {
		box := geom.RectAround(p, size.W, size.H)
		if !w.arena.IsInside(box) {
			return false
		}
		if w.player != nil && clearance > 0 && p.Sub(w.player.Pos).Length() < clearance {
			return false
		}
		for _, e := range w.entities {
			if !e.Dead && e.Bounds().Intersects(box) {
				return false
			}
		}
		return true
	}

	if useSpawnPoints {
		if p, ok := w.arena.RandomSpawnPoint(w.rng); ok && free(p) {
			return p, nil
		}
	}

	attempts := w.cfg.Gameplay.SpawnAttempts
	if attempts <= 0 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		p, err := w.arena.PositionInside(size.W, size.H, w.rng)
		if err != nil {
			return geom.Vec2{}, err
		}
		if free(p) {
			return p, nil
		}
	}
	return geom.Vec2{}, fmt.Errorf("%w for %dx%d after %d attempts", ErrNoFreeSpace, size.W, size.H, attempts)
}
