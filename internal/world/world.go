// Package world holds the simulation state of one run: every entity indexed
// by ID, the arena, the player reference and the spawn logic. It is the only
// shared mutable state; the engine reaches siblings exclusively through it.
package world

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shooter/internal/arena"
	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/entity"
	"github.com/vovakirdan/tui-shooter/internal/geom"
)

var (
	// ErrUnknownLevel is returned by Initialize for a level outside [0, LevelCount).
	ErrUnknownLevel = errors.New("world: unknown level")

	// ErrNoFreeSpace is returned when no spawn position could be found.
	ErrNoFreeSpace = errors.New("world: no free space")
)

// spawnClearance is the minimum enemy spawn distance from the player, in cells.
const spawnClearance = 4

// World is the container of all live entities of a run.
type World struct {
	cfg        config.Config
	variants   map[entity.Variant]entity.VariantSpec
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	logger     *log.Logger

	arena    *arena.Arena
	entities map[entity.ID]*entity.Entity
	movable  []entity.ID // Insertion order
	stable   []entity.ID // Insertion order
	nextID   entity.ID
	player   *entity.Entity // Kept after death so the final score stays readable

	level       int
	levelCfg    config.LevelConfig
	tick        uint64
	wave        int
	initialized bool
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for spawn diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(w *World) { w.logger = l }
}

// New creates an empty world. Call Initialize before use.
func New(cfg config.Config, seed int64, opts ...Option) *World {
	w := &World{
		cfg:        cfg,
		variants:   cfg.VariantSpecs(),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		rng:        rand.New(rand.NewSource(seed)),
		logger:     log.New(io.Discard),
		entities:   make(map[entity.ID]*entity.Entity),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Initialize resets the world for level and populates it.
func (w *World) Initialize(level int) error {
	if level < 0 || level >= w.cfg.LevelCount() {
		return fmt.Errorf("%w: %d (have %d)", ErrUnknownLevel, level, w.cfg.LevelCount())
	}

	a, err := arena.New(w.cfg.Arena.Params())
	if err != nil {
		return fmt.Errorf("world: level %d: %w", level, err)
	}

	w.arena = a
	w.entities = make(map[entity.ID]*entity.Entity)
	w.movable = nil
	w.stable = nil
	w.nextID = entity.NoID
	w.player = nil
	w.level = level
	w.levelCfg = w.cfg.Levels[level]
	w.tick = 0
	w.wave = 0
	w.initialized = false

	cell := a.CellSize()
	wallSize := entity.Size{W: cell, H: cell}
	for _, p := range a.Walls() {
		w.Add(entity.NewWall(p, wallSize))
	}
	for _, c := range w.levelCfg.Obstacles {
		wall := entity.NewWall(a.CellCenter(c.Col, c.Row), wallSize)
		if !a.IsInside(wall.Bounds()) {
			w.logger.Warn("skipping obstacle outside playable area", "level", level, "col", c.Col, "row", c.Row)
			continue
		}
		w.Add(wall)
	}

	// Enemy waves enter from the corners of the playable area.
	play := a.Playable()
	inset := float64(cell)
	left, top := float64(play.X)+inset, float64(play.Y)+inset
	right, bottom := float64(play.Right())-inset, float64(play.Bottom())-inset
	for _, p := range []geom.Vec2{geom.V(left, top), geom.V(right, top), geom.V(left, bottom), geom.V(right, bottom)} {
		a.AddSpawnPoint(p)
	}

	w.player = entity.NewPlayer(a.Center(), w.cfg.Sizes.Player, w.cfg.Speeds.Player, w.cfg.Gameplay.PlayerHealth)
	w.Add(w.player)

	for _, v := range entity.Variants {
		for i := 0; i < w.levelCfg.EnemyCount(v); i++ {
			if _, err := w.SpawnEnemy(v); err != nil {
				return fmt.Errorf("world: level %d: %w", level, err)
			}
		}
	}
	for i := 0; i < w.levelCfg.Bonuses; i++ {
		if _, err := w.SpawnBonus(); err != nil {
			return fmt.Errorf("world: level %d: %w", level, err)
		}
	}

	w.initialized = true
	w.logger.Debug("world initialized", "level", level, "name", w.levelCfg.Name, "entities", len(w.entities))
	return nil
}

// Initialized reports whether Initialize has completed successfully.
func (w *World) Initialized() bool {
	return w.initialized
}

// Add assigns an ID to e and stores it. Movable kinds are appended to the
// update order.
func (w *World) Add(e *entity.Entity) entity.ID {
	w.nextID++
	e.ID = w.nextID
	w.entities[e.ID] = e
	if e.Kind.Movable() {
		w.movable = append(w.movable, e.ID)
	} else {
		w.stable = append(w.stable, e.ID)
	}
	return e.ID
}

// Get returns the entity with the given ID, dead or alive.
func (w *World) Get(id entity.ID) (*entity.Entity, bool) {
	e, ok := w.entities[id]
	return e, ok
}

// Player returns the player entity, or nil before Initialize. The reference
// remains valid after the player has died and been pruned.
func (w *World) Player() *entity.Entity {
	return w.player
}

// Movable returns the movable entities in insertion order. The slice is a
// copy, so entities added while iterating are not visited.
func (w *World) Movable() []*entity.Entity {
	return w.collect(w.movable)
}

// Stable returns walls and bonuses in insertion order.
func (w *World) Stable() []*entity.Entity {
	return w.collect(w.stable)
}

func (w *World) collect(ids []entity.ID) []*entity.Entity {
	out := make([]*entity.Entity, 0, len(ids))
	for _, id := range ids {
		out = append(out, w.entities[id])
	}
	return out
}

// Colliding returns the live entities of kind whose boxes overlap box,
// excluding the entity with ID exclude.
func (w *World) Colliding(box geom.Rect, kind entity.Kind, exclude entity.ID) []*entity.Entity {
	ids := w.stable
	if kind.Movable() {
		ids = w.movable
	}

	var hits []*entity.Entity
	for _, id := range ids {
		e := w.entities[id]
		if e.Dead || e.Kind != kind || e.ID == exclude {
			continue
		}
		if e.Bounds().Intersects(box) {
			hits = append(hits, e)
		}
	}
	return hits
}

// Count returns the number of live entities of kind.
func (w *World) Count(kind entity.Kind) int {
	n := 0
	for _, e := range w.entities {
		if e.Kind == kind && !e.Dead {
			n++
		}
	}
	return n
}

// Prune removes every dead entity, preserving the order of the rest, and
// returns how many were removed.
func (w *World) Prune() int {
	removed := 0
	keep := func(ids []entity.ID) []entity.ID {
		out := ids[:0]
		for _, id := range ids {
			e := w.entities[id]
			if e.Dead {
				delete(w.entities, id)
				removed++
				continue
			}
			out = append(out, id)
		}
		return out
	}
	w.movable = keep(w.movable)
	w.stable = keep(w.stable)
	return removed
}

// Advance increments the tick counter.
func (w *World) Advance() {
	w.tick++
}

// Arena returns the current arena.
func (w *World) Arena() *arena.Arena { return w.arena }

// Config returns the configuration the world was built with.
func (w *World) Config() config.Config { return w.cfg }

// Rand returns the world's seeded random source. Only the loop goroutine
// may use it.
func (w *World) Rand() *rand.Rand { return w.rng }

// Level returns the current level index.
func (w *World) Level() int { return w.level }

// LevelName returns the current level's display name.
func (w *World) LevelName() string { return w.levelCfg.Name }

// Tick returns the number of completed ticks.
func (w *World) Tick() uint64 { return w.tick }

// Wave returns the current wave number, starting at 0.
func (w *World) Wave() int { return w.wave }

// LevelCount returns how many levels Initialize accepts.
func (w *World) LevelCount() int { return w.cfg.LevelCount() }
