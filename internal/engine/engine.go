// Package engine advances entities one tick at a time. Every movable entity
// follows the same pattern: compute a desired displacement, validate the
// hypothetical position against the arena, the obstacles and the kind's
// collision partners, then either commit the move or handle the rejection.
//
// Rejection is a value (Result), never an error or a panic. A panic raised
// while updating one entity is recovered and reported as a Fault so the rest
// of the tick still runs.
package engine

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shooter/internal/entity"
	"github.com/vovakirdan/tui-shooter/internal/geom"
	"github.com/vovakirdan/tui-shooter/internal/world"
)

// Reason explains why a move was rejected.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonOutOfBounds
	ReasonObstacle
	ReasonEnemy
	ReasonPlayer
	ReasonFault
)

// Reasons lists every rejection reason, ReasonNone excluded.
var Reasons = []Reason{ReasonOutOfBounds, ReasonObstacle, ReasonEnemy, ReasonPlayer, ReasonFault}

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonOutOfBounds:
		return "out_of_bounds"
	case ReasonObstacle:
		return "obstacle"
	case ReasonEnemy:
		return "enemy"
	case ReasonPlayer:
		return "player"
	case ReasonFault:
		return "fault"
	default:
		return "unknown"
	}
}

// Result is the outcome of validating or applying one move.
type Result struct {
	Pos      geom.Vec2 // Committed position; the old one when rejected
	Rejected bool
	Reason   Reason
	Hits     []*entity.Entity // Partners touched: blockers on rejection, bonuses on a committed player move
}

func accept(pos geom.Vec2, hits []*entity.Entity) Result {
	return Result{Pos: pos, Hits: hits}
}

func reject(pos geom.Vec2, reason Reason, hits []*entity.Entity) Result {
	return Result{Pos: pos, Rejected: true, Reason: reason, Hits: hits}
}

type updateFunc func(*Engine, *entity.Entity) Result

// Engine applies per-kind update rules to the entities of one World.
type Engine struct {
	world  *world.World
	logger *log.Logger

	clampEnemies      bool
	invulnerableTicks int
	fireCooldownTicks int

	updaters map[entity.Kind]updateFunc
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used to report faults.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an engine for w using the gameplay section of w's config.
func New(w *world.World, opts ...Option) *Engine {
	g := w.Config().Gameplay
	e := &Engine{
		world:             w,
		logger:            log.New(io.Discard),
		clampEnemies:      g.ClampEnemySpeed,
		invulnerableTicks: g.InvulnerableTicks,
		fireCooldownTicks: g.FireCooldownTicks,
		updaters: map[entity.Kind]updateFunc{
			entity.KindEnemy:  (*Engine).updateEnemy,
			entity.KindBullet: (*Engine).updateBullet,
			entity.KindPlayer: (*Engine).updatePlayer,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Validate checks whether e may move by desired. Checks run in order: arena
// containment, static obstacles, then the collision partners of e's kind.
// The first failing check decides the result.
func (eng *Engine) Validate(e *entity.Entity, desired geom.Vec2) Result {
	if !desired.IsFinite() {
		return reject(e.Pos, ReasonFault, nil)
	}

	target := e.Pos.Add(desired)
	box := e.BoundsAt(target)

	if !eng.world.Arena().IsInside(box) {
		return reject(e.Pos, ReasonOutOfBounds, nil)
	}
	if walls := eng.world.Colliding(box, entity.KindWall, e.ID); len(walls) > 0 {
		return reject(e.Pos, ReasonObstacle, walls)
	}

	switch e.Kind {
	case entity.KindBullet:
		if enemies := eng.world.Colliding(box, entity.KindEnemy, e.ID); len(enemies) > 0 {
			return reject(e.Pos, ReasonEnemy, enemies)
		}
	case entity.KindEnemy:
		if players := eng.world.Colliding(box, entity.KindPlayer, e.ID); len(players) > 0 {
			return reject(e.Pos, ReasonPlayer, players)
		}
	case entity.KindPlayer:
		if enemies := eng.world.Colliding(box, entity.KindEnemy, e.ID); len(enemies) > 0 {
			return reject(e.Pos, ReasonEnemy, enemies)
		}
		// Bonuses never block the player.
		return accept(target, eng.world.Colliding(box, entity.KindBonus, e.ID))
	}
	return accept(target, nil)
}

// Update advances e by one tick. Dead entities and kinds without an update
// rule are left untouched.
func (eng *Engine) Update(e *entity.Entity) (res Result) {
	if e.Dead {
		return accept(e.Pos, nil)
	}
	update, found := eng.updaters[e.Kind]
	if !found {
		return accept(e.Pos, nil)
	}

	defer func() {
		if r := recover(); r != nil {
			eng.logger.Error("entity update panicked", "id", e.ID, "kind", e.Kind, "panic", fmt.Sprint(r))
			res = reject(e.Pos, ReasonFault, nil)
		}
	}()
	return update(eng, e)
}

// Fire spawns a bullet from the player along its heading, unless the player
// is dead or still cooling down. It returns the bullet, or nil.
func (eng *Engine) Fire() *entity.Entity {
	p := eng.world.Player()
	if p == nil || p.Dead || p.Player.FireCooldown > 0 {
		return nil
	}
	b := eng.world.SpawnBullet(p.Pos, p.Player.Heading)
	p.Player.FireCooldown = eng.fireCooldownTicks
	return b
}

func (eng *Engine) updateEnemy(e *entity.Entity) Result {
	player := eng.world.Player()
	if player == nil || player.Dead {
		return accept(e.Pos, nil)
	}

	desired := e.Enemy.Behavior.NextMove(e.Pos, player.Pos, e.Motion.Speed.Max)
	if eng.clampEnemies && desired.IsFinite() {
		desired = e.Motion.Speed.Clamp(desired)
	}

	r := eng.Validate(e, desired)
	if r.Rejected {
		switch r.Reason {
		case ReasonPlayer:
			eng.damagePlayer(player, e.Enemy.Damage, e)
		case ReasonFault:
			eng.logger.Warn("enemy behavior returned an invalid vector", "id", e.ID, "behavior", e.Enemy.Behavior.Name(), "vector", desired)
		}
		return r
	}

	e.Pos = r.Pos
	e.Motion.Vector = desired
	return r
}

func (eng *Engine) updateBullet(e *entity.Entity) Result {
	length := e.Motion.Speed.Accelerate(e.Motion.Vector.Length())
	desired := e.Motion.Vector.WithLength(length)
	if desired.IsZero() {
		// A bullet that cannot move would never run out of range.
		e.Kill()
		return reject(e.Pos, ReasonFault, nil)
	}

	r := eng.Validate(e, desired)
	if r.Rejected {
		if r.Reason == ReasonEnemy {
			total := 0
			for _, enemy := range r.Hits {
				total += enemy.Enemy.Score
				enemy.Kill()
			}
			if p := eng.world.Player(); p != nil {
				p.Player.Score.Add(total)
			}
		}
		e.Kill()
		return r
	}

	e.Pos = r.Pos
	e.Motion.Vector = desired
	e.Bullet.Remaining -= length
	if e.Bullet.Remaining <= 0 {
		e.Kill()
	}
	return r
}

func (eng *Engine) updatePlayer(e *entity.Entity) Result {
	p := e.Player
	if p.Invulnerable > 0 {
		p.Invulnerable--
	}
	if p.FireCooldown > 0 {
		p.FireCooldown--
	}
	if p.Intent == geom.DirNone {
		return accept(e.Pos, nil)
	}

	desired := p.Intent.Vector().Scale(e.Motion.Speed.Max)
	r := eng.Validate(e, desired)
	if r.Rejected {
		if r.Reason == ReasonEnemy {
			worst := r.Hits[0]
			for _, enemy := range r.Hits[1:] {
				if enemy.Enemy.Damage > worst.Enemy.Damage {
					worst = enemy
				}
			}
			eng.damagePlayer(e, worst.Enemy.Damage, worst)
		}
		return r
	}

	e.Pos = r.Pos
	e.Motion.Vector = desired
	for _, bonus := range r.Hits {
		if bonus.Dead {
			continue
		}
		bonus.Kill()
		p.Score.Add(bonus.Bonus.Value)
	}
	return r
}

func (eng *Engine) damagePlayer(player *entity.Entity, damage int, source *entity.Entity) {
	if !player.Player.Hurt(damage, eng.invulnerableTicks) {
		return
	}
	eng.logger.Debug("player hit", "by", source.ID, "damage", damage, "health", player.Player.Health)
	if player.Player.Health <= 0 {
		player.Kill()
	}
}
