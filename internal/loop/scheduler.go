// Package loop drives the simulation. A Scheduler owns one World and advances
// it at a fixed tick rate on a dedicated goroutine. Other goroutines interact
// with it only through intents, snapshots and events.
package loop

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/engine"
	"github.com/vovakirdan/tui-shooter/internal/entity"
	"github.com/vovakirdan/tui-shooter/internal/input"
	"github.com/vovakirdan/tui-shooter/internal/score"
	"github.com/vovakirdan/tui-shooter/internal/world"
)

var (
	// ErrNotInitialized is returned by Play before a level was loaded.
	ErrNotInitialized = errors.New("loop: world not initialized")

	// ErrGameOver is returned by Play after the run ended. Initialize or
	// Start a new run first.
	ErrGameOver = errors.New("loop: game over")
)

// State is the scheduler's lifecycle state.
type State int32

const (
	StateStopped State = iota
	StateRunning
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Scheduler advances one World tick by tick.
type Scheduler struct {
	mu     sync.Mutex // Held for a whole tick; guards everything below
	world  *world.World
	engine *engine.Engine
	state  State
	runID  string

	levelRNG   *rand.Rand
	milestones *score.Milestones

	tickRate int
	manual   bool
	stop     chan struct{}
	done     chan struct{}

	intents  *Mailbox[input.Intent]
	events   *Mailbox[Event]
	snapshot atomic.Pointer[world.Snapshot]

	logger   *log.Logger
	observer Observer
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger for state changes. It is also passed to the
// world and the engine.
func WithLogger(l *log.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// WithObserver registers an observer for tick statistics and events.
func WithObserver(o Observer) Option {
	return func(s *Scheduler) { s.observer = o }
}

// WithTickRate overrides the configured ticks per second.
func WithTickRate(rate int) Option {
	return func(s *Scheduler) {
		if rate > 0 {
			s.tickRate = rate
		}
	}
}

// WithManualStep disables the loop goroutine. Play only switches the state
// and the caller advances the simulation with Step.
func WithManualStep() Option {
	return func(s *Scheduler) { s.manual = true }
}

// WithMailboxSize sets the capacity of the intent and event mailboxes.
func WithMailboxSize(n int) Option {
	return func(s *Scheduler) {
		s.intents = NewMailbox[input.Intent](n)
		s.events = NewMailbox[Event](n)
	}
}

// New creates a stopped scheduler. seed drives every random decision of the
// run, so equal seeds and equal intents replay identically.
func New(cfg config.Config, seed int64, opts ...Option) *Scheduler {
	s := &Scheduler{
		levelRNG: rand.New(rand.NewSource(seed)),
		tickRate: cfg.Gameplay.TickRate,
		intents:  NewMailbox[input.Intent](64),
		events:   NewMailbox[Event](64),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tickRate <= 0 {
		s.tickRate = 30
	}

	s.world = world.New(cfg, seed, world.WithLogger(s.logger))
	s.engine = engine.New(s.world, engine.WithLogger(s.logger))
	s.milestones = score.NewMilestones(cfg.Gameplay.MilestoneStep)
	return s
}

// Initialize loads level and resets the run. A running loop keeps running
// on the fresh world; a finished run goes back to stopped.
func (s *Scheduler) Initialize(level int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.world.Initialize(level); err != nil {
		return err
	}
	s.runID = uuid.NewString()
	s.milestones = score.NewMilestones(s.world.Config().Gameplay.MilestoneStep)
	s.intents.Drain()
	if s.state == StateGameOver {
		s.setState(StateStopped)
	}
	s.snapshot.Store(s.world.Snapshot())
	s.logger.Info("level loaded", "level", level, "name", s.world.LevelName(), "run", s.runID)
	return nil
}

// Start picks a random level, initializes it and starts playing.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	level := s.levelRNG.Intn(s.world.LevelCount())
	s.mu.Unlock()

	if err := s.Initialize(level); err != nil {
		return err
	}
	return s.Play(ctx)
}

// Play starts the loop if it is stopped or resumes it if it is paused.
// The loop goroutine exits when ctx is cancelled, on Stop, or when the
// player dies.
func (s *Scheduler) Play(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.world.Initialized() {
		return ErrNotInitialized
	}

	switch s.state {
	case StateRunning:
		return nil
	case StateGameOver:
		return ErrGameOver
	case StatePaused:
		s.setState(StateRunning)
		return nil
	}

	s.setState(StateRunning)
	if s.manual {
		return nil
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.run(ctx, s.stop, s.done)
	return nil
}

// Pause suspends tick advancement. A tick in progress completes first.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateRunning {
		s.setState(StatePaused)
	}
}

// Stop ends the loop goroutine and waits for it to exit. The world is kept,
// so Play continues the same run.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	if s.state == StateRunning || s.state == StatePaused || s.state == StateGameOver {
		s.setState(StateStopped)
	}
	s.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
}

// IsRunning reports whether ticks are currently advancing.
func (s *Scheduler) IsRunning() bool {
	return s.State() == StateRunning
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// RunID identifies the current run.
func (s *Scheduler) RunID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runID
}

// TickRate returns the ticks per second of the loop goroutine.
func (s *Scheduler) TickRate() int {
	return s.tickRate
}

// LevelCount returns how many levels Initialize accepts.
func (s *Scheduler) LevelCount() int {
	return s.world.LevelCount()
}

// Submit queues an intent for the next tick. It never blocks.
func (s *Scheduler) Submit(in input.Intent) {
	s.intents.Send(in)
}

// Snapshot returns the state published after the last completed tick, or
// nil before the first Initialize.
func (s *Scheduler) Snapshot() *world.Snapshot {
	return s.snapshot.Load()
}

// Events returns the channel events are delivered on. Events are dropped,
// oldest first, when nobody reads them.
func (s *Scheduler) Events() <-chan Event {
	return s.events.C()
}

// Step advances one tick if the scheduler is running and reports whether it
// did. The loop goroutine calls it on every timer tick; with WithManualStep
// the caller does.
func (s *Scheduler) Step() bool {
	advanced, _ := s.step()
	return advanced
}

func (s *Scheduler) run(ctx context.Context, stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(time.Second / time.Duration(s.tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			if s.done == done {
				s.stop, s.done = nil, nil
				if s.state != StateGameOver {
					s.setState(StateStopped)
				}
			}
			s.mu.Unlock()
			return
		case <-stop:
			return
		case <-ticker.C:
			// time.Ticker drops ticks for slow receivers, so a long tick
			// delays the next one instead of causing a burst.
			if _, over := s.step(); over {
				return
			}
		}
	}
}

func (s *Scheduler) step() (advanced, over bool) {
	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		return false, false
	}

	start := time.Now()
	events, stats := s.advance()
	stats.Duration = time.Since(start)
	over = s.state == StateGameOver
	s.mu.Unlock()

	for _, e := range events {
		s.events.Send(e)
		if s.observer != nil {
			s.observer.ObserveEvent(e)
		}
	}
	if s.observer != nil {
		s.observer.ObserveTick(stats)
	}
	return true, over
}

// advance runs one tick. The caller holds s.mu.
func (s *Scheduler) advance() ([]Event, TickStats) {
	w := s.world
	stats := TickStats{Rejections: make(map[engine.Reason]int)}

	in := input.Merge(s.intents.Drain())
	player := w.Player()
	player.Player.Turn(in.Direction)
	if in.Fire {
		s.engine.Fire()
	}

	// Entities killed during the tick stay in the collections until Prune,
	// so every update sees the same membership.
	for _, e := range w.Movable() {
		if r := s.engine.Update(e); r.Rejected {
			stats.Rejections[r.Reason]++
		}
	}
	stats.Pruned = w.Prune()
	w.Advance()

	var events []Event
	if player.Dead {
		prev := s.state
		s.state = StateGameOver
		events = append(events, StateEvent{From: prev, To: StateGameOver})
		over := GameOverEvent{
			RunID: s.runID,
			Score: player.Player.Score.Value(),
			Level: w.Level(),
			Wave:  w.Wave(),
			Ticks: w.Tick(),
		}
		events = append(events, over)
		s.logger.Info("game over", "score", over.Score, "level", over.Level, "ticks", over.Ticks, "run", s.runID)
	} else if r := w.Replenish(); r.NewWave {
		events = append(events, WaveEvent{Wave: r.Wave, Enemies: r.Enemies, Tick: w.Tick()})
	}

	for _, m := range s.milestones.Crossed(player.Player.Score.Value()) {
		events = append(events, MilestoneEvent{Score: player.Player.Score.Value(), Milestone: m, Tick: w.Tick()})
	}

	snap := w.Snapshot()
	s.snapshot.Store(snap)

	stats.Tick = snap.Tick
	stats.Entities = make(map[entity.Kind]int)
	for _, e := range snap.Entities {
		stats.Entities[e.Kind]++
	}
	return events, stats
}

// setState records a transition. The caller holds s.mu.
func (s *Scheduler) setState(to State) {
	from := s.state
	if from == to {
		return
	}
	s.state = to
	s.logger.Info("state changed", "from", from, "to", to)
	s.events.Send(StateEvent{From: from, To: to})
	if s.observer != nil {
		s.observer.ObserveEvent(StateEvent{From: from, To: to})
	}
}
