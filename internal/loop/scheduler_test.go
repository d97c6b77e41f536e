package loop

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/entity"
	"github.com/vovakirdan/tui-shooter/internal/geom"
	"github.com/vovakirdan/tui-shooter/internal/input"
	"github.com/vovakirdan/tui-shooter/internal/world"
)

type recorder struct {
	mu     sync.Mutex
	ticks  []TickStats
	events []Event
}

func (r *recorder) ObserveTick(s TickStats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, s)
}

func (r *recorder) ObserveEvent(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func manual(t *testing.T, cfg config.Config, level int, opts ...Option) *Scheduler {
	t.Helper()
	s := New(cfg, 7, append([]Option{WithManualStep()}, opts...)...)
	require.NoError(t, s.Initialize(level))
	require.NoError(t, s.Play(context.Background()))
	return s
}

func gameOvers(events []Event) []GameOverEvent {
	var out []GameOverEvent
	for _, e := range events {
		if g, ok := e.(GameOverEvent); ok {
			out = append(out, g)
		}
	}
	return out
}

func TestPlayRequiresInitialize(t *testing.T) {
	s := New(config.Default(), 1, WithManualStep())
	assert.ErrorIs(t, s.Play(context.Background()), ErrNotInitialized)
	assert.Nil(t, s.Snapshot())
	assert.False(t, s.Step())

	assert.ErrorIs(t, s.Initialize(42), world.ErrUnknownLevel)
	assert.Equal(t, StateStopped, s.State())
}

func TestStepAppliesIntents(t *testing.T) {
	s := manual(t, config.Default(), 0)
	start := s.Snapshot()
	bullets := start.Count(entity.KindBullet)

	s.Submit(input.Intent{Direction: geom.DirUp})
	s.Submit(input.Intent{Fire: true})
	s.Submit(input.Intent{Direction: geom.DirRight})
	require.True(t, s.Step())

	snap := s.Snapshot()
	assert.Equal(t, uint64(1), snap.Tick)
	assert.Equal(t, geom.DirRight, snap.Heading)
	assert.Equal(t, bullets+1, snap.Count(entity.KindBullet))

	var player world.EntityView
	for _, e := range snap.Entities {
		if e.Kind == entity.KindPlayer {
			player = e
		}
	}
	assert.InDelta(t, 404, player.Pos.X, 1e-9)
	assert.InDelta(t, 325, player.Pos.Y, 1e-9)

	// No intent: the player stands still.
	require.True(t, s.Step())
	for _, e := range s.Snapshot().Entities {
		if e.Kind == entity.KindPlayer {
			assert.InDelta(t, 404, e.Pos.X, 1e-9)
		}
	}
}

func TestPauseResumeMatchesUninterruptedRun(t *testing.T) {
	cfg := config.Default()
	cfg.Gameplay.PlayerHealth = 1000
	script := func(i int) input.Intent {
		dirs := []geom.Direction{geom.DirUp, geom.DirLeft, geom.DirDown, geom.DirRight, geom.DirNone}
		return input.Intent{Direction: dirs[(i/7)%len(dirs)], Fire: i%5 == 0}
	}

	straight := manual(t, cfg, 4)
	for i := 0; i < 120; i++ {
		straight.Submit(script(i))
		require.True(t, straight.Step())
	}

	paused := manual(t, cfg, 4)
	for i := 0; i < 60; i++ {
		paused.Submit(script(i))
		require.True(t, paused.Step())
	}
	paused.Pause()
	assert.Equal(t, StatePaused, paused.State())
	assert.False(t, paused.IsRunning())
	frozen := paused.Snapshot().Hash()
	for i := 0; i < 10; i++ {
		assert.False(t, paused.Step())
	}
	assert.Equal(t, frozen, paused.Snapshot().Hash())

	require.NoError(t, paused.Play(context.Background()))
	for i := 60; i < 120; i++ {
		paused.Submit(script(i))
		require.True(t, paused.Step())
	}

	assert.Equal(t, straight.Snapshot().Tick, paused.Snapshot().Tick)
	assert.Equal(t, straight.Snapshot().Hash(), paused.Snapshot().Hash())
}

func TestGameOver(t *testing.T) {
	rec := &recorder{}
	s := manual(t, config.Default(), 0, WithObserver(rec))
	s.mu.Lock()
	s.world.Player().Player.Score.Add(30)
	s.world.Player().Kill()
	s.mu.Unlock()

	require.True(t, s.Step())
	assert.Equal(t, StateGameOver, s.State())
	assert.False(t, s.Step())
	assert.False(t, s.Snapshot().PlayerAlive)

	overs := gameOvers(s.events.Drain())
	require.Len(t, overs, 1)
	assert.Equal(t, 30, overs[0].Score)
	assert.Equal(t, 0, overs[0].Level)
	assert.Equal(t, uint64(1), overs[0].Ticks)
	assert.Equal(t, s.RunID(), overs[0].RunID)
	assert.Len(t, gameOvers(rec.events), 1)

	assert.ErrorIs(t, s.Play(context.Background()), ErrGameOver)

	oldRun := s.RunID()
	require.NoError(t, s.Initialize(1))
	assert.Equal(t, StateStopped, s.State())
	assert.NotEqual(t, oldRun, s.RunID())
	require.NoError(t, s.Play(context.Background()))
	assert.True(t, s.Step())
	assert.Equal(t, 0, s.Snapshot().Score)
}

func TestMilestonesAndObserver(t *testing.T) {
	cfg := config.Default()
	cfg.Gameplay.MilestoneStep = 10
	rec := &recorder{}
	s := manual(t, cfg, 0, WithObserver(rec))

	s.mu.Lock()
	s.world.Player().Player.Score.Add(25)
	s.mu.Unlock()
	require.True(t, s.Step())
	require.True(t, s.Step())

	var milestones []int
	for _, e := range s.events.Drain() {
		if m, ok := e.(MilestoneEvent); ok {
			milestones = append(milestones, m.Milestone)
		}
	}
	assert.Equal(t, []int{10, 20}, milestones)

	require.Len(t, rec.ticks, 2)
	assert.Equal(t, uint64(2), rec.ticks[1].Tick)
	assert.Equal(t, 1, rec.ticks[1].Entities[entity.KindPlayer])
	assert.Equal(t, cfg.Levels[0].TotalEnemies(), rec.ticks[0].Entities[entity.KindEnemy])
}

func TestWaveEventWhenEnemiesCleared(t *testing.T) {
	s := manual(t, config.Default(), 0)
	s.mu.Lock()
	for _, e := range s.world.Movable() {
		if e.Kind == entity.KindEnemy {
			e.Kill()
		}
	}
	s.mu.Unlock()

	require.True(t, s.Step())
	var waves []WaveEvent
	for _, e := range s.events.Drain() {
		if w, ok := e.(WaveEvent); ok {
			waves = append(waves, w)
		}
	}
	require.Len(t, waves, 1)
	assert.Equal(t, 1, waves[0].Wave)
	assert.Equal(t, waves[0].Enemies, s.Snapshot().Count(entity.KindEnemy))
}

func TestLoopGoroutine(t *testing.T) {
	cfg := config.Default()
	cfg.Gameplay.PlayerHealth = 1000
	s := New(cfg, 3, WithTickRate(200))
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.True(t, s.IsRunning())
	assert.Less(t, s.Snapshot().Level, s.LevelCount())

	require.Eventually(t, func() bool { return s.Snapshot().Tick >= 3 }, 2*time.Second, 5*time.Millisecond)

	s.Pause()
	paused := s.Snapshot().Tick
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, paused, s.Snapshot().Tick)

	require.NoError(t, s.Play(context.Background()))
	require.Eventually(t, func() bool { return s.Snapshot().Tick > paused }, 2*time.Second, 5*time.Millisecond)

	s.Stop()
	assert.Equal(t, StateStopped, s.State())
	stopped := s.Snapshot().Tick
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, s.Snapshot().Tick)

	// Play after Stop continues the same run.
	require.NoError(t, s.Play(context.Background()))
	require.Eventually(t, func() bool { return s.Snapshot().Tick > stopped }, 2*time.Second, 5*time.Millisecond)
}

func TestLoopStopsOnContextCancel(t *testing.T) {
	s := New(config.Default(), 3, WithTickRate(200))
	require.NoError(t, s.Initialize(0))

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Play(ctx))
	cancel()

	require.Eventually(t, func() bool { return s.State() == StateStopped }, 2*time.Second, 5*time.Millisecond)
	s.Stop()
}
