package loop

import (
	"time"

	"github.com/vovakirdan/tui-shooter/internal/engine"
	"github.com/vovakirdan/tui-shooter/internal/entity"
)

// Event is emitted by the scheduler after a tick completes.
type Event interface {
	eventName() string
}

// GameOverEvent reports the end of a run: the player died.
type GameOverEvent struct {
	RunID string
	Score int
	Level int
	Wave  int
	Ticks uint64
}

// MilestoneEvent reports that the score crossed a multiple of the milestone step.
type MilestoneEvent struct {
	Score     int
	Milestone int
	Tick      uint64
}

// WaveEvent reports that a new wave of enemies entered the arena.
type WaveEvent struct {
	Wave    int
	Enemies int
	Tick    uint64
}

// StateEvent reports a scheduler state transition.
type StateEvent struct {
	From State
	To   State
}

func (GameOverEvent) eventName() string  { return "game_over" }
func (MilestoneEvent) eventName() string { return "milestone" }
func (WaveEvent) eventName() string      { return "wave" }
func (StateEvent) eventName() string     { return "state" }

// EventName returns a stable name for e, suitable for logs and metric labels.
func EventName(e Event) string {
	return e.eventName()
}

// TickStats summarizes one completed tick for observers.
type TickStats struct {
	Tick       uint64
	Duration   time.Duration
	Rejections map[engine.Reason]int
	Pruned     int
	Entities   map[entity.Kind]int
}

// Observer receives tick statistics and events. Implementations must not
// block and must not call back into the Scheduler.
type Observer interface {
	ObserveTick(TickStats)
	ObserveEvent(Event)
}
