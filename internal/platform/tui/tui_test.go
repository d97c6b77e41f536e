package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/entity"
	"github.com/vovakirdan/tui-shooter/internal/loop"
	"github.com/vovakirdan/tui-shooter/internal/storage"
)

func manualScheduler(t *testing.T, level int) *loop.Scheduler {
	t.Helper()
	s := loop.New(config.Default(), 3, loop.WithManualStep())
	require.NoError(t, s.Initialize(level))
	require.NoError(t, s.Play(context.Background()))
	return s
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func playerX(s *loop.Scheduler) float64 {
	for _, e := range s.Snapshot().Entities {
		if e.Kind == entity.KindPlayer {
			return e.Pos.X
		}
	}
	return -1
}

func TestCanvasClipsAndRenders(t *testing.T) {
	c := NewCanvas(5, 2)
	c.Set(-1, 0, 'x', ColorDefault)
	c.Set(5, 0, 'x', ColorDefault)
	c.DrawText(3, 1, "abc", ColorHUD)

	assert.Equal(t, "     \n   ab", c.Plain())
	assert.Equal(t, 'a', c.Get(3, 1))
	assert.Equal(t, ' ', c.Get(9, 9))
	assert.Contains(t, c.Render(), "ab")

	c.Resize(2, 1)
	assert.Equal(t, "  ", c.Plain())
}

func TestFrameDrawsSnapshot(t *testing.T) {
	s := manualScheduler(t, 0)
	c := NewCanvas(100, 40)

	Frame(c, s.Snapshot(), Status{Best: 300, State: s.State()})
	out := c.Plain()

	assert.True(t, strings.HasPrefix(out, "SCORE 0  BEST 300  HP ♥♥♥  LEVEL 1 Open Ground  WAVE 0"), out)
	assert.Contains(t, out, "█")
	assert.Contains(t, out, "▶", "player faces right at start")
	assert.Contains(t, out, "x", "basic enemies drawn")
	assert.NotContains(t, out, "GAME OVER")
}

func TestFrameGameOverBanner(t *testing.T) {
	s := manualScheduler(t, 0)
	c := NewCanvas(100, 40)

	Frame(c, s.Snapshot(), Status{State: loop.StateGameOver, Record: true})
	out := c.Plain()
	assert.Contains(t, out, "[GAME OVER]")
	assert.Contains(t, out, "G A M E   O V E R")
	assert.Contains(t, out, "NEW RECORD!")
}

func TestHUDLineBeforeFirstSnapshot(t *testing.T) {
	assert.Equal(t, "loading...", HUDLine(nil, Status{}))
}

func TestModelMovesPlayer(t *testing.T) {
	s := manualScheduler(t, 0)
	m := NewModel(context.Background(), s, nil, nil)
	start := playerX(s)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, FrameMsg{})
	require.True(t, s.Step())
	assert.InDelta(t, start+4, playerX(s), 1e-9)

	// No new key event: the direction is held for a few frames.
	m = update(t, m, FrameMsg{})
	require.True(t, s.Step())
	assert.InDelta(t, start+8, playerX(s), 1e-9)

	for i := 0; i < m.holdFrames; i++ {
		m = update(t, m, FrameMsg{})
	}
	s.Step()
	moved := playerX(s)
	m = update(t, m, FrameMsg{})
	s.Step()
	assert.InDelta(t, moved, playerX(s), 1e-9, "released after the hold window")
}

func TestModelFiresAndPauses(t *testing.T) {
	s := manualScheduler(t, 0)
	m := NewModel(context.Background(), s, nil, nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = update(t, m, FrameMsg{})
	require.True(t, s.Step())
	assert.Equal(t, 1, s.Snapshot().Count(entity.KindBullet))

	pause := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")}
	m = update(t, m, pause)
	assert.Equal(t, loop.StatePaused, s.State())
	assert.Equal(t, loop.StatePaused, m.Status().State)
	assert.False(t, s.Step())

	update(t, m, pause)
	assert.Equal(t, loop.StateRunning, s.State())
}

func TestModelSavesScoreOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer store.Close()

	s := manualScheduler(t, 0)
	m := NewModel(context.Background(), s, store, nil)

	over := loop.GameOverEvent{RunID: "run-a", Score: 120, Level: 0, Wave: 1, Ticks: 300}
	cmd := m.handleEvent(over)
	require.NotNil(t, cmd)
	assert.Nil(t, m.handleEvent(over), "a run is submitted once")

	m = update(t, m, cmd())
	assert.True(t, m.Status().Record)
	assert.Equal(t, 120, m.Status().Best)

	m.saved = false
	assert.Nil(t, m.handleEvent(loop.GameOverEvent{RunID: "run-b"}), "zero scores are not stored")
}

func TestModelMilestoneNotice(t *testing.T) {
	s := manualScheduler(t, 0)
	m := NewModel(context.Background(), s, nil, nil)

	m.handleEvent(loop.MilestoneEvent{Score: 510, Milestone: 500})
	assert.Equal(t, "500 POINTS!", m.Status().Message)

	for i := 0; i < 2*m.fps; i++ {
		m = update(t, m, FrameMsg{})
	}
	assert.Empty(t, m.Status().Message)
}

func TestScoreboardRows(t *testing.T) {
	entries := []storage.Entry{{Score: 500, Level: 2, Wave: 3}, {Score: 100}}
	m := NewScoreboardModel(entries, 80, 24)

	rows := m.table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"#1", "500", "3", "3"}, []string(rows[0][:4]))
	assert.Contains(t, m.View(), "HIGH SCORES")

	empty := NewScoreboardModel(nil, 80, 24)
	assert.Contains(t, empty.View(), "No scores recorded yet.")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.NotNil(t, cmd)
	assert.Empty(t, next.View())
}
