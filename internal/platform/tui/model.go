package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shooter/internal/geom"
	"github.com/vovakirdan/tui-shooter/internal/input"
	"github.com/vovakirdan/tui-shooter/internal/loop"
	"github.com/vovakirdan/tui-shooter/internal/storage"
)

const saveTimeout = 5 * time.Second

type (
	startedMsg struct{}
	errMsg     struct{ err error }
	bestMsg    struct{ best int }
)

type savedMsg struct {
	record bool
	best   int
	err    error
}

// Model is the Bubble Tea model for one player. It never touches the world
// directly: keys become intents for the scheduler and every frame draws the
// latest snapshot.
type Model struct {
	ctx    context.Context
	sched  *loop.Scheduler
	store  *storage.Store // Optional
	logger *log.Logger

	keys     KeyMap
	help     help.Model
	resolver *input.Resolver
	canvas   *Canvas
	fps      int

	// Terminals report key presses but no releases, so a direction keeps
	// applying for a few frames after its last key event.
	holdFrames int
	held       geom.Direction
	holdLeft   int
	fire       bool

	status      Status
	messageLeft int
	saved       bool // Score submitted for the current run
	quitting    bool
}

// NewModel creates the model for sched. store may be nil, in which case no
// scores are kept.
func NewModel(ctx context.Context, sched *loop.Scheduler, store *storage.Store, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	fps := sched.TickRate()
	h := help.New()
	h.ShowAll = false

	return Model{
		ctx:        ctx,
		sched:      sched,
		store:      store,
		logger:     logger,
		keys:       DefaultKeyMap(),
		help:       h,
		resolver:   &input.Resolver{},
		canvas:     NewCanvas(80, 24),
		fps:        fps,
		holdFrames: max(1, fps/4),
	}
}

// Init starts a run on a random level.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.startCmd(), m.loadBestCmd(), frameCmd(m.fps))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.canvas.Resize(msg.Width, msg.Height-1)
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		return m.handleFrame()

	case startedMsg:
		m.saved = false
		m.status.Record = false
		m.status.Message = ""
		m.status.State = m.sched.State()
		return m, nil

	case bestMsg:
		m.status.Best = max(m.status.Best, msg.best)
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.logger.Warn("could not save score", "error", msg.err)
			return m, nil
		}
		m.status.Record = msg.record
		m.status.Best = max(m.status.Best, msg.best)
		return m, nil

	case errMsg:
		m.logger.Error("scheduler error", "error", msg.err)
		m.status.Message = msg.err.Error()
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.sched.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		switch m.sched.State() {
		case loop.StateRunning:
			m.sched.Pause()
		case loop.StatePaused:
			if err := m.sched.Play(m.ctx); err != nil {
				return m, func() tea.Msg { return errMsg{err} }
			}
		}
		m.status.State = m.sched.State()
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		m.resolver.Reset()
		m.holdLeft = 0
		m.sched.Stop()
		return m, m.startCmd()

	case key.Matches(msg, m.keys.Fire):
		m.fire = true
		return m, nil
	}

	if k, ok := m.keys.MoveKey(msg); ok {
		m.resolver.Type(k)
	}
	return m, nil
}

func (m Model) handleFrame() (tea.Model, tea.Cmd) {
	dir := m.resolver.Resolve()
	if dir != geom.DirNone {
		m.held, m.holdLeft = dir, m.holdFrames
	} else if m.holdLeft > 0 {
		m.holdLeft--
		dir = m.held
	}

	intent := input.Intent{Direction: dir, Fire: m.fire}
	m.fire = false
	if !intent.Empty() && m.sched.IsRunning() {
		m.sched.Submit(intent)
	}

	cmds := []tea.Cmd{frameCmd(m.fps)}
	for drained := false; !drained; {
		select {
		case e := <-m.sched.Events():
			if cmd := m.handleEvent(e); cmd != nil {
				cmds = append(cmds, cmd)
			}
		default:
			drained = true
		}
	}

	if m.messageLeft > 0 {
		m.messageLeft--
		if m.messageLeft == 0 {
			m.status.Message = ""
		}
	}
	m.status.State = m.sched.State()
	return m, tea.Batch(cmds...)
}

// handleEvent reacts to one scheduler event.
func (m *Model) handleEvent(e loop.Event) tea.Cmd {
	switch e := e.(type) {
	case loop.GameOverEvent:
		if m.saved {
			return nil
		}
		m.saved = true
		return m.saveCmd(e)
	case loop.MilestoneEvent:
		m.notify(fmt.Sprintf("%d POINTS!", e.Milestone))
	case loop.WaveEvent:
		m.notify(fmt.Sprintf("WAVE %d: %d enemies", e.Wave, e.Enemies))
	}
	return nil
}

func (m *Model) notify(text string) {
	m.status.Message = text
	m.messageLeft = 2 * m.fps
}

func (m Model) startCmd() tea.Cmd {
	sched, ctx := m.sched, m.ctx
	return func() tea.Msg {
		if err := sched.Start(ctx); err != nil {
			return errMsg{err}
		}
		return startedMsg{}
	}
}

func (m Model) loadBestCmd() tea.Cmd {
	if m.store == nil {
		return nil
	}
	store, ctx, logger := m.store, m.ctx, m.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, saveTimeout)
		defer cancel()
		best, err := store.HighScore(ctx)
		if err != nil {
			logger.Warn("could not load best score", "error", err)
		}
		return bestMsg{best: best}
	}
}

// saveCmd submits a finished run. Runs that scored nothing are not stored.
func (m Model) saveCmd(e loop.GameOverEvent) tea.Cmd {
	if m.store == nil || e.Score <= 0 {
		return nil
	}
	store, ctx := m.store, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, saveTimeout)
		defer cancel()

		record, err := store.SubmitScore(ctx, storage.Result{
			RunID: e.RunID,
			Level: e.Level,
			Wave:  e.Wave,
			Ticks: e.Ticks,
			Score: e.Score,
		})
		if err != nil {
			return savedMsg{err: err}
		}
		best, err := store.HighScore(ctx)
		return savedMsg{record: record, best: best, err: err}
	}
}

// Status returns what the HUD currently shows next to the snapshot.
func (m Model) Status() Status {
	return m.status
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	Frame(m.canvas, m.sched.Snapshot(), m.status)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return m.canvas.Render() + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for sched on the local terminal and
// blocks until the player quits.
func Run(ctx context.Context, sched *loop.Scheduler, store *storage.Store, logger *log.Logger) error {
	p := tea.NewProgram(
		NewModel(ctx, sched, store, logger),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	sched.Stop()
	return err
}
