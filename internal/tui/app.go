package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/zenithtodo/zenith/internal/board"
	"github.com/zenithtodo/zenith/internal/focus"
	"github.com/zenithtodo/zenith/internal/tui/msgs"
	"github.com/zenithtodo/zenith/internal/tui/styles"
	"github.com/zenithtodo/zenith/internal/tui/views"
)

// Minimum terminal dimensions.
const (
	MinTerminalWidth  = 60
	MinTerminalHeight = 15
)

// View represents the different screens in the TUI.
type View int

const (
	ViewBoard View = iota
	ViewAdd
	ViewEdit
	ViewFocus
)

// Model is the main Bubble Tea model that orchestrates all views. It is the
// only place intents from the views reach the engine.
type Model struct {
	currentView View
	width       int
	height      int

	engine  *board.Engine
	opts    Options
	ctx     context.Context
	changes chan struct{}
	loading bool

	board views.BoardModel
	form  views.AddFormModel
	edit  views.EditModel
	focus views.FocusModel
}

// Run starts the TUI application.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)
	_, err = p.Run()
	return err
}

// New builds the root model and its engine. Log output is discarded unless
// a logger is supplied, since it would corrupt the alt screen.
func New(opts Options) (Model, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.FocusMinutes == 0 {
		opts.FocusMinutes = focus.DefaultMinutes
	}
	if opts.Scheduler == nil {
		opts.Scheduler = focus.TickerScheduler{}
	}
	if opts.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Logger = l
	}

	changes := make(chan struct{}, 1)
	notify := func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	}

	engine, err := board.New(opts.Repo, board.Options{
		DefaultPriority: opts.DefaultPriority,
		Themes:          opts.Themes,
		Logger:          opts.Logger,
		Notify:          notify,
		Now:             opts.Now,
	})
	if err != nil {
		return Model{}, err
	}
	styles.Use(engine.Theme())

	m := Model{
		currentView: ViewBoard,
		engine:      engine,
		opts:        opts,
		ctx:         context.Background(),
		changes:     changes,
		loading:     true,
		board:       views.NewBoardModel(),
		form:        views.NewAddFormModel(opts.DefaultPriority, opts.Now()),
	}
	m.refresh()
	return m, nil
}

// Engine exposes the board engine.
func (m Model) Engine() *board.Engine {
	return m.engine
}

// CurrentView returns the active screen.
func (m Model) CurrentView() View {
	return m.currentView
}

func (m *Model) refresh() {
	snap := views.SnapshotOf(m.engine)
	snap.Loading = m.loading
	m.board.SetSnapshot(snap)
}

// notify is handed to focus sessions so ticks repaint the overlay.
func (m Model) notify() {
	select {
	case m.changes <- struct{}{}:
	default:
	}
}

// listenForChanges returns a command that waits for the next engine or
// session change.
func (m Model) listenForChanges() tea.Cmd {
	return func() tea.Msg {
		<-m.changes
		return msgs.ChangedMsg{}
	}
}

func (m Model) loadCmd() tea.Cmd {
	engine, ctx := m.engine, m.ctx
	return func() tea.Msg {
		return msgs.LoadedMsg{Err: engine.Load(ctx)}
	}
}

// opCmd runs a remote write off the event loop.
func (m Model) opCmd(op string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return msgs.OpDoneMsg{Op: op, Err: fn(ctx)}
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.board.Init(),
		m.loadCmd(),
		m.listenForChanges(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.board.SetSize(msg.Width, msg.Height)
		m.form.SetWidth(min(msg.Width, 80))
		m.edit.SetWidth(min(msg.Width, 80))
		m.focus.SetSize(msg.Width, msg.Height)
		return m, nil

	case msgs.ChangedMsg:
		m.refresh()
		return m, m.listenForChanges()

	case msgs.LoadedMsg:
		m.loading = false
		m.refresh()
		return m, nil

	case msgs.OpDoneMsg:
		m.refresh()
		return m, nil

	case msgs.ReloadMsg:
		m.loading = true
		m.refresh()
		return m, tea.Batch(m.loadCmd(), m.board.Init())

	case msgs.SetTabMsg:
		m.engine.SetTab(msg.Tab)
		m.refresh()
		return m, nil

	case msgs.SetSearchMsg:
		m.engine.SetSearch(msg.Query)
		m.refresh()
		return m, nil

	case msgs.ToggleThemeMsg:
		theme, _ := m.engine.ToggleTheme()
		styles.Use(theme)
		m.refresh()
		return m, nil

	case msgs.OpenAddMsg:
		m.form.SetToday(m.opts.Now())
		m.currentView = ViewAdd
		return m, m.form.Init()

	case msgs.AddTaskMsg:
		m.currentView = ViewBoard
		draft := msg.Draft
		return m, m.opCmd("add", func(ctx context.Context) error {
			_, err := m.engine.Add(ctx, draft)
			return err
		})

	case msgs.OpenEditMsg:
		m.edit = views.NewEditModel(msg.Task, m.opts.Now())
		m.edit.SetWidth(min(m.width, 80))
		m.currentView = ViewEdit
		return m, m.edit.Init()

	case msgs.EditTaskMsg:
		m.currentView = ViewBoard
		id, patch := msg.ID, msg.Patch
		return m, m.opCmd("edit", func(ctx context.Context) error {
			return m.engine.EditFields(ctx, id, patch)
		})

	case msgs.ToggleTaskMsg:
		id := msg.ID
		return m, m.opCmd("toggle", func(ctx context.Context) error {
			return m.engine.ToggleComplete(ctx, id)
		})

	case msgs.DeleteTaskMsg:
		id := msg.ID
		return m, m.opCmd("delete", func(ctx context.Context) error {
			return m.engine.Remove(ctx, id)
		})

	case msgs.OpenFocusMsg:
		if !m.engine.Focus(msg.TaskID) {
			return m, nil
		}
		task, _ := m.engine.Focused()
		session := focus.NewSession(task.ID, m.opts.FocusMinutes, m.opts.Scheduler, m.notify)
		m.focus = views.NewFocusModel(task, session)
		m.focus.SetSize(m.width, m.height)
		m.currentView = ViewFocus
		return m, nil

	case msgs.CompleteFocusMsg:
		m.closeFocus()
		id := msg.TaskID
		return m, m.opCmd("complete", func(ctx context.Context) error {
			return m.engine.MarkDone(ctx, id)
		})

	case msgs.GoToBoardMsg:
		if m.currentView == ViewFocus {
			m.closeFocus()
		}
		m.currentView = ViewBoard
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.board, cmd = m.board.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if m.currentView == ViewFocus {
				m.closeFocus()
			}
			return m, tea.Quit
		}
	}

	return m.updateCurrent(msg)
}

func (m *Model) closeFocus() {
	if s := m.focus.Session(); s != nil {
		s.Close()
	}
	m.engine.Unfocus()
	m.currentView = ViewBoard
}

// updateCurrent forwards msg to the active view.
func (m Model) updateCurrent(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentView {
	case ViewAdd:
		m.form, cmd = m.form.Update(msg)
	case ViewEdit:
		m.edit, cmd = m.edit.Update(msg)
	case ViewFocus:
		m.focus, cmd = m.focus.Update(msg)
	default:
		m.board, cmd = m.board.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width < MinTerminalWidth || m.height < MinTerminalHeight {
		return m.renderTerminalTooSmall()
	}

	switch m.currentView {
	case ViewAdd:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.form.View())
	case ViewEdit:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.edit.View())
	case ViewFocus:
		return m.focus.View()
	default:
		return m.board.View()
	}
}

func (m Model) renderTerminalTooSmall() string {
	var b strings.Builder
	b.WriteString(styles.ErrorStyle.Render("Terminal too small"))
	b.WriteString("\n\n")
	b.WriteString(styles.SubtleStyle.Render(fmt.Sprintf("Minimum: %dx%d", MinTerminalWidth, MinTerminalHeight)))
	b.WriteString("\n")
	b.WriteString(styles.SubtleStyle.Render(fmt.Sprintf("Current: %dx%d", m.width, m.height)))

	if m.width <= 0 || m.height <= 0 {
		return b.String()
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
