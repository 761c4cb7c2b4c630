package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zenithtodo/zenith/internal/focus"
	"github.com/zenithtodo/zenith/internal/todo"
	"github.com/zenithtodo/zenith/internal/tui/components"
	"github.com/zenithtodo/zenith/internal/tui/msgs"
	"github.com/zenithtodo/zenith/internal/tui/styles"
)

const progressWidth = 30

// FocusModel is the focus-mode overlay for one task. The session owns the
// interval; this model only renders it and forwards keys.
type FocusModel struct {
	task    todo.Task
	session *focus.Session
	width   int
	height  int
}

// NewFocusModel wraps a session started for task.
func NewFocusModel(task todo.Task, session *focus.Session) FocusModel {
	return FocusModel{task: task, session: session}
}

// Session returns the underlying focus session.
func (m FocusModel) Session() *focus.Session {
	return m.session
}

// SetSize sets the render dimensions.
func (m *FocusModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Init implements tea.Model.
func (m FocusModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m FocusModel) Update(msg tea.Msg) (FocusModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case " ", "enter", "p":
			m.session.Toggle()
		case "r":
			m.session.Reset()
		case "+", "=", "right":
			m.session.Adjust(focus.AdjustStep)
		case "-", "_", "left":
			m.session.Adjust(-focus.AdjustStep)
		case "c":
			id := m.session.Complete()
			return m, send(msgs.CompleteFocusMsg{TaskID: id})
		case "esc", "q":
			m.session.Close()
			return m, send(msgs.GoToBoardMsg{})
		case "ctrl+c":
			m.session.Close()
			return m, tea.Quit
		}
	}
	return m, nil
}

// StatusLabel is the line under the clock.
func StatusLabel(t focus.Timer) string {
	switch t.State() {
	case focus.StateReady:
		return "Ready"
	case focus.StatePaused:
		return "Paused"
	case focus.StateFinished:
		return "Great focus."
	}
	return ""
}

// View implements tea.Model.
func (m FocusModel) View() string {
	timer := m.session.Timer()
	finished := timer.State() == focus.StateFinished

	badge := styles.TitleStyle.Render("● Focus Mode")
	clock := timer.Clock()
	clockStyle := styles.TitleStyle
	if finished {
		badge = styles.SuccessStyle.Bold(true).Render("✓ Session Complete")
		clock = "Done!"
		clockStyle = styles.SuccessStyle.Bold(true)
	}

	var lines []string
	lines = append(lines, badge, "")
	lines = append(lines, styles.TextStyle.Bold(true).Render(m.task.Text), "")
	lines = append(lines, clockStyle.Render(spaced(clock)))
	if label := StatusLabel(timer); label != "" {
		lines = append(lines, styles.SubtleStyle.Render(label))
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, "", components.NewProgress(timer.Progress(), progressWidth).View(), "")

	if !timer.Running() && !finished {
		lines = append(lines, styles.SubtleStyle.Render(fmt.Sprintf("− %d min +", timer.Minutes())), "")
	}

	action := "Start"
	switch {
	case timer.Running():
		action = "Pause"
	case finished:
		action = "Restart"
	}
	lines = append(lines, styles.SubtleStyle.Render(fmt.Sprintf("space %s • r Reset • ± Adjust • c Complete Task • Esc Close", action)))

	content := styles.BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// spaced widens the clock for readability.
func spaced(s string) string {
	return strings.Join(strings.Split(s, ""), " ")
}
