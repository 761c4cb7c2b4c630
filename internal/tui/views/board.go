package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zenithtodo/zenith/internal/board"
	"github.com/zenithtodo/zenith/internal/prefs"
	"github.com/zenithtodo/zenith/internal/todo"
	"github.com/zenithtodo/zenith/internal/tui/components"
	"github.com/zenithtodo/zenith/internal/tui/msgs"
	"github.com/zenithtodo/zenith/internal/tui/styles"
)

const (
	sidebarWidth = 24
	mainPadding  = 2
)

// Snapshot is the read-only board state a BoardModel renders.
type Snapshot struct {
	Tasks   []todo.Task // already filtered for Tab and Search
	Counts  board.Counts
	Title   string
	Tab     board.Tab
	Search  string
	Today   time.Time
	Theme   prefs.Theme
	Loading bool
}

// SnapshotOf reads the engine's current state.
func SnapshotOf(e *board.Engine) Snapshot {
	return Snapshot{
		Tasks:  e.View(),
		Counts: e.Counts(),
		Title:  e.Title(),
		Tab:    e.Tab(),
		Search: e.Search(),
		Today:  e.Today(),
		Theme:  e.Theme(),
	}
}

// BoardModel is the main screen: sidebar, task list and search. It only
// dispatches intents; the root model applies them to the engine.
type BoardModel struct {
	snap      Snapshot
	cursor    int
	searching bool
	search    textinput.Model
	spinner   spinner.Model
	list      components.ScrollViewport
	width     int
	height    int
}

// NewBoardModel creates an empty board.
func NewBoardModel() BoardModel {
	ti := textinput.New()
	ti.Placeholder = "Search tasks..."
	ti.CharLimit = 200
	ti.Width = 40
	ti.Prompt = "/ "

	s := spinner.New()
	s.Spinner = spinner.Dot

	return BoardModel{
		search:  ti,
		spinner: s,
		list:    components.NewScrollViewport(1, 1),
		snap:    Snapshot{Tab: board.TabInbox, Title: "Inbox", Today: time.Now()},
	}
}

// SetSnapshot replaces the rendered state and keeps the cursor in range.
func (m *BoardModel) SetSnapshot(s Snapshot) {
	m.snap = s
	if m.cursor >= len(s.Tasks) {
		m.cursor = len(s.Tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.syncList()
}

// SetSize sets the render dimensions.
func (m *BoardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.syncList()
}

// Cursor returns the selected row.
func (m BoardModel) Cursor() int {
	return m.cursor
}

// Searching reports whether the search input has focus.
func (m BoardModel) Searching() bool {
	return m.searching
}

// Selected returns the task under the cursor.
func (m BoardModel) Selected() (todo.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snap.Tasks) {
		return todo.Task{}, false
	}
	return m.snap.Tasks[m.cursor], true
}

// Init implements tea.Model.
func (m BoardModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// Update implements tea.Model.
func (m BoardModel) Update(msg tea.Msg) (BoardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.snap.Loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		if m.searching {
			m, cmd = m.handleSearchKeys(msg)
		} else {
			m, cmd = m.handleKeyPress(msg)
		}
		m.syncList()
		return m, cmd
	}
	return m, nil
}

func (m BoardModel) handleKeyPress(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.snap.Tasks)-1 {
			m.cursor++
		}
	case "tab":
		return m, send(msgs.SetTabMsg{Tab: nextTab(m.snap.Tab, 1)})
	case "shift+tab":
		return m, send(msgs.SetTabMsg{Tab: nextTab(m.snap.Tab, -1)})
	case "1", "2", "3":
		idx := int(msg.String()[0] - '1')
		m.cursor = 0
		return m, send(msgs.SetTabMsg{Tab: board.Tabs[idx]})
	case "/":
		m.searching = true
		m.search.SetValue(m.snap.Search)
		m.search.CursorEnd()
		m.search.Focus()
		return m, textinput.Blink
	case "esc":
		if m.snap.Search != "" {
			m.search.SetValue("")
			return m, send(msgs.SetSearchMsg{Query: ""})
		}
	case "a", "n":
		return m, send(msgs.OpenAddMsg{})
	case " ", "x":
		if task, ok := m.Selected(); ok {
			return m, send(msgs.ToggleTaskMsg{ID: task.ID})
		}
	case "e", "enter":
		if task, ok := m.Selected(); ok {
			return m, send(msgs.OpenEditMsg{Task: task})
		}
	case "d", "delete":
		if task, ok := m.Selected(); ok {
			return m, send(msgs.DeleteTaskMsg{ID: task.ID})
		}
	case "f":
		if task, ok := m.Selected(); ok {
			return m, send(msgs.OpenFocusMsg{TaskID: task.ID})
		}
	case "t":
		return m, send(msgs.ToggleThemeMsg{})
	case "r":
		return m, send(msgs.ReloadMsg{})
	}
	return m, nil
}

// handleSearchKeys filters live as the query is typed.
func (m BoardModel) handleSearchKeys(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		return m, send(msgs.SetSearchMsg{Query: ""})
	case "ctrl+c":
		return m, tea.Quit
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		m.cursor = 0
		return m, tea.Batch(cmd, send(msgs.SetSearchMsg{Query: after}))
	}
	return m, cmd
}

func nextTab(tab board.Tab, step int) board.Tab {
	for i, t := range board.Tabs {
		if t == tab {
			return board.Tabs[(i+step+len(board.Tabs))%len(board.Tabs)]
		}
	}
	return board.TabInbox
}

// View implements tea.Model.
func (m BoardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	bodyHeight := m.bodyHeight()
	sidebar := lipgloss.NewStyle().
		Width(sidebarWidth).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(m.renderSidebar())

	mainWidth := m.mainWidth()
	main := lipgloss.NewStyle().
		Width(mainWidth).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		PaddingLeft(mainPadding).
		Render(m.renderMain(mainWidth - mainPadding))

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
	return body + "\n" + components.NewStatusBar().Render(m.width, m.statusItems(), m.notice())
}

func (m BoardModel) notice() string {
	if m.snap.Loading {
		return m.spinner.View() + " Loading"
	}
	return ""
}

func (m BoardModel) statusItems() []string {
	if m.searching {
		return []string{"Enter Done", "Esc Clear"}
	}
	return []string{"↑↓ Navigate", "Tab View", "a Add", "space Toggle", "e Edit", "d Delete", "f Focus", "/ Search", "t Theme", "q Quit"}
}

func (m BoardModel) renderSidebar() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Z E N I T H"))
	b.WriteString("\n\n")

	for i, tab := range board.Tabs {
		label := fmt.Sprintf("%d %-10s", i+1, tab.Label())
		count := styles.BadgeStyle.Render(fmt.Sprintf("%d", m.snap.Counts.For(tab)))
		if tab == m.snap.Tab && m.snap.Search == "" {
			b.WriteString(styles.SelectedStyle.Render("› "+label) + count)
		} else {
			b.WriteString(styles.SubtleStyle.Render("  "+label) + count)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	theme := "Dark mode"
	if m.snap.Theme == prefs.ThemeLight {
		theme = "Light mode"
	}
	b.WriteString(styles.SubtleStyle.Render("  " + theme))
	return b.String()
}

// bodyHeight is the height above the status bar.
func (m BoardModel) bodyHeight() int {
	return max(m.height-1, 1)
}

func (m BoardModel) mainWidth() int {
	return max(m.width-sidebarWidth-2, 10)
}

func (m BoardModel) headerLines(width int) []string {
	clip := lipgloss.NewStyle().MaxWidth(width)
	lines := []string{
		clip.Render(styles.TitleStyle.Render(m.snap.Title)),
		clip.Render(styles.SubtleStyle.Render(board.HeaderDate(m.snap.Today))),
		"",
	}
	if m.searching || m.snap.Search != "" {
		lines = append(lines, clip.Render(m.search.View()), "")
	}
	return append(lines, clip.Render(styles.SubtleStyle.Render("+ Add a new task... (a)")), "")
}

// syncList re-renders the task rows into the list viewport and scrolls it
// so the whole selected row is visible.
func (m *BoardModel) syncList() {
	width := m.mainWidth() - mainPadding
	m.list.SetSize(width, m.bodyHeight()-len(m.headerLines(width)))

	var lines []string
	first, last := 0, 0
	for i, t := range m.snap.Tasks {
		selected := i == m.cursor
		if selected {
			first = len(lines)
		}
		lines = append(lines, m.renderTask(t, selected, m.list.ContentWidth())...)
		if selected {
			last = len(lines) - 1
		}
	}
	m.list.SetLines(lines)
	m.list.EnsureVisible(last, false)
	m.list.EnsureVisible(first, false)
}

func (m BoardModel) renderMain(width int) string {
	lines := m.headerLines(width)
	if len(m.snap.Tasks) == 0 {
		empty := "No tasks here. Enjoy your day!"
		if m.snap.Search != "" {
			empty = "No tasks match your search."
		}
		lines = append(lines, styles.SubtleStyle.Render(empty))
		return strings.Join(lines, "\n")
	}
	return strings.Join(append(lines, m.list.View()), "\n")
}

// renderTask returns the row for t, plus its description when selected.
func (m BoardModel) renderTask(t todo.Task, selected bool, width int) []string {
	check := "○"
	if t.Completed {
		check = styles.SuccessStyle.Render("●")
	}

	text := firstLine(t.Text)
	switch {
	case t.Completed:
		text = styles.DoneStyle.Render(text)
	case selected:
		text = styles.SelectedStyle.Render(text)
	default:
		text = styles.TextStyle.Render(text)
	}

	badges := []string{styles.PriorityStyle(t.Priority).Render(string(t.Priority))}
	if t.HasDueDate() {
		due := todo.FormatDue(t.DueDate)
		if todo.IsOverdue(t, m.snap.Today) {
			badges = append(badges, styles.ErrorStyle.Render(due+" Overdue"))
		} else {
			badges = append(badges, styles.SubtleStyle.Render(due))
		}
	}

	cursor := "  "
	if selected {
		cursor = styles.SelectedStyle.Render("› ")
	}
	clip := lipgloss.NewStyle().MaxWidth(width)
	rows := []string{clip.Render(cursor + check + " " + text + "  " + strings.Join(badges, " "))}
	if t.Description != "" && selected {
		rows = append(rows, clip.Render("      "+styles.SubtleStyle.Render(firstLine(t.Description))))
	}
	return rows
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
