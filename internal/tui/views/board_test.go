package views

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zenithtodo/zenith/internal/board"
	"github.com/zenithtodo/zenith/internal/todo"
	"github.com/zenithtodo/zenith/internal/tui/msgs"
)

var boardToday = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.Local)

func boardSnapshot() Snapshot {
	past := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.Local)
	soon := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.Local)
	tasks := []todo.Task{
		{ID: "a", Text: "Buy milk", Priority: todo.PriorityHigh, DueDate: &past},
		{ID: "b", Text: "Call mom", Priority: todo.PriorityLow, Completed: true},
		{ID: "c", Text: "Plan trip", Priority: todo.PriorityMedium, DueDate: &soon},
	}
	return Snapshot{
		Tasks:  tasks,
		Counts: board.DeriveCounts(tasks, boardToday),
		Title:  "Inbox",
		Tab:    board.TabInbox,
		Today:  boardToday,
	}
}

func newBoard() BoardModel {
	m := NewBoardModel()
	m.SetSize(100, 30)
	m.SetSnapshot(boardSnapshot())
	return m
}

func TestBoard_Navigate(t *testing.T) {
	m := newBoard()

	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("down"))
	if m.Cursor() != 2 {
		t.Errorf("cursor = %d, want 2 (clamped)", m.Cursor())
	}
	m, _ = m.Update(key("k"))
	if task, _ := m.Selected(); task.ID != "b" {
		t.Errorf("selected = %q, want b", task.ID)
	}
}

func TestBoard_SnapshotClampsCursor(t *testing.T) {
	m := newBoard()
	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("down"))

	snap := boardSnapshot()
	snap.Tasks = snap.Tasks[:1]
	m.SetSnapshot(snap)
	if m.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", m.Cursor())
	}

	snap.Tasks = nil
	m.SetSnapshot(snap)
	if _, ok := m.Selected(); ok {
		t.Error("nothing should be selected on an empty board")
	}
}

func TestBoard_Intents(t *testing.T) {
	tests := []struct {
		key   string
		check func(tea.Cmd) bool
	}{
		{"space", func(c tea.Cmd) bool { m, ok := find[msgs.ToggleTaskMsg](c); return ok && m.ID == "a" }},
		{"x", func(c tea.Cmd) bool { _, ok := find[msgs.ToggleTaskMsg](c); return ok }},
		{"e", func(c tea.Cmd) bool { m, ok := find[msgs.OpenEditMsg](c); return ok && m.Task.ID == "a" }},
		{"d", func(c tea.Cmd) bool { m, ok := find[msgs.DeleteTaskMsg](c); return ok && m.ID == "a" }},
		{"f", func(c tea.Cmd) bool { m, ok := find[msgs.OpenFocusMsg](c); return ok && m.TaskID == "a" }},
		{"a", func(c tea.Cmd) bool { _, ok := find[msgs.OpenAddMsg](c); return ok }},
		{"t", func(c tea.Cmd) bool { _, ok := find[msgs.ToggleThemeMsg](c); return ok }},
		{"r", func(c tea.Cmd) bool { _, ok := find[msgs.ReloadMsg](c); return ok }},
		{"tab", func(c tea.Cmd) bool { m, ok := find[msgs.SetTabMsg](c); return ok && m.Tab == board.TabToday }},
		{"shift+tab", func(c tea.Cmd) bool { m, ok := find[msgs.SetTabMsg](c); return ok && m.Tab == board.TabUpcoming }},
		{"3", func(c tea.Cmd) bool { m, ok := find[msgs.SetTabMsg](c); return ok && m.Tab == board.TabUpcoming }},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, cmd := newBoard().Update(key(tt.key))
			if !tt.check(cmd) {
				t.Errorf("key %q did not produce the expected intent", tt.key)
			}
		})
	}
}

func TestBoard_IntentsIgnoredWhenEmpty(t *testing.T) {
	m := NewBoardModel()
	m.SetSize(100, 30)

	for _, k := range []string{"space", "e", "d", "f"} {
		if _, cmd := m.Update(key(k)); cmd != nil {
			t.Errorf("key %q on an empty board should do nothing", k)
		}
	}
}

func TestBoard_Quit(t *testing.T) {
	_, cmd := newBoard().Update(key("q"))
	if _, ok := find[tea.QuitMsg](cmd); !ok {
		t.Error("expected quit")
	}
}

func TestBoard_SearchFiltersLive(t *testing.T) {
	m := newBoard()

	m, _ = m.Update(key("/"))
	if !m.Searching() {
		t.Fatal("expected search mode")
	}

	m, cmd := m.Update(key("m"))
	search, ok := find[msgs.SetSearchMsg](cmd)
	if !ok || search.Query != "m" {
		t.Fatalf("expected SetSearchMsg{m}, got %+v %v", search, ok)
	}

	// Typing q while searching must not quit.
	m, cmd = m.Update(key("q"))
	if _, ok := find[tea.QuitMsg](cmd); ok {
		t.Error("q should be typed into the search box")
	}

	m, _ = m.Update(key("enter"))
	if m.Searching() {
		t.Error("enter should leave search mode")
	}
}

func TestBoard_EscClearsSearch(t *testing.T) {
	m := newBoard()
	snap := boardSnapshot()
	snap.Search = "milk"
	m.SetSnapshot(snap)

	_, cmd := m.Update(key("esc"))
	search, ok := find[msgs.SetSearchMsg](cmd)
	if !ok || search.Query != "" {
		t.Errorf("expected search cleared, got %+v %v", search, ok)
	}
}

func TestBoard_View(t *testing.T) {
	view := newBoard().View()

	for _, want := range []string{"Z E N I T H", "Inbox", "Today", "Upcoming", "Tuesday, March 10", "Buy milk", "Mar 2 Overdue", "Mar 14", "High"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestBoard_ViewCompletedNotOverdue(t *testing.T) {
	m := NewBoardModel()
	m.SetSize(100, 30)
	past := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.Local)
	m.SetSnapshot(Snapshot{
		Tasks: []todo.Task{{ID: "a", Text: "Done thing", Completed: true, DueDate: &past, Priority: todo.PriorityLow}},
		Title: "Inbox",
		Tab:   board.TabInbox,
		Today: boardToday,
	})
	if strings.Contains(m.View(), "Overdue") {
		t.Error("completed tasks are never overdue")
	}
}

func TestBoard_ViewEmptyStates(t *testing.T) {
	m := NewBoardModel()
	m.SetSize(100, 30)
	m.SetSnapshot(Snapshot{Title: "Today's Plan", Tab: board.TabToday, Today: boardToday})
	if !strings.Contains(m.View(), "No tasks here") {
		t.Error("expected empty state")
	}

	m.SetSnapshot(Snapshot{Title: `Search: "zzz"`, Tab: board.TabToday, Search: "zzz", Today: boardToday})
	if !strings.Contains(m.View(), "No tasks match") {
		t.Error("expected empty search state")
	}
}

func TestBoard_ViewZeroSize(t *testing.T) {
	if NewBoardModel().View() != "" {
		t.Error("expected empty view before the first size message")
	}
}

func TestBoard_ViewFitsTerminalWhileScrolling(t *testing.T) {
	var tasks []todo.Task
	for i := 0; i < 40; i++ {
		tasks = append(tasks, todo.Task{
			ID:          fmt.Sprintf("t%02d", i),
			Text:        fmt.Sprintf("Task %02d", i),
			Description: "some notes about it",
			Priority:    todo.PriorityMedium,
		})
	}

	m := NewBoardModel()
	m.SetSize(100, 20)
	m.SetSnapshot(Snapshot{Tasks: tasks, Title: "Inbox", Tab: board.TabInbox, Today: boardToday})

	for i := 0; i < 39; i++ {
		m, _ = m.Update(key("down"))
		view := m.View()
		if h := lipgloss.Height(view); h > 20 {
			t.Fatalf("cursor %d: rendered %d lines, terminal has 20", m.Cursor(), h)
		}
		if !strings.Contains(view, fmt.Sprintf("Task %02d", m.Cursor())) {
			t.Fatalf("cursor %d: selected row scrolled off screen", m.Cursor())
		}
		if !strings.Contains(view, "Tuesday, March 10") {
			t.Fatalf("cursor %d: header scrolled off screen", m.Cursor())
		}
	}
	if !strings.Contains(m.View(), "some notes about it") {
		t.Error("expected the selected row's description on screen")
	}

	for i := 0; i < 39; i++ {
		m, _ = m.Update(key("up"))
	}
	view := m.View()
	if !strings.Contains(view, "Task 00") || lipgloss.Height(view) > 20 {
		t.Errorf("expected to scroll back to the top within 20 lines")
	}

	m, _ = m.Update(key("/"))
	if h := lipgloss.Height(m.View()); h > 20 {
		t.Errorf("with search open: rendered %d lines, terminal has 20", h)
	}
}
