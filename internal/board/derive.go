package board

import (
	"fmt"
	"strings"
	"time"

	"github.com/zenithtodo/zenith/internal/todo"
)

// Tab selects which bucket of tasks the board shows.
type Tab string

const (
	TabInbox    Tab = "inbox"
	TabToday    Tab = "today"
	TabUpcoming Tab = "upcoming"
)

// Tabs lists the tabs in sidebar order.
var Tabs = []Tab{TabInbox, TabToday, TabUpcoming}

// Label is the sidebar name of the tab.
func (t Tab) Label() string {
	switch t {
	case TabToday:
		return "Today"
	case TabUpcoming:
		return "Upcoming"
	default:
		return "Inbox"
	}
}

// ParseTab accepts a tab name in any case.
func ParseTab(s string) (Tab, error) {
	switch Tab(strings.ToLower(strings.TrimSpace(s))) {
	case TabInbox:
		return TabInbox, nil
	case TabToday:
		return TabToday, nil
	case TabUpcoming:
		return TabUpcoming, nil
	}
	return "", fmt.Errorf("unknown view %q (want inbox, today or upcoming)", s)
}

// Counts holds the sidebar badge numbers.
type Counts struct {
	Inbox    int
	Today    int
	Upcoming int
}

// For returns the count shown next to tab.
func (c Counts) For(tab Tab) int {
	switch tab {
	case TabToday:
		return c.Today
	case TabUpcoming:
		return c.Upcoming
	default:
		return c.Inbox
	}
}

// DeriveView filters tasks for display. A non-empty query matches text
// case-insensitively and ignores tab. Order is preserved.
func DeriveView(tasks []todo.Task, tab Tab, query string, today time.Time) []todo.Task {
	out := make([]todo.Task, 0, len(tasks))
	if query != "" {
		needle := strings.ToLower(query)
		for _, t := range tasks {
			if strings.Contains(strings.ToLower(t.Text), needle) {
				out = append(out, t)
			}
		}
		return out
	}

	for _, t := range tasks {
		switch tab {
		case TabToday:
			if !todo.IsToday(t.DueDate, today) {
				continue
			}
		case TabUpcoming:
			if !todo.IsUpcoming(t.DueDate, today) {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// DeriveCounts computes the badge numbers for tasks relative to today.
func DeriveCounts(tasks []todo.Task, today time.Time) Counts {
	c := Counts{Inbox: len(tasks)}
	for _, t := range tasks {
		if todo.IsToday(t.DueDate, today) {
			c.Today++
		}
		if todo.IsUpcoming(t.DueDate, today) {
			c.Upcoming++
		}
	}
	return c
}

// Title is the heading above the task list.
func Title(tab Tab, query string) string {
	if query != "" {
		return fmt.Sprintf("Search: %q", query)
	}
	switch tab {
	case TabToday:
		return "Today's Plan"
	case TabUpcoming:
		return "Upcoming"
	default:
		return "Inbox"
	}
}

// HeaderDate renders the date line under the title.
func HeaderDate(now time.Time) string {
	return now.Format(todo.HeaderFormat)
}
