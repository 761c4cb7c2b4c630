package views

import (
	"time"

	"github.com/zenithtodo/zenith/internal/todo"
	"github.com/zenithtodo/zenith/internal/tui/styles"
)

// prevPriority steps backwards through todo.Priorities.
func prevPriority(p todo.Priority) todo.Priority {
	for i, candidate := range todo.Priorities {
		if candidate == p {
			return todo.Priorities[(i+len(todo.Priorities)-1)%len(todo.Priorities)]
		}
	}
	return todo.PriorityLow
}

// renderPriorities draws the priority selector with p highlighted.
func renderPriorities(p todo.Priority, focused bool) string {
	out := ""
	for i, candidate := range todo.Priorities {
		if i > 0 {
			out += " "
		}
		label := "[" + string(candidate) + "]"
		if candidate == p {
			style := styles.PriorityStyle(candidate).Bold(true)
			if focused {
				style = style.Underline(true)
			}
			out += style.Render(label)
		} else {
			out += styles.SubtleStyle.Render(label)
		}
	}
	return out
}

// renderDue draws the due date field.
func renderDue(due *time.Time, today time.Time, focused bool) string {
	label := "No date"
	if due != nil {
		label = todo.FormatDue(due)
		if todo.SameDay(*due, today) {
			label = "Today"
		}
	}
	if focused {
		return styles.SelectedStyle.Render("◷ " + label)
	}
	return styles.TextStyle.Render("◷ " + label)
}

func fieldLabel(name string, focused bool) string {
	if focused {
		return styles.SelectedStyle.Render("› " + name)
	}
	return styles.SectionStyle.Render("  " + name)
}

func todayPtr(today time.Time) *time.Time {
	d := todo.StartOfDay(today)
	return &d
}
