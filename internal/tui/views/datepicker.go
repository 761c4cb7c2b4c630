package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zenithtodo/zenith/internal/todo"
	"github.com/zenithtodo/zenith/internal/tui/styles"
)

// PickerResult is the outcome of a date picker interaction.
type PickerResult int

const (
	PickerPending PickerResult = iota
	PickerSelected
	PickerCleared
	PickerCancelled
)

// DatePickerModel is a month calendar for choosing a due date.
type DatePickerModel struct {
	cursor   time.Time
	selected *time.Time
	today    time.Time
	result   PickerResult
}

// NewDatePickerModel opens on selected, or on today when nothing is set.
func NewDatePickerModel(selected *time.Time, today time.Time) DatePickerModel {
	cursor := todo.StartOfDay(today)
	if selected != nil {
		cursor = todo.StartOfDay(selected.In(today.Location()))
	}
	return DatePickerModel{
		cursor:   cursor,
		selected: selected,
		today:    todo.StartOfDay(today),
	}
}

// Result reports how the picker was closed.
func (m DatePickerModel) Result() PickerResult {
	return m.result
}

// Value is the chosen day at local midnight, or nil when cleared.
func (m DatePickerModel) Value() *time.Time {
	if m.result != PickerSelected {
		return nil
	}
	v := m.cursor
	return &v
}

// Cursor returns the highlighted day.
func (m DatePickerModel) Cursor() time.Time {
	return m.cursor
}

// Update implements tea.Model.
func (m DatePickerModel) Update(msg tea.Msg) (DatePickerModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.result != PickerPending {
		return m, nil
	}

	switch key.String() {
	case "left", "h":
		m.cursor = m.cursor.AddDate(0, 0, -1)
	case "right", "l":
		m.cursor = m.cursor.AddDate(0, 0, 1)
	case "up", "k":
		m.cursor = m.cursor.AddDate(0, 0, -7)
	case "down", "j":
		m.cursor = m.cursor.AddDate(0, 0, 7)
	case "[", "pgup":
		m.cursor = shiftMonth(m.cursor, -1)
	case "]", "pgdown":
		m.cursor = shiftMonth(m.cursor, 1)
	case "t":
		m.cursor = m.today
	case "enter", " ":
		m.result = PickerSelected
	case "c", "backspace", "delete":
		m.result = PickerCleared
	case "esc":
		m.result = PickerCancelled
	}
	return m, nil
}

// shiftMonth moves by whole months, keeping the day where the target month
// allows it.
func shiftMonth(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	day := t.Day()
	if last := daysIn(first); day > last {
		day = last
	}
	return first.AddDate(0, 0, day-1)
}

func daysIn(month time.Time) int {
	return time.Date(month.Year(), month.Month()+1, 0, 0, 0, 0, 0, month.Location()).Day()
}

// View renders the calendar for the cursor's month.
func (m DatePickerModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(m.cursor.Format("January 2006")))
	b.WriteString("\n")
	b.WriteString(styles.SubtleStyle.Render("Su Mo Tu We Th Fr Sa"))
	b.WriteString("\n")

	first := time.Date(m.cursor.Year(), m.cursor.Month(), 1, 0, 0, 0, 0, m.cursor.Location())
	col := int(first.Weekday())
	b.WriteString(strings.Repeat("   ", col))

	for day := 1; day <= daysIn(first); day++ {
		date := first.AddDate(0, 0, day-1)
		cell := fmt.Sprintf("%2d", day)
		switch {
		case todo.SameDay(date, m.cursor):
			cell = styles.SelectedStyle.Reverse(true).Render(cell)
		case m.selected != nil && todo.SameDay(*m.selected, date):
			cell = styles.SelectedStyle.Render(cell)
		case todo.SameDay(date, m.today):
			cell = styles.TitleStyle.Underline(true).Render(cell)
		default:
			cell = styles.TextStyle.Render(cell)
		}
		b.WriteString(cell)

		col++
		if col == 7 {
			col = 0
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.SubtleStyle.Render("←→↑↓ Day • [ ] Month • t Today • Enter Select • c Clear • Esc Cancel"))
	return b.String()
}
