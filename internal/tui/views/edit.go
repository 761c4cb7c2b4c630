package views

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zenithtodo/zenith/internal/todo"
	"github.com/zenithtodo/zenith/internal/tui/msgs"
	"github.com/zenithtodo/zenith/internal/tui/styles"
)

type editField int

const (
	editText editField = iota
	editPriority
	editDue
	editFieldCount
)

// EditModel edits the text, priority and due date of one task. Nothing is
// sent until save, so cancelling restores the original values.
type EditModel struct {
	task     todo.Task
	text     textinput.Model
	priority todo.Priority
	due      *time.Time
	field    editField
	picker   *DatePickerModel
	today    time.Time
	width    int
}

// NewEditModel starts editing task.
func NewEditModel(task todo.Task, today time.Time) EditModel {
	ti := textinput.New()
	ti.CharLimit = 500
	ti.Width = 60
	ti.SetValue(task.Text)
	ti.Focus()

	return EditModel{
		task:     task,
		text:     ti,
		priority: task.Priority,
		due:      task.DueDate,
		today:    today,
	}
}

// TaskID returns the id of the task being edited.
func (m EditModel) TaskID() string {
	return m.task.ID
}

// SetWidth sets the render width.
func (m *EditModel) SetWidth(w int) {
	m.width = w
}

// Patch returns the fields changed so far.
func (m EditModel) Patch() todo.Patch {
	var p todo.Patch
	if text := strings.TrimSpace(m.text.Value()); text != m.task.Text {
		p.Text = &text
	}
	if m.priority != m.task.Priority {
		pr := m.priority
		p.Priority = &pr
	}
	if !sameDue(m.due, m.task.DueDate) {
		p.DueDate = &todo.DueChange{Value: m.due}
	}
	return p
}

func sameDue(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func (m *EditModel) setField(f editField) {
	m.field = f
	if f == editText {
		m.text.Focus()
	} else {
		m.text.Blur()
	}
}

// Init implements tea.Model.
func (m EditModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m EditModel) Update(msg tea.Msg) (EditModel, tea.Cmd) {
	if m.picker != nil {
		p, cmd := m.picker.Update(msg)
		switch p.Result() {
		case PickerSelected:
			m.due = p.Value()
			m.picker = nil
		case PickerCleared:
			m.due = nil
			m.picker = nil
		case PickerCancelled:
			m.picker = nil
		default:
			m.picker = &p
		}
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.text, cmd = m.text.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "esc":
		return m, func() tea.Msg { return msgs.GoToBoardMsg{} }
	case "enter":
		if m.field == editDue {
			p := NewDatePickerModel(m.due, m.today)
			m.picker = &p
			return m, nil
		}
		return m.save()
	case "ctrl+s":
		return m.save()
	case "tab", "down":
		m.setField((m.field + 1) % editFieldCount)
		return m, nil
	case "shift+tab", "up":
		m.setField((m.field + editFieldCount - 1) % editFieldCount)
		return m, nil
	}

	switch m.field {
	case editPriority:
		switch key.String() {
		case "right", "l", " ":
			m.priority = m.priority.Next()
		case "left", "h":
			m.priority = prevPriority(m.priority)
		}
		return m, nil
	case editDue:
		switch key.String() {
		case " ":
			p := NewDatePickerModel(m.due, m.today)
			m.picker = &p
		case "backspace", "delete":
			m.due = nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)
	return m, cmd
}

// save is ignored while the text is blank.
func (m EditModel) save() (EditModel, tea.Cmd) {
	if strings.TrimSpace(m.text.Value()) == "" {
		return m, nil
	}
	patch := m.Patch()
	if patch.IsEmpty() {
		return m, func() tea.Msg { return msgs.GoToBoardMsg{} }
	}
	id := m.task.ID
	return m, func() tea.Msg { return msgs.EditTaskMsg{ID: id, Patch: patch} }
}

// View implements tea.Model.
func (m EditModel) View() string {
	if m.picker != nil {
		return styles.BoxStyle.Render(m.picker.View())
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Edit Task"))
	b.WriteString("\n\n")
	b.WriteString(fieldLabel("Task", m.field == editText) + " " + m.text.View() + "\n")
	b.WriteString(fieldLabel("Priority", m.field == editPriority) + " " + renderPriorities(m.priority, m.field == editPriority) + "\n")
	b.WriteString(fieldLabel("Due", m.field == editDue) + " " + renderDue(m.due, m.today, m.field == editDue) + "\n\n")
	b.WriteString(styles.SubtleStyle.Render("Tab Next field • Enter Save • Esc Cancel"))

	box := styles.BoxStyle
	if m.width > 4 {
		box = box.Width(m.width - 2)
	}
	return box.Render(b.String())
}
