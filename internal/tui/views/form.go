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

type formField int

const (
	fieldText formField = iota
	fieldDescription
	fieldPriority
	fieldDue
	formFieldCount
)

// AddFormModel is the expanded add-task form. Every submit or cancel resets
// it to the defaults: no text, configured priority and a due date of today.
type AddFormModel struct {
	text            textinput.Model
	description     textinput.Model
	priority        todo.Priority
	due             *time.Time
	field           formField
	picker          *DatePickerModel
	defaultPriority todo.Priority
	today           time.Time
	width           int
}

// NewAddFormModel creates a form using def as the default priority.
func NewAddFormModel(def todo.Priority, today time.Time) AddFormModel {
	text := textinput.New()
	text.Placeholder = "Add a new task..."
	text.CharLimit = 500
	text.Width = 60

	desc := textinput.New()
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = 2000
	desc.Width = 60

	m := AddFormModel{
		text:            text,
		description:     desc,
		defaultPriority: def,
		today:           today,
	}
	m.reset()
	return m
}

func (m *AddFormModel) reset() {
	m.text.SetValue("")
	m.description.SetValue("")
	m.priority = m.defaultPriority
	m.due = todayPtr(m.today)
	m.picker = nil
	m.setField(fieldText)
}

func (m *AddFormModel) setField(f formField) {
	m.field = f
	m.text.Blur()
	m.description.Blur()
	switch f {
	case fieldText:
		m.text.Focus()
	case fieldDescription:
		m.description.Focus()
	}
}

// SetToday moves the reference day used for the default due date. An
// untouched form follows the new day.
func (m *AddFormModel) SetToday(today time.Time) {
	pristine := m.text.Value() == "" && m.due != nil && todo.SameDay(*m.due, m.today)
	m.today = today
	if pristine {
		m.due = todayPtr(today)
	}
}

// SetWidth sets the render width.
func (m *AddFormModel) SetWidth(w int) {
	m.width = w
}

// Draft returns what would be submitted now.
func (m AddFormModel) Draft() todo.Draft {
	return todo.Draft{
		Text:        m.text.Value(),
		Description: m.description.Value(),
		Priority:    m.priority,
		DueDate:     m.due,
	}
}

// Picking reports whether the date picker is open.
func (m AddFormModel) Picking() bool {
	return m.picker != nil
}

// Init implements tea.Model.
func (m AddFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m AddFormModel) Update(msg tea.Msg) (AddFormModel, tea.Cmd) {
	if m.picker != nil {
		return m.updatePicker(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}

	switch key.String() {
	case "esc":
		m.reset()
		return m, func() tea.Msg { return msgs.GoToBoardMsg{} }
	case "enter":
		if m.field == fieldDue {
			return m.openPicker()
		}
		return m.submit()
	case "tab", "down":
		m.setField((m.field + 1) % formFieldCount)
		return m, textinput.Blink
	case "shift+tab", "up":
		m.setField((m.field + formFieldCount - 1) % formFieldCount)
		return m, textinput.Blink
	case "ctrl+s":
		return m.submit()
	}

	switch m.field {
	case fieldPriority:
		switch key.String() {
		case "right", "l", " ":
			m.priority = m.priority.Next()
		case "left", "h":
			m.priority = prevPriority(m.priority)
		}
		return m, nil
	case fieldDue:
		switch key.String() {
		case " ":
			return m.openPicker()
		case "backspace", "delete":
			m.due = nil
		case "t":
			m.due = todayPtr(m.today)
		}
		return m, nil
	}
	return m.updateInputs(msg)
}

func (m AddFormModel) updateInputs(msg tea.Msg) (AddFormModel, tea.Cmd) {
	var cmd tea.Cmd
	switch m.field {
	case fieldText:
		m.text, cmd = m.text.Update(msg)
	case fieldDescription:
		m.description, cmd = m.description.Update(msg)
	}
	return m, cmd
}

func (m AddFormModel) openPicker() (AddFormModel, tea.Cmd) {
	p := NewDatePickerModel(m.due, m.today)
	m.picker = &p
	return m, nil
}

func (m AddFormModel) updatePicker(msg tea.Msg) (AddFormModel, tea.Cmd) {
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

// submit sends the draft unless the text is blank.
func (m AddFormModel) submit() (AddFormModel, tea.Cmd) {
	draft := m.Draft()
	if strings.TrimSpace(draft.Text) == "" {
		return m, nil
	}
	m.reset()
	return m, func() tea.Msg { return msgs.AddTaskMsg{Draft: draft} }
}

// View implements tea.Model.
func (m AddFormModel) View() string {
	if m.picker != nil {
		return styles.BoxStyle.Render(m.picker.View())
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("New Task"))
	b.WriteString("\n\n")
	b.WriteString(fieldLabel("Task", m.field == fieldText) + " " + m.text.View() + "\n")
	b.WriteString(fieldLabel("Notes", m.field == fieldDescription) + " " + m.description.View() + "\n")
	b.WriteString(fieldLabel("Priority", m.field == fieldPriority) + " " + renderPriorities(m.priority, m.field == fieldPriority) + "\n")
	b.WriteString(fieldLabel("Due", m.field == fieldDue) + " " + renderDue(m.due, m.today, m.field == fieldDue) + "\n\n")
	b.WriteString(styles.SubtleStyle.Render("Tab Next field • Enter Add Task • Esc Cancel"))

	box := styles.BoxStyle
	if m.width > 4 {
		box = box.Width(m.width - 2)
	}
	return box.Render(b.String())
}
