package todo

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Priority is the urgency of a task.
type Priority string

// Priority constants. Values are part of the wire contract.
const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities lists every priority in the order the UI cycles through them.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

var (
	// ErrTextRequired is returned when a task label is missing or blank.
	ErrTextRequired = errors.New("text is required")
	// ErrInvalidPriority is returned for a priority outside High/Medium/Low.
	ErrInvalidPriority = errors.New("invalid priority")
	// ErrUnknownField is returned when a patch carries a non-updatable field.
	ErrUnknownField = errors.New("unknown field")
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Next returns the priority after p in Priorities, wrapping around.
func (p Priority) Next() Priority {
	for i, candidate := range Priorities {
		if candidate == p {
			return Priorities[(i+1)%len(Priorities)]
		}
	}
	return PriorityLow
}

// ParsePriority accepts a priority name in any case.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	}
	return "", fmt.Errorf("%w: %q (want High, Medium or Low)", ErrInvalidPriority, s)
}

// Task is a single todo item as persisted by the store.
type Task struct {
	ID          string     `json:"_id"`
	Text        string     `json:"text"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// HasDueDate reports whether the task is scheduled.
func (t Task) HasDueDate() bool {
	return t.DueDate != nil
}

// Draft is the input for creating a task.
type Draft struct {
	Text        string     `json:"text"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// Validate checks the draft can become a task.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Text) == "" {
		return ErrTextRequired
	}
	if d.Priority != "" && !d.Priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, d.Priority)
	}
	return nil
}

// WithDefaults fills a missing priority with def.
func (d Draft) WithDefaults(def Priority) Draft {
	if d.Priority == "" {
		d.Priority = def
	}
	return d
}

// NewTask builds a task from a validated draft. Fields the draft leaves out
// take their zero defaults and the priority falls back to def.
func NewTask(id string, d Draft, def Priority, now time.Time) Task {
	d = d.WithDefaults(def)
	return Task{
		ID:          id,
		Text:        strings.TrimSpace(d.Text),
		Description: d.Description,
		Priority:    d.Priority,
		DueDate:     d.DueDate,
		CreatedAt:   now,
	}
}
