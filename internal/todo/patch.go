package todo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// DueChange describes an update to a task's due date. A nil Value clears it.
type DueChange struct {
	Value *time.Time
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Text        *string
	Description *string
	Completed   *bool
	Priority    *Priority
	DueDate     *DueChange
}

// readOnlyFields are accepted in an update body but never applied.
var readOnlyFields = map[string]bool{
	"_id":       true,
	"id":        true,
	"createdAt": true,
	"__v":       true,
}

// CompletedPatch returns a patch that only sets the completed flag.
func CompletedPatch(done bool) Patch {
	return Patch{Completed: &done}
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Text == nil && p.Description == nil && p.Completed == nil && p.Priority == nil && p.DueDate == nil
}

// Validate checks the fields that are set.
func (p Patch) Validate() error {
	if p.Text != nil && strings.TrimSpace(*p.Text) == "" {
		return ErrTextRequired
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, *p.Priority)
	}
	return nil
}

// Apply returns t with the patch merged in. The id and creation time are never
// touched.
func (p Patch) Apply(t Task) Task {
	if p.Text != nil {
		t.Text = strings.TrimSpace(*p.Text)
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		if p.DueDate.Value == nil {
			t.DueDate = nil
		} else {
			due := *p.DueDate.Value
			t.DueDate = &due
		}
	}
	return t
}

// Merge returns p with the fields set in next layered on top.
func (p Patch) Merge(next Patch) Patch {
	if next.Text != nil {
		p.Text = next.Text
	}
	if next.Description != nil {
		p.Description = next.Description
	}
	if next.Completed != nil {
		p.Completed = next.Completed
	}
	if next.Priority != nil {
		p.Priority = next.Priority
	}
	if next.DueDate != nil {
		p.DueDate = next.DueDate
	}
	return p
}

// MarshalJSON encodes only the fields that are set. A cleared due date is
// sent as null.
func (p Patch) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, 5)
	if p.Text != nil {
		out["text"] = *p.Text
	}
	if p.Description != nil {
		out["description"] = *p.Description
	}
	if p.Completed != nil {
		out["completed"] = *p.Completed
	}
	if p.Priority != nil {
		out["priority"] = *p.Priority
	}
	if p.DueDate != nil {
		out["dueDate"] = p.DueDate.Value
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes an update body. Only text, description, completed,
// priority and dueDate are updatable; read-only record fields are ignored and
// anything else is rejected with ErrUnknownField.
func (p *Patch) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var unknown []string
	for key, value := range raw {
		isNull := bytes.Equal(bytes.TrimSpace(value), []byte("null"))
		switch key {
		case "text":
			if isNull {
				continue
			}
			var s string
			if err := json.Unmarshal(value, &s); err != nil {
				return fmt.Errorf("text: %w", err)
			}
			p.Text = &s
		case "description":
			var s string
			if !isNull {
				if err := json.Unmarshal(value, &s); err != nil {
					return fmt.Errorf("description: %w", err)
				}
			}
			p.Description = &s
		case "completed":
			if isNull {
				continue
			}
			var b bool
			if err := json.Unmarshal(value, &b); err != nil {
				return fmt.Errorf("completed: %w", err)
			}
			p.Completed = &b
		case "priority":
			if isNull {
				continue
			}
			var pr Priority
			if err := json.Unmarshal(value, &pr); err != nil {
				return fmt.Errorf("priority: %w", err)
			}
			p.Priority = &pr
		case "dueDate":
			if isNull {
				p.DueDate = &DueChange{}
				continue
			}
			var due time.Time
			if err := json.Unmarshal(value, &due); err != nil {
				return fmt.Errorf("dueDate: %w", err)
			}
			p.DueDate = &DueChange{Value: &due}
		default:
			if !readOnlyFields[key] {
				unknown = append(unknown, key)
			}
		}
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: %s", ErrUnknownField, strings.Join(unknown, ", "))
	}
	return nil
}
