package todo

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTaskSerialization_WireFieldNames(t *testing.T) {
	due := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "abc",
		Text:      "Buy milk",
		Priority:  PriorityHigh,
		DueDate:   &due,
		CreatedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("failed to marshal task: %v", err)
	}

	for _, field := range []string{`"_id":"abc"`, `"text":"Buy milk"`, `"description":""`, `"completed":false`, `"priority":"High"`, `"dueDate":"2024-03-05T00:00:00Z"`, `"createdAt":`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("expected %s in %s", field, data)
		}
	}
}

func TestTaskSerialization_NullDueDate(t *testing.T) {
	data, err := json.Marshal(Task{ID: "a", Text: "x", Priority: PriorityLow})
	if err != nil {
		t.Fatalf("failed to marshal task: %v", err)
	}
	if !strings.Contains(string(data), `"dueDate":null`) {
		t.Errorf("expected null dueDate, got %s", data)
	}

	var restored Task
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("failed to unmarshal task: %v", err)
	}
	if restored.HasDueDate() {
		t.Error("expected no due date after round trip")
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in      string
		want    Priority
		wantErr bool
	}{
		{"High", PriorityHigh, false},
		{"medium", PriorityMedium, false},
		{" LOW ", PriorityLow, false},
		{"urgent", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePriority(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidPriority) {
				t.Errorf("ParsePriority(%q): expected ErrInvalidPriority, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePriority(%q): unexpected error %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParsePriority(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPriorityNext_Cycles(t *testing.T) {
	if got := PriorityLow.Next(); got != PriorityMedium {
		t.Errorf("Low.Next() = %q, want Medium", got)
	}
	if got := PriorityHigh.Next(); got != PriorityLow {
		t.Errorf("High.Next() = %q, want Low", got)
	}
}

func TestDraftValidate(t *testing.T) {
	if err := (Draft{Text: "   "}).Validate(); !errors.Is(err, ErrTextRequired) {
		t.Errorf("expected ErrTextRequired for blank text, got %v", err)
	}
	if err := (Draft{Text: "ok", Priority: "Urgent"}).Validate(); !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("expected ErrInvalidPriority, got %v", err)
	}
	if err := (Draft{Text: "ok"}).Validate(); err != nil {
		t.Errorf("expected valid draft, got %v", err)
	}
}

func TestNewTask_AppliesDefaultPriority(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	task := NewTask("id1", Draft{Text: "  Walk dog  "}, PriorityMedium, now)

	if task.Text != "Walk dog" {
		t.Errorf("expected trimmed text, got %q", task.Text)
	}
	if task.Priority != PriorityMedium {
		t.Errorf("expected default priority Medium, got %q", task.Priority)
	}
	if task.Completed {
		t.Error("expected new task to be open")
	}
	if !task.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", task.CreatedAt, now)
	}

	explicit := NewTask("id2", Draft{Text: "x", Priority: PriorityHigh}, PriorityLow, now)
	if explicit.Priority != PriorityHigh {
		t.Errorf("expected explicit priority to win, got %q", explicit.Priority)
	}
}
