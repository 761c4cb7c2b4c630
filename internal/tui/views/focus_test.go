package views

import (
	"strings"
	"testing"
	"time"

	"github.com/zenithtodo/zenith/internal/focus"
	"github.com/zenithtodo/zenith/internal/todo"
	"github.com/zenithtodo/zenith/internal/tui/msgs"
)

type manualScheduler struct {
	fns     []func()
	stopped []bool
}

func (s *manualScheduler) Every(d time.Duration, fn func()) func() {
	i := len(s.fns)
	s.fns = append(s.fns, fn)
	s.stopped = append(s.stopped, false)
	return func() { s.stopped[i] = true }
}

func (s *manualScheduler) tick(n int) {
	for k := 0; k < n; k++ {
		for i, fn := range s.fns {
			if !s.stopped[i] {
				fn()
			}
		}
	}
}

func (s *manualScheduler) live() int {
	n := 0
	for _, stopped := range s.stopped {
		if !stopped {
			n++
		}
	}
	return n
}

func newFocus(minutes int) (FocusModel, *manualScheduler) {
	sched := &manualScheduler{}
	task := todo.Task{ID: "t1", Text: "Deep work"}
	m := NewFocusModel(task, focus.NewSession(task.ID, minutes, sched, nil))
	m.SetSize(100, 30)
	return m, sched
}

func TestFocus_ViewReady(t *testing.T) {
	m, _ := newFocus(25)
	view := m.View()

	for _, want := range []string{"Focus Mode", "Deep work", "2 5 : 0 0", "Ready", "25 min"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestFocus_StartPauseLabels(t *testing.T) {
	m, sched := newFocus(25)

	m, _ = m.Update(key("space"))
	sched.tick(1)
	if label := StatusLabel(m.Session().Timer()); label != "" {
		t.Errorf("running label = %q, want none", label)
	}
	if strings.Contains(m.View(), "min +") {
		t.Error("duration controls should be hidden while running")
	}

	m, _ = m.Update(key("space"))
	if label := StatusLabel(m.Session().Timer()); label != "Paused" {
		t.Errorf("paused label = %q", label)
	}
	if sched.live() != 0 {
		t.Error("pause should stop the interval")
	}
}

func TestFocus_Adjust(t *testing.T) {
	m, _ := newFocus(25)

	m, _ = m.Update(key("+"))
	if m.Session().Timer().Minutes() != 30 {
		t.Errorf("minutes = %d, want 30", m.Session().Timer().Minutes())
	}
	m, _ = m.Update(key("-"))
	m, _ = m.Update(key("-"))
	if m.Session().Timer().Minutes() != 20 {
		t.Errorf("minutes = %d, want 20", m.Session().Timer().Minutes())
	}
}

func TestFocus_FinishedView(t *testing.T) {
	m, sched := newFocus(1)
	m, _ = m.Update(key("space"))
	sched.tick(60)

	view := m.View()
	for _, want := range []string{"Session Complete", "D o n e !", "Great focus.", "100%"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected finished view to contain %q", want)
		}
	}
	if sched.live() != 0 {
		t.Error("finish should stop the interval")
	}
}

func TestFocus_Complete(t *testing.T) {
	m, sched := newFocus(25)
	m, _ = m.Update(key("space"))

	_, cmd := m.Update(key("c"))
	done, ok := find[msgs.CompleteFocusMsg](cmd)
	if !ok || done.TaskID != "t1" {
		t.Fatalf("expected CompleteFocusMsg{t1}, got %+v %v", done, ok)
	}
	if sched.live() != 0 {
		t.Error("complete should stop the interval")
	}
}

func TestFocus_EscCloses(t *testing.T) {
	m, sched := newFocus(25)
	m, _ = m.Update(key("space"))

	_, cmd := m.Update(key("esc"))
	if _, ok := find[msgs.GoToBoardMsg](cmd); !ok {
		t.Error("expected GoToBoardMsg")
	}
	if sched.live() != 0 || !m.Session().Closed() {
		t.Error("closing should stop the interval")
	}
}

func TestFocus_Reset(t *testing.T) {
	m, sched := newFocus(25)
	m, _ = m.Update(key("space"))
	sched.tick(30)
	m, _ = m.Update(key("r"))

	if m.Session().Timer().State() != focus.StateReady || sched.live() != 0 {
		t.Error("reset should return to ready with no interval")
	}
}
