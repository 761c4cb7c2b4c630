package focus

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeInterval struct {
	every   time.Duration
	fn      func()
	stopped bool
}

type fakeScheduler struct {
	intervals []*fakeInterval
}

func (f *fakeScheduler) Every(d time.Duration, fn func()) func() {
	iv := &fakeInterval{every: d, fn: fn}
	f.intervals = append(f.intervals, iv)
	return func() { iv.stopped = true }
}

func (f *fakeScheduler) live() int {
	n := 0
	for _, iv := range f.intervals {
		if !iv.stopped {
			n++
		}
	}
	return n
}

// fire delivers n ticks to every interval that is still live.
func (f *fakeScheduler) fire(n int) {
	for i := 0; i < n; i++ {
		for _, iv := range f.intervals {
			if !iv.stopped {
				iv.fn()
			}
		}
	}
}

func newSession(minutes int) (*Session, *fakeScheduler, *int) {
	sched := &fakeScheduler{}
	changes := 0
	s := NewSession("task-1", minutes, sched, func() { changes++ })
	return s, sched, &changes
}

func TestSession_SingleIntervalWhileRunning(t *testing.T) {
	s, sched, _ := newSession(25)

	s.Toggle()
	if sched.live() != 1 || !s.Live() {
		t.Fatalf("live intervals = %d, want 1", sched.live())
	}
	if sched.intervals[0].every != time.Second {
		t.Errorf("interval = %v, want 1s", sched.intervals[0].every)
	}

	s.Toggle()
	if sched.live() != 0 || s.Live() {
		t.Fatalf("pause left %d live intervals", sched.live())
	}

	s.Toggle()
	if sched.live() != 1 || len(sched.intervals) != 2 {
		t.Errorf("resume: live = %d, total = %d", sched.live(), len(sched.intervals))
	}
}

func TestSession_FinishStopsInterval(t *testing.T) {
	s, sched, _ := newSession(25)
	s.Toggle()

	sched.fire(1499)
	timer := s.Timer()
	if timer.State() != StateRunning || timer.Clock() != "0:01" {
		t.Fatalf("after 1499 ticks: %s %s", timer.State(), timer.Clock())
	}

	sched.fire(1)
	timer = s.Timer()
	if timer.State() != StateFinished {
		t.Fatalf("state = %s, want Finished", timer.State())
	}
	if sched.live() != 0 {
		t.Errorf("finish left %d live intervals", sched.live())
	}
}

func TestSession_EveryExitPathStopsInterval(t *testing.T) {
	exits := map[string]func(s *Session){
		"pause":    func(s *Session) { s.Toggle() },
		"reset":    func(s *Session) { s.Reset() },
		"complete": func(s *Session) { s.Complete() },
		"close":    func(s *Session) { s.Close() },
	}
	for name, exit := range exits {
		t.Run(name, func(t *testing.T) {
			s, sched, _ := newSession(25)
			s.Toggle()
			sched.fire(10)
			exit(s)
			if sched.live() != 0 {
				t.Errorf("%s left %d live intervals", name, sched.live())
			}
		})
	}
}

func TestSession_StaleTickIgnored(t *testing.T) {
	s, sched, _ := newSession(1)
	s.Toggle()
	first := sched.intervals[0]
	s.Toggle()

	first.fn()
	if s.Timer().Remaining() != 60 {
		t.Error("tick from a stopped interval changed the timer")
	}
}

func TestSession_AdjustIgnoredWhileRunning(t *testing.T) {
	s, _, _ := newSession(25)
	s.Toggle()
	if s.Adjust(AdjustStep) {
		t.Error("adjust should be ignored while running")
	}
	s.Toggle()
	if !s.Adjust(AdjustStep) || s.Timer().Minutes() != 30 {
		t.Errorf("adjust while paused failed: %d", s.Timer().Minutes())
	}
}

func TestSession_ResetReturnsToReady(t *testing.T) {
	s, sched, _ := newSession(25)
	s.Toggle()
	sched.fire(100)
	s.Reset()

	timer := s.Timer()
	if timer.State() != StateReady || timer.Clock() != "25:00" {
		t.Errorf("after reset: %s %s", timer.State(), timer.Clock())
	}
}

func TestSession_CompleteReturnsTaskInAnyState(t *testing.T) {
	s, _, _ := newSession(25)
	if id := s.Complete(); id != "task-1" {
		t.Errorf("Complete() = %q", id)
	}
	if !s.Closed() {
		t.Error("session should be closed")
	}

	s.Toggle()
	if s.Live() || s.Timer().Running() {
		t.Error("closed session should ignore input")
	}
}

func TestSession_NotifiesOnChange(t *testing.T) {
	s, sched, changes := newSession(1)
	s.Toggle()
	sched.fire(3)
	s.Reset()

	// toggle, three ticks, reset
	if *changes != 5 {
		t.Errorf("changes = %d, want 5", *changes)
	}
}

func TestTickerScheduler_StopHaltsTicks(t *testing.T) {
	var ticks atomic.Int32
	var once sync.Once
	started := make(chan struct{})

	stop := TickerScheduler{}.Every(5*time.Millisecond, func() {
		ticks.Add(1)
		once.Do(func() { close(started) })
	})

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("ticker never fired")
	}

	stop()
	stop()
	// Allow a tick already being delivered to land.
	time.Sleep(20 * time.Millisecond)
	after := ticks.Load()
	time.Sleep(50 * time.Millisecond)
	if ticks.Load() != after {
		t.Errorf("ticks continued after stop: %d -> %d", after, ticks.Load())
	}
}
