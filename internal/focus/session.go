package focus

import (
	"sync"
	"time"
)

// Session is a Timer bound to one task and to a Scheduler. It keeps at most
// one interval alive, and only while the timer is running.
type Session struct {
	mu       sync.Mutex
	timer    Timer
	taskID   string
	sched    Scheduler
	onChange func()

	stop   func()
	gen    uint64
	closed bool
}

// NewSession creates a ready session for taskID. onChange may be nil; it is
// called after every change, including ticks, without the lock held.
func NewSession(taskID string, minutes int, sched Scheduler, onChange func()) *Session {
	if sched == nil {
		sched = TickerScheduler{}
	}
	return &Session{
		timer:    NewTimer(minutes),
		taskID:   taskID,
		sched:    sched,
		onChange: onChange,
	}
}

func (s *Session) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// TaskID returns the task being focused on.
func (s *Session) TaskID() string {
	return s.taskID
}

// Timer returns a copy of the timer.
func (s *Session) Timer() Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer
}

// Live reports whether an interval is currently scheduled.
func (s *Session) Live() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stop != nil
}

// Closed reports whether the session has been completed or closed.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Toggle starts or pauses the countdown.
func (s *Session) Toggle() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.timer.Toggle()
	if s.timer.Running() {
		s.startLocked()
	} else {
		s.stopLocked()
	}
	s.mu.Unlock()
	s.changed()
}

// Adjust changes the session length by delta minutes unless running.
func (s *Session) Adjust(delta int) bool {
	s.mu.Lock()
	ok := !s.closed && s.timer.Adjust(delta)
	s.mu.Unlock()
	if ok {
		s.changed()
	}
	return ok
}

// Reset stops the countdown and returns to ready.
func (s *Session) Reset() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.stopLocked()
	s.timer.Reset()
	s.mu.Unlock()
	s.changed()
}

// Complete closes the session in any state and returns the task to mark done.
func (s *Session) Complete() string {
	s.Close()
	return s.taskID
}

// Close stops any interval. The session ignores further input.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.stopLocked()
	s.closed = true
	s.mu.Unlock()
	s.changed()
}

func (s *Session) startLocked() {
	if s.stop != nil {
		return
	}
	s.gen++
	gen := s.gen
	s.stop = s.sched.Every(time.Second, func() { s.tick(gen) })
}

func (s *Session) stopLocked() {
	if s.stop == nil {
		return
	}
	s.stop()
	s.stop = nil
	s.gen++
}

// tick advances the timer for the interval started at gen. Ticks from an
// interval that has since been stopped are dropped.
func (s *Session) tick(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.stop == nil {
		s.mu.Unlock()
		return
	}
	if s.timer.Tick() {
		s.stopLocked()
	}
	s.mu.Unlock()
	s.changed()
}
