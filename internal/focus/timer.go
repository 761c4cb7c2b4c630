// Package focus implements the single-task countdown used by focus mode.
package focus

import "fmt"

// State is the phase of a Timer.
type State int

const (
	StateReady State = iota
	StateRunning
	StatePaused
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "Ready"
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Session length bounds, in minutes.
const (
	DefaultMinutes = 25
	MinMinutes     = 1
	MaxMinutes     = 120
	// AdjustStep is how far one press of +/- moves the duration.
	AdjustStep = 5
)

// Timer is a countdown measured in whole seconds. The zero value is not
// usable; create one with NewTimer.
type Timer struct {
	minutes  int
	left     int
	running  bool
	finished bool
}

// NewTimer returns a ready timer of the given length, clamped to
// [MinMinutes, MaxMinutes].
func NewTimer(minutes int) Timer {
	minutes = clamp(minutes)
	return Timer{minutes: minutes, left: minutes * 60}
}

func clamp(minutes int) int {
	if minutes < MinMinutes {
		return MinMinutes
	}
	if minutes > MaxMinutes {
		return MaxMinutes
	}
	return minutes
}

// State derives the phase from the countdown.
func (t Timer) State() State {
	switch {
	case t.finished:
		return StateFinished
	case t.running:
		return StateRunning
	case t.left == t.total():
		return StateReady
	default:
		return StatePaused
	}
}

// Running reports whether the countdown is ticking.
func (t Timer) Running() bool {
	return t.running
}

// Minutes returns the configured session length.
func (t Timer) Minutes() int {
	return t.minutes
}

// Remaining returns the seconds left.
func (t Timer) Remaining() int {
	return t.left
}

func (t Timer) total() int {
	return t.minutes * 60
}

// Adjust changes the session length by delta minutes and rearms the
// countdown. It does nothing while running and reports whether it applied.
func (t *Timer) Adjust(delta int) bool {
	if t.running {
		return false
	}
	t.minutes = clamp(t.minutes + delta)
	t.left = t.total()
	t.finished = false
	return true
}

// Toggle starts or pauses the countdown. Starting a finished timer restarts
// it at the configured length.
func (t *Timer) Toggle() {
	if t.finished {
		t.Reset()
	}
	t.running = !t.running
}

// Tick removes one second while running. It reports true on the tick that
// reaches zero.
func (t *Timer) Tick() bool {
	if !t.running {
		return false
	}
	t.left--
	if t.left > 0 {
		return false
	}
	t.left = 0
	t.running = false
	t.finished = true
	return true
}

// Reset stops the countdown and returns to the configured length.
func (t *Timer) Reset() {
	t.running = false
	t.finished = false
	t.left = t.total()
}

// Progress is the remaining fraction of the session, forced to 1 once
// finished.
func (t Timer) Progress() float64 {
	if t.finished {
		return 1
	}
	return float64(t.left) / float64(t.total())
}

// Clock renders the remaining time as m:ss.
func (t Timer) Clock() string {
	return fmt.Sprintf("%d:%02d", t.left/60, t.left%60)
}
