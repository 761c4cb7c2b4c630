package focus

import "testing"

func TestNewTimer_Defaults(t *testing.T) {
	timer := NewTimer(DefaultMinutes)
	if timer.State() != StateReady {
		t.Errorf("state = %s, want Ready", timer.State())
	}
	if timer.Clock() != "25:00" {
		t.Errorf("clock = %q", timer.Clock())
	}
	if timer.Progress() != 1 {
		t.Errorf("progress = %v, want 1", timer.Progress())
	}
}

func TestNewTimer_Clamps(t *testing.T) {
	tests := []struct{ in, want int }{{0, 1}, {-10, 1}, {500, 120}, {45, 45}}
	for _, tt := range tests {
		timer := NewTimer(tt.in)
		if timer.Minutes() != tt.want {
			t.Errorf("NewTimer(%d).Minutes() = %d, want %d", tt.in, timer.Minutes(), tt.want)
		}
	}
}

func TestTimer_RunsToFinishExactlyOnce(t *testing.T) {
	timer := NewTimer(25)
	timer.Toggle()

	finishes := 0
	for i := 0; i < 1500; i++ {
		if timer.State() == StateFinished {
			t.Fatalf("finished early at tick %d", i)
		}
		if timer.Tick() {
			finishes++
		}
	}
	if timer.State() != StateFinished || finishes != 1 {
		t.Fatalf("state = %s, finishes = %d", timer.State(), finishes)
	}

	// No further ticks once finished.
	if timer.Tick() || timer.Remaining() != 0 {
		t.Error("finished timer kept ticking")
	}
	if timer.Progress() != 1 {
		t.Errorf("finished progress = %v, want 1", timer.Progress())
	}
	if timer.Clock() != "0:00" {
		t.Errorf("clock = %q", timer.Clock())
	}
}

func TestTimer_PauseAndResume(t *testing.T) {
	timer := NewTimer(1)
	timer.Toggle()
	timer.Tick()
	timer.Toggle()

	if timer.State() != StatePaused {
		t.Fatalf("state = %s, want Paused", timer.State())
	}
	if timer.Tick() {
		t.Error("paused timer should not tick")
	}
	if timer.Remaining() != 59 || timer.Clock() != "0:59" {
		t.Errorf("remaining = %d clock = %q", timer.Remaining(), timer.Clock())
	}

	timer.Toggle()
	if timer.State() != StateRunning {
		t.Errorf("state = %s, want Running", timer.State())
	}
	if timer.Remaining() != 59 {
		t.Error("resume should keep the remaining time")
	}
}

func TestTimer_AdjustIgnoredWhileRunning(t *testing.T) {
	timer := NewTimer(25)
	timer.Toggle()
	timer.Tick()

	if timer.Adjust(AdjustStep) {
		t.Error("adjust should report false while running")
	}
	if timer.Minutes() != 25 || timer.Remaining() != 25*60-1 {
		t.Errorf("running timer changed: %d min, %d left", timer.Minutes(), timer.Remaining())
	}
}

func TestTimer_AdjustClampsAndRearms(t *testing.T) {
	timer := NewTimer(25)
	timer.Toggle()
	timer.Tick()
	timer.Toggle()

	if !timer.Adjust(AdjustStep) {
		t.Fatal("adjust should apply while paused")
	}
	if timer.Minutes() != 30 || timer.State() != StateReady || timer.Clock() != "30:00" {
		t.Errorf("after +5: %d min, %s, %s", timer.Minutes(), timer.State(), timer.Clock())
	}

	timer.Adjust(-200)
	if timer.Minutes() != MinMinutes {
		t.Errorf("minutes = %d, want %d", timer.Minutes(), MinMinutes)
	}
	timer.Adjust(500)
	if timer.Minutes() != MaxMinutes {
		t.Errorf("minutes = %d, want %d", timer.Minutes(), MaxMinutes)
	}
}

func TestTimer_AdjustClearsFinished(t *testing.T) {
	timer := NewTimer(1)
	timer.Toggle()
	for i := 0; i < 60; i++ {
		timer.Tick()
	}
	timer.Adjust(AdjustStep)
	if timer.State() != StateReady || timer.Minutes() != 6 {
		t.Errorf("state = %s minutes = %d", timer.State(), timer.Minutes())
	}
}

func TestTimer_ToggleFromFinishedRestarts(t *testing.T) {
	timer := NewTimer(1)
	timer.Toggle()
	for i := 0; i < 60; i++ {
		timer.Tick()
	}
	timer.Toggle()
	if timer.State() != StateRunning || timer.Remaining() != 60 {
		t.Errorf("state = %s remaining = %d, want fresh run", timer.State(), timer.Remaining())
	}
}

func TestTimer_Reset(t *testing.T) {
	for _, name := range []string{"running", "paused", "finished"} {
		t.Run(name, func(t *testing.T) {
			timer := NewTimer(1)
			timer.Toggle()
			switch name {
			case "running":
				timer.Tick()
			case "paused":
				timer.Tick()
				timer.Toggle()
			case "finished":
				for i := 0; i < 60; i++ {
					timer.Tick()
				}
			}

			timer.Reset()
			if timer.State() != StateReady || timer.Remaining() != 60 || timer.Running() {
				t.Errorf("after reset: %s, %d left", timer.State(), timer.Remaining())
			}
		})
	}
}

func TestTimer_Progress(t *testing.T) {
	timer := NewTimer(1)
	timer.Toggle()
	for i := 0; i < 15; i++ {
		timer.Tick()
	}
	if got := timer.Progress(); got != 0.75 {
		t.Errorf("progress = %v, want 0.75", got)
	}
}

func TestState_String(t *testing.T) {
	if StateFinished.String() != "Finished" || State(99).String() != "Unknown" {
		t.Error("unexpected state names")
	}
}

func TestTimer_ReadableThroughSessionCopy(t *testing.T) {
	s := NewSession("a", 2, &fakeScheduler{}, nil)
	s.Toggle()

	snap := s.Timer()
	if snap.State() != StateRunning || !snap.Running() || snap.Minutes() != 2 || snap.Remaining() != 120 {
		t.Fatalf("unexpected snapshot %s %d %d", snap.State(), snap.Minutes(), snap.Remaining())
	}
	if snap.Clock() != "2:00" || snap.Progress() != 1 {
		t.Errorf("clock %q progress %v", snap.Clock(), snap.Progress())
	}

	snap.Tick()
	if s.Timer().Remaining() != 120 {
		t.Error("ticking a copy must not touch the session's timer")
	}
}
