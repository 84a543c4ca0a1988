package ui

import "testing"

func TestResumeAllowed(t *testing.T) {
	tests := []struct {
		name  string
		state State
		pause PauseReason
		want  bool
	}{
		{"paused plain", StatePaused, PauseIdle, true},
		{"paused filament lack", StatePaused, PauseFilamentLack, true},
		{"paused heater timeout", StatePaused, PauseHeaterTimedOut, false},
		{"paused purging", StatePaused, PausePurgingFilament, false},
		{"outage resume overrides", StateResumingFromPowerOutage, PauseHeaterTimedOut, true},
	}
	for _, tt := range tests {
		l := NewLifecycle(25)
		l.setState(tt.state)
		l.setPause(tt.pause)
		if got := l.ResumeAllowed(); got != tt.want {
			t.Errorf("%s: ResumeAllowed() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIdleResetsPause(t *testing.T) {
	l := NewLifecycle(25)
	l.setState(StatePaused)
	l.setPause(PauseHeaterTimedOut)
	l.setState(StateIdle)
	if l.Pause() != PauseIdle {
		t.Errorf("pause = %d, want PauseIdle after going idle", l.Pause())
	}
}

func TestCountProbePoint(t *testing.T) {
	l := NewLifecycle(4)
	for i := 0; i < 3; i++ {
		if l.countProbePoint() {
			t.Fatalf("mesh complete after %d of 4 points", i+1)
		}
	}
	if !l.countProbePoint() {
		t.Fatal("mesh not complete after 4 of 4 points")
	}
	// The counter self-resets so a second run starts clean.
	if l.countProbePoint() {
		t.Error("mesh complete on the first point of the next run")
	}
}
