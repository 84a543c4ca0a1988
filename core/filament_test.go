package core

import "testing"

func TestFilamentRunoutDebounce(t *testing.T) {
	drv := newFakePinDriver()
	SetPinDriver(drv)
	ResetTimers()
	ResetFilamentSensor()
	defer ResetTimers()
	defer ResetFilamentSensor()

	const pin = Pin(12)
	drv.levels[pin] = true // filament loaded

	fs, err := ConfigureFilamentSensor(pin, true, true)
	if err != nil {
		t.Fatal(err)
	}

	runouts := 0
	reloads := 0
	fs.OnRunout = func() { runouts++ }
	fs.OnReload = func() { reloads++ }

	SetTime(0)
	fs.Enable()

	// Loaded filament: idle checks report nothing.
	SetTime(TimerFromMS(50))
	ProcessTimers()
	if runouts != 0 {
		t.Fatal("runout reported while filament present")
	}

	// Pull filament; one absent sample is not enough.
	drv.levels[pin] = false
	SetTime(TimerFromMS(100))
	ProcessTimers()
	if runouts != 0 {
		t.Fatal("runout reported before debounce completed")
	}

	// Bounce back before the confirmation window finishes.
	drv.levels[pin] = true
	SetTime(TimerFromMS(102))
	ProcessTimers()
	SetTime(TimerFromMS(200))
	ProcessTimers()
	if runouts != 0 {
		t.Fatal("runout reported for a bounce")
	}
	if !fs.Present() {
		t.Fatal("sensor lost presence after a bounce")
	}

	// Real runout: absent across the whole confirmation window.
	drv.levels[pin] = false
	SetTime(TimerFromMS(300))
	ProcessTimers()
	if runouts != 1 {
		t.Fatalf("runouts = %d, want 1", runouts)
	}
	if fs.Present() {
		t.Fatal("sensor still reports presence after confirmed runout")
	}

	// Reload reports immediately on the next check cycle.
	drv.levels[pin] = true
	SetTime(TimerFromMS(400))
	ProcessTimers()
	if reloads != 1 {
		t.Fatalf("reloads = %d, want 1", reloads)
	}
}
