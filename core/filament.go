// Filament runout sensor with timer-driven debounce sampling.
package core

// FilamentSensor flags
const (
	FSF_PRESENT_HIGH = 1 << 0 // Pin level when filament is present
	FSF_ENABLED      = 1 << 1 // Sampling active
)

// FilamentSensor polls a runout switch on the scheduler and reports
// debounced presence transitions. A runout is only reported after
// SampleCount consecutive absent samples so brief switch bounce during
// motion does not abort a print.
type FilamentSensor struct {
	Pin         Pin
	Flags       uint8
	Timer       Timer
	SampleTime  uint32 // Ticks between confirmation samples
	SampleCount uint8  // Consecutive absent samples required
	RestTime    uint32 // Ticks between idle check cycles

	absentCount uint8
	present     bool

	// OnRunout is called once per present->absent transition.
	OnRunout func()
	// OnReload is called once per absent->present transition.
	OnReload func()
}

var filamentSensor *FilamentSensor

// ConfigureFilamentSensor sets up the runout pin and starts sampling.
// presentHigh gives the pin level that means filament is loaded.
func ConfigureFilamentSensor(pin Pin, presentHigh bool, pullUp bool) (*FilamentSensor, error) {
	if err := MustPins().ConfigureInput(pin, pullUp); err != nil {
		return nil, err
	}

	fs := &FilamentSensor{
		Pin:         pin,
		SampleTime:  TimerFromMS(2),
		SampleCount: 4,
		RestTime:    TimerFromMS(50),
		present:     true,
	}
	if presentHigh {
		fs.Flags |= FSF_PRESENT_HIGH
	}
	fs.absentCount = fs.SampleCount

	filamentSensor = fs
	return fs, nil
}

// ActiveFilamentSensor returns the configured sensor, or nil.
func ActiveFilamentSensor() *FilamentSensor {
	return filamentSensor
}

// Present returns the last debounced filament state.
func (fs *FilamentSensor) Present() bool {
	return fs.present
}

// Enable starts (or restarts) the sampling timer.
func (fs *FilamentSensor) Enable() {
	if fs.Flags&FSF_ENABLED != 0 {
		return
	}
	fs.Flags |= FSF_ENABLED
	fs.absentCount = fs.SampleCount
	fs.Timer.WakeTime = GetTime() + fs.RestTime
	fs.Timer.Handler = filamentCheckEvent
	ScheduleTimer(&fs.Timer)
}

// Disable stops sampling. Safe to call from a timer context.
func (fs *FilamentSensor) Disable() {
	fs.Flags &^= FSF_ENABLED
	CancelTimer(&fs.Timer)
}

// readPresent samples the raw pin and maps it to filament presence.
func (fs *FilamentSensor) readPresent() bool {
	high, err := MustPins().Get(fs.Pin)
	if err != nil {
		// A read failure must not abort a print; assume no change.
		return fs.present
	}
	expectHigh := fs.Flags&FSF_PRESENT_HIGH != 0
	return high == expectHigh
}

// filamentCheckEvent is the idle-rate timer callback. When the pin first
// reads absent it switches to the confirmation handler.
func filamentCheckEvent(t *Timer) uint8 {
	fs := filamentSensor
	if fs == nil || fs.Flags&FSF_ENABLED == 0 {
		return SF_DONE
	}

	raw := fs.readPresent()

	if raw == fs.present {
		t.WakeTime += fs.RestTime
		return SF_RESCHEDULE
	}

	if raw {
		// Filament reappeared; report immediately, no debounce needed.
		fs.present = true
		if fs.OnReload != nil {
			fs.OnReload()
		}
		t.WakeTime += fs.RestTime
		return SF_RESCHEDULE
	}

	// Potential runout; start oversampling.
	fs.absentCount = fs.SampleCount
	t.Handler = filamentConfirmEvent
	return filamentConfirmEvent(t)
}

// filamentConfirmEvent confirms a runout with consecutive samples.
func filamentConfirmEvent(t *Timer) uint8 {
	fs := filamentSensor
	if fs == nil || fs.Flags&FSF_ENABLED == 0 {
		return SF_DONE
	}

	if fs.readPresent() {
		// Bounce; back to idle-rate checking.
		t.Handler = filamentCheckEvent
		t.WakeTime = GetTime() + fs.RestTime
		fs.absentCount = fs.SampleCount
		return SF_RESCHEDULE
	}

	count := fs.absentCount - 1
	if count == 0 {
		fs.present = false
		if fs.OnRunout != nil {
			fs.OnRunout()
		}
		t.Handler = filamentCheckEvent
		t.WakeTime = GetTime() + fs.RestTime
		return SF_RESCHEDULE
	}

	fs.absentCount = count
	t.WakeTime += fs.SampleTime
	return SF_RESCHEDULE
}

// ResetFilamentSensor clears the registered sensor (for tests).
func ResetFilamentSensor() {
	if filamentSensor != nil {
		filamentSensor.Disable()
	}
	filamentSensor = nil
}
