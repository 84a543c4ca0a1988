package core

// ToneDriver is the abstract beeper interface. Targets back it with a PIO
// square-wave generator or a PWM channel; the host backs it with a no-op.
type ToneDriver interface {
	// SetTone starts emitting a square wave at the given frequency.
	SetTone(freqHz uint16) error

	// Stop silences the output.
	Stop() error
}

var toneDriver ToneDriver

// SetToneDriver is called by target-specific code to register its driver.
func SetToneDriver(d ToneDriver) {
	toneDriver = d
}

// Tone returns the configured driver, or nil when the build has no beeper.
func Tone() ToneDriver {
	return toneDriver
}
