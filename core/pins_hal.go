package core

// Pin identifies a hardware digital pin number
type Pin uint32

// PinDriver is the abstract digital-pin interface that core code uses.
// Platform-specific implementations handle actual hardware control.
type PinDriver interface {
	// ConfigureOutput configures a pin as a digital output
	ConfigureOutput(pin Pin) error

	// ConfigureInput configures a pin as a digital input, with pull-up
	// when pullUp is true and pull-down otherwise
	ConfigureInput(pin Pin, pullUp bool) error

	// Set drives the pin high (true) or low (false).
	// Must be callable from interrupt context: no blocking, no allocation.
	Set(pin Pin, value bool) error

	// Get reads the current pin state
	Get(pin Pin) (bool, error)
}

// Global singleton used by core code.
var pinDriver PinDriver

// SetPinDriver is called by target-specific code to register its driver.
func SetPinDriver(d PinDriver) {
	pinDriver = d
}

// MustPins returns the configured driver or panics if missing.
func MustPins() PinDriver {
	if pinDriver == nil {
		panic("pin driver not configured")
	}
	return pinDriver
}
