package core

// SafetyOutput is a named digital output carrying a default (safe) state.
// The emergency path drives heater and stepper-enable outputs directly at
// the pin level, before anything slower runs.
type SafetyOutput struct {
	Name       string
	Pin        Pin
	ActiveHigh bool // true if the load is on when the pin is high
	DefaultOn  bool // state to force on shutdown
}

var safetyOutputs []*SafetyOutput

// RegisterOutput configures the pin and adds the output to the shutdown set.
func RegisterOutput(o *SafetyOutput) error {
	if err := MustPins().ConfigureOutput(o.Pin); err != nil {
		return err
	}
	o.Set(o.DefaultOn)
	safetyOutputs = append(safetyOutputs, o)
	return nil
}

// Set drives the output. Interrupt-safe: a single pin write.
func (o *SafetyOutput) Set(on bool) {
	_ = MustPins().Set(o.Pin, on == o.ActiveHigh)
}

// ShutdownAllOutputs drives every registered output to its default state.
// Called from the emergency sequence and the halt path.
func ShutdownAllOutputs() {
	for _, o := range safetyOutputs {
		o.Set(o.DefaultOn)
	}
}

// ResetOutputs clears the registry (tests and target reinit).
func ResetOutputs() {
	safetyOutputs = nil
}
