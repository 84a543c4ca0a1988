package core

// SupplyReading is the raw supply-voltage reading as seen by the rest of
// the firmware. Convention here: millivolt-scaled, whatever the underlying
// sensor resolution.
type SupplyReading uint16

// PowerSensor is the abstract supply-voltage interface used by the outage
// detector. ReadSupply must be cheap: it is called every idle tick and may
// be called again from the emergency path.
type PowerSensor interface {
	// ReadSupply performs a one-shot sample of the supply voltage.
	ReadSupply() (SupplyReading, error)
}

// Global singleton used by core code.
var powerSensor PowerSensor

// SetPowerSensor is called by target-specific code to register its sensor.
func SetPowerSensor(s PowerSensor) {
	powerSensor = s
}

// MustPower returns the configured sensor or panics if missing.
func MustPower() PowerSensor {
	if powerSensor == nil {
		panic("power sensor not configured")
	}
	return powerSensor
}
