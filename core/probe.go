package core

// ProbeDriver abstracts a strain-gauge nozzle probe. Tare zeroes the
// gauge while the nozzle is free of load; Triggered reports whether the
// gauge currently reads above its trigger threshold.
type ProbeDriver interface {
	Tare() error
	Triggered() (bool, error)
}

var activeProbe ProbeDriver

// SetProbeDriver registers the platform probe implementation.
func SetProbeDriver(p ProbeDriver) {
	activeProbe = p
}

// Probe returns the registered probe driver, or nil when the machine
// has no strain-gauge probe.
func Probe() ProbeDriver {
	return activeProbe
}

// MustProbe returns the registered probe, panicking if none is set.
func MustProbe() ProbeDriver {
	if activeProbe == nil {
		panic("core: no probe driver registered")
	}
	return activeProbe
}
