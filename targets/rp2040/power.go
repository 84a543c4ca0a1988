//go:build rp2040 || rp2350

package main

import (
	"errors"
	"machine"

	"tinygo.org/x/drivers/ina260"

	"rekindle/core"
)

var errSensorGone = errors.New("supply sensor not responding")

// ina260Sensor implements core.PowerSensor on an INA260 power monitor
// sitting on the printer's 24V rail (through a divider to the chip's
// bus input). The chip free-runs in continuous mode; ReadSupply is a
// single register read over I2C.
type ina260Sensor struct {
	dev ina260.Device
}

func newINA260Sensor(bus *machine.I2C) (*ina260Sensor, error) {
	s := &ina260Sensor{dev: ina260.New(bus)}
	if !s.dev.Connected() {
		return nil, errSensorGone
	}
	s.dev.Configure()
	return s, nil
}

func (s *ina260Sensor) ReadSupply() (core.SupplyReading, error) {
	uv := s.dev.Voltage()
	if uv < 0 {
		return 0, errSensorGone
	}
	// Microvolts to the millivolt-scaled reading the detector expects.
	return core.SupplyReading(uv / 1000), nil
}
