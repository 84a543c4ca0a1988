//go:build rp2040 || rp2350

package main

import (
	"errors"
	"machine"

	"rekindle/core"
)

const gpioCount = 30

var errBadPin = errors.New("pin number out of range")

// rpPinDriver implements core.PinDriver on the RP2040 GPIO block through
// TinyGo's machine package. Set and Get are single register operations,
// safe from the emergency path.
type rpPinDriver struct{}

func (rpPinDriver) check(pin core.Pin) error {
	if pin >= gpioCount {
		return errBadPin
	}
	return nil
}

func (d rpPinDriver) ConfigureOutput(pin core.Pin) error {
	if err := d.check(pin); err != nil {
		return err
	}
	machine.Pin(pin).Configure(machine.PinConfig{Mode: machine.PinOutput})
	return nil
}

func (d rpPinDriver) ConfigureInput(pin core.Pin, pullUp bool) error {
	if err := d.check(pin); err != nil {
		return err
	}
	mode := machine.PinInputPulldown
	if pullUp {
		mode = machine.PinInputPullup
	}
	machine.Pin(pin).Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (d rpPinDriver) Set(pin core.Pin, value bool) error {
	if err := d.check(pin); err != nil {
		return err
	}
	machine.Pin(pin).Set(value)
	return nil
}

func (d rpPinDriver) Get(pin core.Pin) (bool, error) {
	if err := d.check(pin); err != nil {
		return false, err
	}
	return machine.Pin(pin).Get(), nil
}
