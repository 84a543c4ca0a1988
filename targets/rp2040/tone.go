//go:build rp2040 || rp2350

package main

import (
	"errors"
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"

	"rekindle/core"
)

// The square-wave program is two SET instructions of 16 cycles each
// (1 + 15 delay), so one full period is 32 state-machine cycles. Pitch
// comes entirely from the clock divider.
const (
	toneCyclesPerPeriod = 32
	toneSysClockHz      = 125_000_000
	toneProgramOrigin   = 0
)

var errToneRange = errors.New("tone frequency out of range")

func buildToneProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		asm.Set(rp2pio.SetDestPins, 1).Delay(15).Encode(),
		asm.Set(rp2pio.SetDestPins, 0).Delay(15).Encode(),
	}
}

// pioToneDriver implements core.ToneDriver on a PIO state machine. The
// two-instruction program toggles the beeper pin forever; SetTone
// reprograms the clock divider by reinitializing the state machine.
type pioToneDriver struct {
	pio     *rp2pio.PIO
	sm      rp2pio.StateMachine
	pin     machine.Pin
	offset  uint8
	program []uint16
}

func newPIOToneDriver(pio *rp2pio.PIO, smNum uint8, pin machine.Pin) (*pioToneDriver, error) {
	d := &pioToneDriver{
		pio:     pio,
		sm:      pio.StateMachine(smNum),
		pin:     pin,
		program: buildToneProgram(),
	}
	d.sm.TryClaim()

	offset, err := d.pio.AddProgram(d.program, toneProgramOrigin)
	if err != nil {
		return nil, err
	}
	d.offset = offset

	d.pin.Configure(machine.PinConfig{Mode: d.pio.PinMode()})
	d.sm.SetPindirsConsecutive(d.pin, 1, true)
	d.sm.SetPinsConsecutive(d.pin, 1, false)
	return d, nil
}

func (d *pioToneDriver) SetTone(freqHz uint16) error {
	if freqHz == 0 {
		return d.Stop()
	}
	div := uint32(toneSysClockHz) / (uint32(freqHz) * toneCyclesPerPeriod)
	if div == 0 || div > 0xFFFF {
		return errToneRange
	}

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetSetPins(d.pin, 1)
	cfg.SetWrap(d.offset+uint8(len(d.program))-1, d.offset)
	cfg.SetClkDivIntFrac(uint16(div), 0)

	d.sm.SetEnabled(false)
	d.sm.Init(d.offset, cfg)
	d.sm.SetEnabled(true)
	return nil
}

func (d *pioToneDriver) Stop() error {
	d.sm.SetEnabled(false)
	d.sm.SetPinsConsecutive(d.pin, 1, false)
	return nil
}

var _ core.ToneDriver = (*pioToneDriver)(nil)
