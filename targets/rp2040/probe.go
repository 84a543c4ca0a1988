//go:build rp2040 || rp2350

package main

import (
	"rekindle/core"
)

// pinProbe implements core.ProbeDriver on a digital trigger input
// (active low, pulled up). The bench rig has no strain gauge to zero,
// so Tare is a no-op.
type pinProbe struct {
	pin core.Pin
}

func newPinProbe(pin core.Pin) (*pinProbe, error) {
	if err := core.MustPins().ConfigureInput(pin, true); err != nil {
		return nil, err
	}
	return &pinProbe{pin: pin}, nil
}

func (p *pinProbe) Tare() error { return nil }

func (p *pinProbe) Triggered() (bool, error) {
	high, err := core.MustPins().Get(p.pin)
	if err != nil {
		return false, err
	}
	return !high, nil
}
