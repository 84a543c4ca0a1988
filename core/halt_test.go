package core

import "testing"

type fakePinDriver struct {
	levels map[Pin]bool
	inputs map[Pin]bool
}

func newFakePinDriver() *fakePinDriver {
	return &fakePinDriver{
		levels: make(map[Pin]bool),
		inputs: make(map[Pin]bool),
	}
}

func (d *fakePinDriver) ConfigureOutput(p Pin) error { return nil }

func (d *fakePinDriver) ConfigureInput(p Pin, pullUp bool) error {
	d.inputs[p] = pullUp
	return nil
}

func (d *fakePinDriver) Set(p Pin, high bool) error {
	d.levels[p] = high
	return nil
}

func (d *fakePinDriver) Get(p Pin) (bool, error) {
	return d.levels[p], nil
}

func TestHaltIsOneShot(t *testing.T) {
	SetPinDriver(newFakePinDriver())
	ResetOutputs()
	ClearHalt()
	defer ClearHalt()
	defer ResetOutputs()

	if !Halt("first") {
		t.Fatal("first Halt returned false")
	}
	if Halt("second") {
		t.Fatal("second Halt returned true, want one-shot")
	}
	if !IsHalted() {
		t.Fatal("IsHalted() = false after Halt")
	}
	if HaltReason() != "first" {
		t.Fatalf("HaltReason() = %q, want %q", HaltReason(), "first")
	}
}

func TestShutdownForcesOutputDefaults(t *testing.T) {
	drv := newFakePinDriver()
	SetPinDriver(drv)
	ResetOutputs()
	defer ResetOutputs()

	heater := &SafetyOutput{Name: "hotend", Pin: 4, ActiveHigh: true, DefaultOn: false}
	psu := &SafetyOutput{Name: "psu", Pin: 7, ActiveHigh: false, DefaultOn: true}
	if err := RegisterOutput(heater); err != nil {
		t.Fatal(err)
	}
	if err := RegisterOutput(psu); err != nil {
		t.Fatal(err)
	}

	heater.Set(true)
	psu.Set(false)
	if !drv.levels[4] {
		t.Fatal("heater pin not high after Set(true)")
	}

	ShutdownAllOutputs()

	// heater: default off, active high -> pin low
	if drv.levels[4] {
		t.Error("heater pin high after shutdown, want low")
	}
	// psu: default on, active low -> pin low
	if drv.levels[7] {
		t.Error("psu pin high after shutdown, want low (active low, default on)")
	}
}
