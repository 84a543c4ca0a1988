package recovery

import (
	"testing"

	"rekindle/core"
	"rekindle/sim"
)

type fakePins struct {
	levels map[core.Pin]bool
}

func (d *fakePins) ConfigureOutput(p core.Pin) error            { return nil }
func (d *fakePins) ConfigureInput(p core.Pin, pullUp bool) error { return nil }
func (d *fakePins) Set(p core.Pin, high bool) error {
	d.levels[p] = high
	return nil
}
func (d *fakePins) Get(p core.Pin) (bool, error) { return d.levels[p], nil }

type fakeSupply struct {
	reading core.SupplyReading
}

func (f *fakeSupply) ReadSupply() (core.SupplyReading, error) { return f.reading, nil }

type fakeNotifier struct {
	powerLoss int
}

func (n *fakeNotifier) PowerLoss() { n.powerLoss++ }

type outageRig struct {
	detector *Detector
	supply   *fakeSupply
	notifier *fakeNotifier
	pins     *fakePins
	store    *Store
	engine   *sim.Engine
	medium   *fakeMedium
	hotend   *core.SafetyOutput
	stepperX *core.SafetyOutput
}

func newOutageRig(t *testing.T, backupPower bool) *outageRig {
	t.Helper()
	core.SetTime(0)
	core.ClearHalt()
	core.ResetOutputs()
	t.Cleanup(core.ClearHalt)
	t.Cleanup(core.ResetOutputs)

	pins := &fakePins{levels: make(map[core.Pin]bool)}
	core.SetPinDriver(pins)

	supply := &fakeSupply{reading: 3300}
	core.SetPowerSensor(supply)

	hotend := &core.SafetyOutput{Name: "hotend", Pin: 2, ActiveHigh: true}
	stepperX := &core.SafetyOutput{Name: "en_x", Pin: 5, ActiveHigh: false}
	if err := core.RegisterOutput(hotend); err != nil {
		t.Fatal(err)
	}
	if err := core.RegisterOutput(stepperX); err != nil {
		t.Fatal(err)
	}

	medium := newFakeMedium()
	engine := sim.NewEngine(sim.DefaultProfile())
	store := NewStore(engine, medium, StoreConfig{SaveIntervalMS: 1000, MinZChange: 0.5})
	store.Enable()

	notifier := &fakeNotifier{}
	det := NewDetector(DetectorConfig{
		Threshold:     2200,
		ZRaise:        2,
		ZMax:          250,
		BackupPower:   backupPower,
		RetractLength: 3,
	}, store, engine, notifier,
		[]*core.SafetyOutput{hotend},
		[]*core.SafetyOutput{stepperX})
	det.Enable()

	return &outageRig{
		detector: det, supply: supply, notifier: notifier, pins: pins,
		store: store, engine: engine, medium: medium,
		hotend: hotend, stepperX: stepperX,
	}
}

func (r *outageRig) sample(readings ...core.SupplyReading) {
	for _, v := range readings {
		r.supply.reading = v
		r.detector.Tick()
	}
}

func TestOutageFiresOnceAfterFourFallingSamples(t *testing.T) {
	rig := newOutageRig(t, false)

	// Three strictly-falling low samples: armed but not fired.
	rig.sample(3300, 2100, 2000, 1900)
	if rig.detector.Fired() {
		t.Fatal("fired after three low samples")
	}

	rig.sample(1800)
	if !rig.detector.Fired() {
		t.Fatal("not fired after fourth falling low sample")
	}
	if rig.notifier.powerLoss != 1 {
		t.Fatalf("powerLoss notifications = %d, want 1", rig.notifier.powerLoss)
	}
	if !core.IsHalted() {
		t.Fatal("machine not halted")
	}

	// Supply keeps collapsing: the sequence must not run again.
	core.ClearHalt() // so a second run would be observable
	rig.sample(1700, 1600, 1500, 1400, 1300)
	if rig.notifier.powerLoss != 1 {
		t.Errorf("powerLoss notifications = %d after continued sampling, want 1",
			rig.notifier.powerLoss)
	}
}

func TestOutageCounterResets(t *testing.T) {
	rig := newOutageRig(t, false)

	// A plateau below threshold breaks the trend.
	rig.sample(3300, 2100, 2000, 2000, 1900, 1800)
	if rig.detector.Fired() {
		t.Fatal("fired despite non-decreasing sample")
	}

	// An above-threshold sample also resets.
	rig.sample(3300, 2100, 2000, 1900, 2500, 2100, 2000)
	if rig.detector.Fired() {
		t.Fatal("fired despite recovery sample")
	}

	// A clean falling run still fires.
	rig.sample(2400, 2100, 2000, 1900, 1800)
	if !rig.detector.Fired() {
		t.Fatal("did not fire after clean falling run")
	}
}

func TestEmergencySequenceActions(t *testing.T) {
	rig := newOutageRig(t, false)

	// Mid-print at a known height.
	rig.engine.StartFile("/tall.gco")
	rig.engine.Inject("G1 X50 Y60 Z30 F1200")

	rig.hotend.Set(true)
	rig.stepperX.Set(true)

	rig.sample(3300, 2100, 2000, 1900, 1800)

	if !rig.detector.Fired() {
		t.Fatal("emergency did not fire")
	}
	// Heater pin driven low (active high, off).
	if rig.pins.levels[2] {
		t.Error("hotend output still on")
	}
	// Stepper enable released (active low, off means high).
	if !rig.pins.levels[5] {
		t.Error("stepper enable still asserted")
	}
	// Forced snapshot with the configured raise.
	if rig.medium.writes != 1 {
		t.Fatalf("snapshot writes = %d, want 1", rig.medium.writes)
	}
	r := rig.store.Record()
	if r.ZRaise != 2 {
		t.Errorf("ZRaise = %v, want 2", r.ZRaise)
	}
	if r.FilePathString() != "/tall.gco" {
		t.Errorf("saved path = %q", r.FilePathString())
	}
	// Thermal targets cleared.
	if rig.engine.HotendTarget() != 0 || rig.engine.BedTarget() != 0 {
		t.Error("heater targets not cleared")
	}
	if !core.IsHalted() {
		t.Error("no terminal halt")
	}
	if core.HaltReason() != "power loss" {
		t.Errorf("halt reason = %q", core.HaltReason())
	}
}

func TestEmergencyZRaiseClampsAtZMax(t *testing.T) {
	rig := newOutageRig(t, false)

	rig.engine.StartFile("/tall.gco")
	rig.engine.Inject("G1 Z248.5 F600")

	rig.sample(3300, 2100, 2000, 1900, 1800)

	// clamp(248.5+2, 0, 249) - 248.5 = 0.5
	if got := rig.store.Record().ZRaise; got != 0.5 {
		t.Errorf("clamped ZRaise = %v, want 0.5", got)
	}
}

func TestEmergencyBackupPowerMoves(t *testing.T) {
	rig := newOutageRig(t, true)

	rig.engine.StartFile("/tall.gco")
	before := len(rig.engine.Commands)

	rig.sample(3300, 2100, 2000, 1900, 1800)

	cmds := rig.engine.Commands[before:]
	var texts []string
	for _, c := range cmds {
		texts = append(texts, c.Text)
	}
	want := []string{"G91", "G1 F3000 E-3.00", "G0 Z2.00", "G90"}
	if len(texts) != len(want) {
		t.Fatalf("backup-power commands = %v, want %v", texts, want)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("command %d = %q, want %q", i, texts[i], want[i])
		}
	}
	if !cmds[len(cmds)-1].Blocking {
		t.Error("final backup-power command not synchronizing")
	}
}
