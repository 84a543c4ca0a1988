package recovery

import (
	"sync/atomic"

	"rekindle/core"
)

// PanelNotifier is the slice of the operator console the emergency path
// touches: a single non-blocking power-loss notification.
type PanelNotifier interface {
	PowerLoss()
}

// DetectorConfig tunes outage detection and the emergency moves.
type DetectorConfig struct {
	// Threshold is the supply reading below which a sample counts as low.
	Threshold core.SupplyReading
	// ZRaise is the configured park raise captured into the snapshot.
	ZRaise float32
	// ZMax bounds the raised Z (raise clamps to zMax-1).
	ZMax float32
	// BackupPower marks a machine with enough stored energy to retract
	// and lift after the snapshot is written.
	BackupPower bool
	// RetractLength is the emergency retract on backup power, in mm.
	RetractLength float32
}

// Detector samples the supply each idle tick and runs the emergency
// sequence exactly once per boot when the supply collapses. The fire
// guard is an atomic compare-and-set because the sample path may run
// from an interrupt context while the main loop is mid-tick.
type Detector struct {
	cfg      DetectorConfig
	store    *Store
	engine   core.Engine
	notifier PanelNotifier

	// Heater mosfets die first, stepper enables second.
	heaterOutputs  []*core.SafetyOutput
	stepperOutputs []*core.SafetyOutput

	lastReading core.SupplyReading
	lowCount    uint8
	fired       uint32
	enabled     bool
}

// NewDetector wires the detector. The output lists order the first two
// steps of the emergency sequence.
func NewDetector(cfg DetectorConfig, store *Store, engine core.Engine,
	notifier PanelNotifier, heaters, steppers []*core.SafetyOutput) *Detector {
	return &Detector{
		cfg:            cfg,
		store:          store,
		engine:         engine,
		notifier:       notifier,
		heaterOutputs:  heaters,
		stepperOutputs: steppers,
	}
}

// Enable arms sampling.
func (d *Detector) Enable() { d.enabled = true }

// Disable stops sampling; the one-shot guard is never cleared.
func (d *Detector) Disable() { d.enabled = false }

// Fired reports whether the emergency sequence has run this boot.
func (d *Detector) Fired() bool {
	return atomic.LoadUint32(&d.fired) != 0
}

// Tick samples the supply once. A low sample counts only while the
// readings are still strictly falling; any non-low or non-falling sample
// resets the counter. At four accumulated low samples the emergency
// sequence fires once.
func (d *Detector) Tick() {
	if !d.enabled || core.IsHalted() {
		return
	}

	reading, err := core.MustPower().ReadSupply()
	if err != nil {
		return
	}

	if reading < d.cfg.Threshold {
		if reading < d.lastReading {
			d.lowCount++
		} else {
			// A plateau or rebound breaks the falling trend.
			d.lowCount = 0
		}
		if d.lowCount >= 4 {
			if atomic.CompareAndSwapUint32(&d.fired, 0, 1) {
				core.RecordEvent(core.EvtOutage, uint32(reading), uint32(d.lowCount))
				d.emergency()
			}
		}
	} else {
		d.lowCount = 0
	}

	d.lastReading = reading
}

// emergency runs the fixed shutdown order. It must finish inside the
// hold-up time of the supply capacitors: no retries, no waiting except
// the optional backup-power motion settle.
func (d *Detector) emergency() {
	// 1. Heater loads off at the pin, before anything else.
	for _, o := range d.heaterOutputs {
		o.Set(false)
	}

	// 2. Tell the panel.
	if d.notifier != nil {
		d.notifier.PowerLoss()
	}

	// 3. Stepper enables off.
	for _, o := range d.stepperOutputs {
		o.Set(false)
	}

	// 4. Forced snapshot with the clamped pending raise.
	if d.engine.Printing() {
		_, _, z, _ := d.engine.Position()
		raised := core.Clamp(z+d.cfg.ZRaise, 0, d.cfg.ZMax-1)
		d.store.Save(true, raised-z)
	}

	// 5. Thermal subsystem off too (targets, PWM state).
	d.engine.DisableAllHeaters()

	// 6. With backup power there is time to retract and lift clear.
	if d.cfg.BackupPower {
		d.engine.QuickStop()
		d.engine.Inject("G91")
		if d.cfg.RetractLength > 0 {
			d.engine.Inject("G1 F3000 E-" + core.Ftoa(d.cfg.RetractLength, 2))
		}
		if d.cfg.ZRaise > 0 {
			d.engine.Inject("G0 Z" + core.Ftoa(d.cfg.ZRaise, 2))
		}
		d.engine.InjectSync("G90")
	}

	// 7. Terminal halt.
	core.Halt("power loss")
}
