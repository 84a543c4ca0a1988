package main

import (
	"encoding/hex"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"rekindle/core"
	"rekindle/host"
	"rekindle/panel"
	"rekindle/recovery"
	"rekindle/sim"
)

var (
	simOutageAt float64
	simRunFor   float64
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Drive the console against the simulated machine",
	Long: `sim runs the whole stack without a panel: the console is fed a
scripted boot handshake and key presses, the simulated engine prints a
file from the profile, and (optionally) the supply collapses mid-job so
the snapshot, emergency sequence and resume replay can be inspected.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg.LogLevel)
		return runSimulation(cfg, log)
	},
}

func init() {
	simCmd.Flags().Float64Var(&simOutageAt, "outage-at", 0,
		"seconds into the job the supply collapses (0 = no outage)")
	simCmd.Flags().Float64Var(&simRunFor, "run-for", 30,
		"simulated seconds to run")
	rootCmd.AddCommand(simCmd)
}

// memPins is a map-backed pin driver for the host simulation.
type memPins struct {
	state map[core.Pin]bool
}

func newMemPins() *memPins { return &memPins{state: map[core.Pin]bool{}} }

func (p *memPins) ConfigureOutput(pin core.Pin) error             { return nil }
func (p *memPins) ConfigureInput(pin core.Pin, pullUp bool) error { return nil }
func (p *memPins) Set(pin core.Pin, value bool) error {
	p.state[pin] = value
	return nil
}
func (p *memPins) Get(pin core.Pin) (bool, error) { return p.state[pin], nil }

// rampSensor reads a steady supply until armed, then falls a step per
// sample the way a collapsing bus does.
type rampSensor struct {
	reading core.SupplyReading
	falling bool
	step    core.SupplyReading
}

func (r *rampSensor) ReadSupply() (core.SupplyReading, error) {
	if r.falling && r.reading >= r.step {
		r.reading -= r.step
	}
	return r.reading, nil
}

// frameLogger traces console output frames instead of sending them to a
// panel.
type frameLogger struct {
	log zerolog.Logger
}

func (w frameLogger) Write(p []byte) (int, error) {
	w.log.Debug().Str("tx", hex.EncodeToString(p)).Msg("panel frame")
	return len(p), nil
}

func runSimulation(cfg host.Config, log zerolog.Logger) error {
	r, err := buildRig(cfg, frameLogger{log: log}, log)
	if err != nil {
		return err
	}
	if len(r.profile.Files) == 0 {
		r.profile.Files = []string{"test.gco"}
		r.media = sim.NewMedia(r.profile.Files)
	}

	core.SetPinDriver(newMemPins())
	core.ResetOutputs()
	core.ClearHalt()
	core.ResetTimers()

	supply := &rampSensor{reading: 3300, step: 200}
	core.SetPowerSensor(supply)

	hotend := &core.SafetyOutput{Name: "hotend", Pin: 1, ActiveHigh: true}
	bed := &core.SafetyOutput{Name: "bed", Pin: 2, ActiveHigh: true}
	steppers := &core.SafetyOutput{Name: "steppers-en", Pin: 3, DefaultOn: true}
	for _, o := range []*core.SafetyOutput{hotend, bed, steppers} {
		if err := core.RegisterOutput(o); err != nil {
			return err
		}
	}

	detector := recovery.NewDetector(recovery.DetectorConfig{
		Threshold:     core.SupplyReading(r.profile.OutageThreshold),
		ZRaise:        float32(r.profile.ZRaise),
		ZMax:          float32(r.profile.ZMax),
		BackupPower:   r.profile.BackupPower,
		RetractLength: float32(r.profile.RetractLength),
	}, r.store, r.engine, r.console, []*core.SafetyOutput{hotend, bed},
		[]*core.SafetyOutput{steppers})
	detector.Enable()

	fifo := panel.NewFifoBuffer(256)
	feed := func(frame []byte) { fifo.Write(frame) }

	// Scripted operator: boot handshake, then main -> file -> row -> start.
	script := map[int]func(){
		10: func() {
			feed([]byte{0x5A, 0xA5, 0x06, 0x83, 0x00, 0x14, 0x01, 0x00, 0x72})
		},
		50:  func() { feed(keyFrame(1)) }, // main: print
		60:  func() { feed(keyFrame(7)) }, // file: select row 1
		70:  func() { feed(keyFrame(6)) }, // file: start
		100: func() { r.store.Enable() },
	}

	const tickMS = 10
	ticks := int(simRunFor * 1000 / tickMS)
	outageTick := 0
	if simOutageAt > 0 {
		outageTick = int(simOutageAt * 1000 / tickMS)
	}

	log.Info().Float64("run_for_s", simRunFor).Float64("outage_at_s", simOutageAt).
		Msg("simulation starting")

	for i := 0; i < ticks; i++ {
		core.SetTime(core.TimerFromMS(uint32(i * tickMS)))
		if fn, ok := script[i]; ok {
			fn()
		}
		if outageTick > 0 && i == outageTick {
			supply.falling = true
			log.Info().Msg("supply collapsing")
		}

		core.ProcessTimers()
		detector.Tick()
		if core.IsHalted() {
			break
		}
		r.console.Tick(fifo)
		r.engine.Step(float32(tickMS) / 1000)
		r.store.Save(false, float32(r.profile.ZRaise))
	}

	log.Info().
		Str("lifecycle", r.console.Lifecycle().State().String()).
		Bool("halted", core.IsHalted()).
		Bool("fired", detector.Fired()).
		Int("commands", len(r.engine.Commands)).
		Msg("simulation ended")

	if !detector.Fired() {
		return nil
	}

	// Reboot: a fresh engine and store over the same record file, the way
	// the firmware comes back after the outage.
	core.ClearHalt()
	engine2 := sim.NewEngine(r.profile)
	store2 := recovery.NewStore(engine2, host.NewFileMedium(cfg.RecordFile),
		recovery.StoreConfig{})
	store2.CheckAtBoot()
	if !store2.Valid() {
		return fmt.Errorf("no valid recovery record after outage")
	}

	rec := store2.Record()
	log.Info().
		Str("file", rec.FilePathString()).
		Uint8("progress", rec.ProgressPercent).
		Float32("z", rec.PosZ).
		Msg("recovery record loaded")

	seq := recovery.NewSequencer(engine2, store2, recovery.SequencerConfig{
		TravelFeedMMM:  r.profile.TravelFeedMMM,
		DescendFeedMMM: r.profile.DescendFeedMMM,
		PurgeLength:    float32(r.profile.PurgeLength),
		Babysteps:      true,
	})
	seq.Run()

	for _, c := range engine2.Commands {
		log.Info().Bool("sync", c.Blocking).Msg("resume: " + c.Text)
	}
	return nil
}

func keyFrame(key uint16) []byte {
	return []byte{0x5A, 0xA5, 0x06, 0x83, 0x10, 0x22, 0x01,
		byte(key >> 8), byte(key)}
}
