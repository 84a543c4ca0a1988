//go:build rp2040 || rp2350

package main

import (
	"machine"
	"time"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"

	"rekindle/core"
	"rekindle/panel"
	"rekindle/recovery"
	"rekindle/sim"
	"rekindle/ui"
)

// Bench rig pin map. The panel sits on UART0, the INA260 supply monitor
// on I2C0, the beeper on a PIO state machine.
const (
	pinHotendHeat core.Pin = 20
	pinBedHeat    core.Pin = 21
	pinStepperEn  core.Pin = 22
	pinProbeTrig  core.Pin = 16

	beeperPin = machine.GP15
	panelBaud = 115200

	panelFifoCapacity = 256
)

var (
	panelUART = machine.UART0

	inputBuffer *panel.FifoBuffer

	// Debug counters
	framesDropped uint32
	loopRecovers  uint32
)

func main() {
	// Clear any watchdog state left over from a previous reset.
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0}); err != nil {
		return
	}

	core.TimerInit()
	updateSystemTime()

	core.SetDebugWriter(func(s string) {
		_, _ = machine.Serial.Write([]byte(s + "\r\n"))
	})

	core.SetPinDriver(rpPinDriver{})
	core.ResetOutputs()

	// Heater mosfets first, the shared stepper-enable line second: the
	// emergency sequence kills them in registration-list order.
	hotend := &core.SafetyOutput{Name: "hotend", Pin: pinHotendHeat, ActiveHigh: true}
	bed := &core.SafetyOutput{Name: "bed", Pin: pinBedHeat, ActiveHigh: true}
	steppers := &core.SafetyOutput{Name: "steppers-en", Pin: pinStepperEn, DefaultOn: true}
	for _, o := range []*core.SafetyOutput{hotend, bed, steppers} {
		if err := core.RegisterOutput(o); err != nil {
			failBoot()
		}
	}

	if err := panelUART.Configure(machine.UARTConfig{
		BaudRate: panelBaud,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	}); err != nil {
		failBoot()
	}

	if err := machine.I2C0.Configure(machine.I2CConfig{Frequency: 400_000}); err != nil {
		failBoot()
	}
	supply, err := newINA260Sensor(machine.I2C0)
	if err != nil {
		failBoot()
	}
	core.SetPowerSensor(supply)

	if tone, err := newPIOToneDriver(rp2pio.PIO0, 0, beeperPin); err == nil {
		core.SetToneDriver(tone)
	}

	probe, err := newPinProbe(pinProbeTrig)
	if err != nil {
		failBoot()
	}
	core.SetProbeDriver(probe)

	medium := newFlashMedium()
	core.SetRecordMedium(medium)

	// Bench rig: the motion side is the simulated engine fed with the
	// default machine profile.
	profile := sim.DefaultProfile()
	engine := sim.NewEngine(profile)
	media := sim.NewMedia(profile.Files)
	media.Insert(true)
	core.SetMediaDriver(media)

	store := recovery.NewStore(engine, medium, recovery.StoreConfig{
		SaveIntervalMS: profile.SaveIntervalMS,
		MinZChange:     float32(profile.MinZChange),
	})

	console := ui.NewConsole(ui.Config{
		Engine:   engine,
		Media:    media,
		Out:      panelUART,
		Store:    store,
		Settings: ui.Settings{Audio: true},
	})
	engine.SetNotifier(console)

	detector := recovery.NewDetector(recovery.DetectorConfig{
		Threshold:     core.SupplyReading(profile.OutageThreshold),
		ZRaise:        float32(profile.ZRaise),
		ZMax:          float32(profile.ZMax),
		BackupPower:   profile.BackupPower,
		RetractLength: float32(profile.RetractLength),
	}, store, engine, console, []*core.SafetyOutput{hotend, bed}, []*core.SafetyOutput{steppers})

	// Scan the record slot before anything can overwrite it. The resume
	// offer itself waits for the panel handshake.
	store.CheckAtBoot()
	if store.Valid() {
		console.PowerLossRecovery()
	}
	store.Enable()
	detector.Enable()

	inputBuffer = panel.NewFifoBuffer(panelFifoCapacity)
	go panelReaderLoop()

	lastStep := core.Millis()
	for {
		func() {
			defer func() {
				if r := recover(); r != nil {
					loopRecovers++
					inputBuffer.Reset()
				}
			}()

			updateSystemTime()
			core.ProcessTimers()
			detector.Tick()

			now := core.Millis()
			if !core.IsHalted() {
				engine.Step(float32(now-lastStep) / 1000)
			}
			lastStep = now

			// The console keeps running after a halt so the diagnosis
			// page stays on screen.
			console.Tick(inputBuffer)

			if !core.IsHalted() {
				store.Save(false, float32(profile.ZRaise))
			}
		}()

		time.Sleep(time.Millisecond)
	}
}

// panelReaderLoop drains the panel UART into the input FIFO. Runs in its
// own goroutine; a panic restarts it.
func panelReaderLoop() {
	defer func() {
		if r := recover(); r != nil {
			time.Sleep(100 * time.Millisecond)
			go panelReaderLoop()
		}
	}()

	for {
		for panelUART.Buffered() > 0 {
			b, err := panelUART.ReadByte()
			if err != nil {
				break
			}
			if !inputBuffer.WriteByte(b) {
				framesDropped++
			}
		}
		time.Sleep(200 * time.Microsecond)
	}
}

// failBoot signals a wiring fault: steady LED blink, nothing else runs.
func failBoot() {
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for {
		led.High()
		time.Sleep(100 * time.Millisecond)
		led.Low()
		time.Sleep(100 * time.Millisecond)
	}
}
