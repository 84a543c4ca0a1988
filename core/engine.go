package core

// Axis identifies a motion axis for homing and move queries.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
	AxisE
)

// StatusKind is a closed set of machine status notifications. The motion
// engine reports state changes through these codes rather than free-form
// strings so consumers can switch on them directly.
type StatusKind uint8

const (
	StatusNone StatusKind = iota
	StatusHeating
	StatusCooling
	StatusLeveling
	StatusPaused
	StatusResuming
	StatusReheating
	StatusHeaterTimeout
	StatusReheatDone
	StatusFilamentPurging
	StatusPrintDone
	StatusAborted
	StatusMediaError
	StatusMediaRemoved
	StatusProbePoint
	StatusProbingDone
	StatusProbingFailed
	StatusProbePreheatStart
	StatusProbePreheatStop
	StatusThermalError
	StatusKilled
)

// Status pairs a status code with the page-machine hint point, when one
// applies (the probe point index, or which heater triggered a thermal
// error: 0 hotend, 1 bed).
type Status struct {
	Kind  StatusKind
	Point uint8
}

// Notifier receives asynchronous machine events. The operator console
// registers one; the engine calls it from its main loop.
type Notifier interface {
	// TimerStarted fires when the print job timer starts.
	TimerStarted()
	// TimerStopped fires when the print job timer stops (done or aborted).
	TimerStopped()
	// FilamentRunout fires when the runout sensor confirms filament absence.
	FilamentRunout()
	// ConfirmationRequest fires when a queued command waits on the user.
	ConfirmationRequest()
	// StatusChange reports a machine status transition.
	StatusChange(s Status)
	// PowerLoss fires from the outage path, before the machine halts.
	PowerLoss()
	// PowerLossRecovery fires at boot when a valid recovery record exists.
	PowerLossRecovery()
	// HomingStart / HomingComplete bracket a G28 cycle.
	HomingStart()
	HomingComplete()
}

// LevelingState describes bed leveling compensation as seen by the engine.
type LevelingState struct {
	Active     bool
	FadeHeight float32
}

// VolumetricState describes volumetric extrusion settings (M200).
type VolumetricState struct {
	Enabled          bool
	FilamentDiameter float32
}

// RetractState describes firmware retraction as configured on the engine.
type RetractState struct {
	Length      float32
	FeedrateMMS float32
	ZRaise      float32
}

// Engine is the surface of the motion/thermal controller consumed by the
// operator console and the resilience layer. Implementations queue g-code,
// track position and temperatures, and own the media print job.
//
// Inject queues commands without blocking; InjectSync waits until the
// planner has drained them. Commands may contain multiple lines separated
// by '\n'.
type Engine interface {
	Inject(cmd string)
	InjectSync(cmd string)

	Position() (x, y, z, e float32)
	FeedratePercent() int
	SetFeedratePercent(pct int)
	FeedrateMMM() float32

	HotendActual() float32
	HotendTarget() float32
	SetHotendTarget(deg float32)
	BedActual() float32
	BedTarget() float32
	SetBedTarget(deg float32)
	DisableAllHeaters()

	FanPercent() uint8
	SetFanPercent(pct uint8)

	ProgressPercent() uint8
	ElapsedSeconds() uint32
	ClearElapsed()

	MediaInserted() bool
	PrintingFromMedia() bool
	Printing() bool
	Moving() bool
	CanMove() bool
	CommandsQueued() bool

	StartFile(path string)
	PausePrint()
	ResumePrint()
	StopPrint()
	SetUserConfirmed()

	SetSoftEndstops(on bool)
	DisableSteppers()
	SetAllHomed()
	SetAllUnhomed()
	AxisTrusted(a Axis) bool
	MoveAxis(a Axis, pos float32, feedMMM float32)
	QuickStop()

	ZOffset() float32
	SetZOffset(mm float32)
	MMToWholeStepsZ(mm float32) int
	BabystepZ(steps int)
	MeshZCorrection(x, y float32) float32

	LevelingState() LevelingState
	VolumetricState() VolumetricState
	RetractState() RetractState
	ActiveExtruder() int
	AxisRelativeFlags() uint8
	Dryrun() bool
	ColdExtrusionAllowed() bool

	PrintedFilePath() string
	FileOffset() uint32

	CaseLight() bool
	SetCaseLight(on bool)
}

var activeEngine Engine

// SetEngine registers the machine's motion engine implementation.
// Must be called once during platform initialization.
func SetEngine(e Engine) {
	activeEngine = e
}

// MustEngine returns the registered engine, panicking if none is set.
func MustEngine() Engine {
	if activeEngine == nil {
		panic("core: no engine registered")
	}
	return activeEngine
}
