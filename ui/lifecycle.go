package ui

// State is the print-lifecycle position. Exactly one event source
// advances it per tick: a panel key, the filament edge, or an engine
// status notification.
type State uint8

const (
	StateIdle State = iota
	StatePrinting
	StatePausing
	StatePaused
	StateStopping
	StateStoppingFromMediaRemove
	StateProbing
	StateResumingFromPowerOutage
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePrinting:
		return "printing"
	case StatePausing:
		return "pausing"
	case StatePaused:
		return "paused"
	case StateStopping:
		return "stopping"
	case StateStoppingFromMediaRemove:
		return "stopping (media removed)"
	case StateProbing:
		return "probing"
	case StateResumingFromPowerOutage:
		return "outage resume"
	}
	return "unknown"
}

// PauseReason qualifies a pause. FilamentLack suppresses the resume
// affordance until the operator reloads.
type PauseReason uint8

const (
	PauseIdle PauseReason = iota
	PauseFilamentLack
	PauseHeaterTimedOut
	PausePurgingFilament
)

func (p PauseReason) String() string {
	switch p {
	case PauseIdle:
		return "none"
	case PauseFilamentLack:
		return "filament lack"
	case PauseHeaterTimedOut:
		return "heater timeout"
	case PausePurgingFilament:
		return "purging"
	}
	return "unknown"
}

// Lifecycle is the console's view of the job. Unexpected (state, event)
// pairs are no-ops; the panel pages only offer keys that make sense for
// the state they were entered from, but a stale key must never corrupt
// the machine state.
type Lifecycle struct {
	state State
	pause PauseReason

	// probePoints counts probe-point status events toward meshPoints so
	// a finished leveling run can be told apart from a plain "ready".
	probePoints int
	meshPoints  int
}

// NewLifecycle returns an idle machine expecting an n-point mesh.
func NewLifecycle(meshPoints int) *Lifecycle {
	return &Lifecycle{meshPoints: meshPoints}
}

func (l *Lifecycle) State() State       { return l.state }
func (l *Lifecycle) Pause() PauseReason { return l.pause }

func (l *Lifecycle) setState(s State) {
	l.state = s
	if s == StateIdle {
		l.pause = PauseIdle
	}
}

func (l *Lifecycle) setPause(p PauseReason) { l.pause = p }

// ResumeAllowed reports whether the resume key on the paused status page
// may restart the job. A filament-lack pause holds the job until the
// runout clears; power-outage resume is always offered.
func (l *Lifecycle) ResumeAllowed() bool {
	if l.state == StateResumingFromPowerOutage {
		return true
	}
	return l.pause == PauseIdle || l.pause == PauseFilamentLack
}

// countProbePoint returns true when the mesh is complete.
func (l *Lifecycle) countProbePoint() bool {
	l.probePoints++
	if l.probePoints >= l.meshPoints {
		l.probePoints = 0
		return true
	}
	return false
}

func (l *Lifecycle) resetProbeCount() { l.probePoints = 0 }
