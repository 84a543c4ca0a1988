package sim

import (
	"math"

	"rekindle/core"
)

// InjectedCommand is one recorded engine command line.
type InjectedCommand struct {
	Text     string
	Blocking bool // injected through the synchronizing variant
}

// Engine is a coarse printer model implementing core.Engine. Injected
// commands are parsed, applied to the model, and recorded in order.
type Engine struct {
	profile Profile

	x, y, z, e   float32
	feedPct      int
	feedMMM      float32
	absoluteMode bool

	hotendActual float32
	hotendTarget float32
	bedActual    float32
	bedTarget    float32
	fanPct       uint8

	progress uint8
	elapsed  uint32

	mediaIn      bool
	mediaPrint   bool
	printing     bool
	paused       bool
	queued       int
	userConfirm  bool
	softEndstops bool

	homedX, homedY, homedZ bool

	zOffset   float32
	babysteps int

	leveling   core.LevelingState
	volumetric core.VolumetricState
	retract    core.RetractState

	activeExtruder int
	relFlags       uint8
	dryrun         bool
	coldOK         bool

	filePath   string
	fileOffset uint32
	caseLight  bool

	notifier core.Notifier

	// Mesh computes the simulated leveling correction at a position.
	Mesh func(x, y float32) float32

	// Commands is the full injected command record, in order.
	Commands []InjectedCommand
}

// NewEngine builds an engine from a machine profile.
func NewEngine(profile Profile) *Engine {
	return &Engine{
		profile:      profile,
		feedPct:      100,
		feedMMM:      float32(profile.DefaultFeedMMM),
		absoluteMode: true,
		softEndstops: true,
		hotendActual: 25,
		bedActual:    25,
	}
}

// SetNotifier registers the console's event sink.
func (s *Engine) SetNotifier(n core.Notifier) { s.notifier = n }

// InsertMedia simulates plugging the print media in or out.
func (s *Engine) InsertMedia(in bool) { s.mediaIn = in }

// Step advances the thermal model by dt seconds: a first-order ramp
// toward each target.
func (s *Engine) Step(dt float32) {
	const tau = 20.0 // seconds to close ~63% of the gap
	s.hotendActual += (s.hotendTarget - s.hotendActual) * dt / tau
	if s.bedTarget > 0 {
		s.bedActual += (s.bedTarget - s.bedActual) * dt / (tau * 3)
	}
	if s.printing && !s.paused {
		s.elapsed += uint32(dt)
	}
}

// Inject queues a command without blocking.
func (s *Engine) Inject(cmd string) { s.injectLines(cmd, false) }

// InjectSync queues a command and waits for the planner to drain. The
// simulation applies commands immediately, so only the marker differs.
func (s *Engine) InjectSync(cmd string) { s.injectLines(cmd, true) }

func (s *Engine) injectLines(cmd string, blocking bool) {
	start := 0
	for i := 0; i <= len(cmd); i++ {
		if i == len(cmd) || cmd[i] == '\n' {
			line := cmd[start:i]
			start = i + 1
			if line == "" {
				continue
			}
			s.Commands = append(s.Commands, InjectedCommand{Text: line, Blocking: blocking})
			if c := ParseLine(line); c != nil {
				s.apply(c)
			}
		}
	}
}

// apply mutates the model for commands the simulation understands;
// everything else is recorded but inert.
func (s *Engine) apply(c *Command) {
	switch c.Type {
	case 'G':
		switch c.Number {
		case 0, 1:
			s.applyMove(c)
		case 28:
			s.applyHome(c)
		case 90:
			s.absoluteMode = true
		case 91:
			s.absoluteMode = false
		case 92:
			if c.HasParameter('E') {
				s.e = float32(c.GetParameter('E', 0))
			}
			if c.HasParameter('X') {
				s.x = float32(c.GetParameter('X', 0))
			}
			if c.HasParameter('Y') {
				s.y = float32(c.GetParameter('Y', 0))
			}
			if c.HasParameter('Z') {
				s.z = float32(c.GetParameter('Z', 0))
			}
		}
	case 'M':
		switch c.Number {
		case 104:
			s.hotendTarget = float32(c.GetParameter('S', 0))
		case 109:
			s.hotendTarget = float32(c.GetParameter('S', 0))
			s.hotendActual = s.hotendTarget
		case 140:
			s.bedTarget = float32(c.GetParameter('S', 0))
		case 190:
			s.bedTarget = float32(c.GetParameter('S', 0))
			s.bedActual = s.bedTarget
		case 106:
			s.fanPct = uint8(c.GetParameter('S', 255) * 100 / 255)
		case 107:
			s.fanPct = 0
		case 220:
			if c.HasParameter('S') {
				s.feedPct = int(c.GetParameter('S', 100))
			}
		case 23:
			// filename follows the word; recorded text carries it
		case 24:
			if c.HasParameter('S') {
				s.fileOffset = uint32(c.GetParameter('S', 0))
			}
			if c.HasParameter('T') {
				s.elapsed = uint32(c.GetParameter('T', 0))
			}
			s.printing = true
			s.mediaPrint = true
			s.paused = false
			if s.notifier != nil {
				s.notifier.TimerStarted()
			}
		case 25:
			s.paused = true
		case 420:
			s.leveling.Active = c.GetParameter('S', 0) != 0
			if c.HasParameter('Z') {
				s.leveling.FadeHeight = float32(c.GetParameter('Z', 0))
			}
		case 200:
			s.volumetric.Enabled = c.GetParameter('S', 0) != 0
			if c.HasParameter('D') {
				s.volumetric.FilamentDiameter = float32(c.GetParameter('D', 0))
			}
		}
	case 'T':
		s.activeExtruder = c.Number
	}
}

func (s *Engine) applyMove(c *Command) {
	if c.HasParameter('F') {
		s.feedMMM = float32(c.GetParameter('F', 0))
	}
	get := func(letter byte, cur float32) float32 {
		if !c.HasParameter(letter) {
			return cur
		}
		v := float32(c.GetParameter(letter, 0))
		if s.absoluteMode {
			return v
		}
		return cur + v
	}
	s.x = get('X', s.x)
	s.y = get('Y', s.y)
	s.z = get('Z', s.z)
	s.e = get('E', s.e)

	if s.softEndstops {
		s.x = core.Clamp(s.x, 0, float32(s.profile.XMax))
		s.y = core.Clamp(s.y, 0, float32(s.profile.YMax))
		s.z = core.Clamp(s.z, 0, float32(s.profile.ZMax))
	}
}

func (s *Engine) applyHome(c *Command) {
	all := !c.HasParameter('X') && !c.HasParameter('Y') && !c.HasParameter('Z')
	if s.notifier != nil {
		s.notifier.HomingStart()
	}
	if all || c.HasParameter('X') {
		s.x = 0
		s.homedX = true
	}
	if all || c.HasParameter('Y') {
		s.y = 0
		s.homedY = true
	}
	if all || c.HasParameter('Z') {
		s.z = 0
		s.homedZ = true
	}
	if s.notifier != nil {
		s.notifier.HomingComplete()
	}
}

// --- core.Engine queries ---

func (s *Engine) Position() (x, y, z, e float32) { return s.x, s.y, s.z, s.e }
func (s *Engine) FeedratePercent() int           { return s.feedPct }
func (s *Engine) SetFeedratePercent(pct int)     { s.feedPct = pct }
func (s *Engine) FeedrateMMM() float32           { return s.feedMMM }

func (s *Engine) HotendActual() float32       { return s.hotendActual }
func (s *Engine) HotendTarget() float32       { return s.hotendTarget }
func (s *Engine) SetHotendTarget(deg float32) { s.hotendTarget = deg }
func (s *Engine) BedActual() float32          { return s.bedActual }
func (s *Engine) BedTarget() float32          { return s.bedTarget }
func (s *Engine) SetBedTarget(deg float32)    { s.bedTarget = deg }

func (s *Engine) DisableAllHeaters() {
	s.hotendTarget = 0
	s.bedTarget = 0
}

func (s *Engine) FanPercent() uint8       { return s.fanPct }
func (s *Engine) SetFanPercent(pct uint8) { s.fanPct = pct }

func (s *Engine) ProgressPercent() uint8 { return s.progress }
func (s *Engine) SetProgress(pct uint8)  { s.progress = pct }
func (s *Engine) ElapsedSeconds() uint32 { return s.elapsed }
func (s *Engine) ClearElapsed()          { s.elapsed = 0 }

func (s *Engine) MediaInserted() bool     { return s.mediaIn }
func (s *Engine) PrintingFromMedia() bool { return s.mediaPrint && s.printing }
func (s *Engine) Printing() bool          { return s.printing && !s.paused }
func (s *Engine) Moving() bool            { return false }
func (s *Engine) CanMove() bool           { return !s.printing || s.paused }
func (s *Engine) CommandsQueued() bool    { return s.queued > 0 }

func (s *Engine) StartFile(path string) {
	s.filePath = path
	s.fileOffset = 0
	s.progress = 0
	s.elapsed = 0
	s.printing = true
	s.mediaPrint = true
	s.paused = false
	if s.notifier != nil {
		s.notifier.TimerStarted()
	}
}

func (s *Engine) PausePrint() {
	if !s.printing {
		return
	}
	s.paused = true
	if s.notifier != nil {
		s.notifier.StatusChange(core.Status{Kind: core.StatusPaused})
	}
}

func (s *Engine) ResumePrint() {
	if !s.printing {
		return
	}
	s.paused = false
	if s.notifier != nil {
		s.notifier.StatusChange(core.Status{Kind: core.StatusResuming})
	}
}

func (s *Engine) StopPrint() {
	if !s.printing {
		return
	}
	s.printing = false
	s.mediaPrint = false
	s.paused = false
	if s.notifier != nil {
		s.notifier.TimerStopped()
	}
}

func (s *Engine) SetUserConfirmed() { s.userConfirm = true }

func (s *Engine) SetSoftEndstops(on bool) { s.softEndstops = on }
func (s *Engine) DisableSteppers()        {}

func (s *Engine) SetAllHomed() {
	s.homedX, s.homedY, s.homedZ = true, true, true
}

func (s *Engine) SetAllUnhomed() {
	s.homedX, s.homedY, s.homedZ = false, false, false
}

func (s *Engine) AxisTrusted(a core.Axis) bool {
	switch a {
	case core.AxisX:
		return s.homedX
	case core.AxisY:
		return s.homedY
	case core.AxisZ:
		return s.homedZ
	}
	return true
}

func (s *Engine) MoveAxis(a core.Axis, pos float32, feedMMM float32) {
	s.feedMMM = feedMMM
	switch a {
	case core.AxisX:
		s.x = pos
	case core.AxisY:
		s.y = pos
	case core.AxisZ:
		s.z = pos
	case core.AxisE:
		s.e = pos
	}
}

func (s *Engine) QuickStop() { s.queued = 0 }

func (s *Engine) ZOffset() float32      { return s.zOffset }
func (s *Engine) SetZOffset(mm float32) { s.zOffset = mm }

func (s *Engine) MMToWholeStepsZ(mm float32) int {
	steps := float64(mm) * float64(s.profile.StepsPerMMZ)
	if steps >= 0 {
		return int(math.Ceil(steps))
	}
	return int(math.Floor(steps))
}

func (s *Engine) BabystepZ(steps int) { s.babysteps += steps }

// Babysteps returns the accumulated step-domain correction.
func (s *Engine) Babysteps() int { return s.babysteps }

func (s *Engine) MeshZCorrection(x, y float32) float32 {
	if s.Mesh == nil {
		return 0
	}
	return s.Mesh(x, y)
}

func (s *Engine) LevelingState() core.LevelingState     { return s.leveling }
func (s *Engine) VolumetricState() core.VolumetricState { return s.volumetric }
func (s *Engine) RetractState() core.RetractState       { return s.retract }
func (s *Engine) SetRetractState(r core.RetractState)   { s.retract = r }
func (s *Engine) ActiveExtruder() int                   { return s.activeExtruder }
func (s *Engine) AxisRelativeFlags() uint8              { return s.relFlags }
func (s *Engine) Dryrun() bool                          { return s.dryrun }
func (s *Engine) ColdExtrusionAllowed() bool            { return s.coldOK }

func (s *Engine) PrintedFilePath() string { return s.filePath }
func (s *Engine) SetPrintedFile(path string, offset uint32) {
	s.filePath = path
	s.fileOffset = offset
}
func (s *Engine) FileOffset() uint32 { return s.fileOffset }

func (s *Engine) CaseLight() bool      { return s.caseLight }
func (s *Engine) SetCaseLight(on bool) { s.caseLight = on }
