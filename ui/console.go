package ui

import (
	"io"

	"rekindle/core"
	"rekindle/panel"
	"rekindle/recovery"
)

// Refresh gates, matching the panel's comfortable update rates.
const (
	mainRefreshMS   = 1500
	pageRefreshMS   = 1500
	slowRefreshMS   = 1000
	heaterCheckMS   = 500
	probeSampleMS   = 300
	probeSampleMax  = 200 // ~1 minute of 300 ms samples
	heaterFaultHold = 5   // consecutive bad readings before acting
)

// Heater plausibility window. Readings outside it while a target is set
// indicate a broken thermistor or mosfet.
const (
	hotendMinC = 5
	hotendMaxC = 275
	bedMinC    = 5
	bedMaxC    = 120
)

// Config wires a Console to its collaborators.
type Config struct {
	Engine core.Engine
	Media  core.MediaDriver
	Out    io.Writer // panel byte stream
	Store  *recovery.Store

	Settings Settings

	// MeshPoints is the size of a full leveling mesh, for probe-point
	// counting. Defaults to 25 (5x5).
	MeshPoints int

	// OnSettingsChange, when set, is called after the operator commits a
	// language or audio change (host-side persistence hook).
	OnSettingsChange func(Settings)
}

// Console owns all operator-console state: the frame parser, the page
// history, the lifecycle machine, the pop-up queue and the per-page
// scratch values. It is single-threaded; the platform ticks it from the
// main loop and feeds it panel bytes.
type Console struct {
	engine core.Engine
	media  core.MediaDriver
	conn   *panel.Conn
	framer *panel.Framer

	replies   *panel.ReplyRegistry
	store     *recovery.Store
	lifecycle *Lifecycle

	settings         Settings
	backup           settingsBackup
	onSettingsChange func(Settings)

	history pageHistory
	files   fileWindow

	selectedPath string

	key   uint16
	popup PopupID

	mainRefreshAt uint32
	pageRefreshAt uint32

	// Status-page caches so text pushes only happen on change.
	feedrateLast int
	progressLast uint8

	// Babystep pages persist only if something actually moved.
	zChanged bool

	// Move page jog distance in mm.
	moveDistance float32

	// Filament page feed direction: 0 none, 1 in, 2 out.
	filamentCmd uint8

	// Probe precheck scratch.
	probeTared     bool
	probeTrigLast  bool
	probeChecks    int
	probeCheckAt   uint32
	probeSettled   uint32 // precheck-ok dwell deadline
	probeOKPending bool

	heaterFaultHotend uint8
	heaterFaultBed    uint8
	heaterCheckAt     uint32
}

// NewConsole builds a console on its collaborators and registers the
// boot-handshake and target-echo reply handlers.
func NewConsole(cfg Config) *Console {
	mesh := cfg.MeshPoints
	if mesh <= 0 {
		mesh = 25
	}

	c := &Console{
		engine:           cfg.Engine,
		media:            cfg.Media,
		conn:             panel.NewConn(cfg.Out),
		framer:           panel.NewFramer(),
		replies:          panel.NewReplyRegistry(),
		store:            cfg.Store,
		lifecycle:        NewLifecycle(mesh),
		settings:         cfg.Settings,
		onSettingsChange: cfg.OnSettingsChange,
		moveDistance:     1.0,
	}
	c.backup.commit(c.settings)
	c.registerReplies()
	return c
}

// Conn exposes the frame builder for platform wiring (outage notify).
func (c *Console) Conn() *panel.Conn { return c.conn }

// Lifecycle exposes the state machine, read-only use expected.
func (c *Console) Lifecycle() *Lifecycle { return c.lifecycle }

// Settings returns the current console settings.
func (c *Console) Settings() Settings { return c.settings }

// CurrentPage is the canonical id of the page on screen.
func (c *Console) CurrentPage() uint16 {
	return DecodePage(c.settings.Language, c.history.now)
}

func (c *Console) currentPage() uint16 { return c.CurrentPage() }

// ChangePage switches the panel to a canonical page and records it in
// the history ring.
func (c *Console) ChangePage(page uint16) {
	native := EncodePage(c.settings.Language, page)
	c.conn.ChangePage(native)
	c.history.push(native)
	c.pageRefreshAt = core.Millis()
}

// FakeChangePage records a page the panel reached on its own (or will
// reach, after probing) without emitting a change frame.
func (c *Console) FakeChangePage(page uint16) {
	native := EncodePage(c.settings.Language, page)
	c.history.push(native)
	c.pageRefreshAt = core.Millis()
}

// Tick runs one console iteration: drain one frame from the input,
// push the periodic temperature texts, run the current page's handler
// with any pending key, then the pop-up queue and the heater watch.
func (c *Console) Tick(in panel.InputBuffer) {
	c.framer.Feed(in)
	if f, ok := c.framer.Frame(); ok {
		c.processFrame(f)
		c.framer.Release()
	}

	now := core.Millis()
	if now-c.mainRefreshAt > mainRefreshMS {
		c.mainRefreshAt = now
		c.pushMainTemps()
	}

	c.dispatch(c.key)
	c.processPopup()
	c.key = 0

	c.checkHeaters(now)
}

func (c *Console) processFrame(f panel.Frame) {
	if f.IsKey() {
		c.key = f.KeyValue()
		return
	}
	if c.replies.Dispatch(f) {
		return
	}
	if f.Cmd == panel.CmdRead && isListRowAddr(f.Addr) {
		c.selectPath(frameSelectedFile(f))
	}
}

func isListRowAddr(addr uint16) bool {
	return addr >= panel.TxtDescribe0 &&
		addr <= panel.TxtDescribe4 &&
		(addr-panel.TxtDescribe0)%0x30 == 0
}

// frameSelectedFile rebuilds the raw command body of a text reply and
// extracts the reported path from it.
func frameSelectedFile(f panel.Frame) string {
	var body [panel.PayloadMax]byte
	body[0] = f.Cmd
	body[1] = byte(f.Addr >> 8)
	body[2] = byte(f.Addr)
	n := copy(body[3:], f.Payload)
	return extractSelectedFile(body[:], 3+n)
}

// pushMainTemps refreshes the always-visible actual/target texts.
func (c *Console) pushMainTemps() {
	c.conn.WriteText(panel.TxtMainHotend,
		core.Itoa(int(c.engine.HotendActual()))+"/"+core.Itoa(int(c.engine.HotendTarget())))
	c.conn.WriteText(panel.TxtMainBed,
		core.Itoa(int(c.engine.BedActual()))+"/"+core.Itoa(int(c.engine.BedTarget())))
}

// pushElapsed writes the "H M" job-time text.
func (c *Console) pushElapsed(addr uint16) {
	min := c.engine.ElapsedSeconds() / 60
	c.conn.WriteText(addr, core.Utoa(min/60)+" H "+core.Utoa(min%60)+" M")
}

// refreshDue gates per-page periodic pushes.
func (c *Console) refreshDue(intervalMS uint32) bool {
	now := core.Millis()
	if now-c.pageRefreshAt < intervalMS {
		return false
	}
	c.pageRefreshAt = now
	return true
}

// registerReplies binds the read-reply registers the console consumes:
// the boot handshake and the numeric target echoes.
func (c *Console) registerReplies() {
	r := c.replies

	r.Register(panel.RegLCDReady, "lcd-ready", c.onPanelReady)

	hotend := func(f panel.Frame) {
		c.engine.SetHotendTarget(float32(core.Clamp(f.Value(), 0, hotendMaxC)))
	}
	bed := func(f panel.Frame) {
		c.engine.SetBedTarget(float32(core.Clamp(f.Value(), 0, bedMaxC)))
	}
	r.Register(panel.TxtHotendTarget, "hotend-target", hotend)
	r.Register(panel.TxtAdjustHotend, "adjust-hotend", hotend)
	r.Register(panel.TxtPreheatHotendIn, "preheat-hotend", hotend)
	r.Register(panel.TxtBedTarget, "bed-target", bed)
	r.Register(panel.TxtAdjustBed, "adjust-bed", bed)
	r.Register(panel.TxtPreheatBedIn, "preheat-bed", bed)

	r.Register(panel.TxtFanSpeedTarget, "fan-target", func(f panel.Frame) {
		pct := core.Clamp(f.Value(), 0, 100)
		c.conn.WriteValue(panel.TxtFanSpeedNow, pct)
		c.conn.WriteValue(panel.TxtFanSpeedTarget, pct)
		c.engine.SetFanPercent(uint8(pct))
	})

	speed := func(f panel.Frame) {
		pct := core.Clamp(f.Value(), 40, 999)
		c.conn.WriteText(panel.TxtPrintSpeed, core.Itoa(int(pct)))
		c.conn.WriteValue(panel.TxtPrintSpeedNow, pct)
		c.conn.WriteValue(panel.TxtPrintSpeedTgt, pct)
		c.engine.SetFeedratePercent(int(pct))
	}
	r.Register(panel.TxtPrintSpeedTgt, "speed-target", speed)
	r.Register(panel.TxtAdjustSpeed, "adjust-speed", speed)
}

// Panel-ready register values. The boot value arrives as a one-word read
// reply: 0x0000 while the first startup animation plays, 0x0072 when the
// panel is interactive.
const (
	panelBootFirst = 0x0000
	panelBootReady = 0x0072
)

func (c *Console) onPanelReady(f panel.Frame) {
	switch f.Value() {
	case panelBootFirst:
		core.PlayTune(TuneStartup)

	case panelBootReady:
		c.initPanel()
	}
}

// initPanel brings the panel to its post-boot state: audio setting, jog
// distance echo, light status, then either the outage-recovery offer or
// the main page.
func (c *Console) initPanel() {
	c.conn.SetAudio(c.settings.Audio)
	c.conn.WriteValue(panel.RegMoveDistance, 2)
	c.conn.WriteValue(panel.RegSystemLED, boolWord(c.engine.CaseLight()))
	c.conn.WriteValue(panel.RegPrintLED, boolWord(c.engine.CaseLight()))

	if c.lifecycle.State() == StateResumingFromPowerOutage {
		c.ChangePage(PageOutageResume)
		rec := c.store.Record()
		c.conn.WriteText(panel.TxtOutageRecoveryFile,
			truncateName(c.media.LongName(rec.FilePathString())))
		c.conn.WriteText(panel.TxtOutageRecoveryProgress,
			core.Utoa(uint32(rec.ProgressPercent)))
		core.PlayTune(TunePowerLossAlert)
	} else {
		c.ChangePage(PageMain)
	}
}

func boolWord(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}

// checkHeaters validates heater readings twice a second. A reading that
// stays implausible raises the abnormal page and aborts a running job.
func (c *Console) checkHeaters(now uint32) {
	if now-c.heaterCheckAt < heaterCheckMS {
		return
	}
	c.heaterCheckAt = now

	hot := c.engine.HotendActual()
	if hot < hotendMinC || hot > hotendMaxC {
		c.heaterFaultHotend++
	} else {
		c.heaterFaultHotend = 0
	}

	bed := c.engine.BedActual()
	if bed < bedMinC || bed > bedMaxC {
		c.heaterFaultBed++
	} else {
		c.heaterFaultBed = 0
	}

	if c.heaterFaultHotend >= heaterFaultHold || c.heaterFaultBed >= heaterFaultHold {
		c.heaterFaultHotend = 0
		c.heaterFaultBed = 0
		c.raisePopup(PopupHeaterError)
		if c.engine.PrintingFromMedia() {
			c.engine.StopPrint()
			c.lifecycle.setState(StateStopping)
		}
	}
}
