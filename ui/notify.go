package ui

import (
	"rekindle/core"
	"rekindle/panel"
)

// Console implements core.Notifier; the engine calls these from its main
// loop, never from interrupt context. It also satisfies the outage
// detector's panel notifier through PowerLoss.

// TimerStarted marks the job running and drops the soft endstops so the
// first moves of a recovered job are not clipped.
func (c *Console) TimerStarted() {
	c.engine.SetSoftEndstops(false)
	c.lifecycle.setState(StatePrinting)
}

// TimerStopped ends the job: a media-remove stop lands on the no-media
// page, everything else on the finish summary.
func (c *Console) TimerStopped() {
	if c.lifecycle.State() != StateIdle {
		if c.lifecycle.State() == StateStoppingFromMediaRemove {
			c.ChangePage(PageNoSD)
		} else {
			c.lifecycle.setState(StateStopping)
			c.raisePopup(PopupFinished)
		}
	}
	c.engine.SetSoftEndstops(true)
}

// FilamentRunout pauses a media job and flags the lack so the resume key
// stays honest about why the job stopped.
func (c *Console) FilamentRunout() {
	c.raisePopup(PopupFilamentLack)
	core.PlayTune(TuneFilamentOut)

	if c.engine.PrintingFromMedia() {
		c.lifecycle.setState(StatePausing)
		c.lifecycle.setPause(PauseFilamentLack)
		c.engine.PausePrint()
	}
}

// ConfirmationRequest fires when the engine parks and waits. Outside a
// filament lack the resume affordance appears.
func (c *Console) ConfirmationRequest() {
	switch c.lifecycle.State() {
	case StatePausing, StatePaused:
		if c.lifecycle.Pause() != PauseFilamentLack {
			c.ChangePage(PageStatus1)
		}
		c.lifecycle.setState(StatePaused)
	}
}

// StatusChange routes the closed status enum into lifecycle transitions
// and page moves. Codes that make no sense for the current state are
// dropped.
func (c *Console) StatusChange(s core.Status) {
	switch s.Kind {
	case core.StatusPaused:
		switch c.lifecycle.State() {
		case StatePausing, StatePaused:
			if c.lifecycle.Pause() != PauseFilamentLack {
				c.ChangePage(PageStatus1)
				c.lifecycle.setPause(PauseIdle)
			}
			c.lifecycle.setState(StatePaused)
		}

	case core.StatusResuming:
		if c.lifecycle.State() == StatePaused {
			c.lifecycle.setState(StatePrinting)
		}

	case core.StatusReheating:
		if c.lifecycle.State() == StatePrinting {
			c.ChangePage(PageStatus2)
		}

	case core.StatusHeaterTimeout:
		switch c.lifecycle.State() {
		case StatePrinting, StatePausing, StatePaused, StateResumingFromPowerOutage:
			c.lifecycle.setPause(PauseHeaterTimedOut)
			core.PlayTune(TuneHeaterTimeout)
		}

	case core.StatusReheatDone:
		switch c.lifecycle.State() {
		case StatePrinting, StatePausing, StatePaused, StateResumingFromPowerOutage:
			c.engine.SetUserConfirmed()
			if c.lifecycle.Pause() != PauseFilamentLack {
				c.lifecycle.setPause(PauseIdle)
			}
		}

	case core.StatusFilamentPurging:
		c.lifecycle.setPause(PausePurgingFilament)

	case core.StatusMediaRemoved:
		c.media.Refresh()
		c.clearSelection()
		c.files.reset()
		if c.currentPage() == PageFile {
			c.sendFileList(0)
		}
		if c.lifecycle.State() == StatePrinting {
			c.lifecycle.setState(StateStoppingFromMediaRemove)
		}

	case core.StatusAborted:
		if c.lifecycle.State() == StateStopping ||
			c.lifecycle.State() == StateStoppingFromMediaRemove {
			c.ChangePage(PageMain)
			c.lifecycle.setState(StateIdle)
		}

	case core.StatusProbePoint:
		if c.lifecycle.State() == StateProbing && c.lifecycle.countProbePoint() {
			c.probingComplete()
		}

	case core.StatusProbingDone:
		if c.lifecycle.State() == StateProbing {
			c.probingComplete()
		}

	case core.StatusProbingFailed:
		if c.lifecycle.State() == StateProbing {
			c.lifecycle.resetProbeCount()
			core.PlayTune(TuneProbeFailed)
			c.engine.Inject("G1 Z50 F500")
			c.ChangePage(PageAbnormalLevelingProbe)
			c.lifecycle.setState(StateIdle)
		}

	case core.StatusProbePreheatStart:
		if c.lifecycle.State() == StateProbing {
			c.ChangePage(PageProbePreheating)
		}

	case core.StatusProbePreheatStop:
		if c.lifecycle.State() == StateProbing {
			c.ChangePage(PageLeveling)
		}

	case core.StatusThermalError:
		c.raisePopup(PopupHeaterError)
		if c.engine.PrintingFromMedia() {
			c.engine.StopPrint()
			c.lifecycle.setState(StateStopping)
		}

	case core.StatusKilled:
		c.ChangePage(killPage(s.Point))
	}
}

// probingComplete persists the mesh and records the page the panel will
// land on. A real page change here fights the panel's own post-probe
// redraw, so only the history moves.
func (c *Console) probingComplete() {
	c.lifecycle.resetProbeCount()
	c.engine.Inject("M500")
	c.FakeChangePage(PagePreLevel)
	c.lifecycle.setState(StateIdle)
}

// killPage maps a kill point to its diagnosis page. Points follow the
// Status contract: 0 bed heater, 1 bed sensor, 2 hotend heater, 3 hotend
// sensor, 4..6 X/Y/Z endstop.
func killPage(point uint8) uint16 {
	page := uint16(PageAbnormalBedHeater) + uint16(point)
	if page > PageAbnormalEndstopZ {
		page = PageAbnormal
	}
	return page
}

// PowerLoss pushes the supply-failure notification frame. Called from
// the outage path before the machine halts; it must not allocate.
func (c *Console) PowerLoss() {
	c.conn.NotifyPowerLoss()
}

// PowerLossRecovery arms the outage-resume offer for the boot handshake.
func (c *Console) PowerLossRecovery() {
	c.lifecycle.setState(StateResumingFromPowerOutage)
}

// HomingStart shows the homing page unless a media job owns the screen.
func (c *Console) HomingStart() {
	if !c.engine.PrintingFromMedia() {
		c.ChangePage(PageHoming)
	}
}

// HomingComplete returns to the page that started the cycle.
func (c *Console) HomingComplete() {
	if !c.engine.PrintingFromMedia() {
		c.ChangePage(DecodePage(c.settings.Language, c.history.last))
	}
}

// pushPrintHeader writes the name/speed/progress texts shown when a job
// starts or a recovery is offered.
func (c *Console) pushPrintHeader(name string) {
	c.conn.WriteText(panel.TxtPrintName, truncateName(name))
	c.conn.WriteText(panel.TxtPrintSpeed, core.Itoa(c.engine.FeedratePercent()))
	c.conn.WriteText(panel.TxtPrintProgress, core.Utoa(uint32(c.engine.ProgressPercent())))
}
