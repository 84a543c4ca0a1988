package ui

import (
	"rekindle/core"
	"rekindle/panel"
)

// Main page: print / tool / prepare / system.
func (c *Console) pageMain(key uint16) {
	switch key {
	case 1: // print
		c.files.page = 0
		c.clearSelection()
		c.ChangePage(PageFile)
		c.sendFileList(0)

	case 2: // tool
		c.ChangePage(PageTool)
		c.conn.WriteValue(panel.RegSystemLED, boolWord(c.engine.CaseLight()))

	case 3: // prepare
		c.ChangePage(PagePrepare)

	case 4: // system
		c.openSystemPage()
	}
}

// openSystemPage picks the system-page variant for the active language
// and audio setting. The secondary bank's mute page sits outside the
// uniform offset, so its canonical id differs per bank.
func (c *Console) openSystemPage() {
	if c.settings.Audio {
		c.ChangePage(PageSystemAudioOn)
		return
	}
	if c.settings.Language == LangSecondary {
		c.ChangePage(pageSystemAudioOffAlt)
	} else {
		c.ChangePage(PageSystemAudioOff)
	}
}

// File page: paging, selection highlight, job start, outage re-select.
func (c *Console) pageFile(key uint16) {
	switch key {
	case 1: // return
		c.ChangePage(PageMain)
		c.clearSelection()

	case 2: // page up
		if c.files.page > 0 {
			c.files.page--
			c.clearSelection()
			c.sendFileList(c.files.page * fileRows)
		}

	case 3: // page down
		if (c.files.page+1)*fileRows < c.media.FileCount() {
			c.files.page++
			c.clearSelection()
			c.sendFileList(c.files.page * fileRows)
		}

	case 4: // refresh
		c.media.Refresh()
		c.files.page = 0
		c.clearSelection()
		c.sendFileList(0)

	case 5: // restart the interrupted job on the highlighted file
		if i, ok := c.selectedEntry(); ok {
			entry := c.media.File(i)
			c.conn.WriteColor(rowAddr(c.files.index), panel.ColorBlue)
			c.conn.WriteText(panel.TxtPrintName, truncateName(entry.LongName))
			if c.lifecycle.State() == StateResumingFromPowerOutage {
				c.engine.SetCaseLight(true)
				c.ChangePage(PageStatus2)
				c.engine.Inject("M1000")
			}
		}

	case 6: // start print
		if i, ok := c.selectedEntry(); ok {
			entry := c.media.File(i)
			c.conn.WriteColor(rowAddr(c.files.index), panel.ColorBlue)

			// Starting fresh discards any pending recovery offer.
			if c.lifecycle.State() == StateResumingFromPowerOutage {
				c.engine.Inject("M1000 C")
				c.lifecycle.setState(StateIdle)
			}

			c.engine.SetCaseLight(true)
			c.engine.StartFile(entry.ShortName)
			c.pushPrintHeader(entry.LongName)
			c.conn.WriteText(panel.TxtPrintTime, "0 H 0 M")
			c.ChangePage(PageStatus2)
		}

	case 7, 8, 9, 10, 11: // row select
		row := int(key) - 6
		if c.files.page*fileRows+row > c.media.FileCount() {
			return
		}
		if c.files.indexLast != 0 && c.files.indexLast != row {
			c.conn.WriteColor(rowAddr(c.files.indexLast), panel.ColorBlue)
		}
		c.files.index = row
		c.files.indexLast = row
		c.conn.WriteColor(rowAddr(row), panel.ColorRed)
	}
}

// Status page with the resume affordance (paused job).
func (c *Console) pageStatus1(key uint16) {
	switch key {
	case 1: // return, only when no media job owns the screen
		if !c.engine.PrintingFromMedia() {
			c.ChangePage(PageFile)
		}

	case 2: // resume
		if c.lifecycle.ResumeAllowed() {
			// The resuming status notification moves the lifecycle on.
			c.lifecycle.setPause(PauseIdle)
			c.engine.ResumePrint()
			c.ChangePage(PageStatus2)
		} else {
			// A reheat or purge is waiting on the operator.
			c.engine.SetUserConfirmed()
		}

	case 3: // stop
		if c.engine.PrintingFromMedia() {
			c.ChangePage(PageStopConf)
		}

	case 4:
		c.openAdjustPage(false)
	}

	c.refreshStatusTexts()
}

// Status page with the pause affordance (running job).
func (c *Console) pageStatus2(key uint16) {
	switch key {
	case 1:
		if !c.engine.PrintingFromMedia() {
			c.ChangePage(PageFile)
		}

	case 2: // pause
		if c.engine.PrintingFromMedia() {
			// State first: the paused status notification may arrive
			// before PausePrint returns.
			c.ChangePage(PageWaitPause)
			c.lifecycle.setState(StatePausing)
			c.lifecycle.setPause(PauseIdle)
			c.engine.PausePrint()
		}

	case 3:
		if c.engine.PrintingFromMedia() {
			c.ChangePage(PageStopConf)
		}

	case 4:
		c.openAdjustPage(true)
	}

	c.refreshStatusTexts()
}

// openAdjustPage enters the adjust page and seeds its fields. The
// running-job variant also exposes fan speed and the live Z offset.
func (c *Console) openAdjustPage(withFan bool) {
	c.ChangePage(PageAdjust)
	c.conn.WriteValue(panel.RegPrintLED, boolWord(c.engine.CaseLight()))
	c.conn.WriteValue(panel.TxtAdjustHotend, uint16(c.engine.HotendTarget()))
	c.conn.WriteValue(panel.TxtAdjustBed, uint16(c.engine.BedTarget()))
	c.feedrateLast = c.engine.FeedratePercent()
	c.conn.WriteValue(panel.TxtAdjustSpeed, uint16(c.feedrateLast))
	if withFan {
		c.conn.WriteValue(panel.TxtFanSpeedTarget, uint16(c.engine.FanPercent()))
		c.conn.WriteText(panel.TxtLevelOffset, core.Ftoa(c.engine.ZOffset(), 2))
	}
}

// refreshStatusTexts pushes speed/progress/time on the slow gate, and
// only when the value moved.
func (c *Console) refreshStatusTexts() {
	if !c.refreshDue(pageRefreshMS) {
		return
	}

	if f := c.engine.FeedratePercent(); f != c.feedrateLast {
		c.feedrateLast = f
		c.conn.WriteText(panel.TxtPrintSpeed, core.Itoa(f))
	}
	if p := c.engine.ProgressPercent(); p != c.progressLast {
		c.progressLast = p
		c.conn.WriteText(panel.TxtPrintProgress, core.Utoa(uint32(p)))
	}
	c.pushElapsed(panel.TxtPrintTime)
}

// Adjust page: babystep, light, OK collects the edited targets.
func (c *Console) pageAdjust(key uint16) {
	switch key {
	case 1:
		c.returnToStatusPage()

	case 2:
		c.babystep(-babystepZ)

	case 3:
		c.babystep(babystepZ)

	case 4: // light
		on := !c.engine.CaseLight()
		c.conn.WriteValue(panel.RegPrintLED, boolWord(on))
		c.engine.SetCaseLight(on)

	case 5:
		c.ChangePage(PageDone)

	case 7: // OK: pull the edited targets back, persist babysteps
		c.conn.RequestValue(panel.TxtAdjustBed, 1)
		c.conn.RequestValue(panel.TxtAdjustSpeed, 1)
		c.conn.RequestValue(panel.TxtAdjustHotend, 1)
		c.conn.RequestValue(panel.TxtFanSpeedTarget, 1)
		if c.zChanged {
			c.zChanged = false
			c.engine.Inject("M500")
		}
		c.returnToStatusPage()
	}
}

// babystepZ is the per-key Z-offset increment in millimeters.
const babystepZ = 0.05

// babystepLimit clamps the accumulated offset.
const babystepLimit = 5.0

// babystep nudges the live Z offset and echoes the new value.
func (c *Console) babystep(delta float32) {
	z := c.engine.ZOffset()
	if (delta < 0 && z <= -babystepLimit) || (delta > 0 && z >= babystepLimit) {
		return
	}

	c.engine.BabystepZ(c.engine.MMToWholeStepsZ(delta))
	z += delta
	c.engine.SetZOffset(z)
	c.conn.WriteText(panel.TxtLevelOffset, core.Ftoa(z, 2))
	c.zChanged = true
}

// returnToStatusPage picks the status variant matching the job state.
func (c *Console) returnToStatusPage() {
	switch c.lifecycle.State() {
	case StatePrinting:
		c.ChangePage(PageStatus2)
	case StatePaused, StatePausing:
		c.ChangePage(PageStatus1)
	}
}

// Finish page: OK clears the job leftovers.
func (c *Console) pagePrintFinish(key uint16) {
	if key == 1 {
		c.engine.SetCaseLight(false)
		c.ChangePage(PageMain)
		c.engine.SetFeedratePercent(100)
		c.engine.ClearElapsed()
		c.lifecycle.setState(StateIdle)
	}
}

// Stop-confirm page.
func (c *Console) pageStopConfirm(key uint16) {
	switch key {
	case 1: // confirmed
		if c.engine.PrintingFromMedia() {
			c.lifecycle.setState(StateStopping)
			c.engine.StopPrint()
			c.ChangePage(PageMain)
		} else {
			if c.lifecycle.State() == StateResumingFromPowerOutage {
				c.engine.Inject("M1000 C")
			}
			c.lifecycle.setState(StateIdle)
		}
		c.engine.SetFeedratePercent(100)
		c.engine.ClearElapsed()

	case 2: // back to the job
		c.returnToStatusPage()
	}
}

// Filament-lack page returns to the status page that fits the state.
func (c *Console) pageFilamentLack(key uint16) {
	if key == 1 {
		switch c.lifecycle.State() {
		case StatePrinting:
			c.ChangePage(PageStatus2)
		case StatePaused, StatePausing:
			c.ChangePage(PageStatus1)
		}
	}
}

// No-media page.
func (c *Console) pageNoMedia(key uint16) {
	if key == 1 {
		c.engine.SetCaseLight(false)
		c.ChangePage(PageMain)
		c.lifecycle.setState(StateIdle)
	}
}

// pageReturnToLast serves the confirm/notice pages whose single key just
// goes back.
func (c *Console) pageReturnToLast(key uint16) {
	if key == 1 {
		c.ChangePage(DecodePage(c.settings.Language, c.history.last))
	}
}
