package ui

import (
	"rekindle/core"
	"rekindle/panel"
)

// Outage-resume prompt: resume restarts the interrupted job through the
// recovery command, cancel purges the offer.
func (c *Console) pageOutageResume(key uint16) {
	switch key {
	case 1: // resume
		rec := c.store.Record()
		name := c.media.LongName(rec.FilePathString())
		c.conn.WriteText(panel.TxtOutageRecoveryFile, truncateName(name))
		c.conn.WriteText(panel.TxtPrintName, truncateName(name))
		c.conn.WriteText(panel.TxtPrintSpeed, core.Itoa(c.engine.FeedratePercent()))
		c.conn.WriteText(panel.TxtPrintProgress, core.Utoa(uint32(c.engine.ProgressPercent())))

		c.engine.SetCaseLight(true)
		c.ChangePage(PageStatus2)
		c.engine.Inject("M1000")

	case 2: // cancel
		c.lifecycle.setState(StateIdle)
		c.ChangePage(PageMain)
		c.engine.Inject("M1000 C")
	}
}

// Homing / abnormal-endstop group return. The endstop diagnosis pages
// arrive on top of the page that failed, so their return digs one level
// deeper into the history than the plain homing page does.
func (c *Console) pageHomingGroup(key uint16) {
	if key != 1 {
		return
	}

	native := c.history.now
	lang := c.settings.Language
	endstop := (native >= PageAbnormalEndstopX && native <= PageAbnormalEndstopZ) ||
		(native >= PageAbnormalEndstopX+12 && native <= PageAbnormalEndstopZ+12)

	if endstop {
		last := DecodePage(lang, c.history.last)
		last2 := DecodePage(lang, c.history.last2)
		if last2 == PageStatus1 || last2 == PageStatus2 || last == PagePrintFinish {
			c.ChangePage(PageMain)
		} else {
			c.ChangePage(last2)
		}
	} else {
		c.ChangePage(DecodePage(lang, c.history.last))
	}

	c.engine.DisableSteppers()
}

// Leveling-failed return goes back to the leveling entry page.
func (c *Console) pageLevelingFailedReturn(key uint16) {
	if key == 1 {
		c.ChangePage(PagePreLevel)
	}
}

// Probe precheck: tare the strain gauge, fail on an early trigger, pass
// on a rising edge, time out after about a minute of sampling.
func (c *Console) pageProbePrecheck(key uint16) {
	probe := core.MustProbe()

	if !c.probeTared {
		c.probeTared = true
		if err := probe.Tare(); err != nil {
			core.DebugPrintln("ui: probe tare: " + err.Error())
		}
		if trig, _ := probe.Triggered(); trig {
			// Triggered with nothing touching it: the gauge is stuck.
			c.probePrecheckDone(PageProbePrecheckFailed)
			return
		}
		c.probeTrigLast = false
		c.probeChecks = 0
		c.probeCheckAt = core.Millis()
		return
	}

	if key == 1 { // cancel
		c.probePrecheckDone(PagePreLevel)
		return
	}

	now := core.Millis()
	if now-c.probeCheckAt < probeSampleMS {
		return
	}
	c.probeCheckAt = now

	trig, _ := probe.Triggered()
	if !c.probeTrigLast && trig {
		c.probePrecheckDone(PageProbePrecheckOK)
		c.probeOKPending = false
		return
	}
	c.probeTrigLast = trig

	c.probeChecks++
	if c.probeChecks >= probeSampleMax {
		c.probePrecheckDone(PageProbePrecheckFailed)
	}
}

func (c *Console) probePrecheckDone(page uint16) {
	c.probeChecks = 0
	c.probeTared = false
	c.ChangePage(page)
}

// probeSettleMS is the dwell on the precheck-ok page before probing
// starts, so the operator's hand is clear of the bed.
const probeSettleMS = 3000

// Precheck passed: dwell, then run the mesh.
func (c *Console) pageProbePrecheckOK() {
	if !c.probeOKPending {
		c.probeOKPending = true
		c.probeSettled = core.Millis() + probeSettleMS
		return
	}
	if int32(core.Millis()-c.probeSettled) < 0 {
		return
	}
	c.probeOKPending = false

	c.engine.Inject("M851 Z0\nG28\nG29")
	c.lifecycle.resetProbeCount()
	c.lifecycle.setState(StateProbing)
	c.ChangePage(PageLeveling)
}
