package ui

import (
	"rekindle/core"
	"rekindle/panel"
)

// Jog feeds in mm/min. XY moves run fast; Z is geared down.
const (
	jogFeedXY = 3000
	jogFeedZ  = 480
)

// Tool page: move, temp, speed, motors off, light.
func (c *Console) pageTool(key uint16) {
	switch key {
	case 1:
		c.ChangePage(PageMain)

	case 2:
		c.ChangePage(PageMove)

	case 3:
		c.ChangePage(PageTemp)
		c.conn.WriteValue(panel.TxtHotendNow, uint16(c.engine.HotendActual()))
		c.conn.WriteValue(panel.TxtHotendTarget, uint16(c.engine.HotendTarget()))
		c.conn.WriteValue(panel.TxtBedNow, uint16(c.engine.BedActual()))
		c.conn.WriteValue(panel.TxtBedTarget, uint16(c.engine.BedTarget()))

	case 4:
		c.ChangePage(PageSpeed)
		c.conn.WriteValue(panel.TxtFanSpeedNow, uint16(c.engine.FanPercent()))
		c.conn.WriteValue(panel.TxtFanSpeedTarget, uint16(c.engine.FanPercent()))
		c.conn.WriteValue(panel.TxtPrintSpeedNow, uint16(c.engine.FeedratePercent()))
		c.conn.WriteValue(panel.TxtPrintSpeedTgt, uint16(c.engine.FeedratePercent()))

	case 5: // motors off
		if !c.engine.Moving() {
			c.engine.DisableSteppers()
			c.engine.SetAllUnhomed()
		}

	case 6: // light
		on := !c.engine.CaseLight()
		c.engine.SetCaseLight(on)
		c.conn.WriteValue(panel.RegSystemLED, boolWord(on))
	}
}

// Move page: homing keys, per-axis jogs, distance select.
func (c *Console) pageMove(key uint16) {
	// Jogging below the bed is never useful; lift to zero first.
	switch key {
	case 2, 4, 6, 8, 10, 12:
		if !c.engine.Moving() {
			if _, _, z, _ := c.engine.Position(); z < 0 {
				c.engine.MoveAxis(core.AxisZ, 0, jogFeedZ)
			}
		}
	}

	if c.engine.Moving() {
		return
	}

	x, y, z, _ := c.engine.Position()

	switch key {
	case 1:
		c.ChangePage(PageTool)

	case 5:
		c.engine.Inject("G28 X")
	case 9:
		c.engine.Inject("G28 Y")
	case 13:
		// Homing Z alone needs a trusted XY so the probe lands on the bed.
		if c.engine.AxisTrusted(core.AxisX) && c.engine.AxisTrusted(core.AxisY) {
			c.engine.Inject("G28 Z")
		} else {
			c.engine.Inject("G28")
		}
	case 17:
		c.engine.Inject("G28")

	case 2:
		c.engine.MoveAxis(core.AxisX, x-c.moveDistance, jogFeedXY)
	case 4:
		c.engine.MoveAxis(core.AxisX, x+c.moveDistance, jogFeedXY)
	case 6:
		c.engine.MoveAxis(core.AxisY, y+c.moveDistance, jogFeedXY)
	case 8:
		c.engine.MoveAxis(core.AxisY, y-c.moveDistance, jogFeedXY)
	case 10:
		c.engine.MoveAxis(core.AxisZ, z-c.moveDistance, jogFeedZ)
	case 12:
		c.engine.MoveAxis(core.AxisZ, z+c.moveDistance, jogFeedZ)

	case 3:
		c.moveDistance = 0.1
		c.conn.WriteValue(panel.RegMoveDistance, 1)
	case 7:
		c.moveDistance = 1.0
		c.conn.WriteValue(panel.RegMoveDistance, 2)
	case 11:
		c.moveDistance = 10.0
		c.conn.WriteValue(panel.RegMoveDistance, 3)
	}
}

// Temp page: cooling shortcut, OK pulls the edited targets.
func (c *Console) pageTemp(key uint16) {
	switch key {
	case 1:
		c.ChangePage(PageTool)

	case 6: // cooling
		c.engine.SetHotendTarget(0)
		c.engine.SetBedTarget(0)
		c.ChangePage(PageTool)

	case 7: // ok
		c.conn.RequestValue(panel.TxtHotendTarget, 1)
		c.conn.RequestValue(panel.TxtBedTarget, 1)
		c.ChangePage(PageTool)
	}

	if c.refreshDue(pageRefreshMS) {
		c.conn.WriteValue(panel.TxtHotendNow, uint16(c.engine.HotendActual()))
		c.conn.WriteValue(panel.TxtBedNow, uint16(c.engine.BedActual()))
	}
}

// Fan/feed-rate page.
func (c *Console) pageSpeed(key uint16) {
	switch key {
	case 1:
		c.ChangePage(PageTool)

	case 6: // ok
		c.conn.RequestValue(panel.TxtFanSpeedTarget, 1)
		c.conn.RequestValue(panel.TxtPrintSpeedTgt, 1)
		c.ChangePage(PageTool)
	}

	if c.refreshDue(pageRefreshMS) {
		c.conn.WriteValue(panel.TxtFanSpeedNow, uint16(c.engine.FanPercent()))
		c.conn.WriteValue(panel.TxtPrintSpeedNow, uint16(c.engine.FeedratePercent()))
	}
}
