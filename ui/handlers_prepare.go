package ui

import (
	"rekindle/core"
	"rekindle/panel"
)

// Preheat presets.
const (
	preheatPLAHotend = 190
	preheatPLABed    = 60
	preheatABSHotend = 240
	preheatABSBed    = 100
)

// Filament handling: the hotend must be at temperature before the
// extruder may feed, and the feed target tops up to a safe melt point.
const (
	filamentMinC    = 220
	filamentTargetC = 230
)

// Filament feed commands, run repeatedly while the page is active.
const (
	cmdFilamentLoad   = "M83\nG1 E50 F312\nM82"
	cmdFilamentUnload = "M83\nG1 E-50 F1200\nM82"
	// First unload primes a short push so molten filament releases
	// cleanly before the pull.
	cmdFilamentPrime = "M83\nG1 E10 F312\nG1 E-50 F1200\nM82"
)

const (
	filamentIdle = iota
	filamentIn
	filamentOut
)

// Prepare page: leveling, preheat, filament.
func (c *Console) pagePrepare(key uint16) {
	switch key {
	case 1:
		c.ChangePage(PageMain)

	case 2:
		c.ChangePage(PagePreLevel)

	case 3:
		c.ChangePage(PagePreheat)
		c.pushPreheatTemps()

	case 4:
		c.pushFilamentTemp()
		c.ChangePage(PageFilament)
	}
}

func (c *Console) pushPreheatTemps() {
	c.conn.WriteText(panel.TxtPreheatHotend,
		core.Itoa(int(c.engine.HotendActual()))+"/"+core.Itoa(int(c.engine.HotendTarget())))
	c.conn.WriteText(panel.TxtPreheatBed,
		core.Itoa(int(c.engine.BedActual()))+"/"+core.Itoa(int(c.engine.BedTarget())))
}

func (c *Console) pushFilamentTemp() {
	c.conn.WriteText(panel.TxtFilamentTemp,
		core.Itoa(int(c.engine.HotendActual()))+"/"+core.Itoa(int(c.engine.HotendTarget())))
}

// Leveling entry page.
func (c *Console) pagePreLevel(key uint16) {
	switch key {
	case 1:
		c.ChangePage(PagePrepare)

	case 2: // start auto leveling via the probe precheck
		if !c.engine.Printing() {
			c.probeTared = false
			c.probeChecks = 0
			c.ChangePage(PageProbePrecheck)
		}

	case 3:
		c.conn.WriteText(panel.TxtLevelOffset, core.Ftoa(c.engine.ZOffset(), 2))
		c.ChangePage(PageLevelAdvance)

	case 4:
		c.ChangePage(PageAutoOffset)
	}
}

// Z-offset advance page shares the adjust page's babystep logic.
func (c *Console) pageLevelAdvance(key uint16) {
	switch key {
	case 1:
		c.ChangePage(PagePreLevel)

	case 2:
		c.babystep(-babystepZ)

	case 3:
		c.babystep(babystepZ)

	case 4: // ok
		if c.zChanged {
			c.zChanged = false
			c.engine.Inject("M500")
		}
		c.ChangePage(PagePrepare)
	}
}

// Preheat page.
func (c *Console) pagePreheat(key uint16) {
	switch key {
	case 1:
		c.ChangePage(PagePrepare)

	case 2: // PLA
		c.engine.SetHotendTarget(preheatPLAHotend)
		c.engine.SetBedTarget(preheatPLABed)
		c.ChangePage(PagePreheat)

	case 3: // ABS
		c.engine.SetHotendTarget(preheatABSHotend)
		c.engine.SetBedTarget(preheatABSBed)
		c.ChangePage(PagePreheat)
	}

	if c.refreshDue(pageRefreshMS) {
		c.pushPreheatTemps()
	}
}

// Filament page: in/out keys gate on hotend temperature and keep
// feeding while the machine is idle.
func (c *Console) pageFilament(key uint16) {
	switch key {
	case 1:
		c.filamentCmd = filamentIdle
		c.ChangePage(PagePrepare)

	case 2: // filament in
		if c.engine.HotendActual() < filamentMinC {
			c.filamentCmd = filamentIdle
			c.ChangePage(PageFilamentHeat)
		} else {
			if c.engine.HotendTarget() < filamentTargetC {
				c.engine.SetHotendTarget(filamentTargetC)
			}
			c.filamentCmd = filamentIn
		}

	case 3: // filament out
		if c.engine.HotendActual() < filamentMinC {
			c.filamentCmd = filamentIdle
			c.ChangePage(PageFilamentHeat)
		} else {
			if c.engine.HotendTarget() < filamentTargetC {
				c.engine.SetHotendTarget(filamentTargetC)
			}
			if c.filamentCmd == filamentIdle {
				c.engine.Inject(cmdFilamentPrime)
			}
			c.filamentCmd = filamentOut
		}

	case 4: // stop
		c.filamentCmd = filamentIdle
	}

	if !c.refreshDue(slowRefreshMS) {
		return
	}
	c.pushFilamentTemp()

	if c.engine.Printing() {
		return
	}
	switch c.filamentCmd {
	case filamentIn:
		if c.engine.CanMove() && !c.engine.CommandsQueued() {
			c.engine.Inject(cmdFilamentLoad)
		}
	case filamentOut:
		if c.engine.CanMove() && !c.engine.CommandsQueued() {
			c.engine.Inject(cmdFilamentUnload)
		}
	}
}

// Filament auto-heat page: return sets the safe melt target.
func (c *Console) pageFilamentHeat(key uint16) {
	if key == 1 {
		c.engine.SetHotendTarget(filamentTargetC)
		c.ChangePage(PageFilament)
	}
}

// Leveling temperatures applied before a mesh run.
const (
	levelingHotendC = 120
	levelingBedC    = 60
)

// Leveling confirm page: start probes the mesh.
func (c *Console) pageLevelEnsure(key uint16) {
	switch key {
	case 1: // start
		c.engine.SetHotendTarget(levelingHotendC)
		c.engine.SetBedTarget(levelingBedC)
		c.engine.Inject("M851 Z0\nG28\nG29")
		c.lifecycle.resetProbeCount()
		c.lifecycle.setState(StateProbing)
		c.ChangePage(PageLeveling)

	case 2:
		c.ChangePage(PagePreLevel)
	}
}

// Leveling progress page is display-only; completion arrives through the
// probe status events.
func (c *Console) pageLeveling(_ uint16) {}

// Nozzle-offset calibration page: keys map to calibration steps handled
// by the engine's offset routine.
func (c *Console) pageAutoOffset(key uint16) {
	switch key {
	case 1:
		c.ChangePage(PagePreLevel)
	case 2:
		c.engine.Inject("M1024 S3") // -1.0
	case 3:
		c.engine.Inject("M1024 S4") // +1.0
	case 4:
		c.engine.Inject("M1024 S1") // -0.1
	case 5:
		c.engine.Inject("M1024 S2") // +0.1
	case 6:
		c.engine.Inject("M1024 S0") // park over the bed center
	case 7:
		c.engine.Inject("M1024 S5") // accept
	}
}
