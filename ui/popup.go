package ui

import (
	"rekindle/core"

	"rekindle/panel"
)

// PopupID names an asynchronous page request raised outside the key
// dispatch (runout edge, job finish, leveling done). The pop-up manager
// applies at most one per tick, after the page handler has run.
type PopupID uint8

const (
	PopupNone PopupID = iota
	PopupHeaterError
	PopupFilamentLack
	PopupResumeReady
	PopupFinished
	PopupLevelDone
)

func (c *Console) raisePopup(id PopupID) {
	c.popup = id
}

// processPopup applies the pending pop-up, if any.
func (c *Console) processPopup() {
	id := c.popup
	if id == PopupNone {
		return
	}
	c.popup = PopupNone

	switch id {
	case PopupHeaterError:
		if c.currentPage() != PageAbnormal {
			c.ChangePage(PageAbnormal)
		}

	case PopupFilamentLack:
		if c.currentPage() != PageFilamentLack {
			c.ChangePage(PageFilamentLack)
		}

	case PopupResumeReady:
		c.ChangePage(PageStatus1)

	case PopupFinished:
		min := c.engine.ElapsedSeconds() / 60
		c.conn.WriteText(panel.TxtFinishTime,
			core.Utoa(min/60)+" H "+core.Utoa(min%60)+" M")
		c.ChangePage(PagePrintFinish)

	case PopupLevelDone:
		c.ChangePage(PagePreLevel)
	}
}
