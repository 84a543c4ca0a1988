package ui

import "rekindle/panel"

// About-page strings.
const (
	deviceName      = "AnyCubic Kobra"
	firmwareVersion = "rekindle v1.1"
	buildVolume     = "220*210*250 (mm)"
	techSupport     = "https://www.anycubic.com"
)

// System page, both audio variants and both banks: language toggle,
// audio toggle, about, record. The return key persists pending changes.
func (c *Console) pageSystem(key uint16) {
	switch key {
	case 1: // return
		c.ChangePage(PageMain)
		if c.backup.dirty(c.settings) {
			c.backup.commit(c.settings)
			c.engine.Inject("M500")
			if c.onSettingsChange != nil {
				c.onSettingsChange(c.settings)
			}
		}

	case 2: // language
		if c.settings.Language == LangPrimary {
			c.settings.Language = LangSecondary
		} else {
			c.settings.Language = LangPrimary
		}
		c.openSystemPage()

	case 4: // audio
		c.settings.Audio = !c.settings.Audio
		c.openSystemPage()
		c.conn.SetAudio(c.settings.Audio)

	case 5: // about
		c.conn.WriteText(panel.TxtAboutDeviceName, deviceName)
		c.conn.WriteText(panel.TxtAboutFWVersion, firmwareVersion)
		c.conn.WriteText(panel.TxtAboutVolume, buildVolume)
		c.conn.WriteText(panel.TxtAboutSupport, techSupport)
		c.ChangePage(PageAbout)

	case 6:
		c.ChangePage(PageRecord)
	}
}

// pageReturnToSystem serves the wifi and about pages, whose only key
// returns to the system-page variant in effect.
func (c *Console) pageReturnToSystem(key uint16) {
	if key == 1 {
		c.openSystemPage()
	}
}
