package ui

// dispatch routes the pending key (0 when none) to the handler of the
// page on screen. Dispatch happens on panel-native ids: the shared
// screens that sit outside the uniform bank window match both banks'
// natives directly, everything else decodes into the bank handler table.
func (c *Console) dispatch(key uint16) {
	native := c.history.now

	switch {
	case native == PageAutoOffset:
		c.pageAutoOffset(key)

	case native == nativeMutePrimary || native == nativeMuteSecondary:
		c.pageSystem(key)

	case native == PageOutageResume || native == PageOutageResume+2:
		c.pageOutageResume(key)

	case native == PageProbePreheating || native == PageProbePreheating-1:
		// Display only; the probe preheat pages have no keys.

	case native >= PageHoming && native <= PageAbnormalEndstopZR+12:
		c.pageHomingGroup(key)

	case native == PageAbnormalLevelingProbe+12 || native == PageLevelingFailed+12:
		c.pageLevelingFailedReturn(key)

	case native == PageProbePrecheck || native == PageProbePrecheck+3:
		c.pageProbePrecheck(key)

	case native == PageProbePrecheckOK || native == PageProbePrecheckOK+3:
		c.pageProbePrecheckOK()

	case native == PageProbePrecheckFailed || native == PageProbePrecheckFailed+3:
		c.pageLevelingFailedReturn(key)

	default:
		page := DecodePage(c.settings.Language, native)
		if page >= 1 && page <= uint16(len(bankHandlers)) {
			if h := bankHandlers[page-1]; h != nil {
				h(c, key)
			}
		}
	}
}

// bankHandlers maps canonical bank pages (1..35) to their key handlers.
// Nil entries are display-only pages.
var bankHandlers = [35]func(*Console, uint16){
	PageMain - 1:          (*Console).pageMain,
	PageFile - 1:          (*Console).pageFile,
	PageStatus1 - 1:       (*Console).pageStatus1,
	PageStatus2 - 1:       (*Console).pageStatus2,
	PageAdjust - 1:        (*Console).pageAdjust,
	PageTool - 1:          (*Console).pageTool,
	PageMove - 1:          (*Console).pageMove,
	PageTemp - 1:          (*Console).pageTemp,
	PageSpeed - 1:         (*Console).pageSpeed,
	PageSystemAudioOn - 1: (*Console).pageSystem,
	PageWifi - 1:          (*Console).pageReturnToSystem,
	PageAbout - 1:         (*Console).pageReturnToSystem,
	PagePrepare - 1:       (*Console).pagePrepare,
	PagePreLevel - 1:      (*Console).pagePreLevel,
	PageLevelAdvance - 1:  (*Console).pageLevelAdvance,
	PagePreheat - 1:       (*Console).pagePreheat,
	PageFilament - 1:      (*Console).pageFilament,
	PageDone - 1:          (*Console).pageReturnToLast,
	PageAbnormal - 1:      (*Console).pageReturnToLast,
	PagePrintFinish - 1:   (*Console).pagePrintFinish,
	PageWaitStop - 1:      (*Console).pageReturnToLast,
	PageFilamentLack - 1:  (*Console).pageFilamentLack,
	PageForbid - 1:        (*Console).pageReturnToLast,
	PageStopConf - 1:      (*Console).pageStopConfirm,
	PageNoSD - 1:          (*Console).pageNoMedia,
	PageFilamentHeat - 1:  (*Console).pageFilamentHeat,
	PageLevelEnsure - 1:   (*Console).pageLevelEnsure,
	PageLeveling - 1:      (*Console).pageLeveling,
}
