// Package ui drives the DGUS operator console: page-id translation
// between the panel's two language banks, the per-page key handlers, the
// pop-up queue, and the print-lifecycle state machine. All state lives in
// a Console owned by the platform wiring and ticked from the main loop.
package ui

// Language selects the panel firmware bank. The secondary bank mirrors
// the primary at an id offset with a handful of exceptions.
type Language uint8

const (
	LangPrimary Language = iota
	LangSecondary
)

// Canonical page ids. These are the primary-bank ids; EncodePage maps
// them to whatever the active bank uses on the wire.
const (
	PageMain          = 1
	PageFile          = 2
	PageStatus1       = 3 // printing, resume affordance
	PageStatus2       = 4 // printing, pause affordance
	PageAdjust        = 5
	PageKeyboard      = 6
	PageTool          = 7
	PageMove          = 8
	PageTemp          = 9
	PageSpeed         = 10
	PageSystemAudioOn = 11
	PageWifi          = 12
	PageAbout         = 13
	PageRecord        = 14
	PagePrepare       = 15
	PagePreLevel      = 16
	PageLevelAdvance  = 17
	PagePreheat       = 18
	PageFilament      = 19
	PageDone          = 20
	PageAbnormal      = 21
	PagePrintFinish   = 22
	PageWaitStop      = 23
	PageFilamentLack  = 25
	PageForbid        = 26
	PageStopConf      = 27
	PageNoSD          = 29
	PageFilamentHeat  = 30
	PageWaitPause     = 32
	PageLevelEnsure   = 33
	PageLeveling      = 34

	PageAutoOffset     = 115
	PageSystemAudioOff = 117

	// The secondary-bank mute page sits below the +120 offset; handlers
	// reach it by encoding this id, which lands on native 170.
	pageSystemAudioOffAlt = 50

	PageOutageResume    = 171 // secondary native 173
	PageProbePreheating = 176 // secondary native 175

	PageHoming                = 177 // secondary native +12
	PageAbnormalBedHeater     = 178
	PageAbnormalBedNTC        = 179
	PageAbnormalHotendHeater  = 180
	PageAbnormalHotendNTC     = 181
	PageAbnormalEndstopX      = 182
	PageAbnormalEndstopY      = 183
	PageAbnormalEndstopZ      = 184
	PageAbnormalEndstopZL     = 185
	PageAbnormalEndstopZR     = 186
	PageAbnormalLevelingProbe = 187
	PageLevelingFailed        = 188
	pageHomingRangeEnd        = 189

	PageProbePrecheck       = 201 // secondary native +3
	PageProbePrecheckOK     = 202
	PageProbePrecheckFailed = 203
)

// Native ids the secondary bank uses for pages the dispatch matches
// directly (they fall outside the uniform +120 window).
const (
	nativeMutePrimary   = 117
	nativeMuteSecondary = 170
)

// pageRule is one exception in the bank translation. Pages inside
// [lo, hi] translate by delta; everything else shifts by the bank offset.
type pageRule struct {
	lo, hi uint16
	delta  int16
}

const bankOffset = 120

// encodeRules map canonical ids to secondary-bank natives. Checked in
// order; first match wins.
var encodeRules = []pageRule{
	{PageOutageResume, PageOutageResume, 2},
	{PageProbePreheating, PageProbePreheating, -1},
	{PageHoming, pageHomingRangeEnd, 12},
	{PageProbePrecheck, PageProbePrecheckFailed, 3},
}

// decodeRules invert encodeRules over the secondary-bank native ranges.
var decodeRules = []pageRule{
	{PageOutageResume + 2, PageOutageResume + 2, -2},
	{PageProbePreheating - 1, PageProbePreheating - 1, 1},
	{PageHoming + 12, pageHomingRangeEnd + 12, -12},
	{PageProbePrecheck + 3, PageProbePrecheckFailed + 3, -3},
}

// EncodePage translates a canonical page id to the panel-native id for
// the active language bank.
func EncodePage(lang Language, page uint16) uint16 {
	if lang == LangPrimary {
		return page
	}
	for _, r := range encodeRules {
		if r.lo <= page && page <= r.hi {
			return uint16(int16(page) + r.delta)
		}
	}
	return page + bankOffset
}

// DecodePage translates a panel-native id back to its canonical id.
func DecodePage(lang Language, native uint16) uint16 {
	if lang == LangPrimary {
		return native
	}
	for _, r := range decodeRules {
		if r.lo <= native && native <= r.hi {
			return uint16(int16(native) + r.delta)
		}
	}
	if native > bankOffset {
		return native - bankOffset
	}
	return native
}

// pageHistory is the 3-deep record of panel-native page ids, newest
// first. Return keys walk it backwards.
type pageHistory struct {
	now, last, last2 uint16
}

func (h *pageHistory) push(native uint16) {
	h.last2 = h.last
	h.last = h.now
	h.now = native
}
