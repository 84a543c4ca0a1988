package ui

import "rekindle/core"

// Tunes played on the beeper for operator events. Frequencies in Hz,
// durations in milliseconds; zero frequency is a rest.
var (
	// TuneStartup is the power-on chirp played on the panel's first-boot
	// handshake.
	TuneStartup = []core.Note{
		{Freq: 1047, MS: 120}, {Freq: 1319, MS: 120}, {Freq: 1568, MS: 180},
	}

	// TunePowerLossAlert announces a recoverable job at boot.
	TunePowerLossAlert = []core.Note{
		{Freq: 2217, MS: 160}, {Freq: 0, MS: 80},
		{Freq: 2217, MS: 160}, {Freq: 0, MS: 80},
		{Freq: 2217, MS: 400},
	}

	// TuneFilamentOut is the SOS pattern for a confirmed runout.
	TuneFilamentOut = []core.Note{
		{Freq: 1568, MS: 100}, {Freq: 0, MS: 60},
		{Freq: 1568, MS: 100}, {Freq: 0, MS: 60},
		{Freq: 1568, MS: 100}, {Freq: 0, MS: 200},
		{Freq: 1568, MS: 300}, {Freq: 0, MS: 60},
		{Freq: 1568, MS: 300}, {Freq: 0, MS: 60},
		{Freq: 1568, MS: 300}, {Freq: 0, MS: 200},
		{Freq: 1568, MS: 100}, {Freq: 0, MS: 60},
		{Freq: 1568, MS: 100}, {Freq: 0, MS: 60},
		{Freq: 1568, MS: 100},
	}

	// TuneHeaterTimeout reminds the operator the hotend has cooled while
	// paused and needs a confirm to reheat.
	TuneHeaterTimeout = []core.Note{
		{Freq: 880, MS: 250}, {Freq: 0, MS: 120}, {Freq: 880, MS: 250},
	}

	// TuneProbeFailed marks an aborted leveling run.
	TuneProbeFailed = []core.Note{
		{Freq: 740, MS: 150}, {Freq: 0, MS: 60},
		{Freq: 740, MS: 150}, {Freq: 0, MS: 60},
		{Freq: 740, MS: 500},
	}
)
