//go:build !tinygo

package core

// Hosted builds run single-threaded tests that set the clock explicitly,
// so a plain variable is enough.

var systemTicks uint32

func getSystemTicks() uint32 { return systemTicks }

func setSystemTicks(ticks uint32) { systemTicks = ticks }
