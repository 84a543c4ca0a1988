//go:build !tinygo

package core

// State stands in for saved interrupt state on hosted builds.
type State uintptr

// Hosted builds have no interrupt mask; the scheduler still calls through
// these so the tinygo build can substitute the real one.

func disableInterrupts() State { return 0 }

func restoreInterrupts(State) {}
