package core

import "sync/atomic"

// Terminal halt state. Entered at most once per boot; the emergency
// sequence ends here. The flag is an atomic CAS so the interrupt-context
// outage path and the main loop cannot both win.

var (
	halted     uint32 // atomic bool (0 = running, 1 = halted)
	haltReason string // written only by the CAS winner
)

// Halt enters the terminal halt state with a fixed message. Only the first
// caller's reason is kept. All safety outputs are driven to their default
// state. Returns true if this call performed the halt.
func Halt(reason string) bool {
	if !atomic.CompareAndSwapUint32(&halted, 0, 1) {
		return false
	}
	haltReason = reason
	ShutdownAllOutputs()
	RecordEvent(EvtHalt, 0, 0)
	DebugPrintln("halt: " + reason)
	return true
}

// IsHalted reports whether the terminal halt state was entered.
func IsHalted() bool {
	return atomic.LoadUint32(&halted) != 0
}

// HaltReason returns the message of the first Halt call, or "".
func HaltReason() string {
	if !IsHalted() {
		return ""
	}
	return haltReason
}

// ClearHalt resets the halt state (tests only; a real boot starts fresh).
func ClearHalt() {
	haltReason = ""
	atomic.StoreUint32(&halted, 0)
}
