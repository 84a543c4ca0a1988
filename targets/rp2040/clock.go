//go:build rp2040 || rp2350

package main

import (
	"runtime/volatile"
	"unsafe"

	"rekindle/core"
)

// RP2040/RP2350 timer peripheral: a 64-bit microsecond counter at 1MHz.
const (
	timerBase     = 0x40054000
	timerTIMERAWH = timerBase + 0x08
	timerTIMERAWL = timerBase + 0x0C
)

var (
	timerRAWH = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWH)))
	timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))
)

// hardwareMicros reads the low 32 bits of the microsecond counter.
func hardwareMicros() uint32 {
	return timerRAWL.Get()
}

// hardwareUptime reads the full 64-bit counter. High word is read twice
// to detect a rollover mid-read.
func hardwareUptime() uint64 {
	for {
		high1 := timerRAWH.Get()
		low := timerRAWL.Get()
		high2 := timerRAWH.Get()
		if high1 == high2 {
			return (uint64(high1) << 32) | uint64(low)
		}
	}
}

// updateSystemTime feeds the scheduler clock from the hardware timer.
// The core clock runs in milliseconds.
func updateSystemTime() {
	core.SetTime(uint32(hardwareUptime() / 1000))
}
