package core

// TimerFreq is the tick rate of the system clock. Targets drive the tick
// counter from their hardware timer; the host pump derives it from wall time.
const TimerFreq = 12000000 // 12MHz

// GetTime returns the current system time in timer ticks.
func GetTime() uint32 {
	return getSystemTicks()
}

// SetTime sets the current system time (hardware tick hook / tests).
func SetTime(ticks uint32) {
	setSystemTicks(ticks)
}

// TimerFromUS converts microseconds to timer ticks.
func TimerFromUS(us uint32) uint32 {
	return (us * TimerFreq) / 1000000
}

// TimerFromMS converts milliseconds to timer ticks.
func TimerFromMS(ms uint32) uint32 {
	return ms * (TimerFreq / 1000)
}

// TimerToMS converts timer ticks to milliseconds.
func TimerToMS(ticks uint32) uint32 {
	return ticks / (TimerFreq / 1000)
}

// Millis returns the current system time in milliseconds.
func Millis() uint32 {
	return TimerToMS(GetTime())
}

// TimerInit initializes the system timer.
func TimerInit() {
	setSystemTicks(0)
}

// ProcessTimers runs all due scheduled timers.
func ProcessTimers() {
	currentTime = GetTime()
	TimerDispatch()
}
