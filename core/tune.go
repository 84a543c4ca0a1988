// Non-blocking tune playback on the buzzer, sequenced by the scheduler.
package core

// Note is one element of a tune. Freq 0 is a rest.
type Note struct {
	Freq uint16 // Hz
	MS   uint16 // duration in milliseconds
}

var (
	tuneNotes []Note
	tuneIndex int
	tuneTimer Timer
)

// PlayTune starts playing notes in sequence on the registered tone driver.
// A tune already in progress is replaced. No-op when no driver is set.
func PlayTune(notes []Note) {
	if Tone() == nil || len(notes) == 0 {
		return
	}

	CancelTimer(&tuneTimer)
	tuneNotes = notes
	tuneIndex = 0

	startTuneNote()
	tuneTimer.WakeTime = GetTime() + TimerFromMS(uint32(notes[0].MS))
	tuneTimer.Handler = tuneEvent
	ScheduleTimer(&tuneTimer)
}

// StopTune silences the buzzer and cancels any queued notes.
func StopTune() {
	CancelTimer(&tuneTimer)
	tuneNotes = nil
	if td := Tone(); td != nil {
		td.Stop()
	}
}

func startTuneNote() {
	td := Tone()
	if td == nil {
		return
	}
	n := tuneNotes[tuneIndex]
	if n.Freq == 0 {
		td.Stop()
	} else {
		td.SetTone(n.Freq)
	}
}

func tuneEvent(t *Timer) uint8 {
	tuneIndex++
	if tuneIndex >= len(tuneNotes) {
		tuneNotes = nil
		if td := Tone(); td != nil {
			td.Stop()
		}
		return SF_DONE
	}
	startTuneNote()
	t.WakeTime += TimerFromMS(uint32(tuneNotes[tuneIndex].MS))
	return SF_RESCHEDULE
}
