package recovery

import (
	"strings"
	"testing"

	"rekindle/core"
	"rekindle/sim"
)

func findCommand(cmds []sim.InjectedCommand, prefix string) int {
	for i, c := range cmds {
		if strings.HasPrefix(c.Text, prefix) {
			return i
		}
	}
	return -1
}

func TestResumeSequenceEndToEnd(t *testing.T) {
	core.SetTime(0)
	medium := newFakeMedium()
	engine := sim.NewEngine(sim.DefaultProfile())
	store := NewStore(engine, medium, StoreConfig{SaveIntervalMS: 1000, MinZChange: 0.5})

	r := store.Record()
	r.Validity.Bump()
	r.PosX, r.PosY, r.PosZ = 12.5, 30.0, 4.2
	r.PosE = 104.375
	r.FeedrateMMM = 1800
	r.BedTarget = 60
	r.HotendTarget[0] = 200
	r.FanSpeed[0] = 100
	r.LevelingEnabled = true
	r.FadeHeight = 10
	r.ElapsedSeconds = 900
	r.SetFilePath("/test.gco")
	r.FileOffset = 10240

	seq := NewSequencer(engine, store, SequencerConfig{
		TravelFeedMMM:  3000,
		DescendFeedMMM: 200,
		PurgeLength:    2,
		Babysteps:      true,
	})
	seq.Run()

	cmds := engine.Commands

	// Homing touches X and Y only, never Z.
	home := findCommand(cmds, "G28")
	if home < 0 {
		t.Fatal("no homing command")
	}
	if strings.Contains(cmds[home].Text, "Z") {
		t.Errorf("homing command homes Z: %q", cmds[home].Text)
	}
	if !strings.Contains(cmds[home].Text, "X") || !strings.Contains(cmds[home].Text, "Y") {
		t.Errorf("homing command misses XY: %q", cmds[home].Text)
	}

	// Leveling disabled before homing, restored after.
	offIdx := findCommand(cmds, "M420 S0")
	onIdx := findCommand(cmds, "M420 S1")
	if offIdx < 0 || onIdx < 0 || !(offIdx < home && home < onIdx) {
		t.Errorf("leveling off/home/on order wrong: off=%d home=%d on=%d", offIdx, home, onIdx)
	}

	// Both temperatures restored blocking, bed before hotend.
	bedWait := findCommand(cmds, "M190 S60")
	hotWait := findCommand(cmds, "M109 S200")
	if bedWait < 0 || hotWait < 0 {
		t.Fatal("blocking temperature restore missing")
	}
	if !cmds[bedWait].Blocking || !cmds[hotWait].Blocking {
		t.Error("temperature restore not synchronizing")
	}
	if bedWait > hotWait {
		t.Error("hotend wait issued before bed wait")
	}
	// Non-blocking targets precede the waits so both ramp together.
	if nb := findCommand(cmds, "M140 S60"); nb < 0 || nb > bedWait {
		t.Error("non-blocking bed target missing or late")
	}
	if nb := findCommand(cmds, "M104 S200"); nb < 0 || nb > hotWait {
		t.Error("non-blocking hotend target missing or late")
	}

	// XY travel happens, settles, then the slow Z descent.
	xy := findCommand(cmds, "G1 X12.500 Y30.000 F3000")
	zDown := findCommand(cmds, "G1 Z4.200 F200")
	if xy < 0 || zDown < 0 {
		t.Fatalf("travel commands missing (xy=%d z=%d): %+v", xy, zDown, cmds)
	}
	if xy > zDown {
		t.Error("Z descent before XY travel")
	}
	settle := -1
	for i := xy + 1; i < zDown; i++ {
		if cmds[i].Text == "M400" && cmds[i].Blocking {
			settle = i
		}
	}
	if settle < 0 {
		t.Error("no synchronize between XY travel and Z descent")
	}

	// Feed-rate and E origin restored without motion.
	if findCommand(cmds, "G1 F1800") < 0 {
		t.Error("feed-rate restore missing")
	}
	if findCommand(cmds, "G92.9 E104.37500") < 0 {
		t.Error("E origin restore missing")
	}

	// Persistence re-armed before the job restarts.
	if !store.Enabled() {
		t.Error("store not re-enabled")
	}

	// File reselected and playback resumed at the saved offset.
	sel := findCommand(cmds, "M23 /test.gco")
	res := findCommand(cmds, "M24 S10240 T900")
	if sel < 0 || res < 0 {
		t.Fatalf("file resume commands missing: %+v", cmds)
	}
	if !(sel < res) || res != len(cmds)-1 {
		t.Error("file select / resume must end the sequence in order")
	}

	// The simulated engine actually lands on the saved state.
	x, y, z, _ := engine.Position()
	if x != 12.5 || y != 30.0 || z != 4.2 {
		t.Errorf("final position (%v,%v,%v), want (12.5,30,4.2)", x, y, z)
	}
	if engine.FileOffset() != 10240 {
		t.Errorf("file offset = %d, want 10240", engine.FileOffset())
	}
	if !engine.AxisTrusted(core.AxisZ) {
		t.Error("Z not marked trusted after pretend-home")
	}
}

func TestResumeBabystepMeshCorrection(t *testing.T) {
	core.SetTime(0)
	medium := newFakeMedium()
	engine := sim.NewEngine(sim.DefaultProfile())
	// Mesh correction at the resume point differs from the correction
	// at home by an exact 0.125 mm.
	engine.Mesh = func(x, y float32) float32 {
		if x >= 50 {
			return 0.125
		}
		return 0
	}

	store := NewStore(engine, medium, StoreConfig{SaveIntervalMS: 1000, MinZChange: 0.5})
	r := store.Record()
	r.Validity.Bump()
	r.PosX, r.PosY, r.PosZ = 100, 0, 5
	r.HotendTarget[0] = 200
	r.SetFilePath("/m.gco")

	seq := NewSequencer(engine, store, SequencerConfig{
		TravelFeedMMM:  3000,
		DescendFeedMMM: 200,
		Babysteps:      true,
	})
	seq.Run()

	// diff = mesh(100,0) - mesh(0,0) = 0.125 mm; at 400 steps/mm that
	// is 50 whole steps.
	if got := engine.Babysteps(); got != 50 {
		t.Errorf("babysteps = %d, want 50", got)
	}

	// Settle dwell follows the correction.
	if findCommand(engine.Commands, "G4 P1000") < 0 {
		t.Error("settle dwell missing after babystep correction")
	}
}

func TestResumeInvalidRecordIsNoop(t *testing.T) {
	core.SetTime(0)
	medium := newFakeMedium()
	engine := sim.NewEngine(sim.DefaultProfile())
	store := NewStore(engine, medium, StoreConfig{})

	NewSequencer(engine, store, SequencerConfig{}).Run()
	if len(engine.Commands) != 0 {
		t.Errorf("invalid record produced commands: %+v", engine.Commands)
	}
}
