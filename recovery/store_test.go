package recovery

import (
	"errors"
	"testing"

	"rekindle/core"
	"rekindle/sim"
)

type fakeMedium struct {
	data     []byte
	ready    bool
	writes   int
	erases   int
	writeErr error
}

func newFakeMedium() *fakeMedium {
	return &fakeMedium{data: make([]byte, RecordSize), ready: true}
}

func (m *fakeMedium) Ready() bool { return m.ready }

func (m *fakeMedium) Read(buf []byte) error {
	copy(buf, m.data)
	return nil
}

func (m *fakeMedium) Write(data []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes++
	m.data = append(m.data[:0], data...)
	return nil
}

func (m *fakeMedium) Erase() error {
	m.erases++
	for i := range m.data {
		m.data[i] = 0
	}
	return nil
}

func newStoreForTest(medium *fakeMedium) (*Store, *sim.Engine) {
	engine := sim.NewEngine(sim.DefaultProfile())
	store := NewStore(engine, medium, StoreConfig{
		SaveIntervalMS: 1000,
		MinZChange:     0.5,
	})
	store.Enable()
	return store, engine
}

func TestSaveIntervalBoundary(t *testing.T) {
	core.SetTime(0)
	medium := newFakeMedium()
	store, _ := newStoreForTest(medium)

	// One tick short of the interval: rejected.
	core.SetTime(core.TimerFromMS(1000) - 1)
	store.Save(false, 0)
	if medium.writes != 0 {
		t.Fatalf("writes = %d before interval, want 0", medium.writes)
	}

	// Exactly the interval: accepted.
	core.SetTime(core.TimerFromMS(1000))
	store.Save(false, 0)
	if medium.writes != 1 {
		t.Fatalf("writes = %d at interval boundary, want 1", medium.writes)
	}
}

func TestSaveZChangeBoundary(t *testing.T) {
	core.SetTime(0)
	medium := newFakeMedium()
	store, engine := newStoreForTest(medium)

	// Z exactly at the threshold: rejected (strict comparison).
	engine.Inject("G92 Z0.5")
	core.SetTime(1) // interval not elapsed
	store.Save(false, 0)
	if medium.writes != 0 {
		t.Fatalf("writes = %d at exact Z threshold, want 0", medium.writes)
	}

	// Just above: accepted.
	engine.Inject("G92 Z0.51")
	store.Save(false, 0)
	if medium.writes != 1 {
		t.Fatalf("writes = %d above Z threshold, want 1", medium.writes)
	}
}

func TestSaveForceAndDisable(t *testing.T) {
	core.SetTime(0)
	medium := newFakeMedium()
	store, _ := newStoreForTest(medium)

	store.Save(true, 1.5)
	if medium.writes != 1 {
		t.Fatalf("forced save not written")
	}
	if store.Record().ZRaise != 1.5 {
		t.Errorf("ZRaise = %v, want 1.5", store.Record().ZRaise)
	}

	store.Disable()
	store.Save(true, 0)
	if medium.writes != 1 {
		t.Error("save accepted while disabled")
	}
}

func TestSaveBumpsValidity(t *testing.T) {
	core.SetTime(0)
	medium := newFakeMedium()
	store, _ := newStoreForTest(medium)

	for i := 1; i <= 3; i++ {
		store.Save(true, 0)
		v := store.Record().Validity
		if !v.Valid() {
			t.Fatalf("save %d: record not valid", i)
		}
		if int(v.Head) != i {
			t.Errorf("save %d: head = %d", i, v.Head)
		}
	}
}

func TestSaveWriteFailureLoggedOnly(t *testing.T) {
	core.SetTime(0)
	medium := newFakeMedium()
	medium.writeErr = errors.New("flash worn")
	store, _ := newStoreForTest(medium)

	// Must not panic or surface the error.
	store.Save(true, 0)
	if medium.writes != 0 {
		t.Error("write counted despite failure")
	}
}

func TestLoadAndPurge(t *testing.T) {
	core.SetTime(0)
	medium := newFakeMedium()
	store, engine := newStoreForTest(medium)

	engine.StartFile("/part.gco")
	engine.Inject("G1 X5 Y6 Z7 F900")
	store.Save(true, 0)

	// A second store sees the persisted snapshot.
	store2, _ := newStoreForTest(medium)
	store2.Load()
	if !store2.Valid() {
		t.Fatal("loaded record invalid")
	}
	r := store2.Record()
	if r.PosX != 5 || r.PosY != 6 || r.PosZ != 7 {
		t.Errorf("loaded position (%v,%v,%v), want (5,6,7)", r.PosX, r.PosY, r.PosZ)
	}
	if r.FilePathString() != "/part.gco" {
		t.Errorf("loaded path %q", r.FilePathString())
	}

	store2.Purge()
	if medium.erases != 1 {
		t.Errorf("erases = %d after purge of valid record, want 1", medium.erases)
	}
	if store2.Valid() {
		t.Error("record still valid after purge")
	}

	// Purging an already-invalid record does not erase again.
	store2.Purge()
	if medium.erases != 1 {
		t.Errorf("erases = %d after second purge, want 1", medium.erases)
	}
}

func TestCheckAtBoot(t *testing.T) {
	core.SetTime(0)
	medium := newFakeMedium()
	store, engine := newStoreForTest(medium)

	// Cold start: zeroed region, no resume offer.
	store.CheckAtBoot()
	if len(engine.Commands) != 0 {
		t.Fatalf("cold boot injected %v", engine.Commands)
	}

	// Valid snapshot: exactly one start-recovery command.
	store.Save(true, 0)
	boot, bootEngine := newStoreForTest(medium)
	boot.CheckAtBoot()
	if len(bootEngine.Commands) != 1 || bootEngine.Commands[0].Text != "M1000 S" {
		t.Fatalf("boot commands = %v, want [M1000 S]", bootEngine.Commands)
	}

	// Medium not ready: silent skip.
	medium.ready = false
	late, lateEngine := newStoreForTest(medium)
	late.CheckAtBoot()
	if len(lateEngine.Commands) != 0 {
		t.Error("resume offered with medium not ready")
	}
}

func TestCheckAtBootErasedFlash(t *testing.T) {
	core.SetTime(0)
	medium := newFakeMedium()
	// NOR flash erases to 0xFF, not zero. The pattern must scan as an
	// empty slot, not as matching validity marks.
	for i := range medium.data {
		medium.data[i] = 0xFF
	}
	store, engine := newStoreForTest(medium)

	store.CheckAtBoot()
	if store.Valid() {
		t.Error("all-0xFF region reports a valid record")
	}
	if len(engine.Commands) != 0 {
		t.Fatalf("erased flash injected %v", engine.Commands)
	}
}

var _ core.RecordMedium = (*fakeMedium)(nil)
