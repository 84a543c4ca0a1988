package recovery

import (
	"rekindle/core"
)

// StoreConfig tunes the periodic save gate.
type StoreConfig struct {
	// SaveIntervalMS is the minimum time between unforced writes.
	SaveIntervalMS uint32
	// MinZChange accepts an unforced write when Z has climbed more than
	// this past the last saved Z (keeps per-layer writes cheap).
	MinZChange float32
}

// Store owns the in-memory recovery record and its fixed storage region.
// Saves capture the full engine state; purge invalidates both the region
// and the memory copy.
type Store struct {
	engine core.Engine
	medium core.RecordMedium
	cfg    StoreConfig

	record  Record
	enabled bool

	lastSaveTime uint32
	lastSaveZ    float32

	buf [RecordSize]byte
}

// NewStore wires a store to the engine and the non-volatile region.
func NewStore(engine core.Engine, medium core.RecordMedium, cfg StoreConfig) *Store {
	s := &Store{engine: engine, medium: medium, cfg: cfg}
	s.Init()
	return s
}

// Init zeroes the in-memory record.
func (s *Store) Init() {
	s.record = Record{}
	s.lastSaveTime = core.GetTime()
	s.lastSaveZ = 0
}

// Enable arms periodic saves. Resume re-arms the store near its end so a
// second outage during a resume is itself recoverable.
func (s *Store) Enable() { s.enabled = true }

// Disable stops saves without touching the stored record.
func (s *Store) Disable() { s.enabled = false }

// Enabled reports whether saves are armed.
func (s *Store) Enabled() bool { return s.enabled }

// Record exposes the in-memory record (read-mostly; the sequencer reads
// it, the store mutates it).
func (s *Store) Record() *Record { return &s.record }

// Save writes a snapshot when forced, or when the save interval has
// elapsed, or when Z has climbed past the minimum change. Write failure
// is logged only; the next accepted save is the retry.
func (s *Store) Save(force bool, zRaise float32) {
	if !s.enabled {
		return
	}

	now := core.GetTime()
	_, _, z, _ := s.engine.Position()

	elapsed := now - s.lastSaveTime
	if !force &&
		elapsed < core.TimerFromMS(s.cfg.SaveIntervalMS) &&
		!(z > s.lastSaveZ+s.cfg.MinZChange) {
		return
	}

	s.capture(zRaise)
	s.record.Validity.Bump()

	s.lastSaveTime = now
	s.lastSaveZ = z

	if err := s.record.Marshal(s.buf[:]); err != nil {
		core.DebugPrintln("recovery: marshal: " + err.Error())
		return
	}
	if err := s.medium.Write(s.buf[:]); err != nil {
		core.DebugPrintln("recovery: write: " + err.Error())
		return
	}
	core.RecordEvent(core.EvtSave, uint32(s.record.Validity.Head), s.record.FileOffset)
}

// capture copies the full engine state into the record.
func (s *Store) capture(zRaise float32) {
	e := s.engine
	r := &s.record

	r.PosX, r.PosY, r.PosZ, r.PosE = e.Position()
	r.FeedrateMMM = uint16(e.FeedrateMMM())
	r.ZRaise = zRaise

	r.HotendTarget[0] = int16(e.HotendTarget())
	r.BedTarget = int16(e.BedTarget())
	r.FanSpeed[0] = e.FanPercent()

	lvl := e.LevelingState()
	r.LevelingEnabled = lvl.Active
	r.FadeHeight = lvl.FadeHeight

	vol := e.VolumetricState()
	r.VolumetricEnabled = vol.Enabled
	r.VolumetricDiameter[0] = vol.FilamentDiameter

	r.ActiveExtruder = uint8(e.ActiveExtruder())

	ret := e.RetractState()
	r.Retracted[0] = ret.Length > 0
	r.RetractLength[0] = ret.Length
	r.RetractHop = ret.ZRaise

	r.ElapsedSeconds = e.ElapsedSeconds()
	r.ProgressPercent = e.ProgressPercent()

	r.RelativeAxisFlags = e.AxisRelativeFlags()
	r.Dryrun = e.Dryrun()
	r.ColdExtrusionOK = e.ColdExtrusionAllowed()

	r.SetFilePath(e.PrintedFilePath())
	r.FileOffset = e.FileOffset()
}

// Load raw-copies the storage region into the in-memory record. An
// erased region reads as an empty record; no other validation happens
// here.
func (s *Store) Load() {
	if err := s.medium.Read(s.buf[:]); err != nil {
		core.DebugPrintln("recovery: read: " + err.Error())
		s.record = Record{}
		return
	}
	if erased(s.buf[:]) {
		s.record = Record{}
		return
	}
	if err := s.record.Unmarshal(s.buf[:]); err != nil {
		s.record = Record{}
	}
}

// erased reports whether the region holds a NOR-flash erase pattern.
// Erased flash reads 0xFF in every byte, which would otherwise scan as
// matching validity marks (0xFF == 0xFF, non-zero).
func erased(buf []byte) bool {
	for _, b := range buf {
		if b != 0xFF {
			return false
		}
	}
	return true
}

// Valid reports whether the loaded record is usable.
func (s *Store) Valid() bool {
	return s.record.Validity.Valid()
}

// Purge erases the storage region when the loaded record is valid, then
// zeroes the memory copy regardless.
func (s *Store) Purge() {
	if s.Valid() {
		if err := s.medium.Erase(); err != nil {
			core.DebugPrintln("recovery: erase: " + err.Error())
		}
	}
	s.record = Record{}
}

// CheckAtBoot loads the stored record and, when valid, injects the single
// start-recovery command. An invalid or absent record is a normal cold
// start, not an error.
func (s *Store) CheckAtBoot() {
	if !s.medium.Ready() {
		return
	}
	s.Load()
	if !s.Valid() {
		return
	}
	s.engine.Inject("M1000 S")
}
