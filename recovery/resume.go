package recovery

import (
	"rekindle/core"
)

// SequencerConfig tunes the resume motion.
type SequencerConfig struct {
	// TravelFeedMMM is the XY travel feed-rate back to the saved position.
	TravelFeedMMM int
	// DescendFeedMMM is the slow feed-rate for the final Z descent.
	DescendFeedMMM int
	// PurgeLength is extruded before travel to re-prime the nozzle, mm.
	PurgeLength float32
	// Babysteps enables the step-domain mesh correction (step 9); on
	// machines without babystepping the step is skipped entirely.
	Babysteps bool
}

// Sequencer replays a validated record as a one-way ordered command
// sequence. No command's success is verified; failures surface through
// the engine's own fault path.
type Sequencer struct {
	engine core.Engine
	store  *Store
	cfg    SequencerConfig
}

// NewSequencer wires a sequencer to the engine and the snapshot store.
func NewSequencer(engine core.Engine, store *Store, cfg SequencerConfig) *Sequencer {
	return &Sequencer{engine: engine, store: store, cfg: cfg}
}

// Run resumes the print described by the store's loaded record. The
// caller must have checked validity; Run on an invalid record is a no-op.
func (q *Sequencer) Run() {
	r := q.store.Record()
	if !r.Validity.Valid() {
		return
	}
	e := q.engine

	// 1. Leveling off, so stale compensation cannot corrupt homing.
	e.Inject("M420 S0 Z0")

	// 2. Extrusion origin to zero.
	e.Inject("G92.9 E0")

	// 3. Home X and Y only with a transient raise. Z is never homed:
	// the nozzle would be driven into the printed part. Afterward all
	// axes are marked homed so absolute moves are accepted.
	e.InjectSync("G28R2 XY")
	e.SetAllHomed()

	// 4. Targets restored without blocking first so both heaters ramp
	// together, then re-issued blocking, bed before hotend.
	bed := core.Itoa(int(r.BedTarget))
	hot := core.Itoa(int(r.HotendTarget[0]))
	if r.BedTarget > 0 {
		e.Inject("M140 S" + bed)
	}
	if r.HotendTarget[0] > 0 {
		e.Inject("M104 S" + hot)
	}
	if r.BedTarget > 0 {
		e.InjectSync("M190 S" + bed)
	}
	if r.HotendTarget[0] > 0 {
		e.InjectSync("M109 S" + hot)
	}

	// 5. Volumetric state and the previously active tool.
	if r.VolumetricEnabled {
		e.Inject("M200 S1 D" + core.Ftoa(r.VolumetricDiameter[0], 2))
	}
	if r.ActiveExtruder > 0 {
		e.Inject("T" + core.Itoa(int(r.ActiveExtruder)) + " S")
	}

	// 6. Fans and retract state.
	e.Inject("M106 S" + core.Itoa(int(r.FanSpeed[0])*255/100))
	if r.Retracted[0] {
		e.Inject("G10")
	}

	// 7. Leveling back on, now that home state is consistent.
	if r.LevelingEnabled {
		e.Inject("M420 S1 Z" + core.Ftoa(r.FadeHeight, 1))
	}

	// 8. Un-retract and purge to re-prime.
	prime := q.cfg.PurgeLength + r.RetractLength[0]
	if prime > 0 {
		e.Inject("G1 F200 E" + core.Ftoa(prime, 2))
	}

	// 9. Mesh Z correction applied in the step domain: the mesh offset
	// at the resume position minus the offset where homing left us,
	// rounded away from zero to whole steps, then a settle dwell.
	if q.cfg.Babysteps {
		hx, hy, _, _ := e.Position()
		diff := e.MeshZCorrection(r.PosX, r.PosY) - e.MeshZCorrection(hx, hy)
		steps := e.MMToWholeStepsZ(diff)
		if steps != 0 {
			e.BabystepZ(steps)
		}
		e.InjectSync("M400\nG4 P1000")
	}

	// 10. Back over the part, settle, then descend slowly.
	e.Inject("G1 X" + core.Ftoa(r.PosX, 3) +
		" Y" + core.Ftoa(r.PosY, 3) +
		" F" + core.Itoa(q.cfg.TravelFeedMMM))
	e.InjectSync("M400")
	e.Inject("G1 Z" + core.Ftoa(r.PosZ, 3) +
		" F" + core.Itoa(q.cfg.DescendFeedMMM))

	// 11. Feed-rate and E position restored without motion.
	e.Inject("G1 F" + core.Itoa(int(r.FeedrateMMM)))
	e.Inject("G92.9 E" + core.Ftoa(r.PosE, 5))

	// 12. Re-arm persistence: a second outage during the resumed print
	// is itself recoverable.
	q.store.Enable()

	// 13. Reselect the file and resume at the saved offset and elapsed
	// time.
	e.Inject("M23 " + r.FilePathString())
	e.Inject("M24 S" + core.Utoa(r.FileOffset) +
		" T" + core.Utoa(r.ElapsedSeconds))
}
