// Package recovery implements power-loss resilience: the durable resume
// snapshot, the supply-voltage outage detector with its emergency
// sequence, and the boot-time resume sequencer.
package recovery

import (
	"errors"
	"math"
)

// Extruders and Fans fix the snapshot layout. The record is a raw byte
// image of a fixed region; changing these changes the on-flash layout.
const (
	Extruders = 1
	Fans      = 1

	// FilePathMax bounds the stored media path, including its NUL padding.
	FilePathMax = 64
)

// RecordSize is the serialized size of a Record in bytes.
const RecordSize = 2 + // validity head/foot
	4*4 + // X Y Z E
	2 + // feedrate
	4 + // pending Z raise
	2*Extruders + // hotend targets
	2 + // bed target
	Fans + // fan speeds
	1 + 4 + // leveling enabled + fade height
	1 + 4*Extruders + // volumetric enabled + diameters
	1 + // active extruder
	Extruders + 4*Extruders + 4 + // retracted flags, lengths, hop
	4 + // elapsed seconds
	1 + // progress percent
	1 + 1 + 1 + // relative-axis flags, dryrun, cold extrusion
	FilePathMax +
	4 // file byte offset

var ErrBufferTooSmall = errors.New("recovery: buffer smaller than record")

// Validity is the single-slot versioning scheme: a record is valid iff
// head equals foot and both are non-zero. It is not a corruption check;
// partial writes are not detected.
type Validity struct {
	Head uint8
	Foot uint8
}

// Valid reports whether the sentinels mark a usable record.
func (v Validity) Valid() bool {
	return v.Head == v.Foot && v.Head != 0
}

// Bump advances to the next non-zero sequence value and stamps both
// sentinels with it. Wraps past 255 without ever settling on zero.
func (v *Validity) Bump() {
	v.Head++
	if v.Head == 0 {
		v.Head = 1
	}
	v.Foot = v.Head
}

// Clear invalidates the sentinels.
func (v *Validity) Clear() {
	v.Head = 0
	v.Foot = 0
}

// Record is the persisted machine snapshot. Field order is the storage
// layout and must not change.
type Record struct {
	Validity Validity

	PosX float32
	PosY float32
	PosZ float32
	PosE float32

	FeedrateMMM uint16
	ZRaise      float32

	HotendTarget [Extruders]int16
	BedTarget    int16
	FanSpeed     [Fans]uint8

	LevelingEnabled bool
	FadeHeight      float32

	VolumetricEnabled  bool
	VolumetricDiameter [Extruders]float32

	ActiveExtruder uint8

	Retracted     [Extruders]bool
	RetractLength [Extruders]float32
	RetractHop    float32

	ElapsedSeconds  uint32
	ProgressPercent uint8

	RelativeAxisFlags  uint8
	Dryrun             bool
	ColdExtrusionOK    bool

	FilePath   [FilePathMax]byte
	FileOffset uint32
}

// SetFilePath stores a path, truncating to the fixed capacity and
// zero-padding the remainder.
func (r *Record) SetFilePath(path string) {
	n := copy(r.FilePath[:], path)
	for i := n; i < FilePathMax; i++ {
		r.FilePath[i] = 0
	}
	if n == FilePathMax {
		r.FilePath[FilePathMax-1] = 0
	}
}

// FilePathString returns the stored path up to its NUL terminator.
func (r *Record) FilePathString() string {
	for i, b := range r.FilePath {
		if b == 0 {
			return string(r.FilePath[:i])
		}
	}
	return string(r.FilePath[:])
}

type encoder struct {
	buf []byte
	pos int
}

func (e *encoder) u8(v uint8) {
	e.buf[e.pos] = v
	e.pos++
}

func (e *encoder) u16(v uint16) {
	e.buf[e.pos] = byte(v)
	e.buf[e.pos+1] = byte(v >> 8)
	e.pos += 2
}

func (e *encoder) u32(v uint32) {
	e.buf[e.pos] = byte(v)
	e.buf[e.pos+1] = byte(v >> 8)
	e.buf[e.pos+2] = byte(v >> 16)
	e.buf[e.pos+3] = byte(v >> 24)
	e.pos += 4
}

func (e *encoder) f32(v float32) { e.u32(math.Float32bits(v)) }

func (e *encoder) flag(v bool) {
	if v {
		e.u8(1)
	} else {
		e.u8(0)
	}
}

type decoder struct {
	buf []byte
	pos int
}

func (d *decoder) u8() uint8 {
	v := d.buf[d.pos]
	d.pos++
	return v
}

func (d *decoder) u16() uint16 {
	v := uint16(d.buf[d.pos]) | uint16(d.buf[d.pos+1])<<8
	d.pos += 2
	return v
}

func (d *decoder) u32() uint32 {
	v := uint32(d.buf[d.pos]) |
		uint32(d.buf[d.pos+1])<<8 |
		uint32(d.buf[d.pos+2])<<16 |
		uint32(d.buf[d.pos+3])<<24
	d.pos += 4
	return v
}

func (d *decoder) f32() float32 { return math.Float32frombits(d.u32()) }

func (d *decoder) flag() bool { return d.u8() != 0 }

// Marshal serializes the record into buf using the fixed little-endian
// layout. buf must hold at least RecordSize bytes. No allocation.
func (r *Record) Marshal(buf []byte) error {
	if len(buf) < RecordSize {
		return ErrBufferTooSmall
	}
	e := encoder{buf: buf}

	e.u8(r.Validity.Head)
	e.u8(r.Validity.Foot)

	e.f32(r.PosX)
	e.f32(r.PosY)
	e.f32(r.PosZ)
	e.f32(r.PosE)

	e.u16(r.FeedrateMMM)
	e.f32(r.ZRaise)

	for i := 0; i < Extruders; i++ {
		e.u16(uint16(r.HotendTarget[i]))
	}
	e.u16(uint16(r.BedTarget))
	for i := 0; i < Fans; i++ {
		e.u8(r.FanSpeed[i])
	}

	e.flag(r.LevelingEnabled)
	e.f32(r.FadeHeight)

	e.flag(r.VolumetricEnabled)
	for i := 0; i < Extruders; i++ {
		e.f32(r.VolumetricDiameter[i])
	}

	e.u8(r.ActiveExtruder)

	for i := 0; i < Extruders; i++ {
		e.flag(r.Retracted[i])
	}
	for i := 0; i < Extruders; i++ {
		e.f32(r.RetractLength[i])
	}
	e.f32(r.RetractHop)

	e.u32(r.ElapsedSeconds)
	e.u8(r.ProgressPercent)

	e.u8(r.RelativeAxisFlags)
	e.flag(r.Dryrun)
	e.flag(r.ColdExtrusionOK)

	copy(buf[e.pos:e.pos+FilePathMax], r.FilePath[:])
	e.pos += FilePathMax

	e.u32(r.FileOffset)
	return nil
}

// Unmarshal deserializes a record image produced by Marshal.
func (r *Record) Unmarshal(buf []byte) error {
	if len(buf) < RecordSize {
		return ErrBufferTooSmall
	}
	d := decoder{buf: buf}

	r.Validity.Head = d.u8()
	r.Validity.Foot = d.u8()

	r.PosX = d.f32()
	r.PosY = d.f32()
	r.PosZ = d.f32()
	r.PosE = d.f32()

	r.FeedrateMMM = d.u16()
	r.ZRaise = d.f32()

	for i := 0; i < Extruders; i++ {
		r.HotendTarget[i] = int16(d.u16())
	}
	r.BedTarget = int16(d.u16())
	for i := 0; i < Fans; i++ {
		r.FanSpeed[i] = d.u8()
	}

	r.LevelingEnabled = d.flag()
	r.FadeHeight = d.f32()

	r.VolumetricEnabled = d.flag()
	for i := 0; i < Extruders; i++ {
		r.VolumetricDiameter[i] = d.f32()
	}

	r.ActiveExtruder = d.u8()

	for i := 0; i < Extruders; i++ {
		r.Retracted[i] = d.flag()
	}
	for i := 0; i < Extruders; i++ {
		r.RetractLength[i] = d.f32()
	}
	r.RetractHop = d.f32()

	r.ElapsedSeconds = d.u32()
	r.ProgressPercent = d.u8()

	r.RelativeAxisFlags = d.u8()
	r.Dryrun = d.flag()
	r.ColdExtrusionOK = d.flag()

	copy(r.FilePath[:], buf[d.pos:d.pos+FilePathMax])
	d.pos += FilePathMax

	r.FileOffset = d.u32()
	return nil
}
