package panel

import (
	"rekindle/core"
)

// FramerState tracks progress through one inbound frame.
type FramerState uint8

const (
	StateWaitSync1 FramerState = iota
	StateWaitSync2
	StateReadLength
	StateReadPayload
	StateComplete
)

// Frame is one parsed inbound frame. Payload aliases the framer's fixed
// buffer and is only valid until Release.
type Frame struct {
	Length  uint8  // body length as reported on the wire
	Cmd     byte   // CmdWrite or CmdRead
	Addr    uint16 // register address, big-endian on the wire
	Payload []byte // bytes after the address
}

// IsKey reports whether the frame is a key-event reply.
func (f Frame) IsKey() bool {
	return f.Cmd == CmdRead && IsKeyAddress(f.Addr)
}

// KeyValue extracts the key code from a key-event reply. Replies carry a
// word-count byte before the 16-bit value.
func (f Frame) KeyValue() uint16 {
	if len(f.Payload) < 3 {
		return 0
	}
	return uint16(f.Payload[1])<<8 | uint16(f.Payload[2])
}

// Value extracts the first 16-bit value of a read reply.
func (f Frame) Value() uint16 {
	return f.KeyValue()
}

// Framer parses the panel byte stream one byte at a time. A single frame
// is held until the consumer releases it; bytes arriving meanwhile stay
// queued in the input buffer. All storage is fixed-capacity.
type Framer struct {
	state  FramerState
	buf    [PayloadMax]byte
	length int // body length expected
	got    int // body bytes accumulated
	ready  bool

	// syncDeadline bounds the wait for the second sync byte. Checked on
	// every Feed call so a stalled stream still resyncs and the tick loop
	// keeps servicing the watchdog.
	syncDeadline uint32
}

// NewFramer returns a parser in WaitSync1.
func NewFramer() *Framer {
	return &Framer{state: StateWaitSync1}
}

// State returns the current parser state.
func (p *Framer) State() FramerState {
	return p.state
}

// Ready reports whether a complete frame awaits consumption.
func (p *Framer) Ready() bool {
	return p.ready
}

// Frame returns the pending frame. Only valid while Ready.
func (p *Framer) Frame() (Frame, bool) {
	if !p.ready {
		return Frame{}, false
	}
	return Frame{
		Length:  uint8(p.length),
		Cmd:     p.buf[0],
		Addr:    uint16(p.buf[1])<<8 | uint16(p.buf[2]),
		Payload: p.buf[3:p.length],
	}, true
}

// Release discards the pending frame and re-arms the parser.
func (p *Framer) Release() {
	p.ready = false
	p.state = StateWaitSync1
}

// Reset drops any partial frame and returns to WaitSync1.
func (p *Framer) Reset() {
	p.ready = false
	p.got = 0
	p.state = StateWaitSync1
}

// Feed consumes bytes from input until a frame completes or the input
// drains. While a completed frame is pending no bytes are consumed.
func (p *Framer) Feed(input InputBuffer) {
	p.checkSyncTimeout()

	for !p.ready && input.Available() > 0 {
		b := input.Data()[0]
		input.Pop(1)
		p.feedByte(b)
	}
}

// checkSyncTimeout aborts a stalled second-sync wait.
func (p *Framer) checkSyncTimeout() {
	if p.state != StateWaitSync2 {
		return
	}
	if int32(core.GetTime()-p.syncDeadline) >= 0 {
		core.RecordEvent(core.EvtResync, uint32(p.state), 0)
		p.state = StateWaitSync1
	}
}

func (p *Framer) feedByte(b byte) {
	switch p.state {
	case StateWaitSync1:
		if b == Sync1 {
			p.state = StateWaitSync2
			p.syncDeadline = core.GetTime() + core.TimerFromMS(SyncWaitMS)
		}

	case StateWaitSync2:
		if int32(core.GetTime()-p.syncDeadline) >= 0 {
			core.RecordEvent(core.EvtResync, uint32(p.state), 0)
			p.state = StateWaitSync1
			// The late byte may itself start a new frame.
			p.feedByte(b)
			return
		}
		if b == Sync2 {
			p.state = StateReadLength
		} else {
			p.state = StateWaitSync1
		}

	case StateReadLength:
		// Body must hold at least command + address and fit the buffer.
		if b < 3 || int(b) > PayloadMax {
			core.RecordEvent(core.EvtResync, uint32(p.state), uint32(b))
			p.state = StateWaitSync1
			return
		}
		p.length = int(b)
		p.got = 0
		p.state = StateReadPayload

	case StateReadPayload:
		p.buf[p.got] = b
		p.got++
		if p.got == p.length {
			p.ready = true
			p.state = StateComplete
			core.RecordEvent(core.EvtFrameRx,
				uint32(p.buf[0]),
				uint32(p.buf[1])<<8|uint32(p.buf[2]))
		}

	case StateComplete:
		// Frame pending; caller should not feed here (Feed guards it).
	}
}
