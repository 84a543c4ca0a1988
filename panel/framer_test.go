package panel

import (
	"testing"

	"rekindle/core"
)

func feedBytes(p *Framer, data []byte) {
	in := NewSliceInputBuffer(data)
	p.Feed(in)
}

func TestFramerParsesReadRequest(t *testing.T) {
	core.SetTime(0)
	p := NewFramer()

	feedBytes(p, []byte{0x5A, 0xA5, 0x04, 0x83, 0x00, 0x14, 0x01})

	if !p.Ready() {
		t.Fatal("frame not ready")
	}
	f, ok := p.Frame()
	if !ok {
		t.Fatal("Frame() returned !ok while ready")
	}
	if f.Length != 4 {
		t.Errorf("Length = %d, want 4", f.Length)
	}
	if f.Cmd != CmdRead {
		t.Errorf("Cmd = %#x, want 0x83", f.Cmd)
	}
	if f.Addr != 0x0014 {
		t.Errorf("Addr = %#x, want 0x0014", f.Addr)
	}
	if len(f.Payload) != 1 || f.Payload[0] != 0x01 {
		t.Errorf("Payload = %v, want [0x01]", f.Payload)
	}
}

func TestFramerSecondSyncTimeout(t *testing.T) {
	core.SetTime(0)
	p := NewFramer()

	feedBytes(p, []byte{0x5A})
	if p.State() != StateWaitSync2 {
		t.Fatalf("state = %d, want WaitSync2", p.State())
	}

	// Second sync byte arrives 501 ms later: frame aborted, resync.
	core.SetTime(core.TimerFromMS(501))
	feedBytes(p, []byte{0xA5})

	if p.State() != StateWaitSync1 {
		t.Errorf("state = %d, want WaitSync1 after timeout", p.State())
	}
	if p.Ready() {
		t.Error("frame ready after timed-out sync")
	}

	// A fresh, prompt frame still parses.
	feedBytes(p, []byte{0x5A, 0xA5, 0x04, 0x83, 0x00, 0x14, 0x01})
	if !p.Ready() {
		t.Error("parser did not recover after resync")
	}
}

func TestFramerTimeoutWithoutBytes(t *testing.T) {
	core.SetTime(0)
	p := NewFramer()

	feedBytes(p, []byte{0x5A})
	core.SetTime(core.TimerFromMS(501))

	// Feed with an empty input still services the timeout.
	feedBytes(p, nil)
	if p.State() != StateWaitSync1 {
		t.Errorf("state = %d, want WaitSync1 after idle timeout", p.State())
	}
}

func TestFramerSyncMismatch(t *testing.T) {
	core.SetTime(0)
	p := NewFramer()

	feedBytes(p, []byte{0x5A, 0x42})
	if p.State() != StateWaitSync1 {
		t.Errorf("state = %d, want WaitSync1 after sync mismatch", p.State())
	}
}

func TestFramerRejectsOversizedLength(t *testing.T) {
	core.SetTime(0)
	p := NewFramer()

	tests := []byte{0x00, 0x01, 0x02, PayloadMax + 1, 0xFF}
	for _, badLen := range tests {
		feedBytes(p, []byte{0x5A, 0xA5, badLen})
		if p.State() != StateWaitSync1 {
			t.Errorf("length %#x: state = %d, want WaitSync1", badLen, p.State())
		}
		if p.Ready() {
			t.Errorf("length %#x: frame marked ready", badLen)
		}
	}

	// Exactly PayloadMax is accepted.
	body := make([]byte, PayloadMax)
	body[0] = CmdWrite
	feedBytes(p, append([]byte{0x5A, 0xA5, PayloadMax}, body...))
	if !p.Ready() {
		t.Error("max-length frame not accepted")
	}
}

func TestFramerSingleFrameInFlight(t *testing.T) {
	core.SetTime(0)
	p := NewFramer()

	both := []byte{
		0x5A, 0xA5, 0x04, 0x83, 0x00, 0x14, 0x01,
		0x5A, 0xA5, 0x05, 0x82, 0x10, 0x22, 0x00, 0x07,
	}
	in := NewSliceInputBuffer(both)
	p.Feed(in)

	if !p.Ready() {
		t.Fatal("first frame not ready")
	}
	// Second frame must stay queued until the first is released.
	if in.Available() == 0 {
		t.Fatal("parser consumed bytes past a pending frame")
	}

	f, _ := p.Frame()
	if f.Addr != 0x0014 {
		t.Fatalf("first frame addr = %#x, want 0x0014", f.Addr)
	}
	p.Release()

	p.Feed(in)
	if !p.Ready() {
		t.Fatal("second frame not ready after release")
	}
	f, _ = p.Frame()
	if f.Cmd != CmdWrite || f.Addr != 0x1022 {
		t.Errorf("second frame = cmd %#x addr %#x, want 0x82/0x1022", f.Cmd, f.Addr)
	}
}

func TestFrameKeyClassification(t *testing.T) {
	core.SetTime(0)
	p := NewFramer()

	// Key reply: read reply in the 0x1000 range, word count then value.
	feedBytes(p, []byte{0x5A, 0xA5, 0x06, 0x83, 0x10, 0x22, 0x01, 0x00, 0x07})
	if !p.Ready() {
		t.Fatal("key frame not ready")
	}
	f, _ := p.Frame()
	if !f.IsKey() {
		t.Error("IsKey() = false for 0x1022 reply")
	}
	if f.KeyValue() != 7 {
		t.Errorf("KeyValue() = %d, want 7", f.KeyValue())
	}

	p.Release()

	// Write to the same range is not a key event.
	feedBytes(p, []byte{0x5A, 0xA5, 0x05, 0x82, 0x10, 0x22, 0x00, 0x07})
	f, _ = p.Frame()
	if f.IsKey() {
		t.Error("IsKey() = true for a write frame")
	}
}
