package panel

import (
	"bytes"
	"testing"
)

func TestFifoBufferBasic(t *testing.T) {
	f := NewFifoBuffer(8)

	if !f.IsEmpty() {
		t.Error("new buffer not empty")
	}

	n := f.Write([]byte{1, 2, 3})
	if n != 3 {
		t.Errorf("Write = %d, want 3", n)
	}
	if f.Available() != 3 {
		t.Errorf("Available = %d, want 3", f.Available())
	}

	out := make([]byte, 2)
	if got := f.Read(out); got != 2 || out[0] != 1 || out[1] != 2 {
		t.Errorf("Read = %d %v", got, out)
	}
	if f.Available() != 1 {
		t.Errorf("Available after read = %d, want 1", f.Available())
	}
}

func TestFifoBufferWrapAround(t *testing.T) {
	f := NewFifoBuffer(8) // usable capacity 7

	f.Write([]byte{1, 2, 3, 4, 5, 6})
	f.Pop(5)
	f.Write([]byte{7, 8, 9, 10})

	// Data now wraps the underlying array; it must still come out
	// contiguous and in order.
	if !bytes.Equal(f.Data(), []byte{6, 7, 8, 9, 10}) {
		t.Errorf("Data = %v, want [6 7 8 9 10]", f.Data())
	}
}

func TestFifoBufferFull(t *testing.T) {
	f := NewFifoBuffer(4) // usable capacity 3

	n := f.Write([]byte{1, 2, 3, 4, 5})
	if n != 3 {
		t.Errorf("Write into full buffer = %d, want 3", n)
	}
	if f.Free() != 0 {
		t.Errorf("Free = %d, want 0", f.Free())
	}
	if f.WriteByte(9) {
		t.Error("WriteByte succeeded on a full buffer")
	}

	b, ok := f.ReadByte()
	if !ok || b != 1 {
		t.Errorf("ReadByte = %v %v, want 1 true", b, ok)
	}
	if !f.WriteByte(9) {
		t.Error("WriteByte failed with space available")
	}
}

func TestSliceInputBuffer(t *testing.T) {
	in := NewSliceInputBuffer([]byte{1, 2, 3})
	in.Pop(2)
	if in.Available() != 1 || in.Data()[0] != 3 {
		t.Errorf("after Pop(2): avail %d data %v", in.Available(), in.Data())
	}
	in.Pop(5) // over-pop clamps
	if in.Available() != 0 {
		t.Errorf("after over-pop: avail %d, want 0", in.Available())
	}
}
