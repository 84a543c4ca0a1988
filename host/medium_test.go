package host

import (
	"bytes"
	"path/filepath"
	"testing"

	"rekindle/recovery"
)

func TestFileMediumRoundTrip(t *testing.T) {
	m := NewFileMedium(filepath.Join(t.TempDir(), "recovery.bin"))
	if !m.Ready() {
		t.Fatal("medium not ready")
	}

	// Before any write the region reads as erased.
	buf := make([]byte, recovery.RecordSize)
	buf[0] = 0xFF
	if err := m.Read(buf); err != nil {
		t.Fatalf("Read blank: %v", err)
	}
	if buf[0] != 0 {
		t.Error("blank region not zeroed")
	}

	data := make([]byte, recovery.RecordSize)
	for i := range data {
		data[i] = byte(i)
	}
	if err := m.Write(data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := m.Read(buf); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(buf, data) {
		t.Error("read-back mismatch")
	}

	if err := m.Erase(); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	if err := m.Read(buf); err != nil {
		t.Fatalf("Read after erase: %v", err)
	}
	if buf[0] != 0 || buf[recovery.RecordSize-1] != 0 {
		t.Error("region not blank after erase")
	}

	// Erasing an already-blank region is fine.
	if err := m.Erase(); err != nil {
		t.Errorf("double Erase: %v", err)
	}
}
