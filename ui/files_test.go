package ui

import (
	"testing"

	"rekindle/panel"
)

// The reported body length bounds the name exactly: command byte, two
// address bytes and the count byte are stripped, nothing is dropped from
// the tail.
func TestExtractSelectedFile(t *testing.T) {
	body := []byte{0x83, 0x50, 0x00, 0x02, 'K', 'O', 'B', 'R', 'A', '.', 'G', 'C', 'O'}

	tests := []struct {
		name    string
		bodyLen int
		want    string
	}{
		{"full name", len(body), "KOBRA.GCO"},
		{"shorter reported length", 8, "KOBR"},
		{"single character", 5, "K"},
		{"header only", 4, ""},
		{"short body", 3, ""},
		{"zero", 0, ""},
		{"reported length past buffer", len(body) + 10, "KOBRA.GCO"},
	}
	for _, tt := range tests {
		if got := extractSelectedFile(body, tt.bodyLen); got != tt.want {
			t.Errorf("%s: extractSelectedFile(len %d) = %q, want %q",
				tt.name, tt.bodyLen, got, tt.want)
		}
	}
}

func TestTruncateName(t *testing.T) {
	long := "a-very-long-gcode-file-name.gco"
	if got := truncateName(long); len(got) != printNameMax {
		t.Errorf("len = %d, want %d", len(got), printNameMax)
	}
	short := "cube.gco"
	if got := truncateName(short); got != short {
		t.Errorf("truncateName(%q) = %q, want unchanged", short, got)
	}
}

func TestRowAddr(t *testing.T) {
	if got := rowAddr(1); got != panel.TxtDescribe0 {
		t.Errorf("rowAddr(1) = %#x, want %#x", got, panel.TxtDescribe0)
	}
	if got := rowAddr(5); got != panel.TxtDescribe4 {
		t.Errorf("rowAddr(5) = %#x, want %#x", got, panel.TxtDescribe4)
	}
}

func TestIsListRowAddr(t *testing.T) {
	for i := 1; i <= fileRows; i++ {
		if !isListRowAddr(rowAddr(i)) {
			t.Errorf("row %d address not recognized", i)
		}
	}
	for _, addr := range []uint16{panel.TxtDescribe0 + 1, panel.TxtPrintName, 0} {
		if isListRowAddr(addr) {
			t.Errorf("%#x wrongly recognized as a list row", addr)
		}
	}
}
