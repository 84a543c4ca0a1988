package sim

import "testing"

func TestParseLine(t *testing.T) {
	tests := []struct {
		line   string
		typ    byte
		number int
		params map[byte]float64
	}{
		{"G1 X12.5 Y30.0 F3000", 'G', 1, map[byte]float64{'X': 12.5, 'Y': 30.0, 'F': 3000}},
		{"G92.9 E0", 'G', 92, map[byte]float64{'E': 0}},
		{"M109 S200", 'M', 109, map[byte]float64{'S': 200}},
		{"M24 S10240 T1800", 'M', 24, map[byte]float64{'S': 10240, 'T': 1800}},
		{"G28R2 XY", 'G', 28, map[byte]float64{'R': 2, 'X': 0, 'Y': 0}},
		{"T0 S", 'T', 0, map[byte]float64{'S': 0}},
		{"g1 x-5.25", 'G', 1, map[byte]float64{'X': -5.25}},
		{"G1 X10 ; move", 'G', 1, map[byte]float64{'X': 10}},
	}

	for _, tt := range tests {
		cmd := ParseLine(tt.line)
		if cmd == nil {
			t.Errorf("%q: nil command", tt.line)
			continue
		}
		if cmd.Type != tt.typ || cmd.Number != tt.number {
			t.Errorf("%q: got %c%d, want %c%d", tt.line, cmd.Type, cmd.Number, tt.typ, tt.number)
		}
		for letter, want := range tt.params {
			if got := cmd.GetParameter(letter, -999); got != want {
				t.Errorf("%q: param %c = %v, want %v", tt.line, letter, got, want)
			}
		}
		if len(cmd.Parameters) != len(tt.params) {
			t.Errorf("%q: %d params, want %d", tt.line, len(cmd.Parameters), len(tt.params))
		}
	}
}

func TestParseLineEmptyAndComment(t *testing.T) {
	if ParseLine("") != nil {
		t.Error("empty line parsed to a command")
	}
	if ParseLine("   ") != nil {
		t.Error("blank line parsed to a command")
	}
	cmd := ParseLine("; just a comment")
	if cmd == nil || cmd.Type != 0 || cmd.Comment == "" {
		t.Error("comment line not preserved")
	}
}

func TestEngineAppliesMoves(t *testing.T) {
	e := NewEngine(DefaultProfile())

	e.Inject("G1 X10 Y20 Z1.2 F1500")
	x, y, z, _ := e.Position()
	if x != 10 || y != 20 || z != 1.2 {
		t.Errorf("position = (%v,%v,%v), want (10,20,1.2)", x, y, z)
	}
	if e.FeedrateMMM() != 1500 {
		t.Errorf("feed = %v, want 1500", e.FeedrateMMM())
	}

	// Relative mode accumulates.
	e.Inject("G91")
	e.Inject("G1 Z0.8")
	_, _, z, _ = e.Position()
	if z != 2.0 {
		t.Errorf("z after relative move = %v, want 2.0", z)
	}

	// Homing XY only leaves Z untouched and untrusted.
	e.Inject("G90")
	e.Inject("G28R2 XY")
	x, y, z, _ = e.Position()
	if x != 0 || y != 0 || z != 2.0 {
		t.Errorf("after G28 XY: (%v,%v,%v)", x, y, z)
	}
	if !e.AxisTrusted(0) || !e.AxisTrusted(1) || e.AxisTrusted(2) {
		t.Error("axis trust after XY home wrong")
	}
}

func TestEngineMultilineInject(t *testing.T) {
	e := NewEngine(DefaultProfile())
	e.InjectSync("M400\nG4 P1000")

	if len(e.Commands) != 2 {
		t.Fatalf("recorded %d commands, want 2", len(e.Commands))
	}
	if e.Commands[0].Text != "M400" || e.Commands[1].Text != "G4 P1000" {
		t.Errorf("commands = %+v", e.Commands)
	}
	if !e.Commands[0].Blocking || !e.Commands[1].Blocking {
		t.Error("sync marker lost on multi-line inject")
	}
}
