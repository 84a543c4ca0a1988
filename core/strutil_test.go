package core

import "testing"

func TestItoa(t *testing.T) {
	tests := []struct {
		input    int
		expected string
	}{
		{0, "0"},
		{1, "1"},
		{9, "9"},
		{10, "10"},
		{42, "42"},
		{100, "100"},
		{12345, "12345"},
		{-1, "-1"},
		{-42, "-42"},
		{-12345, "-12345"},
	}

	for _, tt := range tests {
		got := Itoa(tt.input)
		if got != tt.expected {
			t.Errorf("Itoa(%d) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestUtoa(t *testing.T) {
	tests := []struct {
		input    uint32
		expected string
	}{
		{0, "0"},
		{1, "1"},
		{255, "255"},
		{65535, "65535"},
		{4294967295, "4294967295"},
	}

	for _, tt := range tests {
		got := Utoa(tt.input)
		if got != tt.expected {
			t.Errorf("Utoa(%d) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFtoa(t *testing.T) {
	tests := []struct {
		input    float32
		decimals int
		expected string
	}{
		{0, 1, "0.0"},
		{12.5, 1, "12.5"},
		{12.5, 2, "12.50"},
		{-3.75, 2, "-3.75"},
		{0.05, 1, "0.1"},  // rounds up
		{-0.05, 1, "-0.1"}, // rounds away from zero
		{199.94, 1, "199.9"},
		{42, 0, "42"},
		{0.004, 2, "0.00"},
	}

	for _, tt := range tests {
		got := Ftoa(tt.input, tt.decimals)
		if got != tt.expected {
			t.Errorf("Ftoa(%v, %d) = %q, want %q", tt.input, tt.decimals, got, tt.expected)
		}
	}
}
