package display

import "testing"

func TestFormatClock(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    string
	}{
		{"zero", 0, "00:00"},
		{"under a minute", 59, "00:59"},
		{"typical focus", 1500, "25:00"},
		{"mid countdown", 754, "12:34"},
		{"over an hour", 7200, "2:00:00"},
		{"negative clamps", -3, "00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatClock(tt.seconds); got != tt.want {
				t.Fatalf("FormatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatFocusTotal(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0m"},
		{1800, "30m"},
		{3600, "1h 00m"},
		{7500, "2h 05m"},
	}
	for _, tt := range tests {
		if got := FormatFocusTotal(tt.seconds); got != tt.want {
			t.Fatalf("FormatFocusTotal(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestCycleDots(t *testing.T) {
	tests := []struct {
		cycle, count int
		want         string
	}{
		{0, 4, "○○○○"},
		{2, 4, "●●○○"},
		{4, 4, "●●●●"},
		{6, 4, "●●●●"}, // over-counted cycles cap at the gate
		{-1, 4, "○○○○"},
	}
	for _, tt := range tests {
		if got := CycleDots(tt.cycle, tt.count); got != tt.want {
			t.Fatalf("CycleDots(%d, %d) = %q, want %q", tt.cycle, tt.count, got, tt.want)
		}
	}
}
