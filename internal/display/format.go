package display

import (
	"fmt"
	"strings"
)

// FormatClock renders seconds as MM:SS, spilling into H:MM:SS past an
// hour.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// FormatFocusTotal renders a day's focus seconds as "2h 05m" / "45m".
func FormatFocusTotal(seconds int) string {
	if seconds <= 0 {
		return "0m"
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// CycleDots renders the cycle progress as filled and hollow dots,
// e.g. "●●○○" for 2 of 4.
func CycleDots(cycle, count int) string {
	if count < 1 {
		count = 1
	}
	filled := cycle
	if filled > count {
		filled = count
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("●", filled) + strings.Repeat("○", count-filled)
}
