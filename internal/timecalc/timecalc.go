package timecalc

import (
	"fmt"
	"time"
)

// split breaks d into whole hours, minutes and seconds, clamping negative
// values to zero.
func split(d time.Duration) (h, m, s int64) {
	seconds := int64(d / time.Second)
	if seconds < 0 {
		seconds = 0
	}
	return seconds / 3600, (seconds % 3600) / 60, seconds % 60
}

// FormatDuration formats d as "1h 40m", "45m" or "30s". Negative values
// are shown as zero.
func FormatDuration(d time.Duration) string {
	h, m, s := split(d)
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", s)
}

// FormatElapsed formats d to the second: "1h 2m 3s", "1m 30s" or "30s".
func FormatElapsed(d time.Duration) string {
	h, m, s := split(d)
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// FormatDurationHHMMSS formats d as HH:MM:SS.
func FormatDurationHHMMSS(d time.Duration) string {
	h, m, s := split(d)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
