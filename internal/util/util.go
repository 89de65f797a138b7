// Package util provides small display helpers shared across the engine.
package util

import (
	"fmt"
	"time"
)

// FormatRaceTime renders an elapsed duration as m:ss.mmm, growing to
// h:mm:ss.mmm past an hour. Negative durations render as zero.
func FormatRaceTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	total := d.Milliseconds()
	ms := total % 1000
	sec := (total / 1000) % 60
	min := (total / 60000) % 60
	hr := total / 3600000

	if hr > 0 {
		return fmt.Sprintf("%d:%02d:%02d.%03d", hr, min, sec, ms)
	}
	return fmt.Sprintf("%d:%02d.%03d", min, sec, ms)
}

// Truncate cuts s to at most n runes. Used to fit rendered output into
// fixed-width display cells.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
