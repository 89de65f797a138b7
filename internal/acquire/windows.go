package acquire

import (
	"time"

	"github.com/tracklight/replay/pkg/core"
)

// PlanWindows splits [start, end) into consecutive query windows of the
// given size. Each window starts where the previous one ended; the last is
// clamped to end, so it may be shorter.
func PlanWindows(start, end time.Time, size time.Duration) []core.Window {
	if !start.Before(end) || size <= 0 {
		return nil
	}

	var windows []core.Window
	for cursor := start; cursor.Before(end); {
		next := cursor.Add(size)
		if next.After(end) {
			next = end
		}
		windows = append(windows, core.Window{Start: cursor, End: next})
		cursor = next
	}
	return windows
}
