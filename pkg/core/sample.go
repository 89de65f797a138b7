package core

import "time"

// Sample is one raw position report from the telemetry source.
type Sample struct {
	Entity    EntityID
	X         float64
	Y         float64
	Timestamp time.Time
}

// AtOrigin reports whether the sample sits on the sentinel origin (0,0).
// Sources emit the origin when an entity has no fix; such samples are dropped.
func (s Sample) AtOrigin() bool {
	return s.X == 0 && s.Y == 0
}

// Window is a bounded half-open time range [Start, End) used to paginate
// telemetry queries.
type Window struct {
	Start time.Time
	End   time.Time
}

// Duration returns the window length.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}
