package acquire

import (
	"time"

	"github.com/tracklight/replay/pkg/core"
)

// Report summarizes one acquisition run. Abandoned windows cost partial
// data, never the run; each one leaves a warning behind.
type Report struct {
	RunID    string
	Entities int
	Windows  int // windows planned per entity

	Succeeded int
	Abandoned int
	Skipped   int // windows never queried after an entity ran out of data

	Fetched int // samples returned by the source
	Dropped int // sentinel origin fixes removed
	Kept    int

	Elapsed  time.Duration
	Warnings []string
}

// Result carries the sorted sample batch and the run report.
type Result struct {
	Samples []core.Sample
	Report  Report
}
