// Package telemetry acquires raw position samples for a session. Three
// source kinds are supported: the live timing HTTP API, a previously
// exported session archive, and a synthetic generator for offline demos.
package telemetry

import (
	"context"
	"errors"

	"github.com/tracklight/replay/pkg/core"
)

// ErrRateLimited marks a fetch rejected by the source's rate limiter.
// Callers are expected to back off and retry; any other fetch error is
// terminal for that request.
var ErrRateLimited = errors.New("telemetry source rate limited")

// Source serves position samples for one entity over a bounded time window.
// Implementations return samples in source order; callers must not assume
// they arrive sorted or free of sentinel origin fixes.
type Source interface {
	Fetch(ctx context.Context, entity core.EntityID, window core.Window) ([]core.Sample, error)
	Close() error
}
