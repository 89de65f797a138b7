package telemetry

import (
	"context"
	"time"

	"github.com/tracklight/replay/pkg/core"
)

// syntheticCadence is the fixed sample interval of the generator.
const syntheticCadence = 250 * time.Millisecond

// SyntheticSource fabricates a plausible session without any external
// input. Entities circulate the board layout at a fixed cadence, spaced
// evenly around the circuit, with an occasional origin fix thrown in so
// downstream sentinel filtering stays honest. Output is fully determined
// by the window bounds, so repeated fetches agree and adjacent windows
// join up seamlessly.
type SyntheticSource struct {
	positions []core.Position
	ranks     map[core.EntityID]int
	count     int
	cadence   time.Duration
}

// NewSyntheticSource creates a generator that walks the given positions.
// Entity order decides each entity's starting offset around the circuit.
func NewSyntheticSource(positions []core.Position, entities []core.EntityID) *SyntheticSource {
	ranks := make(map[core.EntityID]int, len(entities))
	for i, id := range entities {
		ranks[id] = i
	}
	return &SyntheticSource{
		positions: positions,
		ranks:     ranks,
		count:     len(entities),
		cadence:   syntheticCadence,
	}
}

// Fetch generates the entity's samples for all cadence ticks inside
// [window.Start, window.End). Unknown entities have no coverage and
// produce no samples.
func (s *SyntheticSource) Fetch(ctx context.Context, entity core.EntityID, window core.Window) ([]core.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rank, ok := s.ranks[entity]
	n := len(s.positions)
	if !ok || n == 0 {
		return nil, nil
	}

	offset := int64(rank * n / s.count)
	step := int64(1 + rank%3)

	cad := s.cadence.Milliseconds()
	first := window.Start.UnixMilli()
	if rem := first % cad; rem != 0 {
		first += cad - rem
	}

	var samples []core.Sample
	for ms := first; ms < window.End.UnixMilli(); ms += cad {
		k := ms / cad
		tick := time.UnixMilli(ms).UTC()

		// roughly one tick per hundred carries no fix
		if (k+int64(entity))%97 == 0 {
			samples = append(samples, core.Sample{Entity: entity, Timestamp: tick})
			continue
		}

		pos := s.positions[(k*step+offset)%int64(n)]
		samples = append(samples, core.Sample{
			Entity:    entity,
			X:         pos.X,
			Y:         pos.Y,
			Timestamp: tick,
		})
	}
	return samples, nil
}

// Close is a no-op.
func (s *SyntheticSource) Close() error {
	return nil
}
