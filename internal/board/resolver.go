package board

import (
	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/tracklight/replay/pkg/core"
)

// Resolver maps raw sample coordinates onto the nearest layout position by
// Euclidean distance. It is a pure lookup over an immutable layout and is
// safe for concurrent use.
type Resolver struct {
	layout *Layout
}

// NewResolver creates a resolver over the given layout.
func NewResolver(layout *Layout) *Resolver {
	return &Resolver{layout: layout}
}

// Nearest returns the id of the position closest to (x, y). Exact distance
// ties resolve to the position that appears first in the layout's canonical
// order; the scan uses a strict less comparison so the earliest minimum wins.
func (r *Resolver) Nearest(x, y float64) core.PositionID {
	target := geom.XY{X: x, Y: y}

	best := r.layout.positions[0]
	bestDist := target.Sub(geom.XY{X: best.X, Y: best.Y}).Length()

	for _, cand := range r.layout.positions[1:] {
		dist := target.Sub(geom.XY{X: cand.X, Y: cand.Y}).Length()
		if dist < bestDist {
			best = cand
			bestDist = dist
		}
	}

	return best.ID
}

// Resolve converts a filtered sample into an assignment.
func (r *Resolver) Resolve(s core.Sample) core.Assignment {
	return core.Assignment{
		Entity:   s.Entity,
		Position: r.Nearest(s.X, s.Y),
	}
}
