// Package board holds the fixed indicator layout and the nearest-position
// resolver that maps raw telemetry coordinates onto it.
package board

import (
	"errors"
	"fmt"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/tracklight/replay/pkg/core"
)

// ErrEmptyLayout is returned when a layout holds no positions.
var ErrEmptyLayout = errors.New("layout holds no positions")

// Layout is the ordered set of physical indicator positions for a session.
// The order is canonical: the resolver iterates it front to back and ties
// resolve to the earliest position. A Layout is immutable once built.
type Layout struct {
	positions []core.Position
	byID      map[core.PositionID]core.Position
}

// NewLayout builds a layout from an ordered position list. The list must be
// non-empty and free of duplicate ids.
func NewLayout(positions []core.Position) (*Layout, error) {
	if len(positions) == 0 {
		return nil, ErrEmptyLayout
	}

	l := &Layout{
		positions: make([]core.Position, len(positions)),
		byID:      make(map[core.PositionID]core.Position, len(positions)),
	}
	copy(l.positions, positions)

	for _, p := range l.positions {
		if _, dup := l.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate position id %d", p.ID)
		}
		l.byID[p.ID] = p
	}

	return l, nil
}

// Len returns the number of positions.
func (l *Layout) Len() int {
	return len(l.positions)
}

// Positions returns the positions in canonical order. The returned slice is
// a copy; callers may not reach the layout's backing store.
func (l *Layout) Positions() []core.Position {
	out := make([]core.Position, len(l.positions))
	copy(out, l.positions)
	return out
}

// Position looks up a position by id.
func (l *Layout) Position(id core.PositionID) (core.Position, bool) {
	p, ok := l.byID[id]
	return p, ok
}

// Bounds returns the lower-left and upper-right corners of the layout's
// bounding box in board coordinate space.
func (l *Layout) Bounds() (min, max geom.XY) {
	first := l.positions[0]
	min = geom.XY{X: first.X, Y: first.Y}
	max = min
	for _, p := range l.positions[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}
