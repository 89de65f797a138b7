// Package roster holds the read-only entity metadata (names, teams, display
// colors) keyed by racing number.
package roster

import (
	"errors"
	"fmt"

	"github.com/tracklight/replay/pkg/core"
)

// ErrEmptyRoster is returned when a roster holds no entities.
var ErrEmptyRoster = errors.New("roster holds no entities")

// Roster is the ordered set of tracked entities for a session. Loaded once
// at startup and immutable thereafter.
type Roster struct {
	entities []core.Entity
	byID     map[core.EntityID]core.Entity
}

// New builds a roster from an ordered entity list. The list must be
// non-empty and free of duplicate ids.
func New(entities []core.Entity) (*Roster, error) {
	if len(entities) == 0 {
		return nil, ErrEmptyRoster
	}

	r := &Roster{
		entities: make([]core.Entity, len(entities)),
		byID:     make(map[core.EntityID]core.Entity, len(entities)),
	}
	copy(r.entities, entities)

	for _, e := range r.entities {
		if _, dup := r.byID[e.ID]; dup {
			return nil, fmt.Errorf("duplicate entity id %d", e.ID)
		}
		r.byID[e.ID] = e
	}

	return r, nil
}

// Len returns the number of entities.
func (r *Roster) Len() int {
	return len(r.entities)
}

// Entities returns the entities in declaration order. The returned slice is
// a copy.
func (r *Roster) Entities() []core.Entity {
	out := make([]core.Entity, len(r.entities))
	copy(out, r.entities)
	return out
}

// IDs returns the entity ids in declaration order. This is the order the
// acquisition pipeline schedules entities in.
func (r *Roster) IDs() []core.EntityID {
	ids := make([]core.EntityID, len(r.entities))
	for i, e := range r.entities {
		ids[i] = e.ID
	}
	return ids
}

// Entity looks up an entity by id.
func (r *Roster) Entity(id core.EntityID) (core.Entity, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// Color returns the display color for an entity, falling back to white for
// ids missing from the roster.
func (r *Roster) Color(id core.EntityID) core.Color {
	if e, ok := r.byID[id]; ok {
		return e.Color
	}
	return core.ColorWhite
}
