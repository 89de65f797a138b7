package core

// EntityID is the stable numeric identifier of a tracked entity.
// For race telemetry this is the car's racing number.
type EntityID uint16

// Color is a display color in #RRGGBB hex notation.
type Color string

// ColorWhite is the fallback color for entities missing from the roster.
const ColorWhite Color = "#FFFFFF"

// Entity describes one tracked entity. Loaded once at startup, read-only.
type Entity struct {
	ID    EntityID `json:"id"`
	Name  string   `json:"name"`
	Team  string   `json:"team"`
	Color Color    `json:"color"`
}
