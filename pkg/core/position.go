package core

// PositionID identifies one physical indicator position on the board.
// IDs come from the layout definition and need not be contiguous.
type PositionID uint16

// Position is one fixed indicator location in board coordinate space.
type Position struct {
	ID PositionID `json:"id"`
	X  float64    `json:"x"`
	Y  float64    `json:"y"`
}

// Assignment maps a tracked entity onto a physical position for one frame.
// It carries no coordinate or time information.
type Assignment struct {
	Entity   EntityID   `json:"entity"`
	Position PositionID `json:"position"`
}
