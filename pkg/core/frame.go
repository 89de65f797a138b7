package core

// Frame is one sealed display instant: the assignments that were active
// together, in slot order. Slot order carries no meaning beyond uniqueness.
// A Frame is immutable once sealed; consumers must not modify Assignments.
type Frame struct {
	Assignments []Assignment
}

// NewFrame seals a frame from the given assignments. The slice is copied so
// later mutation by the builder cannot reach the sealed frame.
func NewFrame(assignments []Assignment) Frame {
	sealed := make([]Assignment, len(assignments))
	copy(sealed, assignments)
	return Frame{Assignments: sealed}
}

// Len returns the number of occupied slots.
func (f Frame) Len() int {
	return len(f.Assignments)
}

// Empty reports whether the frame holds no assignments.
func (f Frame) Empty() bool {
	return len(f.Assignments) == 0
}
