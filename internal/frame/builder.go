package frame

import "github.com/tracklight/replay/pkg/core"

// Builder groups a time-ordered stream of resolved assignments into
// fixed-capacity frames, sealing each into the sequence as it fills. Slot
// order within a frame is insertion order and carries no meaning beyond
// uniqueness. The builder performs no I/O and cannot fail on well-formed
// input; it is not safe for concurrent use — one builder per run.
type Builder struct {
	capacity int
	open     []core.Assignment
	seq      *Sequence
}

// NewBuilder creates a builder sealing frames of up to capacity assignments
// into seq. Capacity is config-validated upstream; values below 1 are
// clamped.
func NewBuilder(capacity int, seq *Sequence) *Builder {
	if capacity < 1 {
		capacity = 1
	}
	return &Builder{
		capacity: capacity,
		open:     make([]core.Assignment, 0, capacity),
		seq:      seq,
	}
}

// Add places an assignment into the open frame's next free slot. When the
// frame reaches capacity it is sealed and appended, and a fresh frame opens.
// More than capacity assignments sharing one timestamp simply split across
// consecutive frames; nothing is dropped.
func (b *Builder) Add(a core.Assignment) {
	b.open = append(b.open, a)
	if len(b.open) == b.capacity {
		b.seal()
	}
}

// Flush seals the open frame if it holds at least one assignment. An empty
// open frame is discarded, never appended. Call once after the last Add.
func (b *Builder) Flush() {
	if len(b.open) > 0 {
		b.seal()
	}
}

func (b *Builder) seal() {
	b.seq.Append(core.NewFrame(b.open))
	b.open = b.open[:0]
}
