package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracklight/replay/pkg/core"
)

func asn(entity core.EntityID, position core.PositionID) core.Assignment {
	return core.Assignment{Entity: entity, Position: position}
}

func TestBuilder_SealsOnCapacity(t *testing.T) {
	seq := NewSequence()
	b := NewBuilder(2, seq)

	b.Add(asn(1, 10))
	assert.Equal(t, 0, seq.Len(), "open frame must not be visible")

	b.Add(asn(2, 11))
	require.Equal(t, 1, seq.Len(), "frame seals when it reaches capacity")

	f, ok := seq.Frame(0)
	require.True(t, ok)
	assert.Equal(t, []core.Assignment{asn(1, 10), asn(2, 11)}, f.Assignments)
}

func TestBuilder_FlushSealsPartialFrame(t *testing.T) {
	seq := NewSequence()
	b := NewBuilder(2, seq)

	// Scenario: two assignments at t1 fill frame 1, one at t2 flushes as
	// frame 2.
	b.Add(asn(1, 10))
	b.Add(asn(2, 11))
	b.Add(asn(3, 12))
	b.Flush()

	require.Equal(t, 2, seq.Len())

	f1, _ := seq.Frame(0)
	assert.Equal(t, 2, f1.Len())

	f2, _ := seq.Frame(1)
	require.Equal(t, 1, f2.Len())
	assert.Equal(t, asn(3, 12), f2.Assignments[0])
}

func TestBuilder_FlushEmptyAppendsNothing(t *testing.T) {
	seq := NewSequence()
	b := NewBuilder(3, seq)

	b.Flush()
	assert.Equal(t, 0, seq.Len())
}

func TestBuilder_FlushAfterExactFill(t *testing.T) {
	seq := NewSequence()
	b := NewBuilder(2, seq)

	b.Add(asn(1, 10))
	b.Add(asn(2, 11))
	b.Flush()

	// The frame already sealed on capacity; flush must not append an empty
	// duplicate.
	assert.Equal(t, 1, seq.Len())
}

func TestBuilder_NoAssignmentDropped(t *testing.T) {
	seq := NewSequence()
	b := NewBuilder(20, seq)

	const total = 107
	for i := 0; i < total; i++ {
		b.Add(asn(core.EntityID(i%20), core.PositionID(i%96)))
	}
	b.Flush()

	require.Equal(t, 6, seq.Len(), "107 assignments at capacity 20 give 6 frames")

	sum := 0
	for _, f := range seq.Snapshot() {
		assert.LessOrEqual(t, f.Len(), 20)
		sum += f.Len()
	}
	assert.Equal(t, total, sum, "every assignment must land in exactly one frame")
}

func TestBuilder_DuplicateEntityRetained(t *testing.T) {
	seq := NewSequence()
	b := NewBuilder(5, seq)

	// Two samples for the same entity inside one frame both keep their slot.
	b.Add(asn(44, 10))
	b.Add(asn(44, 11))
	b.Flush()

	f, _ := seq.Frame(0)
	require.Equal(t, 2, f.Len())
	assert.Equal(t, core.EntityID(44), f.Assignments[0].Entity)
	assert.Equal(t, core.EntityID(44), f.Assignments[1].Entity)
}

func TestBuilder_OverflowSplitsSingleTimestamp(t *testing.T) {
	seq := NewSequence()
	b := NewBuilder(2, seq)

	// Five assignments from the same instant split across three frames.
	for i := 0; i < 5; i++ {
		b.Add(asn(core.EntityID(i+1), core.PositionID(i+1)))
	}
	b.Flush()

	require.Equal(t, 3, seq.Len())
	f3, _ := seq.Frame(2)
	assert.Equal(t, 1, f3.Len())
}

func TestBuilder_SealedFramesAreIsolated(t *testing.T) {
	seq := NewSequence()
	b := NewBuilder(1, seq)

	b.Add(asn(1, 10))
	b.Add(asn(2, 20))

	// The builder reuses its open slice; sealed frames must not alias it.
	f1, _ := seq.Frame(0)
	require.Equal(t, 1, f1.Len())
	assert.Equal(t, asn(1, 10), f1.Assignments[0])
}

func TestBuilder_ClampsCapacity(t *testing.T) {
	seq := NewSequence()
	b := NewBuilder(0, seq)

	b.Add(asn(1, 10))
	assert.Equal(t, 1, seq.Len())
}
