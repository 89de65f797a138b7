// Package frame batches resolved assignments into sealed display frames and
// stores them for concurrent replay.
package frame

import (
	"sync"

	"github.com/tracklight/replay/pkg/core"
)

// Sequence is the append-only arena of sealed frames shared between the
// acquisition writer and the playback reader. Appends are serialized behind
// a single-writer lock; readers take point-in-time snapshots and never
// observe a partially written frame.
type Sequence struct {
	frames []core.Frame
	mu     sync.RWMutex
}

// NewSequence creates an empty frame sequence.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Append adds a sealed frame to the end of the sequence.
func (s *Sequence) Append(f core.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, f)
}

// Len returns the number of sealed frames.
func (s *Sequence) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.frames)
}

// Frame returns the sealed frame at index i. The second return is false when
// i is out of range.
func (s *Sequence) Frame(i int) (core.Frame, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i < 0 || i >= len(s.frames) {
		return core.Frame{}, false
	}
	return s.frames[i], true
}

// Snapshot returns a point-in-time view of all sealed frames. The returned
// slice is a copy; the frames it holds are immutable.
func (s *Sequence) Snapshot() []core.Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Frame, len(s.frames))
	copy(out, s.frames)
	return out
}

// Reset discards all frames. Called only on whole-session reset, before a
// new acquisition run repopulates the sequence.
func (s *Sequence) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = nil
}
