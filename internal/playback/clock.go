// Package playback maps wall-clock time onto the sealed frame sequence.
// A running clock stretches real time by an integer speed multiplier and
// derives the active frame index fresh on every tick.
package playback

import (
	"sync"
	"time"

	"github.com/tracklight/replay/internal/config"
	"github.com/tracklight/replay/internal/frame"
	"github.com/tracklight/replay/pkg/core"
)

// State is the clock's lifecycle state.
type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time view of the clock for the render and status
// paths.
type Snapshot struct {
	State      State
	Speed      int
	Elapsed    time.Duration // scaled race time
	FrameIndex int
	FrameCount int
}

// Clock drives the playback cursor over a frame sequence. All methods are
// safe for concurrent use: the render loop ticks while the control surface
// starts, stops and adjusts speed.
type Clock struct {
	mu  sync.RWMutex
	cfg config.PlaybackConfig
	seq *frame.Sequence

	// now is swapped by tests to control time
	now func() time.Time

	state     State
	speed     int
	reference time.Time
	elapsed   time.Duration
	index     int
}

// NewClock creates a stopped clock over the sequence.
func NewClock(seq *frame.Sequence, cfg config.PlaybackConfig) *Clock {
	return &Clock{
		cfg:   cfg,
		seq:   seq,
		now:   time.Now,
		speed: cfg.MinSpeed,
	}
}

// Start moves the clock to Running, anchoring race time at zero. Starting
// a running clock restarts it from zero.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Running
	c.reference = c.now()
	c.elapsed = 0
	c.index = 0
}

// Stop resets the clock entirely: state, race time and cursor.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Stopped
	c.reference = time.Time{}
	c.elapsed = 0
	c.index = 0
}

// SetSpeed clamps n into the configured bounds and applies it on the next
// tick. Returns the speed actually set.
func (c *Clock) SetSpeed(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n < c.cfg.MinSpeed {
		n = c.cfg.MinSpeed
	}
	if n > c.cfg.MaxSpeed {
		n = c.cfg.MaxSpeed
	}
	c.speed = n
	return n
}

// Speed returns the current multiplier.
func (c *Clock) Speed() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.speed
}

// Tick recomputes race time and advances the cursor. The cursor clamps to
// the last sealed frame and never moves backward while running; dropping
// the speed lowers race time but leaves the cursor where it is.
func (c *Clock) Tick() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := c.seq.Len()
	if c.state != Running {
		return c.snapshotLocked(count)
	}

	c.elapsed = time.Duration(int64(c.now().Sub(c.reference)) * int64(c.speed))

	frameDuration := c.cfg.FrameDuration()
	target := 0
	if frameDuration > 0 {
		target = int(c.elapsed / frameDuration)
	}
	if count > 0 {
		if target > count-1 {
			target = count - 1
		}
		if target > c.index {
			c.index = target
		}
	}

	return c.snapshotLocked(count)
}

// Snapshot returns the current view without advancing the cursor.
func (c *Clock) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked(c.seq.Len())
}

// ActiveFrame returns the frame under the cursor, or an empty frame when
// nothing is sealed yet.
func (c *Clock) ActiveFrame() core.Frame {
	c.mu.RLock()
	index := c.index
	c.mu.RUnlock()

	f, ok := c.seq.Frame(index)
	if !ok {
		return core.Frame{}
	}
	return f
}

func (c *Clock) snapshotLocked(count int) Snapshot {
	return Snapshot{
		State:      c.state,
		Speed:      c.speed,
		Elapsed:    c.elapsed,
		FrameIndex: c.index,
		FrameCount: count,
	}
}
