package playback

import (
	"sync"
	"time"

	"github.com/tracklight/replay/internal/logging"
	"github.com/tracklight/replay/internal/roster"
	"github.com/tracklight/replay/pkg/core"
)

// Dependencies holds all dependencies for the render ticker.
type Dependencies struct {
	Clock      *Clock
	Roster     *roster.Roster
	LogManager *logging.SlogManager
}

// RenderFunc receives the derived display state once per tick. A stopped
// clock renders an empty mapping, clearing the board.
type RenderFunc func(Snapshot, map[core.PositionID]core.Color)

// Ticker drives the render collaborator at a fixed interval, off the
// acquisition and control paths.
type Ticker struct {
	deps     Dependencies
	interval time.Duration
	render   RenderFunc

	isRunning bool
	mu        sync.RWMutex
	stopChan  chan struct{}
}

// NewTicker creates a stopped render ticker.
func NewTicker(deps Dependencies, interval time.Duration, render RenderFunc) *Ticker {
	return &Ticker{
		deps:     deps,
		interval: interval,
		render:   render,
		stopChan: make(chan struct{}),
	}
}

// IsRunning returns whether the tick loop is live.
func (t *Ticker) IsRunning() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.isRunning
}

// Start launches the tick loop goroutine.
func (t *Ticker) Start() error {
	t.mu.Lock()
	if t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = true
	t.stopChan = make(chan struct{})
	t.mu.Unlock()

	go func() {
		defer func() {
			t.mu.Lock()
			t.isRunning = false
			t.mu.Unlock()
		}()

		logger := t.deps.LogManager.Logger()
		logger.Debug("Starting render tick loop", "interval", t.interval)

		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case <-t.stopChan:
				return
			case <-ticker.C:
				snap := t.deps.Clock.Tick()

				var colors map[core.PositionID]core.Color
				if snap.State == Running {
					colors = Colors(t.deps.Clock.ActiveFrame(), t.deps.Roster)
				} else {
					colors = map[core.PositionID]core.Color{}
				}

				t.render(snap, colors)
			}
		}
	}()

	return nil
}

// Stop halts the tick loop.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.isRunning {
		close(t.stopChan)
	}
}
