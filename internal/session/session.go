// Package session wires the replay engine together: one acquisition run
// feeding the frame sequence, and the playback control surface over it.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/tracklight/replay/internal/acquire"
	"github.com/tracklight/replay/internal/board"
	"github.com/tracklight/replay/internal/config"
	"github.com/tracklight/replay/internal/frame"
	"github.com/tracklight/replay/internal/logging"
	"github.com/tracklight/replay/internal/playback"
)

// Dependencies holds all dependencies for the session service.
type Dependencies struct {
	Acquirer   *acquire.Service
	Resolver   *board.Resolver
	Sequence   *frame.Sequence
	Clock      *playback.Clock
	LogManager *logging.SlogManager
}

// Status is a point-in-time view of the engine for the control surface and
// the status monitor.
type Status struct {
	Loaded   bool
	RunID    string
	Samples  int
	Warnings int
	Frames   int
	Playback playback.Snapshot
}

// Service runs acquisition into the frame sequence and exposes the playback
// control surface.
type Service struct {
	deps    Dependencies
	frames  config.FramesConfig
	session config.SessionConfig

	mu     sync.RWMutex
	loaded bool
	report acquire.Report
}

// NewService creates a new session service.
func NewService(deps Dependencies, frames config.FramesConfig, session config.SessionConfig) *Service {
	return &Service{
		deps:    deps,
		frames:  frames,
		session: session,
	}
}

// Load runs one acquisition pass and rebuilds the frame sequence from the
// result. Playback stops and previous frames are discarded first, so a
// reload starts the session over. Warnings ride in the run report rather
// than erroring; only a failed or cancelled run returns an error.
func (s *Service) Load(ctx context.Context) error {
	log := s.deps.LogManager.Logger()

	s.deps.Clock.Stop()
	s.deps.Sequence.Reset()

	result, err := s.deps.Acquirer.Run(ctx, s.session)
	if result != nil {
		s.mu.Lock()
		s.report = result.Report
		s.loaded = err == nil
		s.mu.Unlock()
	}
	if err != nil {
		return fmt.Errorf("acquisition run: %w", err)
	}

	builder := frame.NewBuilder(s.frames.Capacity, s.deps.Sequence)
	for _, smp := range result.Samples {
		builder.Add(s.deps.Resolver.Resolve(smp))
	}
	builder.Flush()

	log.Info("Session loaded",
		"runID", result.Report.RunID,
		"samples", result.Report.Kept,
		"frames", s.deps.Sequence.Len(),
		"warnings", len(result.Report.Warnings))

	return nil
}

// Start begins playback from the first frame.
func (s *Service) Start() {
	s.deps.Clock.Start()
	s.deps.LogManager.Logger().Info("Playback started", "speed", s.deps.Clock.Speed())
}

// Stop halts playback and rewinds to the first frame.
func (s *Service) Stop() {
	s.deps.Clock.Stop()
	s.deps.LogManager.Logger().Info("Playback stopped")
}

// SetSpeed applies a playback speed and returns the value in effect after
// clamping to the configured bounds.
func (s *Service) SetSpeed(speed int) int {
	applied := s.deps.Clock.SetSpeed(speed)
	s.deps.LogManager.Logger().Info("Playback speed set", "requested", speed, "applied", applied)
	return applied
}

// Status returns a point-in-time engine snapshot.
func (s *Service) Status() Status {
	s.mu.RLock()
	loaded := s.loaded
	report := s.report
	s.mu.RUnlock()

	return Status{
		Loaded:   loaded,
		RunID:    report.RunID,
		Samples:  report.Kept,
		Warnings: len(report.Warnings),
		Frames:   s.deps.Sequence.Len(),
		Playback: s.deps.Clock.Snapshot(),
	}
}

// Report returns the last run report. The second return is false until a
// run has completed successfully.
func (s *Service) Report() (acquire.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report, s.loaded
}
