// Package monitor periodically logs engine status: acquisition progress,
// sealed frame count and the playback cursor.
package monitor

import (
	"sync"
	"time"

	"github.com/tracklight/replay/internal/acquire"
	"github.com/tracklight/replay/internal/logging"
	"github.com/tracklight/replay/internal/session"
	"github.com/tracklight/replay/internal/util"
)

// StatsRecorder receives periodic status snapshots for export. Implemented
// by the influx manager; nil disables export.
type StatsRecorder interface {
	RecordPlayback(status session.Status)
}

// Dependencies holds all dependencies for the monitor service.
type Dependencies struct {
	Session    *session.Service
	Progress   *acquire.Progress
	LogManager *logging.SlogManager
	Stats      StatsRecorder
}

// Service logs an engine status line at a fixed interval.
type Service struct {
	deps      Dependencies
	interval  time.Duration
	isRunning bool
	mu        sync.RWMutex
	stopChan  chan struct{}
}

// NewService creates a new monitor service.
func NewService(deps Dependencies, interval time.Duration) *Service {
	return &Service{
		deps:     deps,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// IsRunning returns whether the status monitor is running.
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Start starts the status monitor goroutine.
func (s *Service) Start() error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.stopChan = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			s.isRunning = false
			s.mu.Unlock()
		}()

		logger := s.deps.LogManager.Logger()
		logger.Debug("Starting status monitor", "interval", s.interval)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.logStatus()
			}
		}
	}()

	return nil
}

// Stop stops the status monitor.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		close(s.stopChan)
	}
}

func (s *Service) logStatus() {
	status := s.deps.Session.Status()
	counts := s.deps.Progress.Counts()

	s.deps.LogManager.Logger().Info("Engine status",
		"state", status.Playback.State.String(),
		"speed", status.Playback.Speed,
		"frame", status.Playback.FrameIndex,
		"frames", status.Frames,
		"elapsed", util.FormatRaceTime(status.Playback.Elapsed),
		"samples", status.Samples,
		"warnings", status.Warnings,
		"windowsPending", counts[acquire.StatePending],
		"windowsRetrying", counts[acquire.StateRetrying],
		"windowsSucceeded", counts[acquire.StateSucceeded],
		"windowsAbandoned", counts[acquire.StateAbandoned])

	if s.deps.Stats != nil {
		s.deps.Stats.RecordPlayback(status)
	}
}
