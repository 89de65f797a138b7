// Package acquire runs the telemetry acquisition pipeline. It walks every
// roster entity across the session's query windows with bounded
// concurrency, rides out the source's rate limit with exponential backoff,
// and delivers one globally time-sorted sample batch.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/tracklight/replay/internal/channel"
	"github.com/tracklight/replay/internal/config"
	"github.com/tracklight/replay/internal/logging"
	"github.com/tracklight/replay/internal/roster"
	"github.com/tracklight/replay/internal/telemetry"
	"github.com/tracklight/replay/pkg/core"
)

// Dependencies holds all dependencies for the acquisition service.
type Dependencies struct {
	Source     telemetry.Source
	Roster     *roster.Roster
	LogManager *logging.SlogManager
}

// Service fetches a whole session of samples from the telemetry source.
type Service struct {
	deps     Dependencies
	cfg      config.AcquireConfig
	progress *Progress

	// sleep is swapped by tests to observe backoff delays
	sleep func(context.Context, time.Duration) error

	// OTEL metrics
	samplesFetched   metric.Int64Counter
	samplesDropped   metric.Int64Counter
	windowsRetried   metric.Int64Counter
	windowsAbandoned metric.Int64Counter
	windowStates     metric.Int64ObservableGauge
}

// NewService creates a new acquisition service.
// Uses the global OTel meter for metrics (no-op if not configured).
func NewService(deps Dependencies, cfg config.AcquireConfig) (*Service, error) {
	s := &Service{
		deps:     deps,
		cfg:      cfg,
		progress: NewProgress(),
		sleep:    sleepContext,
	}

	m := meter()

	var err error

	s.samplesFetched, err = m.Int64Counter(
		"acquire.samples.fetched",
		metric.WithDescription("Total samples returned by the telemetry source"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fetched counter: %w", err)
	}

	s.samplesDropped, err = m.Int64Counter(
		"acquire.samples.dropped",
		metric.WithDescription("Total sentinel origin samples dropped"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dropped counter: %w", err)
	}

	s.windowsRetried, err = m.Int64Counter(
		"acquire.windows.retried",
		metric.WithDescription("Total rate-limited window fetches retried"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating retried counter: %w", err)
	}

	s.windowsAbandoned, err = m.Int64Counter(
		"acquire.windows.abandoned",
		metric.WithDescription("Total window fetches abandoned"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating abandoned counter: %w", err)
	}

	s.windowStates, err = m.Int64ObservableGauge(
		"acquire.windows.state",
		metric.WithDescription("Current fetch tasks by state"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating state gauge: %w", err)
	}

	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			for state, n := range s.progress.Counts() {
				o.ObserveInt64(s.windowStates, int64(n),
					metric.WithAttributes(attribute.String("state", state.String())))
			}
			return nil
		},
		s.windowStates,
	)
	if err != nil {
		return nil, fmt.Errorf("registering state callback: %w", err)
	}

	return s, nil
}

// Progress exposes the run's task table for monitoring.
func (s *Service) Progress() *Progress {
	return s.progress
}

// entityResult is one entity's share of a run, fanned back in over the
// results channel.
type entityResult struct {
	entity    core.EntityID
	samples   []core.Sample
	fetched   int
	dropped   int
	queried   int
	succeeded int
	abandoned []string
}

// Run walks every roster entity across the session windows and returns the
// filtered, globally time-sorted sample batch. Cancellation mid-run still
// returns the cleanly accumulated partial batch, alongside the context's
// error.
func (s *Service) Run(ctx context.Context, session config.SessionConfig) (*Result, error) {
	windows := PlanWindows(session.Start, session.End, s.cfg.WindowSize)
	entities := s.deps.Roster.IDs()
	log := s.deps.LogManager.Logger()

	s.progress.Reset()

	report := Report{
		RunID:    uuid.New().String(),
		Entities: len(entities),
		Windows:  len(windows),
	}
	if len(windows) == 0 {
		report.Warnings = append(report.Warnings, "session range produced no query windows")
		return &Result{Report: report}, nil
	}

	log.Info("Starting acquisition run",
		"runID", report.RunID,
		"entities", len(entities),
		"windows", len(windows),
		"concurrency", s.cfg.Concurrency)

	started := time.Now()

	results := channel.New[entityResult](len(entities))
	sem := make(chan struct{}, s.cfg.Concurrency)
	var wg sync.WaitGroup

	for _, id := range entities {
		wg.Add(1)
		go func(id core.EntityID) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results.Send(s.fetchEntity(ctx, id, windows))
		}(id)
	}
	go func() {
		wg.Wait()
		results.Close()
	}()

	var all []core.Sample
	for res := range results.Receive() {
		report.Fetched += res.fetched
		report.Dropped += res.dropped
		report.Succeeded += res.succeeded
		report.Abandoned += len(res.abandoned)
		report.Skipped += len(windows) - res.queried
		report.Warnings = append(report.Warnings, res.abandoned...)
		all = append(all, res.samples...)
	}

	// global order; ties keep fetch order
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp.Before(all[j].Timestamp)
	})

	report.Kept = len(all)
	report.Elapsed = time.Since(started)

	if err := ctx.Err(); err != nil {
		report.Warnings = append(report.Warnings, "acquisition cancelled before completion")
		log.Warn("Acquisition run cancelled",
			"runID", report.RunID,
			"kept", report.Kept)
		return &Result{Samples: all, Report: report}, err
	}

	log.Info("Acquisition run complete",
		"runID", report.RunID,
		"kept", report.Kept,
		"dropped", report.Dropped,
		"abandoned", report.Abandoned,
		"skipped", report.Skipped,
		"elapsed", report.Elapsed)

	return &Result{Samples: all, Report: report}, nil
}

// fetchEntity advances one entity through the window plan sequentially.
func (s *Service) fetchEntity(ctx context.Context, id core.EntityID, windows []core.Window) entityResult {
	res := entityResult{entity: id}
	log := s.deps.LogManager.Logger()

	for i, w := range windows {
		if ctx.Err() != nil {
			break
		}
		res.queried++

		task := Task{Entity: id, Index: i, Window: w}
		samples, status, err := s.fetchWindow(ctx, task)

		if status.State == StateAbandoned {
			s.windowsAbandoned.Add(ctx, 1, metric.WithAttributes(attribute.Int("entity", int(id))))
			res.abandoned = append(res.abandoned,
				fmt.Sprintf("entity %d window %d abandoned after %d attempts: %v", id, i+1, status.Attempts, err))
			log.Warn("Window abandoned",
				"entity", id,
				"window", i+1,
				"attempts", status.Attempts,
				"error", err)
			continue
		}

		res.succeeded++
		res.fetched += len(samples)
		s.samplesFetched.Add(ctx, int64(len(samples)))

		for _, smp := range samples {
			if smp.AtOrigin() {
				res.dropped++
				continue
			}
			res.samples = append(res.samples, smp)
		}

		// an empty answer can mean the source has nothing further for
		// this entity; skipping ahead is opt-in
		if len(samples) == 0 && s.cfg.StopOnEmptyWindow {
			log.Debug("Entity out of data, skipping remaining windows",
				"entity", id,
				"window", i+1)
			break
		}
	}

	dropped := int64(res.dropped)
	if dropped > 0 {
		s.samplesDropped.Add(ctx, dropped)
	}
	return res
}

// fetchWindow drives one task through its state machine: Pending, then
// Retrying per rate-limited attempt, settling as Succeeded or Abandoned.
// Only rate limits retry; any other failure abandons the window at once.
func (s *Service) fetchWindow(ctx context.Context, t Task) ([]core.Sample, TaskStatus, error) {
	s.progress.Pending(t)

	attempts := 0
	var lastErr error
	for attempts < s.cfg.MaxAttempts {
		if attempts > 0 {
			s.progress.Retrying(t, attempts)
			s.windowsRetried.Add(ctx, 1, metric.WithAttributes(attribute.Int("entity", int(t.Entity))))
			if err := s.sleep(ctx, Backoff(s.cfg.BackoffBase, s.cfg.BackoffCap, attempts)); err != nil {
				lastErr = err
				break
			}
		}

		attempts++
		samples, err := s.deps.Source.Fetch(ctx, t.Entity, t.Window)
		if err == nil {
			s.progress.Succeeded(t, attempts)
			return samples, TaskStatus{State: StateSucceeded, Attempts: attempts}, nil
		}
		lastErr = err

		if !errors.Is(err, telemetry.ErrRateLimited) {
			break
		}
	}

	s.progress.Abandoned(t, attempts)
	return nil, TaskStatus{State: StateAbandoned, Attempts: attempts}, lastErr
}

// sleepContext waits out d without outliving the context.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
