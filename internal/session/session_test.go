package session

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracklight/replay/internal/acquire"
	"github.com/tracklight/replay/internal/board"
	"github.com/tracklight/replay/internal/config"
	"github.com/tracklight/replay/internal/frame"
	"github.com/tracklight/replay/internal/logging"
	"github.com/tracklight/replay/internal/playback"
	"github.com/tracklight/replay/internal/roster"
	"github.com/tracklight/replay/pkg/core"
)

type fakeSource struct {
	mu    sync.Mutex
	calls int
	fetch func(entity core.EntityID, w core.Window, call int) ([]core.Sample, error)
}

func (f *fakeSource) Fetch(_ context.Context, entity core.EntityID, w core.Window) ([]core.Sample, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()

	if f.fetch == nil {
		return nil, nil
	}
	return f.fetch(entity, w, call)
}

func (f *fakeSource) Close() error { return nil }

func sessionRange() config.SessionConfig {
	start := time.Date(2023, 8, 27, 13, 0, 0, 0, time.UTC)
	return config.SessionConfig{
		Key:   9149,
		Start: start,
		End:   start.Add(time.Minute),
	}
}

// newTestSession wires a service over one query window, two entities and a
// three-position layout.
func newTestSession(t *testing.T, src *fakeSource, capacity int) *Service {
	t.Helper()

	logMgr := logging.NewSlogManager()
	logMgr.Setup(logging.Options{File: io.Discard, Level: "error"})

	ros, err := roster.New([]core.Entity{
		{ID: 44, Name: "Hamilton", Team: "Mercedes", Color: core.Color("#00D2BE")},
		{ID: 16, Name: "Leclerc", Team: "Ferrari", Color: core.Color("#DC0000")},
	})
	require.NoError(t, err)

	layout, err := board.NewLayout([]core.Position{
		{ID: 1, X: 0, Y: 0},
		{ID: 2, X: 10, Y: 0},
		{ID: 3, X: 20, Y: 0},
	})
	require.NoError(t, err)

	acquirer, err := acquire.NewService(acquire.Dependencies{
		Source:     src,
		Roster:     ros,
		LogManager: logMgr,
	}, config.AcquireConfig{
		WindowSize:  time.Minute,
		Concurrency: 2,
		BackoffBase: time.Millisecond,
		BackoffCap:  4 * time.Millisecond,
		MaxAttempts: 2,
	})
	require.NoError(t, err)

	seq := frame.NewSequence()
	clock := playback.NewClock(seq, config.PlaybackConfig{
		UpdateRateMs: 100,
		MinSpeed:     1,
		MaxSpeed:     5,
		TickInterval: 10 * time.Millisecond,
	})

	return NewService(Dependencies{
		Acquirer:   acquirer,
		Resolver:   board.NewResolver(layout),
		Sequence:   seq,
		Clock:      clock,
		LogManager: logMgr,
	}, config.FramesConfig{Capacity: capacity}, sessionRange())
}

func samplesAt(entity core.EntityID, base time.Time, coords ...float64) []core.Sample {
	out := make([]core.Sample, 0, len(coords))
	for i, x := range coords {
		out = append(out, core.Sample{
			Entity:    entity,
			X:         x,
			Y:         1,
			Timestamp: base.Add(time.Duration(i) * time.Second),
		})
	}
	return out
}

func TestLoadBuildsFrames(t *testing.T) {
	base := sessionRange().Start
	src := &fakeSource{fetch: func(entity core.EntityID, _ core.Window, _ int) ([]core.Sample, error) {
		if entity == 44 {
			return samplesAt(44, base.Add(time.Millisecond), 1, 9, 21), nil
		}
		return samplesAt(16, base.Add(10*time.Millisecond), 2, 19), nil
	}}
	svc := newTestSession(t, src, 2)

	require.NoError(t, svc.Load(context.Background()))

	status := svc.Status()
	assert.True(t, status.Loaded)
	assert.NotEmpty(t, status.RunID)
	assert.Equal(t, 5, status.Samples)
	assert.Equal(t, 0, status.Warnings)
	assert.Equal(t, 3, status.Frames, "5 assignments at capacity 2 seal 3 frames")
	assert.Equal(t, playback.Stopped, status.Playback.State)
}

func TestLoadResolvesNearestPosition(t *testing.T) {
	base := sessionRange().Start
	src := &fakeSource{fetch: func(entity core.EntityID, _ core.Window, _ int) ([]core.Sample, error) {
		if entity != 44 {
			return nil, nil
		}
		return []core.Sample{{Entity: 44, X: 4, Y: 0, Timestamp: base.Add(time.Second)}}, nil
	}}
	svc := newTestSession(t, src, 20)

	require.NoError(t, svc.Load(context.Background()))

	f, ok := svc.deps.Sequence.Frame(0)
	require.True(t, ok)
	require.Equal(t, 1, f.Len())
	assert.Equal(t, core.Assignment{Entity: 44, Position: 1}, f.Assignments[0])
}

func TestLoadRestartsSession(t *testing.T) {
	base := sessionRange().Start
	src := &fakeSource{}
	src.fetch = func(entity core.EntityID, _ core.Window, _ int) ([]core.Sample, error) {
		if entity != 44 {
			return nil, nil
		}
		src.mu.Lock()
		second := src.calls > 2
		src.mu.Unlock()
		if second {
			return samplesAt(44, base.Add(time.Second), 5), nil
		}
		return samplesAt(44, base.Add(time.Second), 5, 15, 25), nil
	}
	svc := newTestSession(t, src, 20)

	require.NoError(t, svc.Load(context.Background()))
	assert.Equal(t, 1, svc.Status().Frames)
	assert.Equal(t, 3, svc.Status().Samples)

	svc.Start()
	require.Equal(t, playback.Running, svc.Status().Playback.State)

	require.NoError(t, svc.Load(context.Background()))

	status := svc.Status()
	assert.Equal(t, playback.Stopped, status.Playback.State, "reload stops playback")
	assert.Equal(t, 0, status.Playback.FrameIndex)
	assert.Equal(t, 1, status.Samples)
	assert.Equal(t, 1, status.Frames)
}

func TestLoadCancelledRun(t *testing.T) {
	src := &fakeSource{}
	svc := newTestSession(t, src, 20)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)

	status := svc.Status()
	assert.False(t, status.Loaded)
	assert.Equal(t, 0, status.Frames)

	_, ok := svc.Report()
	assert.False(t, ok)
}

func TestControlSurface(t *testing.T) {
	src := &fakeSource{}
	svc := newTestSession(t, src, 20)

	assert.Equal(t, 5, svc.SetSpeed(99), "speed clamps to configured maximum")
	assert.Equal(t, 1, svc.SetSpeed(0), "speed clamps to configured minimum")
	assert.Equal(t, 3, svc.SetSpeed(3))

	svc.Start()
	status := svc.Status()
	assert.Equal(t, playback.Running, status.Playback.State)
	assert.Equal(t, 3, status.Playback.Speed)

	svc.Stop()
	status = svc.Status()
	assert.Equal(t, playback.Stopped, status.Playback.State)
	assert.Equal(t, 0, status.Playback.FrameIndex)
	assert.Equal(t, time.Duration(0), status.Playback.Elapsed)
}

func TestStatusBeforeLoad(t *testing.T) {
	svc := newTestSession(t, &fakeSource{}, 20)

	status := svc.Status()
	assert.False(t, status.Loaded)
	assert.Empty(t, status.RunID)
	assert.Zero(t, status.Samples)
	assert.Zero(t, status.Frames)
	assert.Equal(t, playback.Stopped, status.Playback.State)

	_, ok := svc.Report()
	assert.False(t, ok)
}

func TestReportAfterLoad(t *testing.T) {
	base := sessionRange().Start
	src := &fakeSource{fetch: func(entity core.EntityID, _ core.Window, _ int) ([]core.Sample, error) {
		return samplesAt(entity, base.Add(time.Second), 1), nil
	}}
	svc := newTestSession(t, src, 20)

	require.NoError(t, svc.Load(context.Background()))

	report, ok := svc.Report()
	require.True(t, ok)
	assert.Equal(t, svc.Status().RunID, report.RunID)
	assert.Equal(t, 2, report.Entities)
	assert.Equal(t, 2, report.Kept)
}
