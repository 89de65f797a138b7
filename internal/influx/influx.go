// Package influx ships acquisition and playback statistics to InfluxDB.
// Points buffer in a queue and flush on a ticker so recording never blocks
// the engine.
package influx

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rs/zerolog"

	"github.com/tracklight/replay/internal/acquire"
	"github.com/tracklight/replay/internal/config"
	"github.com/tracklight/replay/internal/queue"
	"github.com/tracklight/replay/internal/session"
)

// ErrDisabled is returned by Connect when influx shipping is switched off.
var ErrDisabled = errors.New("influx.enabled is false")

// defaultFlushInterval applies when the configured interval is unusable.
const defaultFlushInterval = 10 * time.Second

// maxPendingPoints caps the point buffer; the oldest statistics are
// discarded when the flush loop falls behind.
const maxPendingPoints = 1000

// Manager handles the InfluxDB connection and buffered statistic writes.
type Manager struct {
	cfg     config.InfluxConfig
	Client  influxdb2.Client
	writer  influxdb2_api.WriteAPIBlocking
	points  *queue.Queue[*influxdb2_write.Point]
	IsValid bool
	Logger  zerolog.Logger

	isRunning bool
	mu        sync.RWMutex
	stopChan  chan struct{}
}

// NewManager creates a new InfluxDB manager.
func NewManager(log zerolog.Logger, cfg config.InfluxConfig) *Manager {
	return &Manager{
		cfg:    cfg,
		points: queue.NewBounded[*influxdb2_write.Point](maxPendingPoints),
		Logger: log,
	}
}

// Connect establishes and validates the InfluxDB connection.
func (m *Manager) Connect(ctx context.Context) error {
	if !m.cfg.Enabled {
		return ErrDisabled
	}

	m.Client = influxdb2.NewClient(m.cfg.URL, m.cfg.Token)

	running, err := m.Client.Ping(ctx)
	if err != nil {
		m.IsValid = false
		return fmt.Errorf("pinging influxdb at %s: %w", m.cfg.URL, err)
	}
	if !running {
		m.IsValid = false
		return fmt.Errorf("influxdb at %s is not ready", m.cfg.URL)
	}

	m.writer = m.Client.WriteAPIBlocking(m.cfg.Org, m.cfg.Bucket)
	m.IsValid = true
	m.Logger.Info().Str("url", m.cfg.URL).Str("bucket", m.cfg.Bucket).
		Msg("InfluxDB client initialized")

	return nil
}

// IsRunning returns whether the flush loop is running.
func (m *Manager) IsRunning() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.isRunning
}

// Start launches the flush loop.
func (m *Manager) Start() error {
	m.mu.Lock()
	if m.isRunning {
		m.mu.Unlock()
		return nil
	}
	m.isRunning = true
	m.stopChan = make(chan struct{})
	m.mu.Unlock()

	interval := m.cfg.FlushInterval
	if interval <= 0 {
		interval = defaultFlushInterval
	}

	go func() {
		defer func() {
			m.mu.Lock()
			m.isRunning = false
			m.mu.Unlock()
		}()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-m.stopChan:
				return
			case <-ticker.C:
				m.Flush(context.Background())
			}
		}
	}()

	return nil
}

// Stop halts the flush loop without draining the buffer; call Flush or
// Close for the remainder.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.isRunning {
		close(m.stopChan)
	}
}

// Flush writes all buffered points. Points that fail to write are dropped;
// statistics are best-effort.
func (m *Manager) Flush(ctx context.Context) {
	pts := m.points.GetAndEmpty()
	if len(pts) == 0 || !m.IsValid {
		return
	}

	if err := m.writer.WritePoint(ctx, pts...); err != nil {
		m.Logger.Error().Err(err).Int("points", len(pts)).
			Msg("Error sending statistics to InfluxDB")
	}
}

// Close stops the flush loop, drains the buffer and closes the client.
func (m *Manager) Close() {
	m.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	m.Flush(ctx)
	if m.Client != nil {
		m.Client.Close()
	}
}

// RecordRun buffers one acquisition run report.
func (m *Manager) RecordRun(report acquire.Report) {
	if !m.IsValid {
		return
	}

	p := influxdb2_write.NewPointWithMeasurement("acquisition_run").
		AddTag("run_id", report.RunID).
		AddField("entities", report.Entities).
		AddField("windows", report.Windows).
		AddField("succeeded", report.Succeeded).
		AddField("abandoned", report.Abandoned).
		AddField("skipped", report.Skipped).
		AddField("fetched", report.Fetched).
		AddField("dropped", report.Dropped).
		AddField("kept", report.Kept).
		AddField("elapsed_ms", report.Elapsed.Milliseconds()).
		AddField("warnings", len(report.Warnings)).
		SetTime(time.Now())

	m.points.Push(p)
}

// RecordPlayback buffers one playback status snapshot.
func (m *Manager) RecordPlayback(status session.Status) {
	if !m.IsValid {
		return
	}

	p := influxdb2_write.NewPointWithMeasurement("playback").
		AddTag("run_id", status.RunID).
		AddField("state", status.Playback.State.String()).
		AddField("speed", status.Playback.Speed).
		AddField("frame_index", status.Playback.FrameIndex).
		AddField("frame_count", status.Playback.FrameCount).
		AddField("elapsed_ms", status.Playback.Elapsed.Milliseconds()).
		AddField("samples", status.Samples).
		AddField("warnings", status.Warnings).
		SetTime(time.Now())

	m.points.Push(p)
}

// Pending returns the number of buffered points awaiting flush.
func (m *Manager) Pending() int {
	return m.points.Len()
}
