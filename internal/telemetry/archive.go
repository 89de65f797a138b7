package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tracklight/replay/pkg/core"
)

// Location is one archived position row. Archives are produced by the
// session exporter; the column layout here matches its schema.
type Location struct {
	ID           uint      `gorm:"primarykey"`
	SessionKey   uint32    `gorm:"index:idx_locations_lookup,priority:1"`
	DriverNumber uint16    `gorm:"index:idx_locations_lookup,priority:2"`
	Date         time.Time `gorm:"index:idx_locations_lookup,priority:3"`
	X            float64
	Y            float64
}

// Session is the archive's descriptor for one recorded session.
type Session struct {
	ID         uint   `gorm:"primarykey"`
	SessionKey uint32 `gorm:"uniqueIndex"`
	Name       string
	Meta       datatypes.JSON
}

// ArchiveSource reads samples from an exported session archive instead of
// the live API. Archive fetches never rate limit.
type ArchiveSource struct {
	db         *gorm.DB
	sessionKey uint32
}

// NewArchiveSource wraps an open archive connection for one session.
func NewArchiveSource(db *gorm.DB, sessionKey uint32) *ArchiveSource {
	return &ArchiveSource{
		db:         db,
		sessionKey: sessionKey,
	}
}

// Fetch returns the entity's archived positions with timestamps in
// [window.Start, window.End), ordered by date.
func (s *ArchiveSource) Fetch(ctx context.Context, entity core.EntityID, window core.Window) ([]core.Sample, error) {
	var rows []Location
	err := s.db.WithContext(ctx).
		Where("session_key = ? AND driver_number = ? AND date >= ? AND date < ?",
			s.sessionKey, entity, window.Start, window.End).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("querying archive locations: %w", err)
	}

	samples := make([]core.Sample, 0, len(rows))
	for _, row := range rows {
		samples = append(samples, core.Sample{
			Entity:    core.EntityID(row.DriverNumber),
			X:         row.X,
			Y:         row.Y,
			Timestamp: row.Date,
		})
	}
	return samples, nil
}

// SessionInfo returns the archive's descriptor for the configured session.
func (s *ArchiveSource) SessionInfo(ctx context.Context) (*Session, error) {
	var sess Session
	err := s.db.WithContext(ctx).
		Where("session_key = ?", s.sessionKey).
		First(&sess).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session %d not present in archive", s.sessionKey)
		}
		return nil, fmt.Errorf("querying archive session: %w", err)
	}
	return &sess, nil
}

// Close releases the archive connection.
func (s *ArchiveSource) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
