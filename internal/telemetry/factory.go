package telemetry

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tracklight/replay/internal/config"
	"github.com/tracklight/replay/internal/database"
	"github.com/tracklight/replay/pkg/core"
)

// NewSource creates a telemetry source based on configuration. The board
// positions and roster entities feed the synthetic generator; the other
// source kinds ignore them.
func NewSource(cfg config.SourceConfig, sessionKey uint32, positions []core.Position, entities []core.EntityID, log zerolog.Logger) (Source, error) {
	switch cfg.Type {
	case "http":
		return NewHTTPSource(cfg.HTTP, sessionKey), nil
	case "archive":
		mgr := database.NewManager(log)
		if err := mgr.Connect(cfg.Archive); err != nil {
			return nil, err
		}
		return NewArchiveSource(mgr.DB, sessionKey), nil
	case "synthetic":
		return NewSyntheticSource(positions, entities), nil
	default:
		return nil, fmt.Errorf("unknown telemetry source type: %s", cfg.Type)
	}
}
