// Package database opens session-archive connections for the archive
// telemetry source. Archives are exported by external tooling; this engine
// only ever reads them.
package database

import (
	"database/sql"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tracklight/replay/internal/config"
)

// Manager handles the archive database connection.
type Manager struct {
	DB      *gorm.DB
	SqlDB   *sql.DB
	IsValid bool
	Logger  zerolog.Logger
}

// NewManager creates a new archive database manager.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		IsValid: false,
		Logger:  log,
	}
}

// Connect opens the configured archive and validates the connection with a
// ping. An unreachable archive is a startup input error.
func (m *Manager) Connect(cfg config.ArchiveSourceConfig) error {
	var err error

	switch cfg.Driver {
	case "postgres":
		m.DB, err = OpenPostgres(cfg.DSN)
	default:
		m.DB, err = OpenSqlite(cfg.Path)
	}
	if err != nil {
		m.IsValid = false
		return fmt.Errorf("failed to open %s archive: %w", cfg.Driver, err)
	}

	m.SqlDB, err = m.DB.DB()
	if err != nil {
		m.IsValid = false
		return fmt.Errorf("failed to access sql interface: %w", err)
	}

	if err := m.SqlDB.Ping(); err != nil {
		m.IsValid = false
		return fmt.Errorf("failed to validate archive connection: %w", err)
	}

	m.Logger.Info().Str("driver", cfg.Driver).Msg("Connected to session archive")
	m.IsValid = true
	m.SqlDB.SetMaxOpenConns(10)

	return nil
}

// Close releases the underlying connection.
func (m *Manager) Close() error {
	if m.SqlDB == nil {
		return nil
	}
	m.IsValid = false
	return m.SqlDB.Close()
}

// OpenPostgres returns a read connection to a Postgres session archive.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// OpenSqlite returns a read connection to a SQLite session archive.
// If path is empty, uses an in-memory database.
func OpenSqlite(path string) (*gorm.DB, error) {
	if path == "" {
		path = "file::memory:?cache=shared"
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// set PRAGMAS; the archive is never written through this connection
	pragmas := []string{
		"PRAGMA journal_mode = MEMORY;",
		"PRAGMA cache_size = -32000;",
		"PRAGMA temp_store = MEMORY;",
		"PRAGMA mmap_size = 30000000000;",
		"PRAGMA query_only = ON;",
	}

	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}

	return db, nil
}
