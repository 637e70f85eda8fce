package engine

import (
	"log/slog"

	"rotterDB/internal/sql"
	"rotterDB/internal/storage"
)

// DBEngine is the command engine. It parses one text command at a time and
// runs it against a storage engine. The only state it holds is the store.
type DBEngine struct {
	store  storage.Engine
	logger *slog.Logger
}

// Config holds engine configuration.
type Config struct {
	// Store is the storage engine commands run against (required).
	Store storage.Engine
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates a new DBEngine over cfg.Store.
func New(cfg Config) *DBEngine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &DBEngine{
		store:  cfg.Store,
		logger: logger.With("component", "engine"),
	}
}

// ListTables returns the names of all tables in the storage engine.
func (e *DBEngine) ListTables() ([]string, error) {
	return e.store.ListTables()
}

// TableSchema returns the column definitions for a table.
func (e *DBEngine) TableSchema(name string) ([]sql.Column, error) {
	return e.store.TableSchema(name)
}
