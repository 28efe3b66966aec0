// Package store implements the persistence layer of the application.
// It provides PostgreSQL- and SQLite-backed repositories for user accounts
// and example items behind driver-agnostic interfaces. SQL statements are
// assembled with the squirrel builder so that placeholder styles follow the
// active driver.
package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/kispace/kispace-server/internal/config"
	"github.com/kispace/kispace-server/internal/logger"
)

// DB wraps the raw database handle together with the statement builder
// configured for the active driver's placeholder format.
type DB struct {
	*sql.DB

	// Builder is the squirrel statement builder: Dollar placeholders for
	// PostgreSQL, Question placeholders for SQLite.
	Builder sq.StatementBuilderType

	// Driver is the database/sql driver name the handle was opened with.
	Driver string

	logger *logger.Logger
}

// NewDB opens a database connection according to the configured driver.
// Supported drivers are "pgx" (PostgreSQL) and "sqlite3".
func NewDB(ctx context.Context, cfg config.Storage, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case "pgx":
		return NewConnectPostgres(ctx, cfg, log)
	case "sqlite3":
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
}
