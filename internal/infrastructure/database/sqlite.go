package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// OpenSQLite opens (or creates) an embedded SQLite database. It backs the
// alternate officers repository so the service can run without PostgreSQL.
// Use ":memory:" for a throwaway instance.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path
	if dsn == ":memory:" {
		// Shared cache keeps the in-memory database alive across the
		// pool's connections.
		dsn = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// database/sql pools connections; the modernc driver serializes writes
	// per connection, so one writer avoids SQLITE_BUSY on inserts.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite ping failed: %w", err)
	}

	if _, err := db.ExecContext(ctx, officersSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply sqlite schema: %w", err)
	}

	log.Info().Str("path", path).Msg("Opened SQLite database")
	return db, nil
}

const officersSchema = `
CREATE TABLE IF NOT EXISTS officers (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    rank       TEXT NOT NULL,
    first_name TEXT NOT NULL,
    last_name  TEXT NOT NULL
);
`
