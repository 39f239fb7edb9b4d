package repository

import (
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"shopping-backend/internal/domains/officer/model"
	"shopping-backend/pkg/repository"
)

// RepositoryInterface is the generic CRUD contract specialized to officers.
// Two backends implement it: hand-written SQL over the PostgreSQL pool, and
// database/sql over embedded SQLite. Callers must not be able to tell them
// apart; the shared contract test suite in repository_test.go enforces that.
//
// Save semantics, identical in both backends: a zero ID inserts and assigns
// the identity; a non-zero ID updates that row, inserting it if it has
// never existed (merge semantics).
type RepositoryInterface interface {
	repository.Crud[model.Officer, int64]
}

// Backends selectable at startup.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// NewRepository selects an officers backend by configuration key. Only the
// handle for the chosen backend has to be non-nil.
func NewRepository(backend string, pool *pgxpool.Pool, db *sql.DB) (RepositoryInterface, error) {
	switch backend {
	case BackendPostgres:
		if pool == nil {
			return nil, fmt.Errorf("officers backend %q requires a postgres pool", backend)
		}
		return NewPostgresRepository(pool), nil
	case BackendSQLite:
		if db == nil {
			return nil, fmt.Errorf("officers backend %q requires a sqlite handle", backend)
		}
		return NewSQLiteRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown officers backend %q", backend)
	}
}
