package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shopping-backend/internal/domains/officer/model"
)

// sqliteRepository is the embedded-database backend over database/sql.
// It differs from the postgres backend in driver, placeholders and key
// retrieval, but honors the same behavioral contract.
type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) RepositoryInterface {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) Save(ctx context.Context, officer model.Officer) (model.Officer, error) {
	if officer.ID == 0 {
		res, err := r.db.ExecContext(ctx,
			"INSERT INTO officers (rank, first_name, last_name) VALUES (?, ?, ?)",
			string(officer.Rank), officer.FirstName, officer.LastName,
		)
		if err != nil {
			return model.Officer{}, fmt.Errorf("failed to insert officer: %w", err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return model.Officer{}, fmt.Errorf("failed to read generated officer id: %w", err)
		}
		officer.ID = id
		return officer, nil
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO officers (id, rank, first_name, last_name) VALUES (?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE
		 SET rank = excluded.rank,
		     first_name = excluded.first_name,
		     last_name = excluded.last_name`,
		officer.ID, string(officer.Rank), officer.FirstName, officer.LastName,
	)
	if err != nil {
		return model.Officer{}, fmt.Errorf("failed to save officer: %w", err)
	}
	return officer, nil
}

func (r *sqliteRepository) FindByID(ctx context.Context, id int64) (model.Officer, bool, error) {
	var o model.Officer
	var rank string
	err := r.db.QueryRowContext(ctx,
		"SELECT id, rank, first_name, last_name FROM officers WHERE id = ?", id,
	).Scan(&o.ID, &rank, &o.FirstName, &o.LastName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Officer{}, false, nil
		}
		return model.Officer{}, false, fmt.Errorf("failed to find officer by id: %w", err)
	}

	o.Rank = model.Rank(rank)
	return o, true, nil
}

func (r *sqliteRepository) FindAll(ctx context.Context) ([]model.Officer, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, rank, first_name, last_name FROM officers ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list officers: %w", err)
	}
	defer rows.Close()

	officers := make([]model.Officer, 0)
	for rows.Next() {
		var o model.Officer
		var rank string
		if err := rows.Scan(&o.ID, &rank, &o.FirstName, &o.LastName); err != nil {
			return nil, fmt.Errorf("failed to scan officer row: %w", err)
		}
		o.Rank = model.Rank(rank)
		officers = append(officers, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating officer rows: %w", err)
	}

	return officers, nil
}

func (r *sqliteRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM officers").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count officers: %w", err)
	}
	return count, nil
}

func (r *sqliteRepository) Delete(ctx context.Context, officer model.Officer) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM officers WHERE id = ?", officer.ID)
	if err != nil {
		return fmt.Errorf("failed to delete officer: %w", err)
	}
	return nil
}

func (r *sqliteRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM officers WHERE id = ?)", id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check officer existence: %w", err)
	}
	return exists, nil
}
