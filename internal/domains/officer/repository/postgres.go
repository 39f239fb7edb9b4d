package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shopping-backend/internal/domains/officer/model"
)

// postgresRepository is the hand-written-SQL backend: explicit statements,
// manual row mapping, positional placeholders.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Save(ctx context.Context, officer model.Officer) (model.Officer, error) {
	if officer.ID == 0 {
		query := `
			INSERT INTO officers (rank, first_name, last_name)
			VALUES ($1, $2, $3)
			RETURNING id
		`
		err := r.pool.QueryRow(ctx, query,
			string(officer.Rank), officer.FirstName, officer.LastName,
		).Scan(&officer.ID)
		if err != nil {
			return model.Officer{}, fmt.Errorf("failed to insert officer: %w", err)
		}
		return officer, nil
	}

	// Merge semantics for an explicit id: overwrite the row, creating it
	// if it never existed.
	query := `
		INSERT INTO officers (id, rank, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET rank = EXCLUDED.rank,
		    first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name
	`
	_, err := r.pool.Exec(ctx, query,
		officer.ID, string(officer.Rank), officer.FirstName, officer.LastName,
	)
	if err != nil {
		return model.Officer{}, fmt.Errorf("failed to save officer: %w", err)
	}
	return officer, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (model.Officer, bool, error) {
	query := "SELECT id, rank, first_name, last_name FROM officers WHERE id = $1"

	var o model.Officer
	var rank string
	err := r.pool.QueryRow(ctx, query, id).Scan(&o.ID, &rank, &o.FirstName, &o.LastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Officer{}, false, nil
		}
		return model.Officer{}, false, fmt.Errorf("failed to find officer by id: %w", err)
	}

	o.Rank = model.Rank(rank)
	return o, true, nil
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]model.Officer, error) {
	rows, err := r.pool.Query(ctx, "SELECT id, rank, first_name, last_name FROM officers ORDER BY id")
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

func (r *postgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM officers").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count officers: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) Delete(ctx context.Context, officer model.Officer) error {
	// Deleting an absent id is a no-op, matching the store's semantics.
	_, err := r.pool.Exec(ctx, "DELETE FROM officers WHERE id = $1", officer.ID)
	if err != nil {
		return fmt.Errorf("failed to delete officer: %w", err)
	}
	return nil
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM officers WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check officer existence: %w", err)
	}
	return exists, nil
}
