package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"shopping-backend/internal/domains/product/model"
	"shopping-backend/pkg/database"
)

const productColumns = "id, name, price, description, quantity, sku, contact_email, created_at, updated_at"

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates the PostgreSQL product repository.
func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Price,
		&p.Description,
		&p.Quantity,
		&p.SKU,
		&p.ContactEmail,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		var p model.Product
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Price,
			&p.Description,
			&p.Quantity,
			&p.SKU,
			&p.ContactEmail,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}

	return products, nil
}

func (r *postgresRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (name, price, description, quantity, sku, contact_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		product.Name,
		product.Price,
		product.Description,
		product.Quantity,
		product.SKU,
		product.ContactEmail,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)

	if err != nil {
		// The service pre-checks the sku, but a concurrent insert can
		// still win the race; map the unique violation here.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.NewDuplicateSKUError(product.SKU)
		}
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

func (r *postgresRepository) Update(ctx context.Context, product *model.Product) error {
	query := `
		UPDATE products
		SET name = $2, price = $3, description = $4, quantity = $5,
		    sku = $6, contact_email = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		product.ID,
		product.Name,
		product.Price,
		product.Description,
		product.Quantity,
		product.SKU,
		product.ContactEmail,
	).Scan(&product.CreatedAt, &product.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.NewProductNotFoundError(product.ID)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.NewDuplicateSKUError(product.SKU)
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE id = $1"

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewProductNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get product by id: %w", err)
	}

	return p, nil
}

func (r *postgresRepository) List(ctx context.Context, page model.PageRequest) ([]model.Product, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	direction := "ASC"
	if page.SortDesc {
		direction = "DESC"
	}

	// SortCol comes from the model.SortFields whitelist, never from raw
	// caller input.
	query := fmt.Sprintf(
		"SELECT %s FROM products ORDER BY %s %s, id ASC LIMIT $1 OFFSET $2",
		productColumns, page.SortCol, direction,
	)

	rows, err := r.pool.Query(ctx, query, page.Size, page.Page*page.Size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	products, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *postgresRepository) SearchByName(ctx context.Context, name string) ([]model.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE name ILIKE '%' || $1 || '%' ORDER BY name ASC"

	rows, err := r.pool.Query(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to search products by name: %w", err)
	}

	return collectProducts(rows)
}

func (r *postgresRepository) FindByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]model.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE price BETWEEN $1 AND $2 ORDER BY price ASC"

	rows, err := r.pool.Query(ctx, query, min, max)
	if err != nil {
		return nil, fmt.Errorf("failed to find products by price range: %w", err)
	}

	return collectProducts(rows)
}

func (r *postgresRepository) FindLowStock(ctx context.Context, threshold int) ([]model.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE quantity < $1 ORDER BY quantity ASC"

	rows, err := r.pool.Query(ctx, query, threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to find low stock products: %w", err)
	}

	return collectProducts(rows)
}

func (r *postgresRepository) FindExpensive(ctx context.Context, minPrice decimal.Decimal) ([]model.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE price >= $1 ORDER BY price DESC"

	rows, err := r.pool.Query(ctx, query, minPrice)
	if err != nil {
		return nil, fmt.Errorf("failed to find expensive products: %w", err)
	}

	return collectProducts(rows)
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM products WHERE sku = $1)", sku).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check sku existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (r *postgresRepository) SetStock(ctx context.Context, id int64, quantity int) (*model.Product, error) {
	query := `
		UPDATE products
		SET quantity = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id, quantity))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewProductNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to set stock: %w", err)
	}

	return p, nil
}

func (r *postgresRepository) AddStock(ctx context.Context, id int64, amount int) (*model.Product, error) {
	query := `
		UPDATE products
		SET quantity = quantity + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id, amount))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewProductNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to add stock: %w", err)
	}

	return p, nil
}

func (r *postgresRepository) ReserveStock(ctx context.Context, id int64, amount int) (*model.Product, error) {
	// Read-check-write must happen inside one transaction: FOR UPDATE
	// serializes concurrent reservations on the row so the quantity
	// invariant holds under load.
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Product, error) {
		lockQuery := "SELECT " + productColumns + " FROM products WHERE id = $1 FOR UPDATE"

		p, err := scanProduct(tx.QueryRow(ctx, lockQuery, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, model.NewProductNotFoundError(id)
			}
			return nil, fmt.Errorf("failed to lock product: %w", err)
		}

		if !p.HasStock(amount) {
			return nil, &model.InsufficientStockError{
				ProductID: id,
				Requested: amount,
				Available: p.Quantity,
			}
		}

		updateQuery := `
			UPDATE products
			SET quantity = quantity - $2, updated_at = NOW()
			WHERE id = $1
			RETURNING ` + productColumns

		p, err = scanProduct(tx.QueryRow(ctx, updateQuery, id, amount))
		if err != nil {
			return nil, fmt.Errorf("failed to reserve stock: %w", err)
		}

		return p, nil
	})
}
