package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"shopping-backend/internal/domains/product/model"
)

// RepositoryInterface is the product data-access contract. All SQL lives
// behind it; the service layer never sees the driver.
type RepositoryInterface interface {
	// Create inserts the product and fills in the generated id and
	// timestamps. A sku collision surfaces as ErrDuplicateSKU.
	Create(ctx context.Context, product *model.Product) error

	// Update rewrites all mutable fields of the row identified by
	// product.ID. ErrProductNotFound if the row is gone.
	Update(ctx context.Context, product *model.Product) error

	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context, page model.PageRequest) ([]model.Product, int64, error)
	SearchByName(ctx context.Context, name string) ([]model.Product, error)
	FindByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]model.Product, error)
	FindLowStock(ctx context.Context, threshold int) ([]model.Product, error)
	FindExpensive(ctx context.Context, minPrice decimal.Decimal) ([]model.Product, error)

	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
	Count(ctx context.Context) (int64, error)

	// Delete removes the row. Deleting an absent id is a no-op; the
	// service pre-checks existence when a 404 is required.
	Delete(ctx context.Context, id int64) error

	// SetStock writes an absolute quantity.
	SetStock(ctx context.Context, id int64, quantity int) (*model.Product, error)

	// AddStock increments quantity by amount.
	AddStock(ctx context.Context, id int64, amount int) (*model.Product, error)

	// ReserveStock decrements quantity by amount inside one transaction,
	// locking the row so concurrent reservations serialize and never
	// oversell. InsufficientStockError when amount exceeds the current
	// quantity; the row is left unchanged.
	ReserveStock(ctx context.Context, id int64, amount int) (*model.Product, error)
}
