package service

import (
	"context"

	"github.com/shopspring/decimal"

	"shopping-backend/internal/domains/product/model"
)

// ServiceInterface is the product business logic contract consumed by the
// HTTP handler.
type ServiceInterface interface {
	GetProduct(ctx context.Context, id int64) (*model.ProductResponse, error)
	ListProducts(ctx context.Context, page model.PageRequest) (*model.Page, error)
	SearchByName(ctx context.Context, name string) ([]model.ProductResponse, error)
	GetByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]model.ProductResponse, error)
	GetLowStock(ctx context.Context, threshold int) ([]model.ProductResponse, error)
	GetExpensive(ctx context.Context, minPrice decimal.Decimal) ([]model.ProductResponse, error)

	CreateProduct(ctx context.Context, req model.ProductRequest) (*model.ProductResponse, error)
	UpdateProduct(ctx context.Context, id int64, req model.ProductRequest) (*model.ProductResponse, error)
	DeleteProduct(ctx context.Context, id int64) error

	SetStock(ctx context.Context, id int64, quantity int) (*model.ProductResponse, error)
	AddStock(ctx context.Context, id int64, amount int) (*model.ProductResponse, error)
	ReserveStock(ctx context.Context, id int64, amount int) (*model.ProductResponse, error)
}
