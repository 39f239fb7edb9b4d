package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"shopping-backend/internal/domains/product/model"
	"shopping-backend/internal/domains/product/repository"
)

type ProductService struct {
	repo repository.RepositoryInterface
}

// NewService creates the product service.
func NewService(repo repository.RepositoryInterface) ServiceInterface {
	return &ProductService{repo: repo}
}

func (s *ProductService) GetProduct(ctx context.Context, id int64) (*model.ProductResponse, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res := product.ToResponse()
	return &res, nil
}

func (s *ProductService) ListProducts(ctx context.Context, page model.PageRequest) (*model.Page, error) {
	products, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	totalPages := int((total + int64(page.Size) - 1) / int64(page.Size))

	return &model.Page{
		Content:       model.ToResponseList(products),
		TotalElements: total,
		TotalPages:    totalPages,
		Size:          page.Size,
		Number:        page.Page,
	}, nil
}

func (s *ProductService) SearchByName(ctx context.Context, name string) ([]model.ProductResponse, error) {
	products, err := s.repo.SearchByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return model.ToResponseList(products), nil
}

func (s *ProductService) GetByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]model.ProductResponse, error) {
	if min.GreaterThan(max) {
		return nil, &model.DomainValidationError{
			Field:   "minPrice",
			Value:   min,
			Message: "min price cannot be greater than max price",
		}
	}

	products, err := s.repo.FindByPriceRange(ctx, min, max)
	if err != nil {
		return nil, fmt.Errorf("failed to find products by price range: %w", err)
	}
	return model.ToResponseList(products), nil
}

func (s *ProductService) GetLowStock(ctx context.Context, threshold int) ([]model.ProductResponse, error) {
	products, err := s.repo.FindLowStock(ctx, threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to find low stock products: %w", err)
	}
	return model.ToResponseList(products), nil
}

func (s *ProductService) GetExpensive(ctx context.Context, minPrice decimal.Decimal) ([]model.ProductResponse, error) {
	products, err := s.repo.FindExpensive(ctx, minPrice)
	if err != nil {
		return nil, fmt.Errorf("failed to find expensive products: %w", err)
	}
	return model.ToResponseList(products), nil
}

func (s *ProductService) CreateProduct(ctx context.Context, req model.ProductRequest) (*model.ProductResponse, error) {
	// Pre-check the business key where the rule is known; the repository
	// still maps the unique violation for the remaining race window.
	exists, err := s.repo.ExistsBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.NewDuplicateSKUError(req.SKU)
	}

	product := req.ToEntity()
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	log.Info().Int64("product_id", product.ID).Str("sku", product.SKU).Msg("Product created")

	res := product.ToResponse()
	return &res, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id int64, req model.ProductRequest) (*model.ProductResponse, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Only re-check the sku when the update actually changes it.
	if current.SKU != req.SKU {
		exists, err := s.repo.ExistsBySKU(ctx, req.SKU)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, model.NewDuplicateSKUError(req.SKU)
		}
	}

	product := req.ToEntity()
	product.ID = id
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	res := product.ToResponse()
	return &res, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	// The repository delete is a no-op for missing rows; the HTTP
	// contract wants a 404, so check first.
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return model.NewProductNotFoundError(id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Int64("product_id", id).Msg("Product deleted")
	return nil
}

func (s *ProductService) SetStock(ctx context.Context, id int64, quantity int) (*model.ProductResponse, error) {
	if quantity < 0 {
		return nil, &model.DomainValidationError{
			Field:   "quantity",
			Value:   quantity,
			Message: "stock quantity cannot be negative",
		}
	}

	product, err := s.repo.SetStock(ctx, id, quantity)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("product_id", id).Int("quantity", quantity).Msg("Stock set")

	res := product.ToResponse()
	return &res, nil
}

func (s *ProductService) AddStock(ctx context.Context, id int64, amount int) (*model.ProductResponse, error) {
	if amount <= 0 {
		return nil, &model.DomainValidationError{
			Field:   "quantity",
			Value:   amount,
			Message: "quantity to add must be positive",
		}
	}

	product, err := s.repo.AddStock(ctx, id, amount)
	if err != nil {
		return nil, err
	}

	res := product.ToResponse()
	return &res, nil
}

func (s *ProductService) ReserveStock(ctx context.Context, id int64, amount int) (*model.ProductResponse, error) {
	if amount <= 0 {
		return nil, &model.DomainValidationError{
			Field:   "quantity",
			Value:   amount,
			Message: "quantity to reserve must be positive",
		}
	}

	product, err := s.repo.ReserveStock(ctx, id, amount)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int64("product_id", id).
		Int("reserved", amount).
		Int("remaining", product.Quantity).
		Msg("Stock reserved")

	res := product.ToResponse()
	return &res, nil
}
