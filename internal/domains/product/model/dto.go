package model

import (
	"errors"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

// ===================================
// REQUEST DTOs
// ===================================

var skuPattern = regexp.MustCompile(`^[A-Z]{3}-[0-9]{6}$`)

var (
	priceMin = decimal.RequireFromString("0.01")
	priceMax = decimal.RequireFromString("999999.99")
)

// ProductRequest is the payload for creating and updating products.
// Pointer fields distinguish "absent" from zero values.
type ProductRequest struct {
	Name         string           `json:"name"`
	Price        *decimal.Decimal `json:"price"`
	Description  string           `json:"description"`
	Quantity     *int             `json:"quantity"`
	SKU          string           `json:"sku"`
	ContactEmail string           `json:"contactEmail"`
}

func (r ProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("product name is required"),
			validation.Length(3, 100).Error("product name must be between 3 and 100 characters"),
		),
		validation.Field(&r.Price,
			validation.Required.Error("price is required"),
			validation.By(priceInBounds),
		),
		validation.Field(&r.Description,
			validation.Length(0, 500).Error("description cannot exceed 500 characters"),
		),
		validation.Field(&r.Quantity,
			validation.NotNil.Error("quantity is required"),
			validation.Min(0).Error("quantity cannot be negative"),
		),
		validation.Field(&r.SKU,
			validation.Required.Error("sku is required"),
			validation.Match(skuPattern).
				Error("sku must be 3 uppercase letters, hyphen, 6 digits (e.g. ABC-123456)"),
		),
		validation.Field(&r.ContactEmail,
			validation.When(r.ContactEmail != "",
				is.Email.Error("contact email must be a valid email address"),
			),
		),
	)
}

func priceInBounds(value interface{}) error {
	// The field is a pointer so absence is distinguishable; Required has
	// already rejected nil by the time this rule runs.
	ptr, ok := value.(*decimal.Decimal)
	if !ok || ptr == nil {
		return errors.New("price must be a decimal number")
	}
	price := *ptr
	if price.LessThan(priceMin) {
		return errors.New("price must be greater than 0")
	}
	if price.GreaterThan(priceMax) {
		return errors.New("price must be less than 1,000,000")
	}
	return nil
}

// RejectedValues pairs each field name with the submitted value, for the
// validation-failed problem body.
func (r ProductRequest) RejectedValues() map[string]interface{} {
	return map[string]interface{}{
		"name":         r.Name,
		"price":        r.Price,
		"description":  r.Description,
		"quantity":     r.Quantity,
		"sku":          r.SKU,
		"contactEmail": r.ContactEmail,
	}
}

// ToEntity builds the unpersisted entity (no id; timestamps set by the
// repository on insert).
func (r ProductRequest) ToEntity() *Product {
	return &Product{
		Name:         r.Name,
		Price:        *r.Price,
		Description:  r.Description,
		Quantity:     *r.Quantity,
		SKU:          r.SKU,
		ContactEmail: r.ContactEmail,
	}
}

// StockUpdateRequest is the payload for the stock mutation endpoints.
// Positivity requirements differ per operation (absolute set allows zero),
// so only the shared shape is validated here.
type StockUpdateRequest struct {
	Quantity *int `json:"quantity"`
}

func (r StockUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Quantity,
			validation.NotNil.Error("quantity is required"),
			validation.Min(0).Error("quantity cannot be negative"),
		),
	)
}

func (r StockUpdateRequest) RejectedValues() map[string]interface{} {
	return map[string]interface{}{"quantity": r.Quantity}
}

// PageRequest carries listing pagination, already validated by the handler.
// Page is zero-based.
type PageRequest struct {
	Page     int
	Size     int
	SortCol  string // resolved against SortFields
	SortDesc bool
}

// ===================================
// RESPONSE DTOs
// ===================================

type ProductResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Description  string          `json:"description,omitempty"`
	Quantity     int             `json:"quantity"`
	SKU          string          `json:"sku"`
	ContactEmail string          `json:"contactEmail,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// Page is the pagination envelope for product listings.
type Page struct {
	Content       []ProductResponse `json:"content"`
	TotalElements int64             `json:"totalElements"`
	TotalPages    int               `json:"totalPages"`
	Size          int               `json:"size"`
	Number        int               `json:"number"`
}

func (p *Product) ToResponse() ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		Description:  p.Description,
		Quantity:     p.Quantity,
		SKU:          p.SKU,
		ContactEmail: p.ContactEmail,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func ToResponseList(products []Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = products[i].ToResponse()
	}
	return responses
}
