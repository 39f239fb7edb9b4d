package model

import (
	"errors"
	"fmt"
)

// ===================================
// DOMAIN ERRORS
// ===================================
// Raised by the repository/service layer, caught exactly once at the
// handler boundary and mapped to problem bodies there.

var (
	// ErrProductNotFound is returned when no product exists for an id.
	ErrProductNotFound = errors.New("product not found")

	// ErrDuplicateSKU is returned when a save would violate the unique
	// sku business key.
	ErrDuplicateSKU = errors.New("product with this sku already exists")
)

// NewProductNotFoundError creates a not found error carrying the id.
func NewProductNotFoundError(id int64) error {
	return fmt.Errorf("%w: id=%d", ErrProductNotFound, id)
}

// NewDuplicateSKUError creates a duplicate business key error.
func NewDuplicateSKUError(sku string) error {
	return fmt.Errorf("%w: sku=%s", ErrDuplicateSKU, sku)
}

// IsNotFoundError checks if err is a product not found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrProductNotFound)
}

// IsDuplicateSKUError checks if err is a duplicate sku error.
func IsDuplicateSKUError(err error) bool {
	return errors.Is(err, ErrDuplicateSKU)
}

// InsufficientStockError rejects a reservation that would drive quantity
// negative. It carries the amounts the problem body reports.
type InsufficientStockError struct {
	ProductID int64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested=%d, available=%d",
		e.ProductID, e.Requested, e.Available)
}

// DomainValidationError is a single-field business rule violation that is
// not a request-shape constraint (e.g. a non-positive stock amount).
type DomainValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *DomainValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}
