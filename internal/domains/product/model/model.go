package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the database entity for the products table.
// The id is assigned by PostgreSQL on insert and never changes; sku is the
// business key with a unique index.
type Product struct {
	ID           int64           `db:"id"`
	Name         string          `db:"name"`
	Price        decimal.Decimal `db:"price"`
	Description  string          `db:"description"`
	Quantity     int             `db:"quantity"`
	SKU          string          `db:"sku"`
	ContactEmail string          `db:"contact_email"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

// HasStock reports whether the requested amount can be reserved.
func (p *Product) HasStock(requested int) bool {
	return p.Quantity >= requested
}

// SortFields whitelists the sortable columns for product listings.
// Anything else in the sort parameter is rejected at the handler.
var SortFields = map[string]string{
	"id":         "id",
	"name":       "name",
	"price":      "price",
	"quantity":   "quantity",
	"sku":        "sku",
	"created_at": "created_at",
}
