package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is a row of cart_items; (UserID, ProductID) is unique.
type CartItem struct {
	ID        int64
	UserID    int64
	ProductID int64
	Quantity  int
	AddedAt   time.Time
}

// Validate checks an item about to be added to a cart, so the quantity must
// be at least one.
func (c *CartItem) Validate() error {
	v := validator{entity: "cart_item"}
	v.positiveID("user_id", c.UserID)
	v.positiveID("product_id", c.ProductID)
	v.positive("quantity", c.Quantity)
	return v.err
}

// ValidateQuantity checks a quantity given on its own.
func ValidateQuantity(qty int) error {
	v := validator{entity: "cart_item"}
	v.nonNegative("quantity", qty)
	return v.err
}

// CartLine is a cart row joined with the product it references.
type CartLine struct {
	CartItem
	ProductName   string
	UnitPrice     decimal.Decimal
	StockQuantity int
}

// LineTotal returns quantity × unit price.
func (l *CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
