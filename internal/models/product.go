package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a row of the products table. CategoryID is nil for
// uncategorised products.
type Product struct {
	ID            int64
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	CategoryID    *int64
	SKU           string
	Weight        decimal.Decimal
	Dimensions    string
	ImageURL      string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p *Product) Validate() error {
	v := validator{entity: "product"}
	v.required("name", p.Name)
	v.maxLen("name", p.Name, 200)
	v.maxLen("description", p.Description, 2000)
	v.nonNegativeMoney("price", p.Price)
	v.nonNegative("stock_quantity", p.StockQuantity)
	if p.CategoryID != nil {
		v.positiveID("category_id", *p.CategoryID)
	}
	v.maxLen("sku", p.SKU, 50)
	v.nonNegativeMoney("weight", p.Weight)
	v.maxLen("dimensions", p.Dimensions, 100)
	v.maxLen("image_url", p.ImageURL, 500)
	return v.err
}

// ValidateStock checks a stock level given on its own.
func ValidateStock(qty int) error {
	v := validator{entity: "product"}
	v.nonNegative("stock_quantity", qty)
	return v.err
}
