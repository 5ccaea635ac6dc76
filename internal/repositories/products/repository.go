package products

import (
	"context"

	"github.com/dmitrijs2005/shopkeeper/internal/models"
	"github.com/shopspring/decimal"
)

// Repository is the product access module.
type Repository interface {
	Create(ctx context.Context, p *models.Product) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	GetBySKU(ctx context.Context, sku string) (*models.Product, error)
	GetByCategory(ctx context.Context, categoryID int64) ([]models.Product, error)
	GetByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]models.Product, error)
	SearchByName(ctx context.Context, term string) ([]models.Product, error)
	GetAll(ctx context.Context, activeOnly bool) ([]models.Product, error)
	Update(ctx context.Context, p *models.Product) error
	UpdateStock(ctx context.Context, id int64, qty int) error
	AdjustStock(ctx context.Context, id int64, delta int) (int, error)
	Delete(ctx context.Context, id int64) error
}
