package reviews

import (
	"context"

	"github.com/dmitrijs2005/shopkeeper/internal/models"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, rv *models.Review) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Review, error)
	GetByProduct(ctx context.Context, productID int64) ([]models.Review, error)
	Delete(ctx context.Context, id int64) error
	AverageRating(ctx context.Context, productID int64) (decimal.Decimal, error)
}
