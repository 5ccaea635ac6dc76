package cartitems

import (
	"context"

	"github.com/dmitrijs2005/shopkeeper/internal/models"
	"github.com/shopspring/decimal"
)

// Repository is the cart access module.
type Repository interface {
	AddOrIncrement(ctx context.Context, userID, productID int64, qty int) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.CartItem, error)
	GetByUser(ctx context.Context, userID int64) ([]models.CartItem, error)
	Lines(ctx context.Context, userID int64) ([]models.CartLine, error)
	Update(ctx context.Context, item *models.CartItem) error
	UpdateQuantity(ctx context.Context, id int64, qty int) error
	Remove(ctx context.Context, id int64) error
	RemoveByUserProduct(ctx context.Context, userID, productID int64) error
	Clear(ctx context.Context, userID int64) error
	Total(ctx context.Context, userID int64) (decimal.Decimal, error)
	Count(ctx context.Context, userID int64) (int, error)
}
