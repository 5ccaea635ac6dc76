package orders

import (
	"context"

	"github.com/dmitrijs2005/shopkeeper/internal/models"
)

// Repository is the order access module, covering orders and their line items.
type Repository interface {
	Create(ctx context.Context, o *models.Order) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	GetByOrderNumber(ctx context.Context, number string) (*models.Order, error)
	GetByUser(ctx context.Context, userID int64) ([]models.Order, error)
	GetByStatus(ctx context.Context, status string) ([]models.Order, error)
	GetAll(ctx context.Context) ([]models.Order, error)
	Update(ctx context.Context, o *models.Order) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error

	CreateItem(ctx context.Context, item *models.OrderItem) (int64, error)
	GetItemByID(ctx context.Context, id int64) (*models.OrderItem, error)
	GetItemsByOrder(ctx context.Context, orderID int64) ([]models.OrderItem, error)
	UpdateItem(ctx context.Context, item *models.OrderItem) error
	DeleteItem(ctx context.Context, id int64) error
}
