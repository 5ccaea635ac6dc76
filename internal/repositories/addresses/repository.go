package addresses

import (
	"context"

	"github.com/dmitrijs2005/shopkeeper/internal/models"
)

type Repository interface {
	Create(ctx context.Context, a *models.Address) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Address, error)
	GetByUser(ctx context.Context, userID int64) ([]models.Address, error)
	Update(ctx context.Context, a *models.Address) error
	Delete(ctx context.Context, id int64) error
	SetDefault(ctx context.Context, userID, id int64) error
}
