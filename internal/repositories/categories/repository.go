package categories

import (
	"context"

	"github.com/dmitrijs2005/shopkeeper/internal/models"
)

type Repository interface {
	Create(ctx context.Context, c *models.Category) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	GetAll(ctx context.Context) ([]models.Category, error)
	GetChildren(ctx context.Context, parentID int64) ([]models.Category, error)
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id int64) error
}
