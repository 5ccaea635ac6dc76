package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/shopkeeper/internal/logging"
	"github.com/dmitrijs2005/shopkeeper/internal/models"
	"github.com/dmitrijs2005/shopkeeper/internal/repositories/repomanager"
	"github.com/shopspring/decimal"
)

// CatalogService groups the smaller modules: categories, addresses and
// reviews.
type CatalogService struct {
	base
}

func NewCatalogService(db *sql.DB, rm repomanager.RepositoryManager, log logging.Logger) *CatalogService {
	return &CatalogService{base: newBase(db, rm, log, "catalog")}
}

func (s *CatalogService) CreateCategory(ctx context.Context, c *models.Category) int64 {
	id, err := s.repomanager.Categories(s.db).Create(ctx, c)
	return s.created(ctx, "create category", id, err)
}

func (s *CatalogService) GetCategory(ctx context.Context, id int64) *models.Category {
	c, err := s.repomanager.Categories(s.db).GetByID(ctx, id)
	return found(ctx, &s.base, "get category", c, err)
}

func (s *CatalogService) Categories(ctx context.Context) []models.Category {
	list, err := s.repomanager.Categories(s.db).GetAll(ctx)
	return listed(ctx, &s.base, "list categories", list, err)
}

func (s *CatalogService) Subcategories(ctx context.Context, parentID int64) []models.Category {
	list, err := s.repomanager.Categories(s.db).GetChildren(ctx, parentID)
	return listed(ctx, &s.base, "list subcategories", list, err)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, c *models.Category) bool {
	return s.ok(ctx, "update category", s.repomanager.Categories(s.db).Update(ctx, c), "id", c.ID)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) bool {
	return s.ok(ctx, "delete category", s.repomanager.Categories(s.db).Delete(ctx, id), "id", id)
}

func (s *CatalogService) CreateAddress(ctx context.Context, a *models.Address) int64 {
	id, err := s.repomanager.Addresses(s.db).Create(ctx, a)
	return s.created(ctx, "create address", id, err)
}

func (s *CatalogService) GetAddress(ctx context.Context, id int64) *models.Address {
	a, err := s.repomanager.Addresses(s.db).GetByID(ctx, id)
	return found(ctx, &s.base, "get address", a, err)
}

func (s *CatalogService) Addresses(ctx context.Context, userID int64) []models.Address {
	list, err := s.repomanager.Addresses(s.db).GetByUser(ctx, userID)
	return listed(ctx, &s.base, "list addresses", list, err)
}

func (s *CatalogService) UpdateAddress(ctx context.Context, a *models.Address) bool {
	return s.ok(ctx, "update address", s.repomanager.Addresses(s.db).Update(ctx, a), "id", a.ID)
}

func (s *CatalogService) DeleteAddress(ctx context.Context, id int64) bool {
	return s.ok(ctx, "delete address", s.repomanager.Addresses(s.db).Delete(ctx, id), "id", id)
}

func (s *CatalogService) SetDefaultAddress(ctx context.Context, userID, id int64) bool {
	return s.ok(ctx, "set default address", s.repomanager.Addresses(s.db).SetDefault(ctx, userID, id), "user_id", userID, "id", id)
}

func (s *CatalogService) CreateReview(ctx context.Context, r *models.Review) int64 {
	id, err := s.repomanager.Reviews(s.db).Create(ctx, r)
	return s.created(ctx, "create review", id, err)
}

func (s *CatalogService) GetReview(ctx context.Context, id int64) *models.Review {
	r, err := s.repomanager.Reviews(s.db).GetByID(ctx, id)
	return found(ctx, &s.base, "get review", r, err)
}

func (s *CatalogService) Reviews(ctx context.Context, productID int64) []models.Review {
	list, err := s.repomanager.Reviews(s.db).GetByProduct(ctx, productID)
	return listed(ctx, &s.base, "list reviews", list, err)
}

func (s *CatalogService) DeleteReview(ctx context.Context, id int64) bool {
	return s.ok(ctx, "delete review", s.repomanager.Reviews(s.db).Delete(ctx, id), "id", id)
}

func (s *CatalogService) AverageRating(ctx context.Context, productID int64) decimal.Decimal {
	avg, err := s.repomanager.Reviews(s.db).AverageRating(ctx, productID)
	if err != nil {
		s.report(ctx, "average rating", err, "product_id", productID)
		return decimal.Zero
	}
	return avg
}
