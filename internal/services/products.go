package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/shopkeeper/internal/logging"
	"github.com/dmitrijs2005/shopkeeper/internal/models"
	"github.com/dmitrijs2005/shopkeeper/internal/repositories/repomanager"
	"github.com/shopspring/decimal"
)

type ProductService struct {
	base
}

func NewProductService(db *sql.DB, rm repomanager.RepositoryManager, log logging.Logger) *ProductService {
	return &ProductService{base: newBase(db, rm, log, "products")}
}

func (s *ProductService) Create(ctx context.Context, p *models.Product) int64 {
	id, err := s.repomanager.Products(s.db).Create(ctx, p)
	return s.created(ctx, "create product", id, err)
}

func (s *ProductService) GetByID(ctx context.Context, id int64) *models.Product {
	p, err := s.repomanager.Products(s.db).GetByID(ctx, id)
	return found(ctx, &s.base, "get product", p, err)
}

func (s *ProductService) GetBySKU(ctx context.Context, sku string) *models.Product {
	p, err := s.repomanager.Products(s.db).GetBySKU(ctx, sku)
	return found(ctx, &s.base, "get product by sku", p, err)
}

func (s *ProductService) GetByCategory(ctx context.Context, categoryID int64) []models.Product {
	list, err := s.repomanager.Products(s.db).GetByCategory(ctx, categoryID)
	return listed(ctx, &s.base, "list products by category", list, err)
}

func (s *ProductService) GetByPriceRange(ctx context.Context, min, max decimal.Decimal) []models.Product {
	list, err := s.repomanager.Products(s.db).GetByPriceRange(ctx, min, max)
	return listed(ctx, &s.base, "list products by price", list, err)
}

func (s *ProductService) SearchByName(ctx context.Context, term string) []models.Product {
	list, err := s.repomanager.Products(s.db).SearchByName(ctx, term)
	return listed(ctx, &s.base, "search products", list, err)
}

func (s *ProductService) GetAll(ctx context.Context, activeOnly bool) []models.Product {
	list, err := s.repomanager.Products(s.db).GetAll(ctx, activeOnly)
	return listed(ctx, &s.base, "list products", list, err)
}

func (s *ProductService) Update(ctx context.Context, p *models.Product) bool {
	return s.ok(ctx, "update product", s.repomanager.Products(s.db).Update(ctx, p), "id", p.ID)
}

func (s *ProductService) UpdateStock(ctx context.Context, id int64, qty int) bool {
	return s.ok(ctx, "update stock", s.repomanager.Products(s.db).UpdateStock(ctx, id, qty), "id", id)
}

func (s *ProductService) Delete(ctx context.Context, id int64) bool {
	return s.ok(ctx, "delete product", s.repomanager.Products(s.db).Delete(ctx, id), "id", id)
}
