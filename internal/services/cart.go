package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/shopkeeper/internal/logging"
	"github.com/dmitrijs2005/shopkeeper/internal/models"
	"github.com/dmitrijs2005/shopkeeper/internal/repositories/repomanager"
	"github.com/shopspring/decimal"
)

type CartService struct {
	base
}

func NewCartService(db *sql.DB, rm repomanager.RepositoryManager, log logging.Logger) *CartService {
	return &CartService{base: newBase(db, rm, log, "cart")}
}

// Add puts qty of a product into the user's cart, adding to the quantity
// already there. It returns the id of the cart row.
func (s *CartService) Add(ctx context.Context, userID, productID int64, qty int) int64 {
	id, err := s.repomanager.CartItems(s.db).AddOrIncrement(ctx, userID, productID, qty)
	return s.created(ctx, "add to cart", id, err)
}

func (s *CartService) GetByID(ctx context.Context, id int64) *models.CartItem {
	item, err := s.repomanager.CartItems(s.db).GetByID(ctx, id)
	return found(ctx, &s.base, "get cart item", item, err)
}

func (s *CartService) GetByUser(ctx context.Context, userID int64) []models.CartItem {
	list, err := s.repomanager.CartItems(s.db).GetByUser(ctx, userID)
	return listed(ctx, &s.base, "list cart", list, err)
}

func (s *CartService) Lines(ctx context.Context, userID int64) []models.CartLine {
	list, err := s.repomanager.CartItems(s.db).Lines(ctx, userID)
	return listed(ctx, &s.base, "list cart lines", list, err)
}

func (s *CartService) Update(ctx context.Context, item *models.CartItem) bool {
	return s.ok(ctx, "update cart item", s.repomanager.CartItems(s.db).Update(ctx, item), "id", item.ID)
}

func (s *CartService) UpdateQuantity(ctx context.Context, id int64, qty int) bool {
	return s.ok(ctx, "update cart quantity", s.repomanager.CartItems(s.db).UpdateQuantity(ctx, id, qty), "id", id)
}

func (s *CartService) Remove(ctx context.Context, id int64) bool {
	return s.ok(ctx, "remove cart item", s.repomanager.CartItems(s.db).Remove(ctx, id), "id", id)
}

func (s *CartService) RemoveProduct(ctx context.Context, userID, productID int64) bool {
	err := s.repomanager.CartItems(s.db).RemoveByUserProduct(ctx, userID, productID)
	return s.ok(ctx, "remove product from cart", err, "user_id", userID, "product_id", productID)
}

func (s *CartService) Clear(ctx context.Context, userID int64) bool {
	return s.ok(ctx, "clear cart", s.repomanager.CartItems(s.db).Clear(ctx, userID), "user_id", userID)
}

// Total is zero both for an empty cart and when the store fails.
func (s *CartService) Total(ctx context.Context, userID int64) decimal.Decimal {
	total, err := s.repomanager.CartItems(s.db).Total(ctx, userID)
	if err != nil {
		s.report(ctx, "cart total", err, "user_id", userID)
		return decimal.Zero
	}
	return total
}

func (s *CartService) Count(ctx context.Context, userID int64) int {
	n, err := s.repomanager.CartItems(s.db).Count(ctx, userID)
	if err != nil {
		s.report(ctx, "cart count", err, "user_id", userID)
		return 0
	}
	return n
}
