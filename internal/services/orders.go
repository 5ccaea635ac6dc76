package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/dbx"
	"github.com/dmitrijs2005/shopkeeper/internal/logging"
	"github.com/dmitrijs2005/shopkeeper/internal/models"
	"github.com/dmitrijs2005/shopkeeper/internal/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// newOrderNumber is a seam for tests.
var newOrderNumber = func() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

type OrderService struct {
	base
}

func NewOrderService(db *sql.DB, rm repomanager.RepositoryManager, log logging.Logger) *OrderService {
	return &OrderService{base: newBase(db, rm, log, "orders")}
}

// Create stores a single order row. An empty order number or status is
// filled in; TotalAmount is stored as given.
func (s *OrderService) Create(ctx context.Context, o *models.Order) int64 {
	defaultOrder(o)
	id, err := s.repomanager.Orders(s.db).Create(ctx, o)
	return s.created(ctx, "create order", id, err)
}

func (s *OrderService) GetByID(ctx context.Context, id int64) *models.Order {
	o, err := s.repomanager.Orders(s.db).GetByID(ctx, id)
	return found(ctx, &s.base, "get order", o, err)
}

func (s *OrderService) GetByOrderNumber(ctx context.Context, number string) *models.Order {
	o, err := s.repomanager.Orders(s.db).GetByOrderNumber(ctx, number)
	return found(ctx, &s.base, "get order by number", o, err)
}

func (s *OrderService) GetByUser(ctx context.Context, userID int64) []models.Order {
	list, err := s.repomanager.Orders(s.db).GetByUser(ctx, userID)
	return listed(ctx, &s.base, "list orders by user", list, err)
}

func (s *OrderService) GetByStatus(ctx context.Context, status string) []models.Order {
	list, err := s.repomanager.Orders(s.db).GetByStatus(ctx, status)
	return listed(ctx, &s.base, "list orders by status", list, err)
}

func (s *OrderService) GetAll(ctx context.Context) []models.Order {
	list, err := s.repomanager.Orders(s.db).GetAll(ctx)
	return listed(ctx, &s.base, "list orders", list, err)
}

func (s *OrderService) Update(ctx context.Context, o *models.Order) bool {
	return s.ok(ctx, "update order", s.repomanager.Orders(s.db).Update(ctx, o), "id", o.ID)
}

func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status string) bool {
	return s.ok(ctx, "update order status", s.repomanager.Orders(s.db).UpdateStatus(ctx, id, status), "id", id)
}

// Delete removes the order row only; its items are left in place.
func (s *OrderService) Delete(ctx context.Context, id int64) bool {
	return s.ok(ctx, "delete order", s.repomanager.Orders(s.db).Delete(ctx, id), "id", id)
}

func (s *OrderService) CreateItem(ctx context.Context, item *models.OrderItem) int64 {
	id, err := s.repomanager.Orders(s.db).CreateItem(ctx, item)
	return s.created(ctx, "create order item", id, err)
}

func (s *OrderService) GetItemByID(ctx context.Context, id int64) *models.OrderItem {
	item, err := s.repomanager.Orders(s.db).GetItemByID(ctx, id)
	return found(ctx, &s.base, "get order item", item, err)
}

func (s *OrderService) GetItemsByOrder(ctx context.Context, orderID int64) []models.OrderItem {
	list, err := s.repomanager.Orders(s.db).GetItemsByOrder(ctx, orderID)
	return listed(ctx, &s.base, "list order items", list, err)
}

func (s *OrderService) UpdateItem(ctx context.Context, item *models.OrderItem) bool {
	return s.ok(ctx, "update order item", s.repomanager.Orders(s.db).UpdateItem(ctx, item), "id", item.ID)
}

func (s *OrderService) DeleteItem(ctx context.Context, id int64) bool {
	return s.ok(ctx, "delete order item", s.repomanager.Orders(s.db).DeleteItem(ctx, id), "id", id)
}

// defaultOrder sets the order number and statuses when left empty.
func defaultOrder(o *models.Order) {
	if o.OrderNumber == "" {
		o.OrderNumber = newOrderNumber()
	}
	if o.Status == "" {
		o.Status = models.OrderPending
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = models.PaymentPending
	}
}

// fillDefaults applies defaultOrder, prices each item and sets the order
// total to the item sum plus shipping and tax.
func fillDefaults(o *models.Order, items []models.OrderItem) {
	defaultOrder(o)

	total := o.ShippingCost.Add(o.TaxAmount)
	for i := range items {
		items[i].TotalPrice = items[i].LineTotal()
		total = total.Add(items[i].TotalPrice)
	}
	o.TotalAmount = total
}

// createWithItems writes o and its items through tx. IDs are set on success.
func (s *OrderService) createWithItems(ctx context.Context, tx dbx.DBTX, o *models.Order, items []models.OrderItem) error {
	repo := s.repomanager.Orders(tx)

	id, err := repo.Create(ctx, o)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	o.ID = id

	for i := range items {
		items[i].OrderID = id
		itemID, err := repo.CreateItem(ctx, &items[i])
		if err != nil {
			return fmt.Errorf("create item %d: %w", i+1, err)
		}
		items[i].ID = itemID
	}
	return nil
}

// PlaceOrder stores an order together with its items in one transaction.
// TotalAmount is computed from the items, shipping and tax; any value on o
// is replaced.
// Either everything is stored or nothing is.
func (s *OrderService) PlaceOrder(ctx context.Context, o *models.Order, items []models.OrderItem) (int64, error) {
	if len(items) == 0 {
		return FailedID, fmt.Errorf("%w: order has no items", common.ErrValidation)
	}
	fillDefaults(o, items)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.createWithItems(ctx, tx, o, items)
	})
	if err != nil {
		o.ID = 0
		s.report(ctx, "place order", err, "order_number", o.OrderNumber)
		return FailedID, err
	}

	s.log.Info(ctx, "order placed", "id", o.ID, "order_number", o.OrderNumber, "items", len(items), "total", o.TotalAmount.StringFixed(2))
	return o.ID, nil
}

// CheckoutRequest carries the order fields the cart does not supply.
type CheckoutRequest struct {
	UserID            int64
	ShippingAddressID *int64
	BillingAddressID  *int64
	PaymentMethod     string
	ShippingCost      decimal.Decimal
	TaxAmount         decimal.Decimal
	Notes             string
}

// Checkout turns the user's cart into an order. In one transaction it reads
// the cart at current product prices, stores the order and its items, takes
// the ordered quantities out of stock and empties the cart. An empty cart
// fails with common.ErrEmptyCart; a product without enough stock fails with
// common.ErrInsufficientStock and nothing is written.
func (s *OrderService) Checkout(ctx context.Context, req CheckoutRequest) (int64, error) {
	o := &models.Order{
		UserID:            req.UserID,
		ShippingAddressID: req.ShippingAddressID,
		BillingAddressID:  req.BillingAddressID,
		PaymentMethod:     req.PaymentMethod,
		ShippingCost:      req.ShippingCost,
		TaxAmount:         req.TaxAmount,
		Notes:             req.Notes,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		cart := s.repomanager.CartItems(tx)

		lines, err := cart.Lines(ctx, req.UserID)
		if err != nil {
			return fmt.Errorf("read cart: %w", err)
		}
		if len(lines) == 0 {
			return common.ErrEmptyCart
		}

		items := make([]models.OrderItem, 0, len(lines))
		for _, l := range lines {
			items = append(items, models.OrderItem{
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				UnitPrice: l.UnitPrice,
			})
		}
		fillDefaults(o, items)

		if err := s.createWithItems(ctx, tx, o, items); err != nil {
			return err
		}

		stock := s.repomanager.Products(tx)
		for _, l := range lines {
			if _, err := stock.AdjustStock(ctx, l.ProductID, -l.Quantity); err != nil {
				return fmt.Errorf("reserve %q: %w", l.ProductName, err)
			}
		}

		if err := cart.Clear(ctx, req.UserID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		s.report(ctx, "checkout", err, "user_id", req.UserID)
		return FailedID, err
	}

	s.log.Info(ctx, "checkout complete", "id", o.ID, "user_id", req.UserID, "order_number", o.OrderNumber, "total", o.TotalAmount.StringFixed(2))
	return o.ID, nil
}
