package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/models"
	"github.com/dmitrijs2005/shopkeeper/internal/repositories/repomanager"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lineCols = []string{"id", "user_id", "product_id", "quantity", "added_at", "name", "price", "stock_quantity"}

func fixedOrderNumber(t *testing.T, n string) {
	t.Helper()
	orig := newOrderNumber
	newOrderNumber = func() string { return n }
	t.Cleanup(func() { newOrderNumber = orig })
}

func newOrderService(t *testing.T) (*OrderService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newSQLMockDB(t)
	return NewOrderService(db, repomanager.NewPostgresRepositoryManager(), nil), mock
}

func twoItems() []models.OrderItem {
	return []models.OrderItem{
		{ProductID: 7, Quantity: 2, UnitPrice: decimal.RequireFromString("9.99")},
		{ProductID: 8, Quantity: 1, UnitPrice: decimal.RequireFromString("4.99")},
	}
}

func TestNewOrderNumber_Unique(t *testing.T) {
	a, b := newOrderNumber(), newOrderNumber()
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "ORD-"))
	assert.LessOrEqual(t, len(a), 50)
}

func TestPlaceOrder_CommitsOrderAndItems(t *testing.T) {
	fixedOrderNumber(t, "ORD-TEST")
	s, mock := newOrderService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(int64(1), "ORD-TEST", "pending", decimal.RequireFromString("24.97"), nil, nil, "card", "pending", decimal.Zero, decimal.Zero, "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(100)))
	mock.ExpectQuery(`INSERT INTO order_items`).
		WithArgs(int64(100), int64(7), 2, decimal.RequireFromString("9.99"), decimal.RequireFromString("19.98")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery(`INSERT INTO order_items`).
		WithArgs(int64(100), int64(8), 1, decimal.RequireFromString("4.99"), decimal.RequireFromString("4.99")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)))
	mock.ExpectCommit()

	o := &models.Order{UserID: 1, PaymentMethod: "card", TotalAmount: decimal.NewFromInt(999)}
	items := twoItems()
	id, err := s.PlaceOrder(context.Background(), o, items)
	require.NoError(t, err)
	assert.Equal(t, int64(100), id)
	assert.True(t, decimal.RequireFromString("24.97").Equal(o.TotalAmount), "total comes from the items")
	assert.Equal(t, int64(2), items[1].ID)
	assert.Equal(t, int64(100), items[1].OrderID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_CreateFillsNumberAndStatuses(t *testing.T) {
	fixedOrderNumber(t, "ORD-PLAIN")
	s, mock := newOrderService(t)

	total := decimal.RequireFromString("12.00")
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(int64(1), "ORD-PLAIN", "pending", total, nil, nil, "cash", "pending", decimal.Zero, decimal.Zero, "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))

	o := &models.Order{UserID: 1, TotalAmount: total, PaymentMethod: "cash"}
	assert.Equal(t, int64(9), s.Create(context.Background(), o))
	assert.Equal(t, "ORD-PLAIN", o.OrderNumber)
	assert.True(t, total.Equal(o.TotalAmount), "plain create keeps the given total")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_CreateKeepsGivenStatus(t *testing.T) {
	s, mock := newOrderService(t)

	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(int64(1), "ORD-77", "shipped", decimal.Zero, nil, nil, "", "paid", decimal.Zero, decimal.Zero, "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	o := &models.Order{UserID: 1, OrderNumber: "ORD-77", Status: models.OrderShipped, PaymentStatus: models.PaymentPaid}
	assert.Equal(t, int64(3), s.Create(context.Background(), o))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrder_TotalIncludesShippingAndTax(t *testing.T) {
	fixedOrderNumber(t, "ORD-TAX")
	s, mock := newOrderService(t)

	shipping := decimal.RequireFromString("5.00")
	tax := decimal.RequireFromString("2.03")
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(int64(1), "ORD-TAX", "pending", decimal.RequireFromString("32.00"), nil, nil, "", "pending", shipping, tax, "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(100)))
	mock.ExpectQuery(`INSERT INTO order_items`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery(`INSERT INTO order_items`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)))
	mock.ExpectCommit()

	o := &models.Order{UserID: 1, ShippingCost: shipping, TaxAmount: tax}
	_, err := s.PlaceOrder(context.Background(), o, twoItems())
	require.NoError(t, err)
	assert.Equal(t, "32.00", o.TotalAmount.StringFixed(2))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrder_ItemFailureRollsBack(t *testing.T) {
	fixedOrderNumber(t, "ORD-TEST")
	s, mock := newOrderService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO orders`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(100)))
	mock.ExpectQuery(`INSERT INTO order_items`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery(`INSERT INTO order_items`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	o := &models.Order{UserID: 1}
	id, err := s.PlaceOrder(context.Background(), o, twoItems())
	assert.Equal(t, FailedID, id)
	assert.ErrorIs(t, err, common.ErrStatementFailed)
	assert.Zero(t, o.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrder_NoItems(t *testing.T) {
	s, _ := newOrderService(t)

	_, err := s.PlaceOrder(context.Background(), &models.Order{UserID: 1}, nil)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestCheckout_Success(t *testing.T) {
	fixedOrderNumber(t, "ORD-CART")
	s, mock := newOrderService(t)
	now := time.Now()
	ship := int64(11)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM cart_items c JOIN products p`).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(lineCols).
			AddRow(int64(1), int64(1), int64(7), int64(2), now, "Widget", "9.99", int64(42)).
			AddRow(int64(2), int64(1), int64(8), int64(1), now, "Gadget", "4.99", int64(10)))
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(int64(1), "ORD-CART", "pending", decimal.RequireFromString("24.97"), int64(11), nil, "card", "pending", decimal.Zero, decimal.Zero, "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(100)))
	mock.ExpectQuery(`INSERT INTO order_items`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery(`INSERT INTO order_items`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)))
	mock.ExpectQuery(regexp.QuoteMeta(`SET stock_quantity = stock_quantity + $1`)).WithArgs(-2, int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}).AddRow(int64(40)))
	mock.ExpectQuery(regexp.QuoteMeta(`SET stock_quantity = stock_quantity + $1`)).WithArgs(-1, int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}).AddRow(int64(9)))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cart_items WHERE user_id = $1`)).WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	id, err := s.Checkout(context.Background(), CheckoutRequest{UserID: 1, ShippingAddressID: &ship, PaymentMethod: "card"})
	require.NoError(t, err)
	assert.Equal(t, int64(100), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckout_EmptyCart(t *testing.T) {
	s, mock := newOrderService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM cart_items c JOIN products p`).WillReturnRows(sqlmock.NewRows(lineCols))
	mock.ExpectRollback()

	id, err := s.Checkout(context.Background(), CheckoutRequest{UserID: 1})
	assert.Equal(t, FailedID, id)
	assert.ErrorIs(t, err, common.ErrEmptyCart)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckout_InsufficientStockRollsBack(t *testing.T) {
	fixedOrderNumber(t, "ORD-CART")
	s, mock := newOrderService(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM cart_items c JOIN products p`).
		WillReturnRows(sqlmock.NewRows(lineCols).
			AddRow(int64(1), int64(1), int64(7), int64(5), now, "Widget", "9.99", int64(3)))
	mock.ExpectQuery(`INSERT INTO orders`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(100)))
	mock.ExpectQuery(`INSERT INTO order_items`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery(`SET stock_quantity = stock_quantity`).WithArgs(-5, int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"stock_quantity"}))
	mock.ExpectQuery(`FROM products WHERE id = \$1`).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow(int64(7), "Widget", nil, "9.99", int64(3), nil, nil, nil, nil, nil, true, now, now))
	mock.ExpectRollback()

	_, err := s.Checkout(context.Background(), CheckoutRequest{UserID: 1})
	assert.ErrorIs(t, err, common.ErrInsufficientStock)
	assert.Contains(t, err.Error(), `"Widget"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderService_UpdateStatus(t *testing.T) {
	s, mock := newOrderService(t)

	mock.ExpectExec(`UPDATE orders SET status = \$1`).WithArgs("shipped", int64(100)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.True(t, s.UpdateStatus(context.Background(), 100, models.OrderShipped))
	assert.False(t, s.UpdateStatus(context.Background(), 100, "lost"))
	require.NoError(t, mock.ExpectationsWereMet())
}
