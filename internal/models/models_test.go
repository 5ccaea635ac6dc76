package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64p(v int64) *int64 { return &v }

func validProduct() *Product {
	return &Product{Name: "Widget", Price: decimal.RequireFromString("9.99"), StockQuantity: 100, SKU: "W-1"}
}

func TestProduct_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Product)
		wantErr string
	}{
		{"ok", func(p *Product) {}, ""},
		{"zero price is fine", func(p *Product) { p.Price = decimal.Zero }, ""},
		{"missing name", func(p *Product) { p.Name = "" }, "product.name is required"},
		{"negative price", func(p *Product) { p.Price = decimal.RequireFromString("-0.01") }, "product.price must not be negative"},
		{"negative stock", func(p *Product) { p.StockQuantity = -1 }, "product.stock_quantity must not be negative"},
		{"long sku", func(p *Product) { p.SKU = strings.Repeat("x", 51) }, "product.sku is 51 characters, max 50"},
		{"bad category", func(p *Product) { p.CategoryID = int64p(0) }, "product.category_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(p)
			err := p.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrValidation))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_CountsRunesNotBytes(t *testing.T) {
	u := &User{Username: strings.Repeat("ü", 50), Email: "a@b.c", PasswordHash: "h"}
	require.NoError(t, u.Validate())

	u.Username += "ü"
	require.ErrorIs(t, u.Validate(), common.ErrValidation)
}

func TestValidate_FirstFailureWins(t *testing.T) {
	u := &User{}
	err := u.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user.username is required")
	assert.NotContains(t, err.Error(), "email")
}

func TestOrder_Validate(t *testing.T) {
	o := &Order{UserID: 1, OrderNumber: "ORD-1", Status: OrderPending, PaymentStatus: PaymentPending}
	require.NoError(t, o.Validate())

	o.Status = "lost"
	assert.ErrorContains(t, o.Validate(), "order.status must be one of")

	o.Status = OrderShipped
	o.TotalAmount = decimal.NewFromInt(-5)
	assert.ErrorIs(t, o.Validate(), common.ErrValidation)
}

func TestValidateOrderStatus(t *testing.T) {
	for _, s := range []string{"pending", "processing", "shipped", "delivered", "cancelled"} {
		assert.NoError(t, ValidateOrderStatus(s), s)
	}
	assert.ErrorIs(t, ValidateOrderStatus("PENDING"), common.ErrValidation)
}

func TestAddress_Validate(t *testing.T) {
	a := &Address{UserID: 3, AddressType: AddressShipping, AddressLine1: "1 Main St", City: "Riga", Country: "LV"}
	require.NoError(t, a.Validate())

	a.AddressLine1 = ""
	assert.ErrorContains(t, a.Validate(), "address.address_line1 is required")
	a.AddressLine1 = "1 Main St"
	a.Company = strings.Repeat("c", 101)
	assert.ErrorContains(t, a.Validate(), "address.company is 101 characters, max 100")
	a.Company = ""

	a.AddressType = "home"
	assert.ErrorContains(t, a.Validate(), "address.address_type")
}

func TestReview_Validate(t *testing.T) {
	r := &Review{ProductID: 1, UserID: 2, Rating: 5}
	require.NoError(t, r.Validate())

	r.Rating = 0
	assert.ErrorContains(t, r.Validate(), "review.rating must be between 1 and 5")
	r.Rating = 6
	assert.ErrorIs(t, r.Validate(), common.ErrValidation)
}

func TestCartItem_ValidateAndLineTotals(t *testing.T) {
	c := &CartItem{UserID: 1, ProductID: 5, Quantity: 2}
	require.NoError(t, c.Validate())
	c.Quantity = 0
	assert.ErrorContains(t, c.Validate(), "cart_item.quantity must be positive, got 0")
	c.Quantity = 2
	assert.ErrorIs(t, ValidateQuantity(-3), common.ErrValidation)
	assert.NoError(t, ValidateQuantity(0))

	line := &CartLine{CartItem: *c, UnitPrice: decimal.RequireFromString("2.50")}
	assert.True(t, decimal.RequireFromString("5.00").Equal(line.LineTotal()))

	item := &OrderItem{Quantity: 3, UnitPrice: decimal.RequireFromString("1.10")}
	assert.True(t, decimal.RequireFromString("3.30").Equal(item.LineTotal()))
}

func TestCategory_Validate(t *testing.T) {
	c := &Category{Name: "Shirts", ParentID: int64p(2)}
	require.NoError(t, c.Validate())
	c.Description = strings.Repeat("d", 501)
	assert.ErrorContains(t, c.Validate(), "category.description is 501 characters, max 500")
}
