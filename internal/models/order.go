package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// Payment statuses.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

var orderStatuses = []string{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}

var paymentStatuses = []string{PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded}

// Order is a row of the orders table. Address references are optional.
type Order struct {
	ID                int64
	UserID            int64
	OrderNumber       string
	Status            string
	TotalAmount       decimal.Decimal
	ShippingAddressID *int64
	BillingAddressID  *int64
	PaymentMethod     string
	PaymentStatus     string
	ShippingCost      decimal.Decimal
	TaxAmount         decimal.Decimal
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (o *Order) Validate() error {
	v := validator{entity: "order"}
	v.positiveID("user_id", o.UserID)
	v.required("order_number", o.OrderNumber)
	v.maxLen("order_number", o.OrderNumber, 50)
	v.oneOf("status", o.Status, orderStatuses...)
	v.nonNegativeMoney("total_amount", o.TotalAmount)
	if o.ShippingAddressID != nil {
		v.positiveID("shipping_address_id", *o.ShippingAddressID)
	}
	if o.BillingAddressID != nil {
		v.positiveID("billing_address_id", *o.BillingAddressID)
	}
	v.maxLen("payment_method", o.PaymentMethod, 50)
	v.oneOf("payment_status", o.PaymentStatus, paymentStatuses...)
	v.nonNegativeMoney("shipping_cost", o.ShippingCost)
	v.nonNegativeMoney("tax_amount", o.TaxAmount)
	v.maxLen("notes", o.Notes, 1000)
	return v.err
}

// ValidateOrderStatus reports whether status is a known order status.
func ValidateOrderStatus(status string) error {
	v := validator{entity: "order"}
	v.oneOf("status", status, orderStatuses...)
	return v.err
}

// OrderItem is one line of an order. TotalPrice is stored, not derived on read.
type OrderItem struct {
	ID         int64
	OrderID    int64
	ProductID  int64
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
}

func (i *OrderItem) Validate() error {
	v := validator{entity: "order_item"}
	v.positiveID("order_id", i.OrderID)
	v.positiveID("product_id", i.ProductID)
	v.nonNegative("quantity", i.Quantity)
	v.nonNegativeMoney("unit_price", i.UnitPrice)
	v.nonNegativeMoney("total_price", i.TotalPrice)
	return v.err
}

// LineTotal returns quantity × unit price.
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
