// Package orders implements the order access module on PostgreSQL.
package orders

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/dbx"
	"github.com/dmitrijs2005/shopkeeper/internal/models"
	"github.com/dmitrijs2005/shopkeeper/internal/rowmap"
)

var orderRow = rowmap.New("orders",
	rowmap.Col("id", func(o *models.Order) any { return &o.ID }),
	rowmap.Col("user_id", func(o *models.Order) any { return &o.UserID }),
	rowmap.Col("order_number", func(o *models.Order) any { return rowmap.Text(&o.OrderNumber) }),
	rowmap.Col("status", func(o *models.Order) any { return rowmap.Text(&o.Status) }),
	rowmap.Col("total_amount", func(o *models.Order) any { return rowmap.Money(&o.TotalAmount) }),
	rowmap.Col("shipping_address_id", func(o *models.Order) any { return rowmap.OptionalID(&o.ShippingAddressID) }),
	rowmap.Col("billing_address_id", func(o *models.Order) any { return rowmap.OptionalID(&o.BillingAddressID) }),
	rowmap.Col("payment_method", func(o *models.Order) any { return rowmap.Text(&o.PaymentMethod) }),
	rowmap.Col("payment_status", func(o *models.Order) any { return rowmap.Text(&o.PaymentStatus) }),
	rowmap.Col("shipping_cost", func(o *models.Order) any { return rowmap.Money(&o.ShippingCost) }),
	rowmap.Col("tax_amount", func(o *models.Order) any { return rowmap.Money(&o.TaxAmount) }),
	rowmap.Col("notes", func(o *models.Order) any { return rowmap.Text(&o.Notes) }),
	rowmap.Col("created_at", func(o *models.Order) any { return &o.CreatedAt }),
	rowmap.Col("updated_at", func(o *models.Order) any { return &o.UpdatedAt }),
)

var itemRow = rowmap.New("order_items",
	rowmap.Col("id", func(i *models.OrderItem) any { return &i.ID }),
	rowmap.Col("order_id", func(i *models.OrderItem) any { return &i.OrderID }),
	rowmap.Col("product_id", func(i *models.OrderItem) any { return &i.ProductID }),
	rowmap.Col("quantity", func(i *models.OrderItem) any { return rowmap.Int(&i.Quantity) }),
	rowmap.Col("unit_price", func(i *models.OrderItem) any { return rowmap.Money(&i.UnitPrice) }),
	rowmap.Col("total_price", func(i *models.OrderItem) any { return rowmap.Money(&i.TotalPrice) }),
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, o *models.Order) (int64, error) {
	if err := o.Validate(); err != nil {
		return 0, err
	}

	query :=
		`INSERT INTO orders (user_id, order_number, status, total_amount, shipping_address_id,
		                     billing_address_id, payment_method, payment_status, shipping_cost, tax_amount, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		o.UserID, o.OrderNumber, o.Status, o.TotalAmount, o.ShippingAddressID,
		o.BillingAddressID, o.PaymentMethod, o.PaymentStatus, o.ShippingCost, o.TaxAmount, o.Notes).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", common.ErrStatementFailed, err)
	}
	return id, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	return orderRow.One(r.db.QueryRowContext(ctx, orderRow.Select()+` WHERE id = $1`, id))
}

func (r *PostgresRepository) GetByOrderNumber(ctx context.Context, number string) (*models.Order, error) {
	return orderRow.One(r.db.QueryRowContext(ctx, orderRow.Select()+` WHERE order_number = $1`, number))
}

// GetByUser lists the user's orders, newest first.
func (r *PostgresRepository) GetByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	return orderRow.All(r.db.QueryContext(ctx,
		orderRow.Select()+` WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID))
}

func (r *PostgresRepository) GetByStatus(ctx context.Context, status string) ([]models.Order, error) {
	return orderRow.All(r.db.QueryContext(ctx,
		orderRow.Select()+` WHERE status = $1 ORDER BY created_at DESC, id DESC`, status))
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	return orderRow.All(r.db.QueryContext(ctx, orderRow.Select()+` ORDER BY created_at DESC, id DESC`))
}

func (r *PostgresRepository) Update(ctx context.Context, o *models.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	query :=
		`UPDATE orders
		 SET user_id = $1, order_number = $2, status = $3, total_amount = $4, shipping_address_id = $5,
		     billing_address_id = $6, payment_method = $7, payment_status = $8, shipping_cost = $9,
		     tax_amount = $10, notes = $11, updated_at = now()
		 WHERE id = $12`

	res, err := r.db.ExecContext(ctx, query,
		o.UserID, o.OrderNumber, o.Status, o.TotalAmount, o.ShippingAddressID,
		o.BillingAddressID, o.PaymentMethod, o.PaymentStatus, o.ShippingCost, o.TaxAmount, o.Notes, o.ID)
	return dbx.ExpectRow(res, err)
}

// UpdateStatus changes only the status column.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	if err := models.ValidateOrderStatus(status); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	return dbx.ExpectRow(res, err)
}

// Delete removes the order row only; its line items stay.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrStatementFailed, err)
	}
	return nil
}

func (r *PostgresRepository) CreateItem(ctx context.Context, item *models.OrderItem) (int64, error) {
	if err := item.Validate(); err != nil {
		return 0, err
	}

	query :=
		`INSERT INTO order_items (order_id, product_id, quantity, unit_price, total_price)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		item.OrderID, item.ProductID, item.Quantity, item.UnitPrice, item.TotalPrice).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", common.ErrStatementFailed, err)
	}
	return id, nil
}

func (r *PostgresRepository) GetItemByID(ctx context.Context, id int64) (*models.OrderItem, error) {
	return itemRow.One(r.db.QueryRowContext(ctx, itemRow.Select()+` WHERE id = $1`, id))
}

func (r *PostgresRepository) GetItemsByOrder(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	return itemRow.All(r.db.QueryContext(ctx, itemRow.Select()+` WHERE order_id = $1 ORDER BY id`, orderID))
}

func (r *PostgresRepository) UpdateItem(ctx context.Context, item *models.OrderItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	query :=
		`UPDATE order_items
		 SET order_id = $1, product_id = $2, quantity = $3, unit_price = $4, total_price = $5
		 WHERE id = $6`

	res, err := r.db.ExecContext(ctx, query,
		item.OrderID, item.ProductID, item.Quantity, item.UnitPrice, item.TotalPrice, item.ID)
	return dbx.ExpectRow(res, err)
}

func (r *PostgresRepository) DeleteItem(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM order_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrStatementFailed, err)
	}
	return nil
}
