// Package cartitems implements the cart access module on PostgreSQL.
package cartitems

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/dbx"
	"github.com/dmitrijs2005/shopkeeper/internal/models"
	"github.com/dmitrijs2005/shopkeeper/internal/rowmap"
	"github.com/shopspring/decimal"
)

var cartRow = rowmap.New("cart_items",
	rowmap.Col("id", func(c *models.CartItem) any { return &c.ID }),
	rowmap.Col("user_id", func(c *models.CartItem) any { return &c.UserID }),
	rowmap.Col("product_id", func(c *models.CartItem) any { return &c.ProductID }),
	rowmap.Col("quantity", func(c *models.CartItem) any { return rowmap.Int(&c.Quantity) }),
	rowmap.Col("added_at", func(c *models.CartItem) any { return &c.AddedAt }),
)

var lineRow = rowmap.New("cart_items c JOIN products p ON p.id = c.product_id",
	rowmap.Col("c.id", func(l *models.CartLine) any { return &l.ID }),
	rowmap.Col("c.user_id", func(l *models.CartLine) any { return &l.UserID }),
	rowmap.Col("c.product_id", func(l *models.CartLine) any { return &l.ProductID }),
	rowmap.Col("c.quantity", func(l *models.CartLine) any { return rowmap.Int(&l.Quantity) }),
	rowmap.Col("c.added_at", func(l *models.CartLine) any { return &l.AddedAt }),
	rowmap.Col("p.name", func(l *models.CartLine) any { return rowmap.Text(&l.ProductName) }),
	rowmap.Col("p.price", func(l *models.CartLine) any { return rowmap.Money(&l.UnitPrice) }),
	rowmap.Col("p.stock_quantity", func(l *models.CartLine) any { return rowmap.Int(&l.StockQuantity) }),
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// AddOrIncrement inserts a cart row for (userID, productID) or, when one
// exists, adds qty to its quantity. It returns the id of the row.
func (r *PostgresRepository) AddOrIncrement(ctx context.Context, userID, productID int64, qty int) (int64, error) {
	item := &models.CartItem{UserID: userID, ProductID: productID, Quantity: qty}
	if err := item.Validate(); err != nil {
		return 0, err
	}

	query :=
		`INSERT INTO cart_items (user_id, product_id, quantity)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, product_id)
		 DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		 RETURNING id`

	var id int64
	if err := r.db.QueryRowContext(ctx, query, userID, productID, qty).Scan(&id); err != nil {
		return 0, fmt.Errorf("%w: %w", common.ErrStatementFailed, err)
	}
	return id, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.CartItem, error) {
	return cartRow.One(r.db.QueryRowContext(ctx, cartRow.Select()+` WHERE id = $1`, id))
}

func (r *PostgresRepository) GetByUser(ctx context.Context, userID int64) ([]models.CartItem, error) {
	return cartRow.All(r.db.QueryContext(ctx,
		cartRow.Select()+` WHERE user_id = $1 ORDER BY added_at DESC, id DESC`, userID))
}

// Lines returns the user's cart joined with product name, price and stock.
func (r *PostgresRepository) Lines(ctx context.Context, userID int64) ([]models.CartLine, error) {
	return lineRow.All(r.db.QueryContext(ctx,
		lineRow.Select()+` WHERE c.user_id = $1 ORDER BY c.added_at DESC, c.id DESC`, userID))
}

// Update overwrites the owner, product and quantity of an existing row.
func (r *PostgresRepository) Update(ctx context.Context, item *models.CartItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE cart_items SET user_id = $1, product_id = $2, quantity = $3 WHERE id = $4`,
		item.UserID, item.ProductID, item.Quantity, item.ID)
	return dbx.ExpectRow(res, err)
}

func (r *PostgresRepository) UpdateQuantity(ctx context.Context, id int64, qty int) error {
	if err := models.ValidateQuantity(qty); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `UPDATE cart_items SET quantity = $1 WHERE id = $2`, qty, id)
	return dbx.ExpectRow(res, err)
}

func (r *PostgresRepository) Remove(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrStatementFailed, err)
	}
	return nil
}

// RemoveByUserProduct deletes the user's cart row for productID, if any.
func (r *PostgresRepository) RemoveByUserProduct(ctx context.Context, userID, productID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrStatementFailed, err)
	}
	return nil
}

func (r *PostgresRepository) Clear(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrStatementFailed, err)
	}
	return nil
}

// Total is the sum of quantity × current product price over the user's cart.
// An empty cart totals zero.
func (r *PostgresRepository) Total(ctx context.Context, userID int64) (decimal.Decimal, error) {
	query :=
		`SELECT COALESCE(SUM(c.quantity * p.price), 0)
		 FROM cart_items c
		 JOIN products p ON p.id = c.product_id
		 WHERE c.user_id = $1`

	total := decimal.Zero
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(rowmap.Money(&total)); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", common.ErrStatementFailed, err)
	}
	return total, nil
}

// Count returns the number of distinct products in the user's cart.
func (r *PostgresRepository) Count(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cart_items WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", common.ErrStatementFailed, err)
	}
	return n, nil
}
