// Package products implements the product access module on PostgreSQL.
package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/dbx"
	"github.com/dmitrijs2005/shopkeeper/internal/models"
	"github.com/dmitrijs2005/shopkeeper/internal/rowmap"
	"github.com/shopspring/decimal"
)

var productRow = rowmap.New("products",
	rowmap.Col("id", func(p *models.Product) any { return &p.ID }),
	rowmap.Col("name", func(p *models.Product) any { return rowmap.Text(&p.Name) }),
	rowmap.Col("description", func(p *models.Product) any { return rowmap.Text(&p.Description) }),
	rowmap.Col("price", func(p *models.Product) any { return rowmap.Money(&p.Price) }),
	rowmap.Col("stock_quantity", func(p *models.Product) any { return rowmap.Int(&p.StockQuantity) }),
	rowmap.Col("category_id", func(p *models.Product) any { return rowmap.OptionalID(&p.CategoryID) }),
	rowmap.Col("sku", func(p *models.Product) any { return rowmap.Text(&p.SKU) }),
	rowmap.Col("weight", func(p *models.Product) any { return rowmap.Money(&p.Weight) }),
	rowmap.Col("dimensions", func(p *models.Product) any { return rowmap.Text(&p.Dimensions) }),
	rowmap.Col("image_url", func(p *models.Product) any { return rowmap.Text(&p.ImageURL) }),
	rowmap.Col("is_active", func(p *models.Product) any { return rowmap.Flag(&p.IsActive) }),
	rowmap.Col("created_at", func(p *models.Product) any { return &p.CreatedAt }),
	rowmap.Col("updated_at", func(p *models.Product) any { return &p.UpdatedAt }),
)

// likeEscaper makes a user supplied term match literally inside LIKE.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// nullableText stores "" as NULL for optional text columns with unique
// constraints (sku) so several products may have none.
func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Product) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	query :=
		`INSERT INTO products (name, description, price, stock_quantity, category_id, sku, weight, dimensions, image_url, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Price, p.StockQuantity, p.CategoryID, nullableText(p.SKU),
		p.Weight, p.Dimensions, p.ImageURL, p.IsActive).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", common.ErrStatementFailed, err)
	}
	return id, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	return productRow.One(r.db.QueryRowContext(ctx, productRow.Select()+` WHERE id = $1`, id))
}

func (r *PostgresRepository) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	return productRow.One(r.db.QueryRowContext(ctx, productRow.Select()+` WHERE sku = $1`, sku))
}

func (r *PostgresRepository) GetByCategory(ctx context.Context, categoryID int64) ([]models.Product, error) {
	return productRow.All(r.db.QueryContext(ctx,
		productRow.Select()+` WHERE category_id = $1 ORDER BY id`, categoryID))
}

// GetByPriceRange returns products with min <= price <= max, cheapest first.
func (r *PostgresRepository) GetByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]models.Product, error) {
	return productRow.All(r.db.QueryContext(ctx,
		productRow.Select()+` WHERE price BETWEEN $1 AND $2 ORDER BY price, id`, min, max))
}

// SearchByName returns products whose name contains term. Wildcards in term
// are matched literally; case sensitivity follows the column collation.
func (r *PostgresRepository) SearchByName(ctx context.Context, term string) ([]models.Product, error) {
	pattern := "%" + likeEscaper.Replace(term) + "%"
	return productRow.All(r.db.QueryContext(ctx,
		productRow.Select()+` WHERE name LIKE $1 ESCAPE '\' ORDER BY id`, pattern))
}

func (r *PostgresRepository) GetAll(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	if activeOnly {
		return productRow.All(r.db.QueryContext(ctx, productRow.Select()+` WHERE is_active ORDER BY id`))
	}
	return productRow.All(r.db.QueryContext(ctx, productRow.Select()+` ORDER BY id`))
}

func (r *PostgresRepository) Update(ctx context.Context, p *models.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	query :=
		`UPDATE products
		 SET name = $1, description = $2, price = $3, stock_quantity = $4, category_id = $5,
		     sku = $6, weight = $7, dimensions = $8, image_url = $9, is_active = $10, updated_at = now()
		 WHERE id = $11`

	res, err := r.db.ExecContext(ctx, query,
		p.Name, p.Description, p.Price, p.StockQuantity, p.CategoryID, nullableText(p.SKU),
		p.Weight, p.Dimensions, p.ImageURL, p.IsActive, p.ID)
	return dbx.ExpectRow(res, err)
}

// UpdateStock sets the stock level of one product and touches nothing else.
func (r *PostgresRepository) UpdateStock(ctx context.Context, id int64, qty int) error {
	if err := models.ValidateStock(qty); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET stock_quantity = $1, updated_at = now() WHERE id = $2`, qty, id)
	return dbx.ExpectRow(res, err)
}

// AdjustStock adds delta (negative to take stock out) and returns the new
// level. A change that would leave the stock negative is refused with
// common.ErrInsufficientStock and nothing is written.
func (r *PostgresRepository) AdjustStock(ctx context.Context, id int64, delta int) (int, error) {
	query :=
		`UPDATE products
		 SET stock_quantity = stock_quantity + $1, updated_at = now()
		 WHERE id = $2 AND stock_quantity + $1 >= 0
		 RETURNING stock_quantity`

	var level int
	err := r.db.QueryRowContext(ctx, query, delta, id).Scan(&level)
	if err == nil {
		return level, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %w", common.ErrStatementFailed, err)
	}

	// tell a missing product apart from one without enough stock
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return 0, getErr
	}
	return 0, fmt.Errorf("%w: product %d", common.ErrInsufficientStock, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrStatementFailed, err)
	}
	return nil
}
