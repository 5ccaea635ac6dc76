package categories

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/dbx"
	"github.com/dmitrijs2005/shopkeeper/internal/models"
	"github.com/dmitrijs2005/shopkeeper/internal/rowmap"
)

var categoryRow = rowmap.New("categories",
	rowmap.Col("id", func(c *models.Category) any { return &c.ID }),
	rowmap.Col("name", func(c *models.Category) any { return rowmap.Text(&c.Name) }),
	rowmap.Col("description", func(c *models.Category) any { return rowmap.Text(&c.Description) }),
	rowmap.Col("parent_id", func(c *models.Category) any { return rowmap.OptionalID(&c.ParentID) }),
	rowmap.Col("created_at", func(c *models.Category) any { return &c.CreatedAt }),
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Category) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}

	query :=
		`INSERT INTO categories (name, description, parent_id)
		 VALUES ($1, $2, $3)
		 RETURNING id`

	var id int64
	if err := r.db.QueryRowContext(ctx, query, c.Name, c.Description, c.ParentID).Scan(&id); err != nil {
		return 0, fmt.Errorf("%w: %w", common.ErrStatementFailed, err)
	}
	return id, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	return categoryRow.One(r.db.QueryRowContext(ctx, categoryRow.Select()+` WHERE id = $1`, id))
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	return categoryRow.All(r.db.QueryContext(ctx, categoryRow.Select()+` ORDER BY name, id`))
}

// GetChildren lists the direct subcategories of parentID.
func (r *PostgresRepository) GetChildren(ctx context.Context, parentID int64) ([]models.Category, error) {
	return categoryRow.All(r.db.QueryContext(ctx,
		categoryRow.Select()+` WHERE parent_id = $1 ORDER BY name, id`, parentID))
}

func (r *PostgresRepository) Update(ctx context.Context, c *models.Category) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ParentID != nil && *c.ParentID == c.ID {
		return fmt.Errorf("%w: category.parent_id must not point at itself", common.ErrValidation)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = $1, description = $2, parent_id = $3 WHERE id = $4`,
		c.Name, c.Description, c.ParentID, c.ID)
	return dbx.ExpectRow(res, err)
}

// Delete removes the category only; products and subcategories keep their
// now dangling references.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrStatementFailed, err)
	}
	return nil
}
