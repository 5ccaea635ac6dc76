package reviews

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/dbx"
	"github.com/dmitrijs2005/shopkeeper/internal/models"
	"github.com/dmitrijs2005/shopkeeper/internal/rowmap"
	"github.com/shopspring/decimal"
)

var reviewRow = rowmap.New("reviews",
	rowmap.Col("id", func(r *models.Review) any { return &r.ID }),
	rowmap.Col("product_id", func(r *models.Review) any { return &r.ProductID }),
	rowmap.Col("user_id", func(r *models.Review) any { return &r.UserID }),
	rowmap.Col("rating", func(r *models.Review) any { return rowmap.Int(&r.Rating) }),
	rowmap.Col("title", func(r *models.Review) any { return rowmap.Text(&r.Title) }),
	rowmap.Col("comment", func(r *models.Review) any { return rowmap.Text(&r.Comment) }),
	rowmap.Col("is_verified", func(r *models.Review) any { return rowmap.Flag(&r.IsVerified) }),
	rowmap.Col("created_at", func(r *models.Review) any { return &r.CreatedAt }),
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, rv *models.Review) (int64, error) {
	if err := rv.Validate(); err != nil {
		return 0, err
	}

	query :=
		`INSERT INTO reviews (product_id, user_id, rating, title, comment, is_verified)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		rv.ProductID, rv.UserID, rv.Rating, rv.Title, rv.Comment, rv.IsVerified).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", common.ErrStatementFailed, err)
	}
	return id, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	return reviewRow.One(r.db.QueryRowContext(ctx, reviewRow.Select()+` WHERE id = $1`, id))
}

// GetByProduct returns the product's reviews, newest first.
func (r *PostgresRepository) GetByProduct(ctx context.Context, productID int64) ([]models.Review, error) {
	return reviewRow.All(r.db.QueryContext(ctx,
		reviewRow.Select()+` WHERE product_id = $1 ORDER BY created_at DESC, id DESC`, productID))
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrStatementFailed, err)
	}
	return nil
}

// AverageRating is the mean rating of a product rounded to two places; zero
// when the product has no reviews.
func (r *PostgresRepository) AverageRating(ctx context.Context, productID int64) (decimal.Decimal, error) {
	avg := decimal.Zero
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(ROUND(AVG(rating), 2), 0) FROM reviews WHERE product_id = $1`, productID).
		Scan(rowmap.Money(&avg))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", common.ErrStatementFailed, err)
	}
	return avg, nil
}
