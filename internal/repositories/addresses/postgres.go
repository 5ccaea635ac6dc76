package addresses

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/dbx"
	"github.com/dmitrijs2005/shopkeeper/internal/models"
	"github.com/dmitrijs2005/shopkeeper/internal/rowmap"
)

var addressRow = rowmap.New("addresses",
	rowmap.Col("id", func(a *models.Address) any { return &a.ID }),
	rowmap.Col("user_id", func(a *models.Address) any { return &a.UserID }),
	rowmap.Col("address_type", func(a *models.Address) any { return rowmap.Text(&a.AddressType) }),
	rowmap.Col("first_name", func(a *models.Address) any { return rowmap.Text(&a.FirstName) }),
	rowmap.Col("last_name", func(a *models.Address) any { return rowmap.Text(&a.LastName) }),
	rowmap.Col("company", func(a *models.Address) any { return rowmap.Text(&a.Company) }),
	rowmap.Col("address_line1", func(a *models.Address) any { return rowmap.Text(&a.AddressLine1) }),
	rowmap.Col("address_line2", func(a *models.Address) any { return rowmap.Text(&a.AddressLine2) }),
	rowmap.Col("city", func(a *models.Address) any { return rowmap.Text(&a.City) }),
	rowmap.Col("state_province", func(a *models.Address) any { return rowmap.Text(&a.StateProvince) }),
	rowmap.Col("postal_code", func(a *models.Address) any { return rowmap.Text(&a.PostalCode) }),
	rowmap.Col("country", func(a *models.Address) any { return rowmap.Text(&a.Country) }),
	rowmap.Col("is_default", func(a *models.Address) any { return rowmap.Flag(&a.IsDefault) }),
	rowmap.Col("created_at", func(a *models.Address) any { return &a.CreatedAt }),
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, a *models.Address) (int64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}

	query :=
		`INSERT INTO addresses (user_id, address_type, first_name, last_name, company, address_line1,
		                        address_line2, city, state_province, postal_code, country, is_default)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		a.UserID, a.AddressType, a.FirstName, a.LastName, a.Company, a.AddressLine1,
		a.AddressLine2, a.City, a.StateProvince, a.PostalCode, a.Country, a.IsDefault).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", common.ErrStatementFailed, err)
	}
	return id, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Address, error) {
	return addressRow.One(r.db.QueryRowContext(ctx, addressRow.Select()+` WHERE id = $1`, id))
}

// GetByUser lists a user's addresses, defaults first.
func (r *PostgresRepository) GetByUser(ctx context.Context, userID int64) ([]models.Address, error) {
	return addressRow.All(r.db.QueryContext(ctx,
		addressRow.Select()+` WHERE user_id = $1 ORDER BY is_default DESC, id`, userID))
}

func (r *PostgresRepository) Update(ctx context.Context, a *models.Address) error {
	if err := a.Validate(); err != nil {
		return err
	}

	query :=
		`UPDATE addresses
		 SET user_id = $1, address_type = $2, first_name = $3, last_name = $4, company = $5,
		     address_line1 = $6, address_line2 = $7, city = $8, state_province = $9,
		     postal_code = $10, country = $11, is_default = $12
		 WHERE id = $13`

	res, err := r.db.ExecContext(ctx, query,
		a.UserID, a.AddressType, a.FirstName, a.LastName, a.Company, a.AddressLine1,
		a.AddressLine2, a.City, a.StateProvince, a.PostalCode, a.Country, a.IsDefault, a.ID)
	return dbx.ExpectRow(res, err)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrStatementFailed, err)
	}
	return nil
}

// SetDefault marks address id as the user's default for its address type and
// clears the flag on the user's other addresses of that type. It runs as one
// statement, so there is never a moment with two defaults. An id that does
// not belong to userID yields common.ErrorNotFound.
func (r *PostgresRepository) SetDefault(ctx context.Context, userID, id int64) error {
	query :=
		`UPDATE addresses a
		 SET is_default = (a.id = t.id)
		 FROM addresses t
		 WHERE t.id = $1 AND t.user_id = $2
		   AND a.user_id = t.user_id AND a.address_type = t.address_type`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	return dbx.ExpectRow(res, err)
}
