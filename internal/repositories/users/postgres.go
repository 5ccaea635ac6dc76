// Package users implements the user access module on PostgreSQL.
package users

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/dbx"
	"github.com/dmitrijs2005/shopkeeper/internal/models"
	"github.com/dmitrijs2005/shopkeeper/internal/rowmap"
)

var userRow = rowmap.New("users",
	rowmap.Col("id", func(u *models.User) any { return &u.ID }),
	rowmap.Col("username", func(u *models.User) any { return rowmap.Text(&u.Username) }),
	rowmap.Col("email", func(u *models.User) any { return rowmap.Text(&u.Email) }),
	rowmap.Col("password_hash", func(u *models.User) any { return rowmap.Text(&u.PasswordHash) }),
	rowmap.Col("first_name", func(u *models.User) any { return rowmap.Text(&u.FirstName) }),
	rowmap.Col("last_name", func(u *models.User) any { return rowmap.Text(&u.LastName) }),
	rowmap.Col("phone", func(u *models.User) any { return rowmap.Text(&u.Phone) }),
	rowmap.Col("is_active", func(u *models.User) any { return rowmap.Flag(&u.IsActive) }),
	rowmap.Col("created_at", func(u *models.User) any { return &u.CreatedAt }),
	rowmap.Col("updated_at", func(u *models.User) any { return &u.UpdatedAt }),
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	if err := user.Validate(); err != nil {
		return 0, err
	}

	query :=
		`INSERT INTO users (username, email, password_hash, first_name, last_name, phone, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Phone, user.IsActive).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", common.ErrStatementFailed, err)
	}

	return id, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return userRow.One(r.db.QueryRowContext(ctx, userRow.Select()+` WHERE id = $1`, id))
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return userRow.One(r.db.QueryRowContext(ctx, userRow.Select()+` WHERE username = $1`, username))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return userRow.One(r.db.QueryRowContext(ctx, userRow.Select()+` WHERE email = $1`, email))
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]models.User, error) {
	return userRow.All(r.db.QueryContext(ctx, userRow.Select()+` ORDER BY id`))
}

// Update overwrites every writable column of the row with user.ID.
func (r *PostgresRepository) Update(ctx context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	query :=
		`UPDATE users
		 SET username = $1, email = $2, password_hash = $3, first_name = $4,
		     last_name = $5, phone = $6, is_active = $7, updated_at = now()
		 WHERE id = $8`

	res, err := r.db.ExecContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Phone, user.IsActive, user.ID)
	return dbx.ExpectRow(res, err)
}

// Delete removes the row unconditionally. Orders, cart items, addresses and
// reviews of the user are left in place.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrStatementFailed, err)
	}
	return nil
}
