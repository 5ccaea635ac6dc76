package categories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var categoryCols = []string{"id", "name", "description", "parent_id", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	parent := int64(1)

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+categories\s*\(name,\s*description,\s*parent_id\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id$`).
		WithArgs("Gadgets", "small things", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)))
	mock.ExpectQuery(`INSERT INTO categories`).
		WithArgs("Root", "", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	id, err := repo.Create(context.Background(), &models.Category{Name: "Gadgets", Description: "small things", ParentID: &parent})
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)

	id, err = repo.Create(context.Background(), &models.Category{Name: "Root"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_Invalid(t *testing.T) {
	repo, _ := newRepoWithMock(t)

	_, err := repo.Create(context.Background(), &models.Category{})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(categoryRow.Select() + ` WHERE id = $1`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(categoryCols).AddRow(int64(2), "Gadgets", nil, int64(1), time.Now()))
	mock.ExpectQuery(`FROM categories WHERE id`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(categoryCols))

	got, err := repo.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Gadgets", got.Name)
	assert.Equal(t, "", got.Description)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, int64(1), *got.ParentID)

	_, err = repo.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetAllAndChildren(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(categoryRow.Select() + ` ORDER BY name, id`)).
		WillReturnRows(sqlmock.NewRows(categoryCols).
			AddRow(int64(2), "Gadgets", nil, int64(1), now).
			AddRow(int64(1), "Root", nil, nil, now))
	mock.ExpectQuery(regexp.QuoteMeta(categoryRow.Select() + ` WHERE parent_id = $1 ORDER BY name, id`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(categoryCols).AddRow(int64(2), "Gadgets", nil, int64(1), now))

	all, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Nil(t, all[1].ParentID)

	kids, err := repo.GetChildren(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, kids, 1)
	assert.Equal(t, int64(2), kids[0].ID)
}

func TestUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE categories SET name = $1, description = $2, parent_id = $3 WHERE id = $4`)).
		WithArgs("Toys", "", nil, int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE categories`).
		WithArgs("Toys", "", nil, int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Update(context.Background(), &models.Category{ID: 2, Name: "Toys"}))
	assert.ErrorIs(t, repo.Update(context.Background(), &models.Category{ID: 99, Name: "Toys"}), common.ErrorNotFound)

	self := int64(2)
	err := repo.Update(context.Background(), &models.Category{ID: 2, Name: "Toys", ParentID: &self})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM categories WHERE id = $1`)).
		WithArgs(int64(99)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM categories`).WillReturnError(errors.New("boom"))

	assert.NoError(t, repo.Delete(context.Background(), 99))
	assert.ErrorIs(t, repo.Delete(context.Background(), 1), common.ErrStatementFailed)
}
