package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/dbx"
	"github.com/dmitrijs2005/shopkeeper/internal/logging"
	"github.com/dmitrijs2005/shopkeeper/internal/models"
	"github.com/dmitrijs2005/shopkeeper/internal/repositories/repomanager"
	usersrepo "github.com/dmitrijs2005/shopkeeper/internal/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsersRepo struct {
	created *models.User
	byName  map[string]*models.User
	err     error
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if err := u.Validate(); err != nil {
		return 0, err
	}
	f.created = u
	return 10, nil
}

func (f *fakeUsersRepo) GetByID(context.Context, int64) (*models.User, error) {
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.byName[username]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, f.err
}

func (f *fakeUsersRepo) GetAll(context.Context) ([]models.User, error) { return nil, f.err }
func (f *fakeUsersRepo) Update(context.Context, *models.User) error    { return f.err }
func (f *fakeUsersRepo) Delete(context.Context, int64) error           { return f.err }

// fakeRepoManager overrides Users; every other accessor is left to the nil
// embedded interface and must not be called.
type fakeRepoManager struct {
	repomanager.RepositoryManager
	users *fakeUsersRepo
}

func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository { return m.users }

func lowCostHash(t *testing.T) {
	t.Helper()
	orig := hashPassword
	hashPassword = func(password string) (string, error) {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		return string(h), err
	}
	t.Cleanup(func() { hashPassword = orig })
}

func TestRegister_HashesPassword(t *testing.T) {
	lowCostHash(t)
	repo := &fakeUsersRepo{}
	s := NewUserService(nil, &fakeRepoManager{users: repo}, logging.Discard())

	id := s.Register(context.Background(), &models.User{Username: "alice", Email: "a@example.com"}, "s3cret")
	require.Equal(t, int64(10), id)
	require.NotNil(t, repo.created)
	assert.NotEqual(t, "s3cret", repo.created.PasswordHash)
	assert.True(t, repo.created.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.created.PasswordHash), []byte("s3cret")))
}

func TestRegister_Failures(t *testing.T) {
	lowCostHash(t)
	ctx := context.Background()

	s := NewUserService(nil, &fakeRepoManager{users: &fakeUsersRepo{}}, nil)
	assert.Equal(t, FailedID, s.Register(ctx, &models.User{Username: "alice", Email: "a@example.com"}, ""))
	assert.Equal(t, FailedID, s.Register(ctx, &models.User{Email: "a@example.com"}, "pw"), "missing username")

	s = NewUserService(nil, &fakeRepoManager{users: &fakeUsersRepo{err: common.ErrStatementFailed}}, nil)
	assert.Equal(t, FailedID, s.Register(ctx, &models.User{Username: "alice", Email: "a@example.com"}, "pw"))
}

func TestVerifyCredentials(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &fakeUsersRepo{byName: map[string]*models.User{
		"alice": {ID: 1, Username: "alice", PasswordHash: string(hash), IsActive: true},
		"bob":   {ID: 2, Username: "bob", PasswordHash: string(hash), IsActive: false},
	}}
	s := NewUserService(nil, &fakeRepoManager{users: repo}, nil)
	ctx := context.Background()

	u, err := s.VerifyCredentials(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)

	tests := []struct {
		name, user, pw string
	}{
		{"wrong password", "alice", "nope"},
		{"unknown user", "carol", "pw"},
		{"inactive user", "bob", "pw"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u, err := s.VerifyCredentials(ctx, tc.user, tc.pw)
			assert.Nil(t, u)
			assert.ErrorIs(t, err, common.ErrInvalidCredentials)
		})
	}
}

func TestVerifyCredentials_StoreError(t *testing.T) {
	s := NewUserService(nil, &fakeRepoManager{users: &fakeUsersRepo{err: common.ErrStatementFailed}}, nil)

	_, err := s.VerifyCredentials(context.Background(), "alice", "pw")
	assert.True(t, errors.Is(err, common.ErrStatementFailed))
	assert.False(t, errors.Is(err, common.ErrInvalidCredentials))
}

func TestUserService_CollapsedShapes(t *testing.T) {
	s := NewUserService(nil, &fakeRepoManager{users: &fakeUsersRepo{err: common.ErrStatementFailed}}, nil)
	ctx := context.Background()

	assert.Nil(t, s.GetByID(ctx, 1))
	assert.Nil(t, s.GetByUsername(ctx, "alice"))
	assert.Nil(t, s.GetByEmail(ctx, "a@example.com"))
	assert.Nil(t, s.GetAll(ctx))
	assert.False(t, s.Update(ctx, &models.User{ID: 1}))
	assert.False(t, s.Delete(ctx, 1))
}
