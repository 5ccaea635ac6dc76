package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/logging"
	"github.com/dmitrijs2005/shopkeeper/internal/models"
	"github.com/dmitrijs2005/shopkeeper/internal/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// hashPassword and comparePassword are seams over bcrypt.
var (
	hashPassword = func(password string) (string, error) {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		return string(h), err
	}
	comparePassword = func(hash, password string) error {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	}
)

type UserService struct {
	base
}

func NewUserService(db *sql.DB, rm repomanager.RepositoryManager, log logging.Logger) *UserService {
	return &UserService{base: newBase(db, rm, log, "users")}
}

// Create stores u as given; PasswordHash must already be a hash.
func (s *UserService) Create(ctx context.Context, u *models.User) int64 {
	id, err := s.repomanager.Users(s.db).Create(ctx, u)
	return s.created(ctx, "create user", id, err)
}

// Register hashes password with bcrypt and creates an active user.
func (s *UserService) Register(ctx context.Context, u *models.User, password string) int64 {
	if password == "" {
		s.report(ctx, "register user", fmt.Errorf("%w: user.password is required", common.ErrValidation))
		return FailedID
	}
	hash, err := hashPassword(password)
	if err != nil {
		s.report(ctx, "register user", err)
		return FailedID
	}
	u.PasswordHash = hash
	u.IsActive = true
	return s.Create(ctx, u)
}

// VerifyCredentials returns the user when username exists, is active and
// password matches its hash. Every mismatch is common.ErrInvalidCredentials.
func (s *UserService) VerifyCredentials(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		s.report(ctx, "verify credentials", err, "username", username)
		return nil, err
	}
	if !u.IsActive || comparePassword(u.PasswordHash, password) != nil {
		return nil, common.ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) *models.User {
	u, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	return found(ctx, &s.base, "get user", u, err)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) *models.User {
	u, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	return found(ctx, &s.base, "get user by username", u, err)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) *models.User {
	u, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	return found(ctx, &s.base, "get user by email", u, err)
}

func (s *UserService) GetAll(ctx context.Context) []models.User {
	list, err := s.repomanager.Users(s.db).GetAll(ctx)
	return listed(ctx, &s.base, "list users", list, err)
}

func (s *UserService) Update(ctx context.Context, u *models.User) bool {
	return s.ok(ctx, "update user", s.repomanager.Users(s.db).Update(ctx, u), "id", u.ID)
}

func (s *UserService) Delete(ctx context.Context, id int64) bool {
	return s.ok(ctx, "delete user", s.repomanager.Users(s.db).Delete(ctx, id), "id", id)
}
