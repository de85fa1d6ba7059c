package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/coursehive/coursehive-backend/internal/model"
	"github.com/coursehive/coursehive-backend/internal/repository"
)

// UserStore is the persistence contract the user service depends on.
// Not-found is reported as pgx.ErrNoRows, duplicates as
// repository.ErrDuplicateEmail.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id int) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

// UserService handles learner signup, signin and lookups.
type UserService struct {
	store UserStore
	auth  *AuthService
}

// NewUserService creates a new UserService.
func NewUserService(store UserStore, auth *AuthService) *UserService {
	return &UserService{store: store, auth: auth}
}

// Signup creates a user account and returns a freshly issued user token.
// A taken email surfaces as ErrDuplicateAccount; the second of two racing
// signups for the same email always loses on the unique index.
func (s *UserService) Signup(ctx context.Context, req *model.SignupRequest) (string, *model.User, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return "", nil, err
	}

	user := &model.User{
		Email:        NormalizeEmail(req.Email),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: hash,
	}
	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", nil, ErrDuplicateAccount
		}
		return "", nil, err
	}

	token, err := s.auth.IssueToken(user.ID, RoleUser)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Signin verifies credentials and returns a user token. An unknown email
// is reported as ErrAccountNotFound rather than a generic auth failure —
// the API deliberately favors friendliness over hiding account existence.
func (s *UserService) Signin(ctx context.Context, req *model.SigninRequest) (string, *model.User, error) {
	user, err := s.store.GetByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, ErrAccountNotFound
		}
		return "", nil, err
	}

	if err := s.auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.auth.IssueToken(user.ID, RoleUser)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return user, nil
}

// List retrieves all users (admin-facing; password hashes never serialize).
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// NormalizeEmail trims and lowercases an email so uniqueness checks and
// lookups agree on a single canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
