package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/coursehive/coursehive-backend/internal/model"
	"github.com/coursehive/coursehive-backend/internal/repository"
)

// AdminStore is the persistence contract the admin service depends on.
type AdminStore interface {
	Create(ctx context.Context, a *model.Admin) error
	GetByID(ctx context.Context, id int) (*model.Admin, error)
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
}

// AdminService handles instructor signup, signin and lookups.
// Admins live in a signing domain disjoint from users: their tokens are
// issued under RoleAdmin and never validate against the user secret.
type AdminService struct {
	store AdminStore
	auth  *AuthService
}

// NewAdminService creates a new AdminService.
func NewAdminService(store AdminStore, auth *AuthService) *AdminService {
	return &AdminService{store: store, auth: auth}
}

// Signup creates an admin account and returns a freshly issued admin token.
func (s *AdminService) Signup(ctx context.Context, req *model.SignupRequest) (string, *model.Admin, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return "", nil, err
	}

	admin := &model.Admin{
		Email:        NormalizeEmail(req.Email),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: hash,
	}
	if err := s.store.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", nil, ErrDuplicateAccount
		}
		return "", nil, err
	}

	token, err := s.auth.IssueToken(admin.ID, RoleAdmin)
	if err != nil {
		return "", nil, err
	}
	return token, admin, nil
}

// Signin verifies credentials and returns an admin token.
func (s *AdminService) Signin(ctx context.Context, req *model.SigninRequest) (string, *model.Admin, error) {
	admin, err := s.store.GetByEmail(ctx, NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, ErrAccountNotFound
		}
		return "", nil, err
	}

	if err := s.auth.CheckPassword(admin.PasswordHash, req.Password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.auth.IssueToken(admin.ID, RoleAdmin)
	if err != nil {
		return "", nil, err
	}
	return token, admin, nil
}

// GetByID retrieves an admin by ID.
func (s *AdminService) GetByID(ctx context.Context, id int) (*model.Admin, error) {
	admin, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return admin, nil
}
