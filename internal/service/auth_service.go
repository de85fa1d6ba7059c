package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/coursehive/coursehive-backend/internal/config"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnknownRole        = errors.New("unknown token role")
)

// Role distinguishes the two independent token signing domains.
// Each role has its own secret; tokens never cross-validate.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	Role      Role `json:"role"`
	AccountID int  `json:"account_id"`
}

// AuthService handles password hashing and JWT issuance/verification.
// It is stateless: both signing secrets come from immutable configuration
// injected at construction.
type AuthService struct {
	cfg *config.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
// A malformed hash is reported as invalid credentials, never a panic.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// IssueToken creates a JWT for the given account under the role's signing
// domain. Tokens expire after the configured JWT expiry.
func (s *AuthService) IssueToken(accountID int, role Role) (string, error) {
	secret, err := s.secretFor(role)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   strconv.Itoa(accountID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		Role:      role,
		AccountID: accountID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a JWT against the expected role's secret,
// returning the embedded account ID. A token issued under the other role
// fails here: the disjoint secrets make its signature invalid, and the role
// claim is checked on top of that. Malformed tokens, bad signatures and
// missing claims all come back as ErrInvalidToken.
func (s *AuthService) VerifyToken(tokenStr string, role Role) (int, error) {
	secret, err := s.secretFor(role)
	if err != nil {
		return 0, err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	if claims.Role != role || claims.AccountID == 0 {
		return 0, ErrInvalidToken
	}
	return claims.AccountID, nil
}

func (s *AuthService) secretFor(role Role) ([]byte, error) {
	switch role {
	case RoleUser:
		return []byte(s.cfg.JWTUserSecret), nil
	case RoleAdmin:
		return []byte(s.cfg.JWTAdminSecret), nil
	default:
		return nil, ErrUnknownRole
	}
}
