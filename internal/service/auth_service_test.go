package service

import (
	"strings"
	"testing"
	"time"

	"github.com/coursehive/coursehive-backend/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTUserSecret:  "user-secret-for-tests",
		JWTAdminSecret: "admin-secret-for-tests",
		JWTExpiry:      time.Hour,
		BcryptCost:     4, // Minimum cost keeps the suite fast
	}
}

func TestIssueAndVerify_Roundtrip(t *testing.T) {
	t.Parallel()
	auth := NewAuthService(testConfig())

	for _, role := range []Role{RoleUser, RoleAdmin} {
		tok, err := auth.IssueToken(42, role)
		if err != nil {
			t.Fatalf("IssueToken(%s) error: %v", role, err)
		}
		got, err := auth.VerifyToken(tok, role)
		if err != nil {
			t.Fatalf("VerifyToken(%s) error: %v", role, err)
		}
		if got != 42 {
			t.Fatalf("account ID mismatch: got %d want 42", got)
		}
	}
}

func TestVerifyToken_DomainsNeverCrossValidate(t *testing.T) {
	t.Parallel()
	auth := NewAuthService(testConfig())

	userTok, err := auth.IssueToken(7, RoleUser)
	if err != nil {
		t.Fatalf("IssueToken(user) error: %v", err)
	}
	adminTok, err := auth.IssueToken(7, RoleAdmin)
	if err != nil {
		t.Fatalf("IssueToken(admin) error: %v", err)
	}

	if _, err := auth.VerifyToken(userTok, RoleAdmin); err == nil {
		t.Fatal("user token verified under admin domain")
	}
	if _, err := auth.VerifyToken(adminTok, RoleUser); err == nil {
		t.Fatal("admin token verified under user domain")
	}
}

// Even if both domains were misconfigured with the same secret, the role
// claim check must still reject cross-domain tokens.
func TestVerifyToken_SharedSecretStillRejectsWrongRole(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.JWTAdminSecret = cfg.JWTUserSecret
	auth := NewAuthService(cfg)

	userTok, err := auth.IssueToken(7, RoleUser)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	if _, err := auth.VerifyToken(userTok, RoleAdmin); err == nil {
		t.Fatal("user token verified under admin domain despite role claim")
	}
}

func TestVerifyToken_Malformed(t *testing.T) {
	t.Parallel()
	auth := NewAuthService(testConfig())

	for _, tok := range []string{"", "not.a.jwt", "garbage", strings.Repeat("x", 512)} {
		if _, err := auth.VerifyToken(tok, RoleUser); err == nil {
			t.Fatalf("malformed token %q verified", tok)
		}
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.JWTExpiry = -time.Minute
	auth := NewAuthService(cfg)

	tok, err := auth.IssueToken(9, RoleUser)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}
	if _, err := auth.VerifyToken(tok, RoleUser); err == nil {
		t.Fatal("expired token verified")
	}
}

func TestVerifyToken_UnknownRole(t *testing.T) {
	t.Parallel()
	auth := NewAuthService(testConfig())

	if _, err := auth.IssueToken(1, Role("superuser")); err == nil {
		t.Fatal("expected error for unknown role")
	}
	if _, err := auth.VerifyToken("whatever", Role("superuser")); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestPasswordHashing(t *testing.T) {
	t.Parallel()
	auth := NewAuthService(testConfig())

	hash, err := auth.HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "secret1" {
		t.Fatal("hash equals plaintext")
	}

	if err := auth.CheckPassword(hash, "secret1"); err != nil {
		t.Fatalf("CheckPassword with correct password: %v", err)
	}
	if err := auth.CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("wrong password accepted")
	}
}

// A malformed digest must read as a mismatch, never a panic.
func TestCheckPassword_MalformedDigest(t *testing.T) {
	t.Parallel()
	auth := NewAuthService(testConfig())

	for _, digest := range []string{"", "not-a-bcrypt-hash", "$2a$garbage"} {
		if err := auth.CheckPassword(digest, "anything"); err == nil {
			t.Fatalf("malformed digest %q accepted", digest)
		}
	}
}
