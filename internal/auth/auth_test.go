package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func setSecret(t *testing.T) {
	t.Helper()
	t.Setenv("HR_AUTH_SECRET", "test-secret")
	ResetSecretForTests()
	t.Cleanup(ResetSecretForTests)
}

func TestGenerateAndValidateToken(t *testing.T) {
	setSecret(t)

	token, err := GenerateToken("emp-1", "Employee", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseAndValidate(token)
	if err != nil {
		t.Fatalf("ParseAndValidate: %v", err)
	}
	if claims.Subject != "emp-1" {
		t.Fatalf("expected subject emp-1, got %q", claims.Subject)
	}
	if claims.Role != "employee" {
		t.Fatalf("expected lowercased role, got %q", claims.Role)
	}
	if claims.ID == "" {
		t.Fatal("expected a token id")
	}
}

func TestGenerateTokenInputValidation(t *testing.T) {
	setSecret(t)

	if _, err := GenerateToken("", "admin", time.Hour); err == nil {
		t.Fatal("expected error for empty userID")
	}
	if _, err := GenerateToken("emp-1", "  ", time.Hour); err == nil {
		t.Fatal("expected error for blank role")
	}
	if _, err := GenerateToken("emp-1", "admin", 0); err == nil {
		t.Fatal("expected error for zero ttl")
	}
}

func TestGenerateTokenMissingSecret(t *testing.T) {
	t.Setenv("HR_AUTH_SECRET", "")
	ResetSecretForTests()
	t.Cleanup(ResetSecretForTests)

	if _, err := GenerateToken("emp-1", "admin", time.Hour); err == nil {
		t.Fatal("expected error when secret is not configured")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	setSecret(t)

	for _, token := range []string{"", "   ", "not.a.jwt"} {
		if _, err := ParseAndValidate(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("ParseAndValidate(%q): expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	setSecret(t)

	token, err := GenerateToken("emp-1", "employee", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	t.Setenv("HR_AUTH_SECRET", "another-secret")
	ResetSecretForTests()

	if _, err := ParseAndValidate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	setSecret(t)

	now := time.Now().UTC()
	claims := Claims{
		Role: "employee",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "county-hr",
			Subject:   "emp-1",
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
			ID:        "expired",
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseAndValidate(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	setSecret(t)

	now := time.Now().UTC()
	claims := Claims{
		Role: "employee",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Subject:   "emp-1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			ID:        "foreign",
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseAndValidate(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign issuer, got %v", err)
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := ContextWithUser(context.Background(), "admin-1", "Admin")

	userID, ok := UserIDFromContext(ctx)
	if !ok || userID != "admin-1" {
		t.Fatalf("expected admin-1 in context, got %q ok=%v", userID, ok)
	}
	role, ok := RoleFromContext(ctx)
	if !ok || role != "admin" {
		t.Fatalf("expected lowercased admin role, got %q ok=%v", role, ok)
	}
	if !IsAdmin(ctx) {
		t.Fatal("expected IsAdmin to be true")
	}
	if IsAdmin(context.Background()) {
		t.Fatal("expected IsAdmin to be false for empty context")
	}
}
