package utils

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestHashPassword(t *testing.T) {
	password := "secret"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if hash == password {
		t.Errorf("Expected hash to differ from plaintext")
	}

	if !CheckPassword(password, hash) {
		t.Errorf("Expected password check to pass")
	}

	if CheckPassword("wrongpassword", hash) {
		t.Errorf("Expected password check to fail")
	}
}

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if first == second {
		t.Errorf("Expected two hashes of the same password to differ")
	}
}

func TestJWT(t *testing.T) {
	secret := "supersecret"

	token, err := GenerateToken(123, "Asha", "asha@example.com", secret)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if claims.UserID != 123 {
		t.Errorf("Expected UserID 123, got %d", claims.UserID)
	}
	if claims.Name != "Asha" || claims.Email != "asha@example.com" {
		t.Errorf("Expected name/email round trip, got %q/%q", claims.Name, claims.Email)
	}

	_, err = ValidateToken(token, "wrongsecret")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Expected ErrTokenInvalid with wrong secret, got %v", err)
	}
}

func TestValidateTokenExpiresAfterTTL(t *testing.T) {
	secret := "supersecret"
	issuedAt := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)

	token, err := GenerateTokenAt(7, "Ravi", "ravi@example.com", secret, issuedAt)
	if err != nil {
		t.Fatalf("GenerateTokenAt: %v", err)
	}

	if _, err := ValidateTokenAt(token, secret, issuedAt.Add(TokenTTL-time.Minute)); err != nil {
		t.Fatalf("Expected token valid just before expiry, got %v", err)
	}

	for _, age := range []time.Duration{TokenTTL + time.Second, 48 * time.Hour, 365 * 24 * time.Hour} {
		_, err := ValidateTokenAt(token, secret, issuedAt.Add(age))
		if !errors.Is(err, ErrTokenExpired) {
			t.Errorf("Expected ErrTokenExpired for age %s, got %v", age, err)
		}
	}
}

func TestValidateTokenMalformed(t *testing.T) {
	for _, raw := range []string{"", "   ", "not-a-jwt", "a.b", "a.b.c"} {
		_, err := ValidateToken(raw, "supersecret")
		if !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("ValidateToken(%q): expected ErrTokenMalformed, got %v", raw, err)
		}
	}
}

func TestValidateTokenRejectsForeignIssuerAndAlgorithm(t *testing.T) {
	secret := "supersecret"
	now := time.Now()

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: 5,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "5",
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})
	signed, err := foreign.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	if _, err := ValidateToken(signed, secret); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Expected ErrTokenInvalid for foreign issuer, got %v", err)
	}

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		UserID: 5,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "5",
			Issuer:    TokenIssuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	})
	signed, err = hs512.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	if _, err := ValidateToken(signed, secret); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Expected ErrTokenInvalid for HS512 token, got %v", err)
	}
}

func TestValidateTokenRejectsTamperedPayload(t *testing.T) {
	secret := "supersecret"
	token, err := GenerateToken(9, "Meera", "meera@example.com", secret)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	parts := strings.Split(token, ".")
	forged, err := GenerateToken(10, "Meera", "meera@example.com", "othersecret")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	parts[1] = strings.Split(forged, ".")[1]

	if _, err := ValidateToken(strings.Join(parts, "."), secret); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Expected ErrTokenInvalid for tampered payload, got %v", err)
	}
}

func TestGenerateTokenRejectsBadInput(t *testing.T) {
	if _, err := GenerateToken(0, "x", "x@example.com", "secret"); err == nil {
		t.Errorf("Expected error for zero user id")
	}
	if _, err := GenerateToken(1, "x", "x@example.com", ""); err == nil {
		t.Errorf("Expected error for empty secret")
	}
}
