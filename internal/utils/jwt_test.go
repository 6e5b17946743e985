package utils

import (
	"banking_api/internal/domain"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := "super-secret"
	username := "alice"

	tok, err := GenerateJWT(username, secret, 30*time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT error: %v", err)
	}

	got, err := ParseJWT(tok, secret)
	if err != nil {
		t.Fatalf("ParseJWT error: %v", err)
	}
	if got != username {
		t.Fatalf("subject mismatch: got %q want %q", got, username)
	}
}

func TestParseJWT_Expired(t *testing.T) {
	t.Parallel()

	tok, err := GenerateJWT("alice", "secret", -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateJWT error: %v", err)
	}

	_, err = ParseJWT(tok, "secret")
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseJWT_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateJWT("alice", "right-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT error: %v", err)
	}

	_, err = ParseJWT(tok, "wrong-secret")
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered signature, got %v", err)
	}
}

func TestParseJWT_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := ParseJWT("not.a.jwt", "k")
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}

func TestParseJWT_MissingSubject(t *testing.T) {
	t.Parallel()

	// A signed token without a subject claim must not validate.
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}

	_, err = ParseJWT(tok, "k")
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for missing subject, got %v", err)
	}
}
