package utils

import (
	"banking_api/internal/domain" // Domain error for invalid tokens
	"time"                        // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// GenerateJWT creates a signed bearer token whose subject is the username.
// The token expires ttl after issuance; there is no refresh mechanism.
func GenerateJWT(username, secret string, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   username,                                // Subject claim carries the username
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)), // Absolute expiry
		IssuedAt:  jwt.NewNumericDate(time.Now()),          // Issued at current time
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT validates a token string and returns its subject username.
// A bad signature, an elapsed expiry or a missing subject all yield
// domain.ErrInvalidToken.
func ParseJWT(tokenStr, secret string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	})
	if err != nil || !token.Valid {
		return "", domain.ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}
