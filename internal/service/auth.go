package service

import (
	"banking_api/internal/domain" // Importing domain models
	"banking_api/internal/store"  // Persistence boundary
	"banking_api/internal/utils"  // JWT helpers
	"context"                     // Context for store operations
	"errors"                      // Error matching
	"time"                        // Token validity duration

	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// AuthService handles registration, credential checks and token resolution.
// It is the only component that ever sees a raw password, and it never logs
// or returns one.
type AuthService struct {
	store    store.Store
	secret   string
	tokenTTL time.Duration
}

// NewAuthService wires an AuthService to a store and the JWT signing secret.
func NewAuthService(s store.Store, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{store: s, secret: secret, tokenTTL: tokenTTL}
}

// Register creates a user with a bcrypt-hashed password.
// Returns domain.ErrUsernameTaken when the username already exists; the
// existing user's record is untouched in that case.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	// Friendly pre-check; the store's unique index is the backstop for races.
	if _, err := s.store.UserByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{Username: username, Password: string(hash)}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":  user.ID,       // New user ID
		"username": user.Username, // Username
	}).Info("User registered") // Log registration
	return user, nil
}

// Login verifies the credentials and issues a signed bearer token.
// Unknown username and wrong password are indistinguishable to the caller:
// both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	return utils.GenerateJWT(user.Username, s.secret, s.tokenTTL)
}

// Authenticate resolves a bearer token to the user it was issued for.
// An invalid token, or a token whose subject no longer exists (user removed
// out-of-band), yields domain.ErrInvalidToken.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	username, err := utils.ParseJWT(token, s.secret)
	if err != nil {
		return nil, err
	}
	user, err := s.store.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}
