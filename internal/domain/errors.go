package domain

import "errors"

var (
	// ErrUsernameTaken indicates a registration attempt with an existing username.
	ErrUsernameTaken = errors.New("username already registered")
	// ErrInvalidCredentials indicates a failed username/password check.
	ErrInvalidCredentials = errors.New("incorrect username or password")
	// ErrInvalidToken indicates a missing, malformed, tampered or expired bearer token.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUserNotFound indicates that no user exists for a username.
	ErrUserNotFound = errors.New("user not found")
	// ErrAccountNotFound indicates that the caller has no account yet.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountExists indicates that the owner already has an account;
	// seen when concurrent first deposits race on the lazy creation.
	ErrAccountExists = errors.New("account already exists")
	// ErrInsufficientFunds indicates a withdrawal exceeding the current balance,
	// or a withdrawal against a non-existent account.
	ErrInsufficientFunds = errors.New("insufficient balance")
	// ErrInvalidAmount indicates a non-positive deposit or withdrawal amount.
	ErrInvalidAmount = errors.New("amount must be positive")
)
