package store

import (
	"banking_api/internal/domain" // Importing domain models
	"context"                     // Context for store operations

	"github.com/shopspring/decimal" // Decimal money
)

// Store is the persistence boundary for users, accounts and the transaction
// ledger. Mutations that must stay consistent (balance update + ledger append)
// run inside WithinTx; the Store passed to the callback operates within that
// transaction.
type Store interface {
	// CreateUser persists a new user and assigns its ID.
	// Returns domain.ErrUsernameTaken when the username already exists.
	CreateUser(ctx context.Context, u *domain.User) error
	// UserByUsername returns the user with the given username,
	// or domain.ErrUserNotFound.
	UserByUsername(ctx context.Context, username string) (*domain.User, error)

	// CreateAccount persists a new account and assigns its ID.
	// Returns domain.ErrAccountExists when the owner already has one.
	CreateAccount(ctx context.Context, a *domain.Account) error
	// AccountByOwner returns the account owned by the given user,
	// or domain.ErrAccountNotFound.
	AccountByOwner(ctx context.Context, ownerID uint) (*domain.Account, error)
	// AddBalance increments an account balance by amount.
	AddBalance(ctx context.Context, accountID uint, amount decimal.Decimal) error
	// SubBalance decrements an account balance by amount only if the current
	// balance covers it; otherwise it returns domain.ErrInsufficientFunds and
	// leaves the row untouched. The check and the decrement are one atomic step.
	SubBalance(ctx context.Context, accountID uint, amount decimal.Decimal) error

	// CreateTransaction appends a ledger row.
	CreateTransaction(ctx context.Context, t *domain.Transaction) error
	// TransactionsByAccount returns the account's ledger in insertion order.
	TransactionsByAccount(ctx context.Context, accountID uint) ([]domain.Transaction, error)

	// WithinTx runs fn atomically: either every mutation made through the
	// callback Store persists, or none does.
	WithinTx(ctx context.Context, fn func(Store) error) error
}
