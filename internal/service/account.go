package service

import (
	"banking_api/internal/domain" // Importing domain models
	"banking_api/internal/store"  // Persistence boundary
	"context"                     // Context for store operations
	"errors"                      // Error matching

	"github.com/shopspring/decimal" // Decimal money
	"github.com/sirupsen/logrus"    // Logging library
)

// AccountService implements deposits, withdrawals and ledger queries for the
// caller's single account. Every mutation updates the balance and appends the
// matching ledger row inside one store transaction, keeping the invariant
// balance == sum(ledger amounts) at all times.
type AccountService struct {
	store store.Store
}

// NewAccountService wires an AccountService to a store.
func NewAccountService(s store.Store) *AccountService {
	return &AccountService{store: s}
}

// Deposit credits amount to the user's account, creating the account with a
// zero balance on the first deposit. Non-positive amounts are rejected with
// domain.ErrInvalidAmount. Returns the updated account.
func (s *AccountService) Deposit(ctx context.Context, user *domain.User, amount decimal.Decimal) (*domain.Account, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	var account *domain.Account
	err := s.store.WithinTx(ctx, func(tx store.Store) error {
		a, err := tx.AccountByOwner(ctx, user.ID)
		if errors.Is(err, domain.ErrAccountNotFound) {
			// First deposit creates the account. A concurrent first deposit
			// may win the creation race; fall back to its account.
			a = &domain.Account{OwnerID: user.ID, Balance: decimal.Zero}
			if err := tx.CreateAccount(ctx, a); errors.Is(err, domain.ErrAccountExists) {
				if a, err = tx.AccountByOwner(ctx, user.ID); err != nil {
					return err
				}
			} else if err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		if err := tx.AddBalance(ctx, a.ID, amount); err != nil {
			return err
		}
		if err := tx.CreateTransaction(ctx, &domain.Transaction{AccountID: a.ID, Amount: amount}); err != nil {
			return err
		}
		a.Balance = a.Balance.Add(amount)
		account = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":    user.ID,         // User ID
		"account_id": account.ID,      // Account ID
		"amount":     amount.String(), // Deposit amount
		"type":       "deposit",       // Transaction type
	}).Info("Deposit transaction") // Log deposit
	return account, nil
}

// Withdraw debits amount from the user's account. A missing account or a
// balance below amount fails with domain.ErrInsufficientFunds and leaves both
// balance and ledger untouched. Non-positive amounts are rejected with
// domain.ErrInvalidAmount. Returns the updated account.
func (s *AccountService) Withdraw(ctx context.Context, user *domain.User, amount decimal.Decimal) (*domain.Account, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	var account *domain.Account
	err := s.store.WithinTx(ctx, func(tx store.Store) error {
		a, err := tx.AccountByOwner(ctx, user.ID)
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrInsufficientFunds
		} else if err != nil {
			return err
		}
		// The funds check happens inside SubBalance, atomically with the
		// decrement, so concurrent withdrawals cannot jointly overdraw.
		if err := tx.SubBalance(ctx, a.ID, amount); err != nil {
			return err
		}
		if err := tx.CreateTransaction(ctx, &domain.Transaction{AccountID: a.ID, Amount: amount.Neg()}); err != nil {
			return err
		}
		a.Balance = a.Balance.Sub(amount)
		account = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":    user.ID,         // User ID
		"account_id": account.ID,      // Account ID
		"amount":     amount.String(), // Withdrawal amount
		"type":       "withdraw",      // Transaction type
	}).Info("Withdraw transaction") // Log withdrawal
	return account, nil
}

// Balance returns the user's account, or domain.ErrAccountNotFound when no
// deposit has ever been made.
func (s *AccountService) Balance(ctx context.Context, user *domain.User) (*domain.Account, error) {
	return s.store.AccountByOwner(ctx, user.ID)
}

// History returns the user's ledger in insertion order (oldest first), or
// domain.ErrAccountNotFound when no account exists.
func (s *AccountService) History(ctx context.Context, user *domain.User) ([]domain.Transaction, error) {
	account, err := s.store.AccountByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.store.TransactionsByAccount(ctx, account.ID)
}
