package store

import (
	"banking_api/internal/domain" // Importing domain models
	"context"                     // Context for store operations
	"errors"                      // Error matching

	"github.com/shopspring/decimal" // Decimal money
	"gorm.io/gorm"                  // GORM ORM library
)

// GormStore implements Store on top of a GORM database handle.
// Open the handle with gorm.Config{TranslateError: true} so duplicate-key
// violations surface as gorm.ErrDuplicatedKey.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps a GORM handle in a Store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// CreateUser persists a new user, mapping the unique-index violation on
// username to domain.ErrUsernameTaken.
func (s *GormStore) CreateUser(ctx context.Context, u *domain.User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrUsernameTaken
		}
		return err
	}
	return nil
}

// UserByUsername looks a user up by username.
func (s *GormStore) UserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateAccount persists a new account, mapping the unique-index violation on
// owner_id to domain.ErrAccountExists so callers can fall back to a lookup.
func (s *GormStore) CreateAccount(ctx context.Context, a *domain.Account) error {
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAccountExists
		}
		return err
	}
	return nil
}

// AccountByOwner looks an account up by its owner.
func (s *GormStore) AccountByOwner(ctx context.Context, ownerID uint) (*domain.Account, error) {
	var account domain.Account
	if err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// AddBalance increments the balance in place.
func (s *GormStore) AddBalance(ctx context.Context, accountID uint, amount decimal.Decimal) error {
	return s.db.WithContext(ctx).Model(&domain.Account{}).
		Where("id = ?", accountID).
		Update("balance", gorm.Expr("balance + ?", amount)).Error
}

// SubBalance decrements the balance with the sufficient-funds check folded
// into the UPDATE itself: zero affected rows means the balance did not cover
// the amount. Two concurrent withdrawals therefore cannot both pass the check
// against a stale balance.
func (s *GormStore) SubBalance(ctx context.Context, accountID uint, amount decimal.Decimal) error {
	res := s.db.WithContext(ctx).Model(&domain.Account{}).
		Where("id = ? AND balance >= ?", accountID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInsufficientFunds
	}
	return nil
}

// CreateTransaction appends a ledger row.
func (s *GormStore) CreateTransaction(ctx context.Context, t *domain.Transaction) error {
	return s.db.WithContext(ctx).Create(t).Error
}

// TransactionsByAccount returns the ledger oldest-first.
func (s *GormStore) TransactionsByAccount(ctx context.Context, accountID uint) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	err := s.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("id asc").
		Find(&transactions).Error
	return transactions, err
}

// WithinTx runs fn inside a database transaction; any error rolls back.
func (s *GormStore) WithinTx(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}
