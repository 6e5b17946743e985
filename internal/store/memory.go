package store

import (
	"banking_api/internal/domain" // Importing domain models
	"context"                     // Context for store operations
	"sync"                        // Mutex serializing all state changes
	"time"                        // Ledger timestamps

	"github.com/shopspring/decimal" // Decimal money
)

// MemoryStore is an in-memory Store. A single mutex serializes every
// operation, so the sufficient-funds check and the balance decrement can
// never interleave; WithinTx holds the mutex for the whole callback.
// Returned records are copies, callers cannot mutate internal state.
type MemoryStore struct {
	mu           sync.Mutex
	users        map[uint]*domain.User
	usersByName  map[string]uint
	accounts     map[uint]*domain.Account
	acctByOwner  map[uint]uint
	transactions []domain.Transaction
	nextUser     uint
	nextAccount  uint
	nextTx       uint
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:       make(map[uint]*domain.User),
		usersByName: make(map[string]uint),
		accounts:    make(map[uint]*domain.Account),
		acctByOwner: make(map[uint]uint),
	}
}

func (s *MemoryStore) createUser(u *domain.User) error {
	if _, ok := s.usersByName[u.Username]; ok {
		return domain.ErrUsernameTaken
	}
	s.nextUser++
	u.ID = s.nextUser
	cp := *u
	s.users[u.ID] = &cp
	s.usersByName[u.Username] = u.ID
	return nil
}

func (s *MemoryStore) userByUsername(username string) (*domain.User, error) {
	id, ok := s.usersByName[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *s.users[id]
	return &cp, nil
}

func (s *MemoryStore) createAccount(a *domain.Account) error {
	if _, ok := s.acctByOwner[a.OwnerID]; ok {
		return domain.ErrAccountExists
	}
	s.nextAccount++
	a.ID = s.nextAccount
	cp := *a
	s.accounts[a.ID] = &cp
	s.acctByOwner[a.OwnerID] = a.ID
	return nil
}

func (s *MemoryStore) accountByOwner(ownerID uint) (*domain.Account, error) {
	id, ok := s.acctByOwner[ownerID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	cp := *s.accounts[id]
	return &cp, nil
}

func (s *MemoryStore) addBalance(accountID uint, amount decimal.Decimal) error {
	a, ok := s.accounts[accountID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

func (s *MemoryStore) subBalance(accountID uint, amount decimal.Decimal) error {
	a, ok := s.accounts[accountID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if a.Balance.LessThan(amount) {
		return domain.ErrInsufficientFunds
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}

func (s *MemoryStore) createTransaction(t *domain.Transaction) error {
	s.nextTx++
	t.ID = s.nextTx
	t.CreatedAt = time.Now().UnixMilli()
	s.transactions = append(s.transactions, *t)
	return nil
}

func (s *MemoryStore) transactionsByAccount(accountID uint) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, t := range s.transactions {
		if t.AccountID == accountID {
			out = append(out, t)
		}
	}
	return out, nil
}

// CreateUser persists a new user.
func (s *MemoryStore) CreateUser(ctx context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createUser(u)
}

// UserByUsername looks a user up by username.
func (s *MemoryStore) UserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userByUsername(username)
}

// CreateAccount persists a new account.
func (s *MemoryStore) CreateAccount(ctx context.Context, a *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createAccount(a)
}

// AccountByOwner looks an account up by its owner.
func (s *MemoryStore) AccountByOwner(ctx context.Context, ownerID uint) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accountByOwner(ownerID)
}

// AddBalance increments an account balance.
func (s *MemoryStore) AddBalance(ctx context.Context, accountID uint, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addBalance(accountID, amount)
}

// SubBalance decrements an account balance if it covers the amount.
func (s *MemoryStore) SubBalance(ctx context.Context, accountID uint, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subBalance(accountID, amount)
}

// CreateTransaction appends a ledger row.
func (s *MemoryStore) CreateTransaction(ctx context.Context, t *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createTransaction(t)
}

// TransactionsByAccount returns the ledger in insertion order.
func (s *MemoryStore) TransactionsByAccount(ctx context.Context, accountID uint) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transactionsByAccount(accountID)
}

// snapshot captures the full store state so a failed transaction can be
// rolled back. Record structs are copied, not aliased.
func (s *MemoryStore) snapshot() *MemoryStore {
	cp := &MemoryStore{
		users:        make(map[uint]*domain.User, len(s.users)),
		usersByName:  make(map[string]uint, len(s.usersByName)),
		accounts:     make(map[uint]*domain.Account, len(s.accounts)),
		acctByOwner:  make(map[uint]uint, len(s.acctByOwner)),
		transactions: append([]domain.Transaction(nil), s.transactions...),
		nextUser:     s.nextUser,
		nextAccount:  s.nextAccount,
		nextTx:       s.nextTx,
	}
	for id, u := range s.users {
		v := *u
		cp.users[id] = &v
	}
	for name, id := range s.usersByName {
		cp.usersByName[name] = id
	}
	for id, a := range s.accounts {
		v := *a
		cp.accounts[id] = &v
	}
	for owner, id := range s.acctByOwner {
		cp.acctByOwner[owner] = id
	}
	return cp
}

func (s *MemoryStore) restore(snap *MemoryStore) {
	s.users = snap.users
	s.usersByName = snap.usersByName
	s.accounts = snap.accounts
	s.acctByOwner = snap.acctByOwner
	s.transactions = snap.transactions
	s.nextUser = snap.nextUser
	s.nextAccount = snap.nextAccount
	s.nextTx = snap.nextTx
}

// WithinTx holds the mutex across fn, serializing the whole unit against
// every other store operation; a callback error restores the pre-transaction
// state, so partial writes never persist. The callback store must not be
// retained.
func (s *MemoryStore) WithinTx(ctx context.Context, fn func(Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshot()
	if err := fn(memTx{s: s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// memTx is the view handed to WithinTx callbacks: same state, no locking,
// because the caller already holds the mutex.
type memTx struct {
	s *MemoryStore
}

func (t memTx) CreateUser(ctx context.Context, u *domain.User) error { return t.s.createUser(u) }
func (t memTx) UserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return t.s.userByUsername(username)
}
func (t memTx) CreateAccount(ctx context.Context, a *domain.Account) error {
	return t.s.createAccount(a)
}
func (t memTx) AccountByOwner(ctx context.Context, ownerID uint) (*domain.Account, error) {
	return t.s.accountByOwner(ownerID)
}
func (t memTx) AddBalance(ctx context.Context, accountID uint, amount decimal.Decimal) error {
	return t.s.addBalance(accountID, amount)
}
func (t memTx) SubBalance(ctx context.Context, accountID uint, amount decimal.Decimal) error {
	return t.s.subBalance(accountID, amount)
}
func (t memTx) CreateTransaction(ctx context.Context, tx *domain.Transaction) error {
	return t.s.createTransaction(tx)
}
func (t memTx) TransactionsByAccount(ctx context.Context, accountID uint) ([]domain.Transaction, error) {
	return t.s.transactionsByAccount(accountID)
}
func (t memTx) WithinTx(ctx context.Context, fn func(Store) error) error { return fn(t) }
