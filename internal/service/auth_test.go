package service

import (
	"banking_api/internal/domain"
	"banking_api/internal/store"
	"banking_api/internal/utils"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T) (*AuthService, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	return NewAuthService(st, "test-secret", 30*time.Minute), st
}

func TestRegister_HashesPassword(t *testing.T) {
	t.Parallel()

	svc, st := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)

	stored, err := st.UserByUsername(ctx, "alice")
	require.NoError(t, err)
	// Never the raw password; the hash must verify against it.
	assert.NotEqual(t, "pw1", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("pw1")))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()

	svc, st := newAuthFixture(t)
	ctx := context.Background()

	first, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other")
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	// The first user's record is unaffected.
	stored, err := st.UserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("pw1")))
}

func TestLogin_IssuesValidToken(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "alice", "pw1")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestLogin_BadCredentials(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// Unknown username is indistinguishable from a wrong password.
	_, err = svc.Login(ctx, "nobody", "pw1")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	t.Parallel()

	st := store.NewMemoryStore()
	svc := NewAuthService(st, "test-secret", -1*time.Second)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "alice", "pw1")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestAuthenticate_UnknownSubject(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthFixture(t)

	// A well-signed token whose subject was removed out-of-band must not
	// authenticate.
	token, err := utils.GenerateJWT("ghost", "test-secret", time.Hour)
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestAuthenticate_TamperedToken(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	token, err := utils.GenerateJWT("alice", "other-secret", time.Hour)
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
