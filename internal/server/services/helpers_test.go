package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/credentials"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/roles"
)

const (
	testPassword      = "Str0ng!Pass"
	testRefreshTTL    = 7 * 24 * time.Hour
	testMaxAttempts   = 5
	testSigningSecret = "test-secret"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

type testEnv struct {
	manager *repomanager.MemoryRepositoryManager
	clock   *testClock
	hasher  auth.Hasher
	tokens  *RefreshTokenStore
	auth    *AuthService
	users   *UserService
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestEnv(t *testing.T, rotate bool) *testEnv {
	t.Helper()

	clock := &testClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	m := repomanager.NewMemoryRepositoryManager()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	signer, err := auth.NewSigner(auth.SignerConfig{
		Secret:         []byte(testSigningSecret),
		AccessTokenTTL: 15 * time.Minute,
		Issuer:         "gophauth",
		Now:            clock.Now,
	})
	require.NoError(t, err)

	tokens := NewRefreshTokenStore(m, testRefreshTTL, clock.Now)
	log := discardLogger()
	verifier := NewStoreCredentialVerifier(m, hasher, testMaxAttempts, log)

	return &testEnv{
		manager: m,
		clock:   clock,
		hasher:  hasher,
		tokens:  tokens,
		auth: NewAuthService(m, tokens, verifier, signer, hasher,
			AuthOptions{RotateRefreshOnUse: rotate, Now: clock.Now}, log),
		users: NewUserService(m, tokens, hasher, log),
	}
}

// seed stores an account directly, bypassing registration rules.
func (e *testEnv) seed(t *testing.T, email string, role roles.Role, tenant credentials.Tenant) *models.User {
	t.Helper()

	hash, err := e.hasher.Hash(testPassword)
	require.NoError(t, err)

	u, err := e.manager.Users(nil).Create(context.Background(), &models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Test",
		LastName:     "User",
		TenantID:     tenant.NullUUID(),
		Role:         role,
		Enabled:      true,
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) login(t *testing.T, email string, tenant credentials.Tenant) (*TokenPair, *auth.Claims) {
	t.Helper()

	pair, err := e.auth.Login(context.Background(), credentials.LoginRequest{
		Email:    email,
		Password: testPassword,
		TenantID: tenant.String(),
	})
	require.NoError(t, err)

	claims, err := e.auth.Authenticate(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	return pair, claims
}

// tokenCount counts the user's refresh tokens by deleting them inside a
// transaction that is then rolled back.
func (e *testEnv) tokenCount(t *testing.T, userID string) int64 {
	t.Helper()

	var n int64
	err := e.manager.WithTx(context.Background(), func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		if n, err = e.manager.RefreshTokens(tx).DeleteByUser(ctx, userID); err != nil {
			return err
		}
		return errRollback
	})
	require.ErrorIs(t, err, errRollback)
	return n
}

var errRollback = errors.New("rollback")

func scopedTenant() credentials.Tenant {
	return credentials.Scoped(uuid.New())
}

// corruptHash overwrites the stored password hash with something no hasher
// can parse.
func (e *testEnv) corruptHash(t *testing.T, u *models.User) {
	t.Helper()

	stored, err := e.manager.Users(nil).GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	stored.PasswordHash = "not-a-bcrypt-hash"
	require.NoError(t, e.manager.Users(nil).Update(context.Background(), stored))
}
