package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/roles"
)

func newUser(email string, tenant uuid.NullUUID) *models.User {
	return &models.User{
		Email: email, PasswordHash: "h", FirstName: "Al", LastName: "Ice",
		TenantID: tenant, Role: roles.User, Enabled: true,
	}
}

func TestUsers_EmailUniquePerTenant(t *testing.T) {
	ctx := context.Background()
	repo := NewUsersRepository(NewStore())

	host := uuid.NullUUID{}
	tenant := uuid.NullUUID{UUID: uuid.New(), Valid: true}

	_, err := repo.Create(ctx, newUser("a@example.com", host))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newUser("a@example.com", tenant))
	require.NoError(t, err, "same email in another tenant is a separate identity")

	_, err = repo.Create(ctx, newUser("a@example.com", host))
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	got, err := repo.GetByEmail(ctx, "a@example.com", tenant)
	require.NoError(t, err)
	assert.Equal(t, tenant, got.TenantID)

	ok, err := repo.ExistsByEmail(ctx, "b@example.com", host)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUsers_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewUsersRepository(NewStore())

	u, err := repo.Create(ctx, newUser("a@example.com", uuid.NullUUID{}))
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	got.Role = roles.SuperAdmin

	again, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, roles.User, again.Role)
}

func TestUsers_LoginCounters(t *testing.T) {
	ctx := context.Background()
	repo := NewUsersRepository(NewStore())

	u, err := repo.Create(ctx, newUser("a@example.com", uuid.NullUUID{}))
	require.NoError(t, err)

	for i := 1; i < 3; i++ {
		n, locked, err := repo.RecordLoginFailure(ctx, u.ID, 3)
		require.NoError(t, err)
		assert.Equal(t, i, n)
		assert.False(t, locked)
	}
	n, locked, err := repo.RecordLoginFailure(ctx, u.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.True(t, locked)

	require.NoError(t, repo.SetLocked(ctx, u.ID, false))
	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.Locked)
	assert.Zero(t, got.FailedAttempts)

	at := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.RecordLoginSuccess(ctx, u.ID, at))
	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginAt)
	assert.True(t, got.LastLoginAt.Equal(at))

	_, _, err = repo.RecordLoginFailure(ctx, "ghost", 3)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestRefreshTokens_OnePerUser(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	users := NewUsersRepository(store)
	tokens := NewRefreshTokensRepository(store)

	u, err := users.Create(ctx, newUser("a@example.com", uuid.NullUUID{}))
	require.NoError(t, err)

	first := &models.RefreshToken{UserID: u.ID, Token: "raw", TokenHash: "h1", Expires: time.Now().Add(time.Hour)}
	require.NoError(t, tokens.Create(ctx, first))
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "raw", first.Token, "caller keeps the raw value")

	stored, err := tokens.Find(ctx, "h1")
	require.NoError(t, err)
	assert.Empty(t, stored.Token, "raw value is not stored")

	err = tokens.Create(ctx, &models.RefreshToken{UserID: u.ID, TokenHash: "h2"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	ok, err := tokens.DeleteByUserAndID(ctx, "other", first.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = tokens.DeleteByUserAndID(ctx, u.ID, first.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = tokens.Find(ctx, "h1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDeleteUser_CascadesTokens(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	users := NewUsersRepository(store)
	tokens := NewRefreshTokensRepository(store)

	u, err := users.Create(ctx, newUser("a@example.com", uuid.NullUUID{}))
	require.NoError(t, err)
	require.NoError(t, tokens.Create(ctx, &models.RefreshToken{UserID: u.ID, TokenHash: "h1"}))

	require.NoError(t, users.Delete(ctx, u.ID))
	_, err = tokens.Find(ctx, "h1")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	assert.ErrorIs(t, users.Delete(ctx, u.ID), common.ErrorNotFound)
}

func TestSnapshotRestore(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	users := NewUsersRepository(store)

	u, err := users.Create(ctx, newUser("a@example.com", uuid.NullUUID{}))
	require.NoError(t, err)

	snap := store.Snapshot()
	require.NoError(t, users.SetLocked(ctx, u.ID, true))
	_, err = users.Create(ctx, newUser("b@example.com", uuid.NullUUID{}))
	require.NoError(t, err)

	store.Restore(snap)

	got, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.Locked)
	ok, err := users.ExistsByEmail(ctx, "b@example.com", uuid.NullUUID{})
	require.NoError(t, err)
	assert.False(t, ok)
}
