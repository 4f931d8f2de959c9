package credentials

import (
	"testing"

	"github.com/dmitrijs2005/gophauth/internal/failure"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTenant(t *testing.T) {
	host, err := ParseTenant("")
	require.NoError(t, err)
	assert.True(t, host.IsHost())
	assert.False(t, host.NullUUID().Valid)

	id := uuid.New()
	scoped, err := ParseTenant(id.String())
	require.NoError(t, err)
	got, ok := scoped.ID()
	assert.True(t, ok)
	assert.Equal(t, id, got)
	assert.Equal(t, id.String(), scoped.String())

	_, err = ParseTenant("not-a-uuid")
	assert.ErrorIs(t, err, failure.InvalidFormat("tenantId"))
}

func TestTenantFromNullUUID(t *testing.T) {
	assert.Equal(t, Host(), TenantFromNullUUID(uuid.NullUUID{}))

	id := uuid.New()
	assert.Equal(t, Scoped(id), TenantFromNullUUID(uuid.NullUUID{UUID: id, Valid: true}))
}

func TestCompositeKey(t *testing.T) {
	email, err := NewEmail("alice@example.com")
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com::HOST_PLATFORM", CompositeKey(email, Host()))

	id := uuid.MustParse("6f1c2a4e-3b7d-4e8f-9a0b-1c2d3e4f5a6b")
	key := CompositeKey(email, Scoped(id))
	assert.Equal(t, "alice@example.com::6f1c2a4e-3b7d-4e8f-9a0b-1c2d3e4f5a6b", key)

	gotEmail, gotTenant, err := ParseCompositeKey(key)
	require.NoError(t, err)
	assert.Equal(t, email, gotEmail)
	assert.Equal(t, Scoped(id), gotTenant)

	gotEmail, gotTenant, err = ParseCompositeKey("alice@example.com::HOST_PLATFORM")
	require.NoError(t, err)
	assert.Equal(t, email, gotEmail)
	assert.True(t, gotTenant.IsHost())
}

func TestParseCompositeKey_Invalid(t *testing.T) {
	for _, key := range []string{"alice@example.com", "alice@example.com::", "alice@example.com::nope"} {
		_, _, err := ParseCompositeKey(key)
		assert.Error(t, err, key)
	}
}
