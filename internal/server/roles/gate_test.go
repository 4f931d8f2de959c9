package roles

import (
	"testing"

	"github.com/dmitrijs2005/gophauth/internal/failure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, r := range All {
		got, err := Parse(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	_, err := Parse("ROLE_GOD")
	assert.ErrorIs(t, err, failure.RoleNotFound)

	_, err = Parse("")
	assert.ErrorIs(t, err, failure.RoleNotFound)
}

func TestOrdering(t *testing.T) {
	assert.True(t, SuperAdmin.Above(Admin))
	assert.True(t, Admin.Above(User))
	assert.False(t, User.Above(User))
	assert.True(t, User.AtLeast(User))
	assert.False(t, Role("bogus").AtLeast(User))
}

func TestIsPrivilegedOperationAllowed(t *testing.T) {
	tests := []struct {
		name   string
		caller Role
		self   bool
		target Role
		want   bool
	}{
		{"user on self", User, true, User, true},
		{"admin on self", Admin, true, Admin, true},
		{"user on other user", User, false, User, false},
		{"admin on user", Admin, false, User, true},
		{"admin on admin", Admin, false, Admin, false},
		{"admin on super admin", Admin, false, SuperAdmin, false},
		{"super admin on admin", SuperAdmin, false, Admin, true},
		{"super admin on super admin", SuperAdmin, false, SuperAdmin, false},
		{"unknown caller", Role(""), false, User, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPrivilegedOperationAllowed(tt.caller, tt.self, tt.target))
		})
	}
}

func TestCanAssignRole(t *testing.T) {
	tests := []struct {
		name      string
		caller    Role
		self      bool
		current   Role
		requested Role
		want      bool
	}{
		{"user promotes other to admin", User, false, User, Admin, false},
		{"user promotes self", User, true, User, Admin, false},
		{"super admin promotes other to admin", SuperAdmin, false, User, Admin, true},
		{"admin promotes user to admin", Admin, false, User, Admin, true},
		{"admin grants super admin", Admin, false, User, SuperAdmin, false},
		{"super admin grants super admin", SuperAdmin, false, Admin, SuperAdmin, true},
		{"admin demotes admin", Admin, false, Admin, User, false},
		{"admin demotes self", Admin, true, Admin, User, true},
		{"super admin demotes super admin", SuperAdmin, false, SuperAdmin, Admin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAssignRole(tt.caller, tt.self, tt.current, tt.requested))
		})
	}
}

func TestRequireHelpers(t *testing.T) {
	assert.ErrorIs(t, RequireRoleAssignment(User, false, User, Admin), failure.InsufficientRole)
	assert.NoError(t, RequireRoleAssignment(SuperAdmin, false, User, Admin))

	assert.ErrorIs(t, RequirePrivilegedOperation(Admin, false, Admin), failure.InsufficientRole)
	assert.NoError(t, RequirePrivilegedOperation(User, true, User))
}
