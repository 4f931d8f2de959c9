// Package roles holds the three-tier role hierarchy and the authorization
// gate consulted before an identity's data is changed by someone else.
package roles

import (
	"github.com/dmitrijs2005/gophauth/internal/failure"
)

// Role is an authorization tier. Tiers are totally ordered:
// User < Admin < SuperAdmin.
type Role string

const (
	User       Role = "ROLE_USER"
	Admin      Role = "ROLE_ADMIN"
	SuperAdmin Role = "ROLE_SUPER_ADMIN"
)

// All lists the valid roles in ascending order.
var All = []Role{User, Admin, SuperAdmin}

func (r Role) rank() int {
	switch r {
	case User:
		return 1
	case Admin:
		return 2
	case SuperAdmin:
		return 3
	}
	return 0
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool { return r.rank() > 0 }

// AtLeast reports whether r is at or above other in the hierarchy.
// Unknown roles are below everything.
func (r Role) AtLeast(other Role) bool {
	return r.Valid() && r.rank() >= other.rank()
}

// Above reports whether r is strictly above other.
func (r Role) Above(other Role) bool {
	return r.Valid() && r.rank() > other.rank()
}

func (r Role) String() string { return string(r) }

// Parse converts a role name into a Role. Unknown names yield RoleNotFound.
func Parse(name string) (Role, error) {
	r := Role(name)
	if !r.Valid() {
		return "", failure.RoleNotFound
	}
	return r, nil
}
