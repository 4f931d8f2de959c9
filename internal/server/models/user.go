package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophauth/internal/server/roles"
)

// User is a stored account. Email is unique per tenant; TenantID is NULL for
// accounts that belong to the host platform.
type User struct {
	ID             string
	Email          string
	PasswordHash   string
	FirstName      string
	LastName       string
	CompanyName    *string
	TenantID       uuid.NullUUID
	Role           roles.Role
	Enabled        bool
	Locked         bool
	FailedAttempts int
	CreatedAt      time.Time
	UpdatedAt      time.Time
	LastLoginAt    *time.Time
}

// Suspended reports whether the account may not obtain tokens.
func (u *User) Suspended() bool {
	return !u.Enabled || u.Locked
}
