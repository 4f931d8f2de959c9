package credentials

import (
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/failure"
	"github.com/dmitrijs2005/gophauth/internal/server/roles"
)

// LoginRequest is the raw login input.
type LoginRequest struct {
	Email    string
	Password string
	TenantID string
}

// ValidatedLogin is a login request whose fields passed validation.
type ValidatedLogin struct {
	Email    Email
	Password Password
	Tenant   Tenant
}

// Validate checks email, password and tenant in that order.
func (r LoginRequest) Validate() (ValidatedLogin, error) {
	email, err := NewEmail(r.Email)
	if err != nil {
		return ValidatedLogin{}, err
	}
	password, err := NewPassword(r.Password)
	if err != nil {
		return ValidatedLogin{}, err
	}
	tenant, err := ParseTenant(r.TenantID)
	if err != nil {
		return ValidatedLogin{}, err
	}
	return ValidatedLogin{Email: email, Password: password, Tenant: tenant}, nil
}

// RegistrationRequest is the raw registration input. CompanyName and Role are optional.
type RegistrationRequest struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	CompanyName string
	Role        string
	TenantID    string
}

// ValidatedRegistration holds a registration that passed validation.
type ValidatedRegistration struct {
	FirstName   Name
	LastName    Name
	Email       Email
	Password    Password
	CompanyName *CompanyName
	Role        roles.Role
	Tenant      Tenant
}

// Validate returns the first failing field in the order firstName, lastName,
// email, password, companyName, role, tenantId. A blank role means ROLE_USER.
func (r RegistrationRequest) Validate() (ValidatedRegistration, error) {
	var v ValidatedRegistration
	var err error

	if v.FirstName, err = NewName("firstName", r.FirstName); err != nil {
		return ValidatedRegistration{}, err
	}
	if v.LastName, err = NewName("lastName", r.LastName); err != nil {
		return ValidatedRegistration{}, err
	}
	if v.Email, err = NewEmail(r.Email); err != nil {
		return ValidatedRegistration{}, err
	}
	if v.Password, err = NewPassword(r.Password); err != nil {
		return ValidatedRegistration{}, err
	}
	if r.CompanyName != "" {
		company, err := NewCompanyName(r.CompanyName)
		if err != nil {
			return ValidatedRegistration{}, err
		}
		v.CompanyName = &company
	}

	v.Role = roles.User
	if strings.TrimSpace(r.Role) != "" {
		if v.Role, err = roles.Parse(r.Role); err != nil {
			return ValidatedRegistration{}, err
		}
	}

	if v.Tenant, err = ParseTenant(r.TenantID); err != nil {
		return ValidatedRegistration{}, err
	}
	return v, nil
}

// RefreshRequest carries the opaque refresh token.
type RefreshRequest struct {
	RefreshToken string
}

// Validate rejects a blank token.
func (r RefreshRequest) Validate() (string, error) {
	token := strings.TrimSpace(r.RefreshToken)
	if token == "" {
		return "", failure.RefreshTokenEmpty
	}
	return token, nil
}

// ChangePasswordRequest carries the current and the new password.
// CurrentPassword is required only when the caller changes their own password.
type ChangePasswordRequest struct {
	CurrentPassword string
	NewPassword     string
}

// ValidatedChangePassword holds a validated password change.
type ValidatedChangePassword struct {
	// Current is the raw current password; it is verified against the stored
	// hash rather than shape-checked, so accounts created under older rules
	// can still rotate.
	Current string
	New     Password
}

// Validate checks the new password.
func (r ChangePasswordRequest) Validate() (ValidatedChangePassword, error) {
	p, err := NewPassword(r.NewPassword)
	if err != nil {
		return ValidatedChangePassword{}, err
	}
	return ValidatedChangePassword{Current: r.CurrentPassword, New: p}, nil
}

// UpdateUserRequest is a partial profile update; nil fields are left untouched.
type UpdateUserRequest struct {
	FirstName   *string
	LastName    *string
	CompanyName *string
	Role        *string
}

// ValidatedUpdate is an UpdateUserRequest that passed validation.
type ValidatedUpdate struct {
	FirstName   *Name
	LastName    *Name
	CompanyName *CompanyName
	Role        *roles.Role
}

// Validate checks supplied fields in the order firstName, lastName, companyName, role.
func (r UpdateUserRequest) Validate() (ValidatedUpdate, error) {
	var v ValidatedUpdate

	if r.FirstName != nil {
		n, err := NewName("firstName", *r.FirstName)
		if err != nil {
			return ValidatedUpdate{}, err
		}
		v.FirstName = &n
	}
	if r.LastName != nil {
		n, err := NewName("lastName", *r.LastName)
		if err != nil {
			return ValidatedUpdate{}, err
		}
		v.LastName = &n
	}
	if r.CompanyName != nil {
		c, err := NewCompanyName(*r.CompanyName)
		if err != nil {
			return ValidatedUpdate{}, err
		}
		v.CompanyName = &c
	}
	if r.Role != nil {
		role, err := roles.Parse(*r.Role)
		if err != nil {
			return ValidatedUpdate{}, err
		}
		v.Role = &role
	}
	return v, nil
}

// IsEmpty reports whether the update changes nothing.
func (v ValidatedUpdate) IsEmpty() bool {
	return v.FirstName == nil && v.LastName == nil && v.CompanyName == nil && v.Role == nil
}
