package rpc

import "time"

type Empty struct{}

type RegisterRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"companyName,omitempty"`
	Role        string `json:"role,omitempty"`
	TenantID    string `json:"tenantId,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TenantID string `json:"tenantId,omitempty"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenResponse is returned by Login and Refresh. ExpiresIn is the access
// token lifetime in seconds.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// User is the public view of an account. The password hash never leaves the server.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	CompanyName *string    `json:"companyName,omitempty"`
	TenantID    string     `json:"tenantId,omitempty"`
	Role        string     `json:"role"`
	Enabled     bool       `json:"enabled"`
	Locked      bool       `json:"locked"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

type UserRequest struct {
	ID string `json:"id"`
}

// UpdateUserRequest changes only the fields that are present.
type UpdateUserRequest struct {
	ID          string  `json:"id"`
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	CompanyName *string `json:"companyName,omitempty"`
	Role        *string `json:"role,omitempty"`
}

type ChangePasswordRequest struct {
	ID              string `json:"id"`
	CurrentPassword string `json:"currentPassword,omitempty"`
	NewPassword     string `json:"newPassword"`
}

type SetUserLockedRequest struct {
	ID     string `json:"id"`
	Locked bool   `json:"locked"`
}
