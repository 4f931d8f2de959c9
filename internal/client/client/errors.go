package client

import (
	"errors"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/failure"
)

// ErrUnavailable and ErrUnauthorized are the shared sentinels from package
// common, so callers may match either name.
var (
	ErrUnavailable  = common.ErrorUnavailable
	ErrUnauthorized = common.ErrorUnauthorized
	ErrNotLoggedIn  = errors.New("not logged in")
)

// ServerError is a rejected call whose failure code the server reported.
type ServerError struct {
	Code    failure.Code
	Message string
}

func (e *ServerError) Error() string { return e.Message }

// Is matches ErrUnauthorized for authentication failures and any
// *failure.Failure with the same code.
func (e *ServerError) Is(target error) bool {
	if target == ErrUnauthorized {
		switch e.Code {
		case failure.CodeInvalidCredentials, failure.CodeInvalidToken,
			failure.CodeRefreshTokenNotFound, failure.CodeRefreshTokenExpired:
			return true
		}
		return false
	}
	if f, ok := target.(*failure.Failure); ok {
		return f.Code == e.Code
	}
	return false
}
