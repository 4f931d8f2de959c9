// Package failure defines the typed failure values returned by every use case
// of the service. A failure is an ordinary error carrying a stable Code that
// transport layers translate into client-facing responses, plus enough detail
// (field, length limit, missing character classes) to build a human message.
//
// Failures never wrap infrastructure errors: anything that is not a *Failure
// is treated as internal by the boundary.
package failure

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a stable, machine-checkable failure identifier.
type Code string

// Credential shape.
const (
	CodeEmpty                  Code = "EMPTY"
	CodeTooShort               Code = "TOO_SHORT"
	CodeTooLong                Code = "TOO_LONG"
	CodeInvalidFormat          Code = "INVALID_FORMAT"
	CodeMissingAtSymbol        Code = "MISSING_AT_SYMBOL"
	CodeInsufficientComplexity Code = "INSUFFICIENT_COMPLEXITY"
	CodeRepeatingCharacters    Code = "REPEATING_CHARACTERS"
)

// Password complexity sub-codes, aggregated inside InsufficientComplexity.
const (
	CodeMissingUppercase   Code = "MISSING_UPPERCASE"
	CodeMissingLowercase   Code = "MISSING_LOWERCASE"
	CodeMissingDigit       Code = "MISSING_DIGIT"
	CodeMissingSpecialChar Code = "MISSING_SPECIAL_CHAR"
)

// Authentication, tokens, identity, authorization and roles.
const (
	CodeInvalidCredentials   Code = "INVALID_CREDENTIALS"
	CodeInvalidToken         Code = "INVALID_TOKEN"
	CodeRefreshTokenEmpty    Code = "REFRESH_TOKEN_EMPTY"
	CodeRefreshTokenNotFound Code = "REFRESH_TOKEN_NOT_FOUND"
	CodeRefreshTokenExpired  Code = "REFRESH_TOKEN_EXPIRED"
	CodeIDNotExists          Code = "ID_NOT_EXISTS"
	CodeEmailAlreadyExists   Code = "EMAIL_ALREADY_EXISTS"
	CodeInsufficientRole     Code = "INSUFFICIENT_ROLE"
	CodeUserSuspended        Code = "USER_SUSPENDED"
	CodeRoleNotFound         Code = "ROLE_NOT_FOUND"
)

// Codes lists every top-level failure code a use case can return.
// Complexity sub-codes are not included: they only appear in Failure.Missing.
func Codes() []Code {
	return []Code{
		CodeEmpty, CodeTooShort, CodeTooLong, CodeInvalidFormat, CodeMissingAtSymbol,
		CodeInsufficientComplexity, CodeRepeatingCharacters,
		CodeInvalidCredentials, CodeInvalidToken,
		CodeRefreshTokenEmpty, CodeRefreshTokenNotFound, CodeRefreshTokenExpired,
		CodeIDNotExists, CodeEmailAlreadyExists,
		CodeInsufficientRole, CodeUserSuspended,
		CodeRoleNotFound,
	}
}

// Failure is a typed, expected failure of a use case.
type Failure struct {
	Code Code
	// Field names the input field a shape failure refers to ("email", "password", ...).
	Field string
	// Limit is the bound that was violated for TooShort / TooLong.
	Limit int
	// Missing lists the complexity sub-codes for InsufficientComplexity.
	Missing []Code
}

// Error returns the human readable message for the failure.
func (f *Failure) Error() string {
	subject := fieldLabel(f.Field)

	switch f.Code {
	case CodeEmpty:
		return subject + " cannot be empty"
	case CodeTooShort:
		return fmt.Sprintf("%s is too short (minimum length: %d)", subject, f.Limit)
	case CodeTooLong:
		return fmt.Sprintf("%s is too long (maximum length: %d)", subject, f.Limit)
	case CodeInvalidFormat:
		return subject + " format is invalid"
	case CodeMissingAtSymbol:
		return subject + " must contain '@' symbol"
	case CodeInsufficientComplexity:
		missing := make([]string, 0, len(f.Missing))
		for _, m := range f.Missing {
			missing = append(missing, complexityText(m))
		}
		return subject + " must contain " + strings.Join(missing, ", ")
	case CodeRepeatingCharacters:
		return subject + " cannot contain three or more repeating characters"
	case CodeInvalidCredentials:
		return "Invalid email or password"
	case CodeInvalidToken:
		return "Access token is invalid or expired"
	case CodeRefreshTokenEmpty:
		return "Refresh token cannot be empty"
	case CodeRefreshTokenNotFound:
		return "Refresh token not found"
	case CodeRefreshTokenExpired:
		return "Refresh token has expired, please log in again"
	case CodeIDNotExists:
		return "User with this id does not exist"
	case CodeEmailAlreadyExists:
		return "User with this email already exists"
	case CodeInsufficientRole:
		return "Insufficient role for this operation"
	case CodeUserSuspended:
		return "User account has been suspended"
	case CodeRoleNotFound:
		return "Role not found"
	}
	return string(f.Code)
}

// Is reports whether target is a *Failure with the same code. A target with a
// non-empty Field must match the field too.
func (f *Failure) Is(target error) bool {
	t, ok := target.(*Failure)
	if !ok {
		return false
	}
	if t.Code != f.Code {
		return false
	}
	return t.Field == "" || t.Field == f.Field
}

// As extracts the *Failure from err, if there is one.
func As(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

func fieldLabel(field string) string {
	switch field {
	case "":
		return "Value"
	case "firstName":
		return "First name"
	case "lastName":
		return "Last name"
	case "companyName":
		return "Company name"
	default:
		return strings.ToUpper(field[:1]) + field[1:]
	}
}

func complexityText(c Code) string {
	switch c {
	case CodeMissingUppercase:
		return "at least one uppercase letter"
	case CodeMissingLowercase:
		return "at least one lowercase letter"
	case CodeMissingDigit:
		return "at least one digit"
	case CodeMissingSpecialChar:
		return "at least one special character"
	}
	return string(c)
}
