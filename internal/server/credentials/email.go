package credentials

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophauth/internal/failure"
)

const (
	emailMinLength = 6
	emailMaxLength = 60
)

// emailPattern accepts a conservative local part and a dotted domain with an
// alphabetic top-level label of 2 to 63 characters.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(?:[A-Za-z0-9-]+\.)+[A-Za-z]{2,63}$`)

// Email is a validated e-mail address.
type Email struct {
	value string
}

// NewEmail validates raw and returns it as an Email.
func NewEmail(raw string) (Email, error) {
	const field = "email"

	n := utf8.RuneCountInString(raw)
	switch {
	case strings.TrimSpace(raw) == "":
		return Email{}, failure.Empty(field)
	case n < emailMinLength:
		return Email{}, failure.TooShort(field, emailMinLength)
	case n > emailMaxLength:
		return Email{}, failure.TooLong(field, emailMaxLength)
	case !strings.Contains(raw, "@"):
		return Email{}, failure.MissingAtSymbol(field)
	case strings.Count(raw, "@") > 1, !emailPattern.MatchString(raw):
		return Email{}, failure.InvalidFormat(field)
	}

	return Email{value: raw}, nil
}

func (e Email) String() string { return e.value }

// IsZero reports whether e was not produced by NewEmail.
func (e Email) IsZero() bool { return e.value == "" }
