package credentials

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophauth/internal/failure"
)

const (
	nameMinLength        = 2
	nameMaxLength        = 50
	companyNameMinLength = 2
	companyNameMaxLength = 100
)

// Name is a validated first or last name.
type Name struct {
	value string
}

// NewName validates a person name for the given field ("firstName", "lastName").
func NewName(field, raw string) (Name, error) {
	if err := checkBoundedText(field, raw, nameMinLength, nameMaxLength, isNameRune); err != nil {
		return Name{}, err
	}
	return Name{value: raw}, nil
}

func (n Name) String() string { return n.value }

// CompanyName is a validated organization name.
type CompanyName struct {
	value string
}

// NewCompanyName validates an organization name.
func NewCompanyName(raw string) (CompanyName, error) {
	if err := checkBoundedText("companyName", raw, companyNameMinLength, companyNameMaxLength, isCompanyNameRune); err != nil {
		return CompanyName{}, err
	}
	return CompanyName{value: raw}, nil
}

func (c CompanyName) String() string { return c.value }

func checkBoundedText(field, raw string, min, max int, allowed func(rune) bool) error {
	n := utf8.RuneCountInString(raw)
	switch {
	case strings.TrimSpace(raw) == "":
		return failure.Empty(field)
	case n < min:
		return failure.TooShort(field, min)
	case n > max:
		return failure.TooLong(field, max)
	}
	for _, r := range raw {
		if !allowed(r) {
			return failure.InvalidFormat(field)
		}
	}
	return nil
}

func isNameRune(r rune) bool {
	return unicode.IsLetter(r) || r == ' ' || r == '-' || r == '\''
}

func isCompanyNameRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	return strings.ContainsRune(" -'&.,@", r)
}
