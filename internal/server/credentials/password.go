package credentials

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophauth/internal/failure"
)

const (
	passwordMinLength = 8
	// passwordMaxLength matches the bcrypt input limit.
	passwordMaxLength = 72
	maxRepeatedRun    = 2
)

// SpecialCharacters is the set a password must draw at least one symbol from.
const SpecialCharacters = "!@#$%^&*()_+-=[]{}|;:'\",.<>/?`~\\"

// Password is a validated raw password. It is never persisted; only its hash is.
type Password struct {
	value string
}

// NewPassword validates raw against the length, complexity and repetition rules.
func NewPassword(raw string) (Password, error) {
	const field = "password"

	n := utf8.RuneCountInString(raw)
	switch {
	case strings.TrimSpace(raw) == "":
		return Password{}, failure.Empty(field)
	case n < passwordMinLength:
		return Password{}, failure.TooShort(field, passwordMinLength)
	case n > passwordMaxLength:
		return Password{}, failure.TooLong(field, passwordMaxLength)
	}

	if missing := missingClasses(raw); len(missing) > 0 {
		return Password{}, failure.InsufficientComplexity(field, missing)
	}

	if hasRepeatedRun(raw) {
		return Password{}, failure.RepeatingCharacters(field)
	}

	return Password{value: raw}, nil
}

// Value returns the raw password for hashing or verification.
func (p Password) Value() string { return p.value }

// String masks the password so it never ends up in logs by accident.
func (p Password) String() string { return "********" }

func missingClasses(s string) []failure.Code {
	var upper, lower, digit, special bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(SpecialCharacters, r):
			special = true
		}
	}

	var missing []failure.Code
	if !upper {
		missing = append(missing, failure.CodeMissingUppercase)
	}
	if !lower {
		missing = append(missing, failure.CodeMissingLowercase)
	}
	if !digit {
		missing = append(missing, failure.CodeMissingDigit)
	}
	if !special {
		missing = append(missing, failure.CodeMissingSpecialChar)
	}
	return missing
}

// hasRepeatedRun reports a run of more than maxRepeatedRun identical runes.
func hasRepeatedRun(s string) bool {
	var prev rune
	run := 0
	for i, r := range s {
		if i > 0 && r == prev {
			run++
		} else {
			run = 1
		}
		if run > maxRepeatedRun {
			return true
		}
		prev = r
	}
	return false
}
