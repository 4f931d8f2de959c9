package credentials

import (
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophauth/internal/failure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPassword(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantCode failure.Code
	}{
		{"ok", "Aab1!@#w", ""},
		{"ok long", "Correct-Horse-Battery-9", ""},
		{"blank", "        ", failure.CodeEmpty},
		{"too short", "Ab1!", failure.CodeTooShort},
		{"too long", "Aa1!" + strings.Repeat("xy", 35), failure.CodeTooLong},
		{"complexity", "password", failure.CodeInsufficientComplexity},
		{"repeating", "Aaa1!bcd", failure.CodeRepeatingCharacters},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPassword(tt.raw)
			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.raw, p.Value())
				return
			}
			f, ok := failure.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, f.Code)
			assert.Equal(t, "password", f.Field)
		})
	}
}

func TestNewPassword_CollectsAllMissingClasses(t *testing.T) {
	_, err := NewPassword("password")
	f, ok := failure.As(err)
	require.True(t, ok)
	assert.Equal(t, []failure.Code{
		failure.CodeMissingUppercase,
		failure.CodeMissingDigit,
		failure.CodeMissingSpecialChar,
	}, f.Missing)
}

func TestNewPassword_ComplexityBeforeRepetition(t *testing.T) {
	_, err := NewPassword("aaaaaaaa")
	assert.ErrorIs(t, err, failure.InsufficientComplexity("password", nil))
}

func TestNewPassword_LengthInRunes(t *testing.T) {
	// seven runes, more than eight bytes
	_, err := NewPassword("Ää1!öüß")
	assert.ErrorIs(t, err, failure.TooShort("password", 8))
}

func TestPassword_StringIsMasked(t *testing.T) {
	p, err := NewPassword("Aab1!@#w")
	require.NoError(t, err)
	assert.NotContains(t, p.String(), "Aab1")
}
