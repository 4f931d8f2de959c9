package failure

// Sentinels for failures without parameters. Compare with errors.Is; never mutate.
var (
	InvalidCredentials   = &Failure{Code: CodeInvalidCredentials}
	InvalidToken         = &Failure{Code: CodeInvalidToken}
	RefreshTokenEmpty    = &Failure{Code: CodeRefreshTokenEmpty}
	RefreshTokenNotFound = &Failure{Code: CodeRefreshTokenNotFound}
	RefreshTokenExpired  = &Failure{Code: CodeRefreshTokenExpired}
	IDNotExists          = &Failure{Code: CodeIDNotExists}
	EmailAlreadyExists   = &Failure{Code: CodeEmailAlreadyExists}
	InsufficientRole     = &Failure{Code: CodeInsufficientRole}
	UserSuspended        = &Failure{Code: CodeUserSuspended}
	RoleNotFound         = &Failure{Code: CodeRoleNotFound}
)

func Empty(field string) *Failure {
	return &Failure{Code: CodeEmpty, Field: field}
}

func TooShort(field string, min int) *Failure {
	return &Failure{Code: CodeTooShort, Field: field, Limit: min}
}

func TooLong(field string, max int) *Failure {
	return &Failure{Code: CodeTooLong, Field: field, Limit: max}
}

func InvalidFormat(field string) *Failure {
	return &Failure{Code: CodeInvalidFormat, Field: field}
}

func MissingAtSymbol(field string) *Failure {
	return &Failure{Code: CodeMissingAtSymbol, Field: field}
}

// InsufficientComplexity aggregates every missing character class.
func InsufficientComplexity(field string, missing []Code) *Failure {
	return &Failure{Code: CodeInsufficientComplexity, Field: field, Missing: missing}
}

func RepeatingCharacters(field string) *Failure {
	return &Failure{Code: CodeRepeatingCharacters, Field: field}
}
