package common

import "errors"

// Infrastructure-level errors. Domain failures live in package failure;
// callers should use errors.Is to match these values.
var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Client-side transport errors.
	ErrorUnavailable = errors.New("server unavailable")
)
