package models

import "time"

// RefreshToken is the single active session of a user. Only TokenHash is
// persisted; Token holds the raw value right after creation so it can be
// handed to the client once.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	TokenHash string
	Expires   time.Time
	CreatedAt time.Time
}

// ExpiredAt reports whether the token is expired at t. The expiry instant
// itself is still valid.
func (r *RefreshToken) ExpiredAt(t time.Time) bool {
	return r.Expires.Before(t)
}
