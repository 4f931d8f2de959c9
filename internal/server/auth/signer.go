// Package auth issues and verifies access tokens and hashes passwords.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophauth/internal/failure"
	"github.com/dmitrijs2005/gophauth/internal/server/roles"
)

// DefaultAccessTokenTTL is used when SignerConfig.AccessTokenTTL is zero.
const DefaultAccessTokenTTL = 15 * time.Minute

// Claims is the access token payload. Subject carries the email.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string     `json:"uid"`
	TenantID  string     `json:"tid,omitempty"`
	Role      roles.Role `json:"role"`
	SessionID string     `json:"sid"`
}

// SignerConfig configures a Signer.
type SignerConfig struct {
	Secret         []byte
	AccessTokenTTL time.Duration
	Issuer         string
	// Now overrides the clock; tests only.
	Now func() time.Time
}

// Signer mints and verifies HS256 access tokens. It is immutable after
// construction and safe for concurrent use.
type Signer struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
	parser *jwt.Parser
}

var errEmptySecret = errors.New("signing secret must not be empty")

func NewSigner(cfg SignerConfig) (*Signer, error) {
	if len(cfg.Secret) == 0 {
		return nil, errEmptySecret
	}

	s := &Signer{
		secret: append([]byte(nil), cfg.Secret...),
		ttl:    cfg.AccessTokenTTL,
		issuer: cfg.Issuer,
		now:    cfg.Now,
	}
	if s.ttl <= 0 {
		s.ttl = DefaultAccessTokenTTL
	}
	if s.now == nil {
		s.now = time.Now
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	s.parser = jwt.NewParser(opts...)

	return s, nil
}

// TTL returns the access token lifetime.
func (s *Signer) TTL() time.Duration { return s.ttl }

// Issue signs c after stamping issuer, issued-at, expiry and a fresh token id.
func (s *Signer) Issue(c Claims) (string, error) {
	now := s.now()
	c.Issuer = s.issuer
	c.IssuedAt = jwt.NewNumericDate(now)
	c.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	c.ID = uuid.NewString()

	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

// Verify checks signature, algorithm and expiry. Every failure, including
// expiry, is reported as failure.InvalidToken.
func (s *Signer) Verify(token string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := s.parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, failure.InvalidToken
	}
	if claims.Subject == "" || claims.UserID == "" {
		return nil, failure.InvalidToken
	}

	return claims, nil
}

// ExtractSubject verifies token and returns its subject (the user's email).
func (s *Signer) ExtractSubject(token string) (string, error) {
	c, err := s.Verify(token)
	if err != nil {
		return "", err
	}
	return c.Subject, nil
}
