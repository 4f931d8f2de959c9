// Package services contains server-side business logic: the authentication
// use cases (AuthService) and privileged user administration (UserService),
// each run as one transaction through the repository manager.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/failure"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/credentials"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/roles"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthOptions tunes AuthService.
type AuthOptions struct {
	// RotateRefreshOnUse replaces the refresh token on every refresh. When
	// false the same refresh token is returned until it expires or the
	// next login replaces it.
	RotateRefreshOnUse bool
	// Now overrides the clock; tests only.
	Now func() time.Time
}

// AuthService orchestrates login, refresh, logout and registration.
type AuthService struct {
	repomanager repomanager.RepositoryManager
	tokens      *RefreshTokenStore
	verifier    CredentialVerifier
	signer      *auth.Signer
	hasher      auth.Hasher
	opts        AuthOptions
	log         logging.Logger
}

func NewAuthService(
	m repomanager.RepositoryManager,
	tokens *RefreshTokenStore,
	verifier CredentialVerifier,
	signer *auth.Signer,
	hasher auth.Hasher,
	opts AuthOptions,
	log logging.Logger,
) *AuthService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &AuthService{
		repomanager: m,
		tokens:      tokens,
		verifier:    verifier,
		signer:      signer,
		hasher:      hasher,
		opts:        opts,
		log:         log.With("module", "auth"),
	}
}

// Login verifies the credentials and issues a fresh token pair. Unknown
// accounts, wrong passwords and suspended accounts are all reported as
// failure.InvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req credentials.LoginRequest) (*TokenPair, error) {
	v, err := req.Validate()
	if err != nil {
		return nil, err
	}
	key := credentials.CompositeKey(v.Email, v.Tenant)

	var pair *TokenPair
	var rejected error
	err = s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.verifier.Verify(ctx, tx, key, v.Password)
		if err != nil {
			if _, ok := failure.As(err); ok {
				// commit the failed attempt counter
				rejected = err
				return nil
			}
			return err
		}

		token, err := s.tokens.Rotate(ctx, tx, user.ID)
		if err != nil {
			return err
		}

		access, err := s.mint(user, token.ID)
		if err != nil {
			return err
		}

		if err := s.repomanager.Users(tx).RecordLoginSuccess(ctx, user.ID, s.opts.Now()); err != nil {
			return fmt.Errorf("record login: %w", err)
		}

		pair = &TokenPair{AccessToken: access, RefreshToken: token.Token}
		return nil
	})
	if err != nil {
		return nil, s.internal(ctx, "login failed", err)
	}
	if rejected != nil {
		s.log.Info(ctx, "login rejected", "tenant", v.Tenant.String())
		return nil, rejected
	}
	return pair, nil
}

// Refresh exchanges a refresh token for a new access token minted from the
// owner's current record.
func (s *AuthService) Refresh(ctx context.Context, req credentials.RefreshRequest) (*TokenPair, error) {
	raw, err := req.Validate()
	if err != nil {
		return nil, err
	}

	var pair *TokenPair
	var rejected error
	err = s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		token, err := s.tokens.Lookup(ctx, tx, raw)
		if err != nil {
			return err
		}

		// the expired token is deleted, so this rejection must commit
		if err := s.tokens.CheckNotExpired(ctx, tx, token); err != nil {
			if _, ok := failure.As(err); ok {
				rejected = err
				return nil
			}
			return err
		}

		user, err := s.repomanager.Users(tx).GetByID(ctx, token.UserID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return failure.IDNotExists
			}
			return fmt.Errorf("load user: %w", err)
		}
		if user.Suspended() {
			return failure.UserSuspended
		}

		if s.opts.RotateRefreshOnUse {
			if token, err = s.tokens.Rotate(ctx, tx, user.ID); err != nil {
				return err
			}
		}

		access, err := s.mint(user, token.ID)
		if err != nil {
			return err
		}
		pair = &TokenPair{AccessToken: access, RefreshToken: token.Token}
		return nil
	})
	if err != nil {
		if _, ok := failure.As(err); ok {
			return nil, err
		}
		return nil, s.internal(ctx, "refresh failed", err)
	}
	if rejected != nil {
		return nil, rejected
	}
	return pair, nil
}

// Logout ends the session the access token belongs to. Logging out of a
// session that is already gone is not an error.
func (s *AuthService) Logout(ctx context.Context, caller *auth.Claims) error {
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := s.tokens.InvalidateSession(ctx, tx, caller.UserID, caller.SessionID)
		return err
	})
	if err != nil {
		return s.internal(ctx, "logout failed", err)
	}
	return nil
}

// Register creates an account. Anonymous callers always get ROLE_USER;
// any other role needs an authenticated caller allowed to assign it.
// caller may be nil.
func (s *AuthService) Register(ctx context.Context, caller *auth.Claims, req credentials.RegistrationRequest) (*models.User, error) {
	v, err := req.Validate()
	if err != nil {
		return nil, err
	}

	if v.Role != roles.User {
		if caller == nil {
			return nil, failure.InsufficientRole
		}
		if err := roles.RequireRoleAssignment(caller.Role, false, roles.User, v.Role); err != nil {
			return nil, err
		}
	}
	if caller != nil && caller.Role != roles.SuperAdmin && caller.TenantID != v.Tenant.String() {
		return nil, failure.InsufficientRole
	}

	hash, err := s.hasher.Hash(v.Password.Value())
	if err != nil {
		return nil, s.internal(ctx, "hash password", err)
	}

	user := &models.User{
		Email:        v.Email.String(),
		PasswordHash: hash,
		FirstName:    v.FirstName.String(),
		LastName:     v.LastName.String(),
		TenantID:     v.Tenant.NullUUID(),
		Role:         v.Role,
		Enabled:      true,
	}
	if v.CompanyName != nil {
		name := v.CompanyName.String()
		user.CompanyName = &name
	}

	err = s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		exists, err := repo.ExistsByEmail(ctx, user.Email, user.TenantID)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if exists {
			return failure.EmailAlreadyExists
		}

		if _, err := repo.Create(ctx, user); err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return failure.EmailAlreadyExists
			}
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		if _, ok := failure.As(err); ok {
			return nil, err
		}
		return nil, s.internal(ctx, "registration failed", err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Authenticate verifies an access token and returns its claims.
func (s *AuthService) Authenticate(_ context.Context, accessToken string) (*auth.Claims, error) {
	return s.signer.Verify(accessToken)
}

func (s *AuthService) mint(user *models.User, sessionID string) (string, error) {
	claims := auth.Claims{
		UserID:    user.ID,
		TenantID:  credentials.TenantFromNullUUID(user.TenantID).String(),
		Role:      user.Role,
		SessionID: sessionID,
	}
	claims.Subject = user.Email

	token, err := s.signer.Issue(claims)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return token, nil
}

func (s *AuthService) internal(ctx context.Context, msg string, err error) error {
	return internalError(ctx, s.log, msg, err)
}
