package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/failure"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
)

// refreshTokenBytes is the entropy of a refresh token; it is sent as 64 hex chars.
const refreshTokenBytes = 32

// RefreshTokenStore manages the single refresh token each user may hold.
// Every method runs on the transaction handle it is given.
type RefreshTokenStore struct {
	repomanager repomanager.RepositoryManager
	validity    time.Duration
	now         func() time.Time
}

func NewRefreshTokenStore(m repomanager.RepositoryManager, validity time.Duration, now func() time.Time) *RefreshTokenStore {
	if now == nil {
		now = time.Now
	}
	return &RefreshTokenStore{repomanager: m, validity: validity, now: now}
}

// Rotate replaces the user's refresh token with a fresh one. The user row is
// locked first so concurrent rotations for the same user queue up; the
// unique index on refresh_tokens.user_id rejects anything that slips past.
// The returned token carries the raw value in Token.
func (s *RefreshTokenStore) Rotate(ctx context.Context, tx dbx.DBTX, userID string) (*models.RefreshToken, error) {
	if _, err := s.repomanager.Users(tx).GetByIDForUpdate(ctx, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, failure.IDNotExists
		}
		return nil, fmt.Errorf("lock user: %w", err)
	}

	repo := s.repomanager.RefreshTokens(tx)
	if _, err := repo.DeleteByUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("delete refresh tokens: %w", err)
	}

	raw, err := common.MakeRandHexString(refreshTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	token := &models.RefreshToken{
		UserID:    userID,
		Token:     raw,
		TokenHash: common.HashToken(raw),
		Expires:   s.now().Add(s.validity),
	}
	if err := repo.Create(ctx, token); err != nil {
		return nil, fmt.Errorf("create refresh token: %w", err)
	}
	return token, nil
}

// Lookup finds a token by its raw value.
func (s *RefreshTokenStore) Lookup(ctx context.Context, tx dbx.DBTX, raw string) (*models.RefreshToken, error) {
	token, err := s.repomanager.RefreshTokens(tx).Find(ctx, common.HashToken(raw))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, failure.RefreshTokenNotFound
		}
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	token.Token = raw
	return token, nil
}

// CheckNotExpired returns RefreshTokenExpired and deletes the token when its
// expiry lies before now. A token expiring exactly now is still valid.
func (s *RefreshTokenStore) CheckNotExpired(ctx context.Context, tx dbx.DBTX, token *models.RefreshToken) error {
	if !token.ExpiredAt(s.now()) {
		return nil
	}
	if err := s.repomanager.RefreshTokens(tx).Delete(ctx, token.ID); err != nil {
		return fmt.Errorf("delete expired refresh token: %w", err)
	}
	return failure.RefreshTokenExpired
}

// InvalidateAll deletes every token the user owns. Idempotent.
func (s *RefreshTokenStore) InvalidateAll(ctx context.Context, tx dbx.DBTX, userID string) error {
	if _, err := s.repomanager.RefreshTokens(tx).DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("delete refresh tokens: %w", err)
	}
	return nil
}

// InvalidateSession deletes the token with the given id only if the user
// still owns it, in one statement. A newer token issued by a concurrent
// login is left alone. Reports whether a token was deleted.
func (s *RefreshTokenStore) InvalidateSession(ctx context.Context, tx dbx.DBTX, userID, tokenID string) (bool, error) {
	ok, err := s.repomanager.RefreshTokens(tx).DeleteByUserAndID(ctx, userID, tokenID)
	if err != nil {
		return false, fmt.Errorf("delete refresh token: %w", err)
	}
	return ok, nil
}
