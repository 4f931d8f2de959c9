package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/failure"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/credentials"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
)

// CredentialVerifier checks a password for the account named by a composite
// key ("<email>::<tenant>"). Every rejection is failure.InvalidCredentials.
type CredentialVerifier interface {
	Verify(ctx context.Context, tx dbx.DBTX, compositeKey string, password credentials.Password) (*models.User, error)
}

// StoreCredentialVerifier verifies against the users repository. A wrong
// password counts as a failed attempt and locks the account once
// maxAttempts is reached; those writes happen on tx, so the caller must
// commit even when verification fails.
type StoreCredentialVerifier struct {
	repomanager repomanager.RepositoryManager
	hasher      auth.Hasher
	maxAttempts int
	log         logging.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewStoreCredentialVerifier(m repomanager.RepositoryManager, h auth.Hasher, maxAttempts int, l logging.Logger) *StoreCredentialVerifier {
	return &StoreCredentialVerifier{repomanager: m, hasher: h, maxAttempts: maxAttempts, log: l.With("module", "verifier")}
}

func (v *StoreCredentialVerifier) Verify(ctx context.Context, tx dbx.DBTX, compositeKey string, password credentials.Password) (*models.User, error) {
	email, tenant, err := credentials.ParseCompositeKey(compositeKey)
	if err != nil {
		return nil, failure.InvalidCredentials
	}

	users := v.repomanager.Users(tx)
	user, err := users.GetByEmail(ctx, email.String(), tenant.NullUUID())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			v.burnHash(password)
			return nil, failure.InvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if user.Suspended() {
		v.burnHash(password)
		return nil, failure.InvalidCredentials
	}

	ok, err := v.hasher.Verify(password.Value(), user.PasswordHash)
	if err != nil {
		v.log.Error(ctx, "stored password hash unusable", "user_id", user.ID, "error", err)
		return nil, failure.InvalidCredentials
	}
	if !ok {
		if _, _, err := users.RecordLoginFailure(ctx, user.ID, v.maxAttempts); err != nil {
			return nil, fmt.Errorf("record login failure: %w", err)
		}
		return nil, failure.InvalidCredentials
	}

	return user, nil
}

// burnHash spends the time of a real comparison so that unknown and
// suspended accounts are not told apart by latency.
func (v *StoreCredentialVerifier) burnHash(password credentials.Password) {
	v.dummyOnce.Do(func() {
		v.dummyHash, _ = v.hasher.Hash(string(common.GenerateRandByteArray(16)))
	})
	if v.dummyHash != "" {
		_, _ = v.hasher.Verify(password.Value(), v.dummyHash)
	}
}
