// Package users declares the server-side repository contract for user accounts.
package users

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// Repository stores user accounts. Lookups return common.ErrorNotFound when
// the row is absent; Create returns common.ErrorAlreadyExists when the
// (email, tenant) pair is taken.
type Repository interface {
	// Create inserts user and fills in ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByIDForUpdate is GetByID that also locks the row until the
	// surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*models.User, error)

	// GetByEmail looks an account up in the given tenant scope. An invalid
	// tenant means the host platform.
	GetByEmail(ctx context.Context, email string, tenant uuid.NullUUID) (*models.User, error)

	ExistsByEmail(ctx context.Context, email string, tenant uuid.NullUUID) (bool, error)

	// Update persists profile, role, password hash and status fields.
	Update(ctx context.Context, user *models.User) error

	// RecordLoginSuccess clears the failed attempt counter and stamps the login time.
	RecordLoginSuccess(ctx context.Context, id string, at time.Time) error

	// RecordLoginFailure increments the failed attempt counter and locks the
	// account once it reaches maxAttempts. It returns the new counter and lock state.
	RecordLoginFailure(ctx context.Context, id string, maxAttempts int) (int, bool, error)

	// SetLocked changes the lock state. Unlocking also clears the counter.
	SetLocked(ctx context.Context, id string, locked bool) error

	// Delete removes the account; its refresh token goes with it.
	Delete(ctx context.Context, id string) error
}
