// Package refreshtokens declares the server-side repository contract for
// managing refresh tokens in persistent storage.
package refreshtokens

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// Repository stores refresh tokens by their hash. A user owns at most one.
type Repository interface {
	// Create stores token and fills in ID and CreatedAt. A second token for
	// the same user violates the unique constraint and yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, token *models.RefreshToken) error

	// Find looks a token up by its hash. Returns common.ErrorNotFound when absent.
	Find(ctx context.Context, tokenHash string) (*models.RefreshToken, error)

	// Delete removes a token by id. Deleting a missing token is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteByUser removes every token owned by userID and reports how many went.
	DeleteByUser(ctx context.Context, userID string) (int64, error)

	// DeleteByUserAndID removes the token only if it is still owned by userID
	// and reports whether it did.
	DeleteByUserAndID(ctx context.Context, userID, id string) (bool, error)
}
