package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// RefreshTokensRepository implements refreshtokens.Repository on a Store.
type RefreshTokensRepository struct {
	s *Store
}

func NewRefreshTokensRepository(s *Store) *RefreshTokensRepository {
	return &RefreshTokensRepository{s: s}
}

func (r *RefreshTokensRepository) Create(_ context.Context, token *models.RefreshToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[token.UserID]; !ok {
		return common.ErrorNotFound
	}
	for _, t := range r.s.tokens {
		if t.UserID == token.UserID || t.TokenHash == token.TokenHash {
			return common.ErrorAlreadyExists
		}
	}

	token.ID = uuid.NewString()
	token.CreatedAt = r.s.now()

	stored := *token
	stored.Token = ""
	r.s.tokens[stored.ID] = &stored
	return nil
}

func (r *RefreshTokensRepository) Find(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, t := range r.s.tokens {
		if t.TokenHash == tokenHash {
			c := *t
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *RefreshTokensRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.tokens, id)
	return nil
}

func (r *RefreshTokensRepository) DeleteByUser(_ context.Context, userID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for k, t := range r.s.tokens {
		if t.UserID == userID {
			delete(r.s.tokens, k)
			n++
		}
	}
	return n, nil
}

func (r *RefreshTokensRepository) DeleteByUserAndID(_ context.Context, userID, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tokens[id]
	if !ok || t.UserID != userID {
		return false, nil
	}
	delete(r.s.tokens, id)
	return true, nil
}
