package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// UsersRepository implements users.Repository on a Store.
type UsersRepository struct {
	s *Store
}

func NewUsersRepository(s *Store) *UsersRepository {
	return &UsersRepository{s: s}
}

func (r *UsersRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.findByEmail(user.Email, user.TenantID) != nil {
		return nil, common.ErrorAlreadyExists
	}

	now := r.s.now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users[user.ID] = cloneUser(user)

	return user, nil
}

func (r *UsersRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneUser(u), nil
}

// GetByIDForUpdate is GetByID; row locking is subsumed by the manager's
// transaction mutex.
func (r *UsersRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.User, error) {
	return r.GetByID(ctx, id)
}

func (r *UsersRepository) GetByEmail(_ context.Context, email string, tenant uuid.NullUUID) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u := r.findByEmail(email, tenant)
	if u == nil {
		return nil, common.ErrorNotFound
	}
	return cloneUser(u), nil
}

func (r *UsersRepository) ExistsByEmail(_ context.Context, email string, tenant uuid.NullUUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.findByEmail(email, tenant) != nil, nil
}

func (r *UsersRepository) Update(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[user.ID]
	if !ok {
		return common.ErrorNotFound
	}

	c := cloneUser(user)
	c.Email = u.Email
	c.TenantID = u.TenantID
	c.CreatedAt = u.CreatedAt
	c.LastLoginAt = u.LastLoginAt
	c.UpdatedAt = r.s.now()
	r.s.users[user.ID] = c
	return nil
}

func (r *UsersRepository) RecordLoginSuccess(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.FailedAttempts = 0
	u.LastLoginAt = &at
	u.UpdatedAt = r.s.now()
	return nil
}

func (r *UsersRepository) RecordLoginFailure(_ context.Context, id string, maxAttempts int) (int, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return 0, false, common.ErrorNotFound
	}
	u.FailedAttempts++
	if u.FailedAttempts >= maxAttempts {
		u.Locked = true
	}
	u.UpdatedAt = r.s.now()
	return u.FailedAttempts, u.Locked, nil
}

func (r *UsersRepository) SetLocked(_ context.Context, id string, locked bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.Locked = locked
	if !locked {
		u.FailedAttempts = 0
	}
	u.UpdatedAt = r.s.now()
	return nil
}

// Delete removes the user and cascades to the user's refresh tokens.
func (r *UsersRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.users, id)
	for k, t := range r.s.tokens {
		if t.UserID == id {
			delete(r.s.tokens, k)
		}
	}
	return nil
}

// findByEmail must be called with mu held.
func (r *UsersRepository) findByEmail(email string, tenant uuid.NullUUID) *models.User {
	for _, u := range r.s.users {
		if u.Email == email && u.TenantID == tenant {
			return u
		}
	}
	return nil
}
