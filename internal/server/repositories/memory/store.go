// Package memory provides in-process implementations of the users and
// refresh token repositories. They enforce the same uniqueness rules as the
// PostgreSQL schema and are meant for development and tests.
package memory

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// Store holds all rows. Every repository method takes mu; transactions are
// layered on top with Snapshot and Restore.
type Store struct {
	mu     sync.RWMutex
	users  map[string]*models.User
	tokens map[string]*models.RefreshToken
	now    func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:  make(map[string]*models.User),
		tokens: make(map[string]*models.RefreshToken),
		now:    time.Now,
	}
}

// Snapshot is a deep copy of the store contents.
type Snapshot struct {
	users  map[string]*models.User
	tokens map[string]*models.RefreshToken
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		users:  make(map[string]*models.User, len(s.users)),
		tokens: make(map[string]*models.RefreshToken, len(s.tokens)),
	}
	for k, u := range s.users {
		snap.users[k] = cloneUser(u)
	}
	for k, t := range s.tokens {
		c := *t
		snap.tokens[k] = &c
	}
	return snap
}

// Restore replaces the store contents with snap.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = snap.users
	s.tokens = snap.tokens
}

func cloneUser(u *models.User) *models.User {
	c := *u
	if u.CompanyName != nil {
		v := *u.CompanyName
		c.CompanyName = &v
	}
	if u.LastLoginAt != nil {
		v := *u.LastLoginAt
		c.LastLoginAt = &v
	}
	return &c
}
