// Package memory holds the process-local stores used when no database is
// configured. Every store guards its maps with a sync.RWMutex and hands out
// copies, so concurrent handlers never share mutable state with the store.
package memory

import (
	"context"
	"sync"

	"github.com/healthtrack/records-api/internal/core/domain"
)

// CredentialStore keeps users by username plus a reverse token index.
type CredentialStore struct {
	mu      sync.RWMutex
	users   map[string]*domain.User
	byToken map[string]string
}

func NewCredentialStore() *CredentialStore {
	return &CredentialStore{
		users:   make(map[string]*domain.User),
		byToken: make(map[string]string),
	}
}

func (s *CredentialStore) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *CredentialStore) FindByToken(_ context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUserNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	username, ok := s.byToken[token]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *s.users[username]
	return &clone, nil
}

func (s *CredentialStore) SetToken(_ context.Context, username, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	if u.Token != "" {
		delete(s.byToken, u.Token)
	}
	u.Token = token
	if token != "" {
		s.byToken[token] = username
	}
	return nil
}

func (s *CredentialStore) Upsert(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.users[user.Username]; ok {
		existing.PasswordHash = user.PasswordHash
		existing.Role = user.Role
		return nil
	}
	clone := *user
	clone.Token = ""
	s.users[user.Username] = &clone
	return nil
}
