package identity

import (
	"context"
	"sync"
)

// MemoryStore is a process-local Store guarded by a single mutex. The lock
// is held only for the map operation itself.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]Identity
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]Identity)}
}

func (s *MemoryStore) Register(_ context.Context, username, passwordHash string) (Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		return Identity{}, ErrDuplicate
	}
	id := Identity{Username: username, PasswordHash: passwordHash}
	s.users[username] = id
	return id, nil
}

func (s *MemoryStore) FindByUsername(_ context.Context, username string) (Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.users[username]
	if !ok {
		return Identity{}, ErrNotFound
	}
	return id, nil
}

// Len returns the number of registered identities.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
