package identity

import (
	"context"
	"fmt"

	"github.com/kbukum/webtoon-api/redis"
)

// RedisStore keeps each identity as a JSON value under <prefix>:<username>.
// Registration uses SETNX, which checks and writes in one command.
type RedisStore struct {
	store *redis.TypedStore[Identity]
}

// NewRedisStore creates a RedisStore on client with the given key prefix.
func NewRedisStore(client *redis.Client, keyPrefix string) *RedisStore {
	return &RedisStore{store: redis.NewTypedStore[Identity](client, keyPrefix)}
}

func (s *RedisStore) Register(ctx context.Context, username, passwordHash string) (Identity, error) {
	id := Identity{Username: username, PasswordHash: passwordHash}
	stored, err := s.store.SaveIfAbsent(ctx, username, &id, 0)
	if err != nil {
		return Identity{}, fmt.Errorf("identity: register: %w", err)
	}
	if !stored {
		return Identity{}, ErrDuplicate
	}
	return id, nil
}

func (s *RedisStore) FindByUsername(ctx context.Context, username string) (Identity, error) {
	id, err := s.store.Load(ctx, username)
	if err != nil {
		return Identity{}, fmt.Errorf("identity: find: %w", err)
	}
	if id == nil {
		return Identity{}, ErrNotFound
	}
	return *id, nil
}
