package identity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/webtoon-api/database/testutil"
	"github.com/kbukum/webtoon-api/logger"
	"github.com/kbukum/webtoon-api/redis"
)

type storeFactory func(t *testing.T) Store

func backends() map[string]storeFactory {
	return map[string]storeFactory{
		"memory": func(t *testing.T) Store { return NewMemoryStore() },
		"redis": func(t *testing.T) Store {
			mini := miniredis.RunT(t)
			client, err := redis.New(redis.Config{Enabled: true, Addr: mini.Addr()}, logger.NewNop())
			require.NoError(t, err)
			t.Cleanup(func() { _ = client.Close() })
			return NewRedisStore(client, "identity")
		},
		"database": func(t *testing.T) Store {
			return NewGormStore(testutil.NewDB(t, &Record{}))
		},
	}
}

func TestStore_RegisterAndFind(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)
			ctx := context.Background()

			id, err := s.Register(ctx, "alice", "hash-1")
			require.NoError(t, err)
			assert.Equal(t, Identity{Username: "alice", PasswordHash: "hash-1"}, id)

			got, err := s.FindByUsername(ctx, "alice")
			require.NoError(t, err)
			assert.Equal(t, id, got)
		})
	}
}

func TestStore_DuplicateRejectedRegardlessOfHash(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)
			ctx := context.Background()

			_, err := s.Register(ctx, "alice", "hash-1")
			require.NoError(t, err)

			_, err = s.Register(ctx, "alice", "hash-2")
			assert.ErrorIs(t, err, ErrDuplicate)

			got, err := s.FindByUsername(ctx, "alice")
			require.NoError(t, err)
			assert.Equal(t, "hash-1", got.PasswordHash, "failed registration must not modify the store")
		})
	}
}

func TestStore_FindMissing(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			_, err := newStore(t).FindByUsername(context.Background(), "nobody")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_ExactMatchUsernames(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)
			ctx := context.Background()

			_, err := s.Register(ctx, "Alice", "h1")
			require.NoError(t, err)
			_, err = s.Register(ctx, "alice", "h2")
			require.NoError(t, err, "usernames differing only in case are distinct")

			_, err = s.FindByUsername(ctx, "ALICE")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_ConcurrentDuplicateRegistration(t *testing.T) {
	for name, newStore := range backends() {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)
			ctx := context.Background()

			const attempts = 32
			var ok, dup atomic.Int32
			var wg sync.WaitGroup
			for i := 0; i < attempts; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, err := s.Register(ctx, "racer", fmt.Sprintf("hash-%d", i))
					switch {
					case err == nil:
						ok.Add(1)
					case errors.Is(err, ErrDuplicate):
						dup.Add(1)
					default:
						t.Errorf("unexpected error: %v", err)
					}
				}(i)
			}
			wg.Wait()

			assert.Equal(t, int32(1), ok.Load())
			assert.Equal(t, int32(attempts-1), dup.Load())
		})
	}
}

func TestConfig(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, BackendMemory, cfg.Backend)

	assert.Error(t, (&Config{Backend: "etcd"}).Validate())
}
