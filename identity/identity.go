// Package identity stores registered users and their password hashes.
//
// Usernames are unique and compared byte for byte (no case folding).
// Every Store implementation performs the duplicate check and the insert
// as one atomic step, so concurrent registrations of the same username
// can never both succeed.
package identity

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrDuplicate is returned by Register when the username is taken.
	ErrDuplicate = errors.New("identity: username already registered")

	// ErrNotFound is returned by FindByUsername when no identity exists.
	ErrNotFound = errors.New("identity: not found")
)

// Identity is a registered user. It is never mutated after creation.
type Identity struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}

// Store holds identities.
type Store interface {
	// Register inserts a new identity, failing with ErrDuplicate if the
	// username already exists.
	Register(ctx context.Context, username, passwordHash string) (Identity, error)

	// FindByUsername returns the identity for username or ErrNotFound.
	FindByUsername(ctx context.Context, username string) (Identity, error)
}

// Backend names a Store implementation.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendRedis    Backend = "redis"
	BackendDatabase Backend = "database"
)

// Config selects and configures the identity store.
type Config struct {
	// Backend is memory, redis or database (default: memory).
	Backend Backend `mapstructure:"backend"`

	// KeyPrefix namespaces redis keys (default: "identity").
	KeyPrefix string `mapstructure:"key_prefix"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Backend == "" {
		c.Backend = BackendMemory
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = "identity"
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendRedis, BackendDatabase:
		return nil
	default:
		return fmt.Errorf("identity: unsupported backend %q", c.Backend)
	}
}
