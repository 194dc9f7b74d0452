package ratelimit

import (
	"fmt"
	"time"
)

const (
	// DefaultMaxRequests is the per-key ceiling within one window.
	DefaultMaxRequests = 100
	// DefaultWindow is the length of a counting window.
	DefaultWindow = 15 * time.Minute
	// DefaultShards is the number of independently locked key partitions.
	DefaultShards = 32
)

// Config configures the limiter.
type Config struct {
	// MaxRequests is the number of requests admitted per key per window.
	MaxRequests int `mapstructure:"max_requests"`

	// Window is the length of a counting window.
	Window time.Duration `mapstructure:"window"`

	// CleanupInterval is how often idle entries are dropped (default: Window).
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`

	// Shards is the number of key partitions (default: 32).
	Shards int `mapstructure:"shards"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.MaxRequests == 0 {
		c.MaxRequests = DefaultMaxRequests
	}
	if c.Window == 0 {
		c.Window = DefaultWindow
	}
	if c.CleanupInterval == 0 {
		c.CleanupInterval = c.Window
	}
	if c.Shards == 0 {
		c.Shards = DefaultShards
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.MaxRequests < 0 {
		return fmt.Errorf("ratelimit: max_requests must be positive (got: %d)", c.MaxRequests)
	}
	if c.Window < 0 {
		return fmt.Errorf("ratelimit: window must be positive (got: %s)", c.Window)
	}
	if c.CleanupInterval < 0 {
		return fmt.Errorf("ratelimit: cleanup_interval must be positive (got: %s)", c.CleanupInterval)
	}
	if c.Shards < 0 {
		return fmt.Errorf("ratelimit: shards must be positive (got: %d)", c.Shards)
	}
	return nil
}
