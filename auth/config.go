package auth

import (
	"fmt"

	"github.com/kbukum/webtoon-api/auth/password"
	"github.com/kbukum/webtoon-api/auth/token"
)

// Config holds all authentication configuration.
type Config struct {
	// Token configures bearer token signing and lifetime.
	Token token.Config `mapstructure:"token"`

	// Password configures password hashing.
	Password password.Config `mapstructure:"password"`
}

// ApplyDefaults sets defaults for both sub-configurations.
func (c *Config) ApplyDefaults() {
	c.Token.ApplyDefaults()
	c.Password.ApplyDefaults()
}

// Validate checks both sub-configurations.
func (c *Config) Validate() error {
	if err := c.Token.Validate(); err != nil {
		return fmt.Errorf("auth.token: %w", err)
	}
	if err := c.Password.Validate(); err != nil {
		return fmt.Errorf("auth.password: %w", err)
	}
	return nil
}

// Describe returns a human-readable one-liner for the startup log.
// Example: "token=HS256 ttl=1h0m0s password=bcrypt(10)"
func (c *Config) Describe() string {
	line := fmt.Sprintf("token=%s ttl=%s password=%s", c.Token.Method, c.Token.TTL, c.Password.Algorithm)
	if c.Password.Algorithm == password.AlgorithmBcrypt {
		line += fmt.Sprintf("(%d)", c.Password.BcryptCost)
	}
	return line
}
