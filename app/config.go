package app

import (
	"errors"
	"fmt"

	"github.com/kbukum/webtoon-api/auth"
	"github.com/kbukum/webtoon-api/config"
	"github.com/kbukum/webtoon-api/database"
	"github.com/kbukum/webtoon-api/identity"
	"github.com/kbukum/webtoon-api/ratelimit"
	"github.com/kbukum/webtoon-api/redis"
	"github.com/kbukum/webtoon-api/server"
)

// ServiceName is the default service name.
const ServiceName = "webtoon-api"

// Config is the complete service configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server    server.Config    `yaml:"server" mapstructure:"server"`
	Auth      auth.Config      `yaml:"auth" mapstructure:"auth"`
	RateLimit ratelimit.Config `yaml:"rate_limit" mapstructure:"rate_limit"`
	Identity  identity.Config  `yaml:"identity" mapstructure:"identity"`
	Database  database.Config  `yaml:"database" mapstructure:"database"`
	Redis     redis.Config     `yaml:"redis" mapstructure:"redis"`
}

// ApplyDefaults fills in zero-value fields across every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = ServiceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Auth.ApplyDefaults()
	c.RateLimit.ApplyDefaults()
	c.Identity.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Redis.ApplyDefaults()
}

// Validate checks every section and the constraints between them.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.RateLimit.Validate(); err != nil {
		return fmt.Errorf("rate_limit: %w", err)
	}
	if err := c.Identity.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Redis.Validate(); err != nil {
		return fmt.Errorf("redis: %w", err)
	}

	if !c.Database.Enabled {
		return errors.New("database.enabled must be true: webtoon records are stored in the database")
	}
	if c.Identity.Backend == identity.BackendRedis && !c.Redis.Enabled {
		return errors.New("identity.backend=redis requires redis.enabled")
	}
	return nil
}
