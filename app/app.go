// Package app wires the webtoon service: infrastructure components, the
// auth stack, and the HTTP routes.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kbukum/webtoon-api/account"
	"github.com/kbukum/webtoon-api/auth/password"
	"github.com/kbukum/webtoon-api/auth/token"
	"github.com/kbukum/webtoon-api/bootstrap"
	"github.com/kbukum/webtoon-api/database"
	"github.com/kbukum/webtoon-api/identity"
	"github.com/kbukum/webtoon-api/ratelimit"
	"github.com/kbukum/webtoon-api/redis"
	"github.com/kbukum/webtoon-api/server"
	"github.com/kbukum/webtoon-api/server/middleware"
	"github.com/kbukum/webtoon-api/webtoon"
)

// Service is the assembled webtoon service.
type Service struct {
	*bootstrap.App[*Config]

	server  *server.Server
	limiter *ratelimit.Limiter
	db      *database.Component
	redis   *redis.Component
}

// New builds the service from cfg. Nothing is started until Run or Start.
//
// Components start in this order: database, redis (when enabled), rate
// limiter; the HTTP server is registered and started after the routes are
// mounted.
func New(cfg *Config, opts ...bootstrap.Option) (*Service, error) {
	a, err := bootstrap.NewApp(cfg, opts...)
	if err != nil {
		return nil, err
	}
	s := &Service{App: a}

	s.db = database.NewComponent(cfg.Database, a.Logger).
		WithAutoMigrate(&webtoon.Webtoon{}, &identity.Record{})
	if err := a.RegisterComponent(s.db); err != nil {
		return nil, err
	}

	if cfg.Redis.Enabled {
		s.redis = redis.NewComponent(cfg.Redis, a.Logger)
		if err := a.RegisterComponent(s.redis); err != nil {
			return nil, err
		}
	}

	s.limiter = ratelimit.New(cfg.RateLimit)
	if err := a.RegisterComponent(ratelimit.NewComponent(s.limiter)); err != nil {
		return nil, err
	}

	s.server, err = server.New(cfg.Server, a.Logger)
	if err != nil {
		return nil, err
	}
	s.server.ApplyMiddleware(s.limiter)
	s.server.RegisterHealth(cfg.Name, a.Components.Report)

	a.OnConfigure(s.configure)
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Service) Handler() http.Handler {
	return s.server.Handler()
}

// Addr returns the address the HTTP server is bound to.
func (s *Service) Addr() string {
	return s.server.Addr()
}

// configure builds the auth stack on the started infrastructure, mounts
// the routes and registers the HTTP server.
func (s *Service) configure(_ context.Context, a *bootstrap.App[*Config]) error {
	cfg := a.Cfg

	tokens, err := token.NewService(cfg.Auth.Token)
	if err != nil {
		return err
	}
	store, err := s.identityStore(cfg.Identity)
	if err != nil {
		return err
	}
	accounts, err := account.NewService(store, password.NewHasher(cfg.Auth.Password), tokens, a.Logger)
	if err != nil {
		return err
	}

	engine := s.server.GinEngine()
	account.NewHandler(accounts).RegisterRoutes(engine)
	webtoon.NewHandler(webtoon.NewGormRepository(s.db.DB()), a.Logger).
		RegisterRoutes(engine, middleware.Auth(tokens))

	for _, r := range engine.Routes() {
		a.Summary.TrackRoute(r.Method, r.Path, r.Handler)
	}
	a.Logger.Info("Auth configured", map[string]interface{}{
		"auth":     cfg.Auth.Describe(),
		"identity": string(cfg.Identity.Backend),
	})

	return a.RegisterComponent(server.NewComponent(s.server))
}

func (s *Service) identityStore(cfg identity.Config) (identity.Store, error) {
	switch cfg.Backend {
	case identity.BackendMemory:
		return identity.NewMemoryStore(), nil
	case identity.BackendRedis:
		if s.redis == nil || s.redis.Client() == nil {
			return nil, fmt.Errorf("identity: redis backend selected but redis is not running")
		}
		return identity.NewRedisStore(s.redis.Client(), cfg.KeyPrefix), nil
	case identity.BackendDatabase:
		return identity.NewGormStore(s.db.DB()), nil
	default:
		return nil, fmt.Errorf("identity: unsupported backend %q", cfg.Backend)
	}
}
