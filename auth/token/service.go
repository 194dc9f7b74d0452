// Package token issues and verifies signed, time-limited bearer tokens.
//
// Tokens are HMAC-signed JWTs carrying the subject (username), issue time,
// expiry and a unique id. Nothing is stored server side: a token is valid
// when its signature checks out and the current time is before its expiry.
//
// Every verification failure is reported as ErrInvalidToken so callers
// cannot tell a malformed token from a forged or expired one.
package token

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned by Verify for any token that is not accepted.
var ErrInvalidToken = errors.New("token: invalid token")

// Claims is the payload of an issued token.
//
// The registered "exp" claim has whole-second precision, rounded up. ExpiresAtNano
// carries the exact expiry, and Verify enforces it.
type Claims struct {
	gojwt.RegisteredClaims
	ExpiresAtNano int64 `json:"exp_nano"`
}

// Expiry returns the exact instant the token stops being accepted.
func (c *Claims) Expiry() time.Time {
	return time.Unix(0, c.ExpiresAtNano)
}

// Service issues and verifies tokens. It is safe for concurrent use; its
// key and settings never change after construction.
type Service struct {
	method gojwt.SigningMethod
	key    []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
	parser *gojwt.Parser
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a token service from configuration.
func NewService(cfg Config, opts ...Option) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("token: %w", err)
	}

	s := &Service{
		method: cfg.signingMethod(),
		key:    []byte(cfg.Secret),
		ttl:    cfg.TTL,
		issuer: cfg.Issuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	parserOpts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{s.method.Alg()}),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		parserOpts = append(parserOpts, gojwt.WithIssuer(s.issuer))
	}
	s.parser = gojwt.NewParser(parserOpts...)

	return s, nil
}

// TTL returns the lifetime of issued tokens.
func (s *Service) TTL() time.Duration { return s.ttl }

// Issue creates a signed token for subject, valid until now + TTL.
func (s *Service) Issue(subject string) (string, error) {
	if subject == "" {
		return "", errors.New("token: subject is required")
	}
	now := s.now()
	expiry := now.Add(s.ttl)
	claims := &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(ceilSecond(expiry)),
		},
		ExpiresAtNano: expiry.UnixNano(),
	}

	signed, err := gojwt.NewWithClaims(s.method, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify checks the token's signature and expiry and returns its claims. A
// token issued at T is accepted for every instant in [T, T+TTL).
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := s.parser.ParseWithClaims(tokenString, claims, s.keyFunc)
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.ExpiresAtNano == 0 {
		return nil, ErrInvalidToken
	}
	if !s.now().Before(claims.Expiry()) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func ceilSecond(t time.Time) time.Time {
	if r := t.Truncate(time.Second); !r.Equal(t) {
		return r.Add(time.Second)
	}
	return t
}

func (s *Service) keyFunc(tok *gojwt.Token) (interface{}, error) {
	if tok.Method.Alg() != s.method.Alg() {
		return nil, fmt.Errorf("unexpected signing method: %s", tok.Method.Alg())
	}
	return s.key, nil
}
