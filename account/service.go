// Package account implements registration and login: it checks
// credentials against the identity store and mints bearer tokens.
package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/kbukum/webtoon-api/auth"
	"github.com/kbukum/webtoon-api/auth/password"
	apperrors "github.com/kbukum/webtoon-api/errors"
	"github.com/kbukum/webtoon-api/identity"
	"github.com/kbukum/webtoon-api/logger"
)

const (
	MessageRegistered = "User registered successfully"
	MessageLoggedIn   = "Login successful"
)

// Result is returned by a successful Register or Login.
type Result struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Service runs the registration and login flows.
type Service struct {
	store  identity.Store
	hasher password.Hasher
	tokens auth.TokenIssuer
	log    *logger.Logger

	// absentHash is compared against on logins for unknown users so both
	// failure paths pay for one hash verification.
	absentHash string
}

// NewService creates an account service.
func NewService(store identity.Store, hasher password.Hasher, tokens auth.TokenIssuer, log *logger.Logger) (*Service, error) {
	absentHash, err := hasher.Hash("absent-user-placeholder")
	if err != nil {
		return nil, fmt.Errorf("account: prepare placeholder hash: %w", err)
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Service{
		store:      store,
		hasher:     hasher,
		tokens:     tokens,
		log:        log.WithComponent("account"),
		absentHash: absentHash,
	}, nil
}

// Register creates an identity for username and returns a token for it.
// A taken username fails with DUPLICATE_IDENTITY and issues nothing.
func (s *Service) Register(ctx context.Context, username, plaintext string) (*Result, error) {
	_, err := s.store.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, apperrors.DuplicateIdentity()
	case !errors.Is(err, identity.ErrNotFound):
		return nil, apperrors.StoreFailure(err)
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return nil, apperrors.InvalidInput("password", "must be at most 72 bytes")
		}
		return nil, apperrors.Internal(err)
	}

	// The store re-checks atomically; a concurrent registration of the
	// same username that won the race surfaces here.
	if _, err := s.store.Register(ctx, username, hash); err != nil {
		if errors.Is(err, identity.ErrDuplicate) {
			return nil, apperrors.DuplicateIdentity()
		}
		return nil, apperrors.StoreFailure(err)
	}

	tok, err := s.tokens.Issue(username)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.log.WithContext(ctx).Info("User registered", map[string]interface{}{
		logger.FieldUsername: username,
	})
	return &Result{Message: MessageRegistered, Token: tok}, nil
}

// Login verifies the credentials and returns a fresh token. An unknown
// username and a wrong password fail identically with INVALID_CREDENTIALS.
func (s *Service) Login(ctx context.Context, username, plaintext string) (*Result, error) {
	id, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, identity.ErrNotFound) {
			return nil, apperrors.StoreFailure(err)
		}
		s.hasher.Verify(plaintext, s.absentHash)
		s.logFailedLogin(ctx, username)
		return nil, apperrors.InvalidCredentials()
	}

	if !s.hasher.Verify(plaintext, id.PasswordHash) {
		s.logFailedLogin(ctx, username)
		return nil, apperrors.InvalidCredentials()
	}

	tok, err := s.tokens.Issue(id.Username)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.log.WithContext(ctx).Info("User logged in", map[string]interface{}{
		logger.FieldUsername: id.Username,
	})
	return &Result{Message: MessageLoggedIn, Token: tok}, nil
}

func (s *Service) logFailedLogin(ctx context.Context, username string) {
	s.log.WithContext(ctx).Warn("Login rejected", map[string]interface{}{
		logger.FieldUsername: username,
	})
}
