package auth

import (
	"errors"
	"strings"

	"github.com/kbukum/webtoon-api/auth/token"
)

// BearerScheme is the only accepted Authorization scheme. It is matched
// case-sensitively.
const BearerScheme = "Bearer"

// ErrMalformedCredential is returned by ParseBearer when the header is
// missing or not of the form "Bearer <token>".
var ErrMalformedCredential = errors.New("auth: malformed credential")

// TokenIssuer mints a bearer token for a subject.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// TokenVerifier verifies a bearer token and returns its claims. Every
// failure is reported as token.ErrInvalidToken.
type TokenVerifier interface {
	Verify(tokenString string) (*token.Claims, error)
}

// ParseBearer extracts the token from an Authorization header value. The
// header is split on the first space; the left part must be exactly
// "Bearer" and the right part must be non-empty.
func ParseBearer(header string) (string, error) {
	scheme, tok, found := strings.Cut(header, " ")
	if !found || scheme != BearerScheme || tok == "" {
		return "", ErrMalformedCredential
	}
	return tok, nil
}
