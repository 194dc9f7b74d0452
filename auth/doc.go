// Package auth holds the authentication contracts shared by the HTTP
// middleware and the account flows.
//
// Subpackages:
//
//   - auth/token: signed, time-limited bearer tokens
//   - auth/password: salted password hashing (bcrypt, argon2id)
//   - auth/authctx: request-scoped authenticated principal
//
// The top-level package provides ParseBearer, which classifies an
// Authorization header as either a token or ErrMalformedCredential, and the
// TokenIssuer/TokenVerifier interfaces implemented by *token.Service.
//
//	auth:
//	  token:
//	    secret: "change-me-please-0123"
//	    ttl: "1h"
//	  password:
//	    algorithm: "bcrypt"
//	    bcrypt_cost: 10
package auth
