// Package server provides the HTTP server: a Gin engine behind an h2c
// handler, the standard middleware chain, JSON response helpers and a
// lifecycle Component.
//
// Middleware runs in this order on every request:
//
//	recovery -> request id -> request logging -> rate limit -> CORS -> body size
//
// Protected routes add middleware.Auth after these.
package server
