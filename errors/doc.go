// Package errors provides the structured error type used across the service.
//
// Every failure that reaches a client is an *AppError carrying a
// machine-readable ErrorCode, a human-readable message and the HTTP status
// it maps to. Store and other infrastructure errors are wrapped at the
// boundary so their causes are logged but never sent to clients.
package errors
