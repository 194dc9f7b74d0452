package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Authentication errors
const (
	// ErrCodeDuplicateIdentity indicates the username is already registered.
	ErrCodeDuplicateIdentity ErrorCode = "DUPLICATE_IDENTITY"
	// ErrCodeInvalidCredentials indicates a login with an unknown user or wrong password.
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	// ErrCodeMalformedCredential indicates a missing or badly shaped Authorization header.
	ErrCodeMalformedCredential ErrorCode = "MALFORMED_CREDENTIAL"
	// ErrCodeInvalidToken indicates the bearer token failed verification.
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
)

// Request errors
const (
	// ErrCodeValidationFailed indicates the request payload failed validation.
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeTooManyRequests indicates the client exceeded its request budget.
	ErrCodeTooManyRequests ErrorCode = "TOO_MANY_REQUESTS"
)

// Internal errors
const (
	// ErrCodeStoreFailure indicates a backing store failed.
	ErrCodeStoreFailure ErrorCode = "STORE_FAILURE"
	// ErrCodeInternal indicates an unexpected server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var serverSideCodes = map[ErrorCode]bool{
	ErrCodeStoreFailure: true,
	ErrCodeInternal:     true,
}

// IsServerSideCode reports whether the code describes a server-side failure
// whose cause should be logged at error level.
func IsServerSideCode(code ErrorCode) bool {
	return serverSideCodes[code]
}
