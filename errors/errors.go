package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// HTTPStatus is the HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error. It is never serialized.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// --- Common Error Constructors ---

// DuplicateIdentity creates an AppError for a username that is already taken.
func DuplicateIdentity() *AppError {
	return &AppError{
		Code: ErrCodeDuplicateIdentity, Message: "User already exists.",
		HTTPStatus: http.StatusBadRequest,
	}
}

// InvalidCredentials creates an AppError for a failed login. The same error is
// used for an unknown user and a wrong password.
func InvalidCredentials() *AppError {
	return &AppError{
		Code: ErrCodeInvalidCredentials, Message: "Invalid username or password.",
		HTTPStatus: http.StatusBadRequest,
	}
}

// MalformedCredential creates an AppError for a missing or badly shaped
// Authorization header.
func MalformedCredential() *AppError {
	return &AppError{
		Code: ErrCodeMalformedCredential, Message: "Authorization header must be of the form 'Bearer <token>'.",
		HTTPStatus: http.StatusBadRequest,
	}
}

// InvalidToken creates an AppError for a token that failed verification.
func InvalidToken() *AppError {
	return &AppError{
		Code: ErrCodeInvalidToken, Message: "Invalid authentication token.",
		HTTPStatus: http.StatusBadRequest,
	}
}

// Validation creates an AppError for a request payload that failed validation.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeValidationFailed, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// InvalidInput creates an AppError for a single invalid field.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeValidationFailed, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Details: details,
	}
}

// NotFound creates an AppError for a resource that was not found.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound, Details: details,
	}
}

// TooManyRequests creates an AppError for a client over its request budget.
func TooManyRequests() *AppError {
	return &AppError{
		Code: ErrCodeTooManyRequests, Message: "Too many requests. Please try again later.",
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// StoreFailure creates an AppError wrapping a backing store error.
func StoreFailure(cause error) *AppError {
	return New(ErrCodeStoreFailure, "A storage error occurred. Please try again.",
		http.StatusInternalServerError).WithCause(cause)
}

// Internal creates an AppError for an unexpected server error.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "An unexpected error occurred.",
		http.StatusInternalServerError).WithCause(cause)
}
