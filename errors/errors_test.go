package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeNotFound, "not found", http.StatusNotFound)
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "not found" {
		t.Errorf("expected message 'not found', got %q", err.Message)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, err.HTTPStatus)
	}
}

func TestAppError_NotFound_Success(t *testing.T) {
	err := NotFound("webtoon", "123")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", err.Code)
	}
	if err.Details["resource"] != "webtoon" {
		t.Errorf("expected resource=webtoon, got %v", err.Details["resource"])
	}
	if err.Details["id"] != "123" {
		t.Errorf("expected id=123, got %v", err.Details["id"])
	}
}

func TestAppError_NotFound_EmptyID(t *testing.T) {
	err := NotFound("webtoon", "")
	if _, ok := err.Details["id"]; ok {
		t.Error("expected no 'id' key in details when id is empty")
	}
}

func TestAppError_StoreFailure_KeepsCause(t *testing.T) {
	cause := fmt.Errorf("db connection lost")
	err := StoreFailure(cause)
	if err.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", err.HTTPStatus)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected cause to be reachable through Unwrap")
	}
	if strings.Contains(err.Message, "db connection lost") {
		t.Error("cause must not leak into the client message")
	}

	internal := Internal(cause)
	if internal.Code != ErrCodeInternal || internal.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("unexpected internal error: %+v", internal)
	}
	if internal.Cause != cause {
		t.Error("expected Internal to keep its cause")
	}
}

func TestAppError_WithCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := New(ErrCodeStoreFailure, "write failed", http.StatusInternalServerError).WithCause(cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected WithCause to make the cause reachable")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected cause in Error(), got %q", err.Error())
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := &AppError{}
	err.WithDetail("key", "value")
	if err.Details["key"] != "value" {
		t.Errorf("expected key=value, got %v", err.Details["key"])
	}
}

func TestAppError_Error_Format(t *testing.T) {
	s := NotFound("webtoon", "5").Error()
	if !strings.Contains(s, "NOT_FOUND") {
		t.Errorf("expected error string to contain code, got %q", s)
	}
	if !strings.Contains(s, "not found") {
		t.Errorf("expected error string to contain message, got %q", s)
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   ErrorCode
		status int
	}{
		{"DuplicateIdentity", DuplicateIdentity(), ErrCodeDuplicateIdentity, http.StatusBadRequest},
		{"InvalidCredentials", InvalidCredentials(), ErrCodeInvalidCredentials, http.StatusBadRequest},
		{"MalformedCredential", MalformedCredential(), ErrCodeMalformedCredential, http.StatusBadRequest},
		{"InvalidToken", InvalidToken(), ErrCodeInvalidToken, http.StatusBadRequest},
		{"Validation", Validation("bad input"), ErrCodeValidationFailed, http.StatusBadRequest},
		{"InvalidInput", InvalidInput("title", "missing"), ErrCodeValidationFailed, http.StatusBadRequest},
		{"TooManyRequests", TooManyRequests(), ErrCodeTooManyRequests, http.StatusTooManyRequests},
		{"StoreFailure", StoreFailure(nil), ErrCodeStoreFailure, http.StatusInternalServerError},
		{"Internal", Internal(nil), ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.HTTPStatus != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, tc.err.HTTPStatus)
			}
		})
	}
}

func TestErrorCode_IsServerSideCode(t *testing.T) {
	for _, code := range []ErrorCode{ErrCodeStoreFailure, ErrCodeInternal} {
		if !IsServerSideCode(code) {
			t.Errorf("expected %s to be server side", code)
		}
	}
	for _, code := range []ErrorCode{ErrCodeNotFound, ErrCodeInvalidToken, ErrCodeTooManyRequests} {
		if IsServerSideCode(code) {
			t.Errorf("expected %s to NOT be server side", code)
		}
	}
}

func TestAppError_ToResponse_Success(t *testing.T) {
	resp := NotFound("webtoon", "42").ToResponse()
	if resp.Error.Code != ErrCodeNotFound {
		t.Errorf("expected code NOT_FOUND in response, got %s", resp.Error.Code)
	}
	if resp.Error.Details["resource"] != "webtoon" {
		t.Error("expected resource=webtoon in response details")
	}
}

func TestAsAppError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("wrap: %w", InvalidToken())

	got, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to succeed for wrapped AppError")
	}
	if got.Code != ErrCodeInvalidToken {
		t.Errorf("expected INVALID_TOKEN, got %s", got.Code)
	}

	if _, ok = AsAppError(fmt.Errorf("not an app error")); ok {
		t.Error("expected AsAppError to return false for non-AppError")
	}
}

func TestFrom_PlainError(t *testing.T) {
	plain := fmt.Errorf("something broke")
	got := From(plain)
	if got.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", got.Code)
	}
	if got.Cause != plain {
		t.Error("expected cause to be the original error")
	}
}

func TestFrom_AppErrorPassthrough(t *testing.T) {
	orig := DuplicateIdentity()
	if From(orig) != orig {
		t.Error("From should return the original AppError unchanged")
	}
}
