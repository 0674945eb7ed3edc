package domain

import (
	"errors"
	"fmt"
)

// ErrorCode is the discriminated code returned to API clients alongside
// the human-readable message.
type ErrorCode string

const (
	CodeNotFound          ErrorCode = "NOT_FOUND"
	CodeUnavailable       ErrorCode = "UNAVAILABLE"
	CodeInsufficientFunds ErrorCode = "INSUFFICIENT_FUNDS"
	CodeAlreadyRented     ErrorCode = "ALREADY_RENTED"
	CodeTooFar            ErrorCode = "TOO_FAR"
	CodeInvalidPosition   ErrorCode = "INVALID_POSITION"
	CodeInvalidArgument   ErrorCode = "INVALID_ARGUMENT"
	CodeUnauthenticated   ErrorCode = "UNAUTHENTICATED"
	CodeForbidden         ErrorCode = "FORBIDDEN"
	CodeConflict          ErrorCode = "CONFLICT"
	CodeStoreError        ErrorCode = "STORE_ERROR"
)

// Error is the application error type. Two Errors compare equal under
// errors.Is when their codes match, so services can return rich messages
// while callers branch on the sentinel values below.
type Error struct {
	Code    ErrorCode
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

var (
	ErrNotFound          = &Error{Code: CodeNotFound, Message: "not found"}
	ErrUnavailable       = &Error{Code: CodeUnavailable, Message: "item not available for rent"}
	ErrInsufficientFunds = &Error{Code: CodeInsufficientFunds, Message: "insufficient kudu balance"}
	ErrAlreadyRented     = &Error{Code: CodeAlreadyRented, Message: "user already has an active rental"}
	ErrTooFar            = &Error{Code: CodeTooFar, Message: "too far from the drop-off station"}
	ErrInvalidPosition   = &Error{Code: CodeInvalidPosition, Message: "position coordinates are not finite"}
	ErrUnauthenticated   = &Error{Code: CodeUnauthenticated, Message: "authentication required"}
	ErrForbidden         = &Error{Code: CodeForbidden, Message: "caller may not act on this account"}
)

// Errorf builds an Error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// StoreError wraps a failed document-store call. The cause is preserved
// for logging; clients only see the code.
func StoreError(op string, cause error) *Error {
	return &Error{Code: CodeStoreError, Message: fmt.Sprintf("store: %s failed", op), cause: cause}
}

// CodeOf extracts the ErrorCode from err, defaulting to STORE_ERROR for
// unclassified failures.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeStoreError
}
