// Package domainerrors defines the coded errors that cross layer boundaries.
// Services translate store sentinels and validation failures into these;
// transport maps codes onto HTTP statuses. Conventionally imported as dErrors.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error. Validation codes mean the caller should
// correct the input and resubmit; authorization and not-found codes are fatal
// to the call.
type Code string

const (
	// Validation failures. No state change has occurred.
	CodeInsufficientPayment Code = "insufficient_payment"
	CodeSupplyExceeded      Code = "supply_exceeded"
	CodeBatchTooLarge       Code = "batch_too_large"
	CodeLengthMismatch      Code = "length_mismatch"
	CodeBadRequest          Code = "bad_request"

	// Authorization failures.
	CodeNotOwner     Code = "not_owner"
	CodeNotAdmin     Code = "not_admin"
	CodeUnauthorized Code = "unauthorized"

	// Resource state.
	CodeNotFound          Code = "not_found"
	CodeNothingToWithdraw Code = "nothing_to_withdraw"

	CodeInternal Code = "internal"
)

// Error carries a code, a caller-facing message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a coded error with no cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// Is is an alias for HasCode kept for call-site readability.
func Is(err error, code Code) bool { return HasCode(err, code) }

// CodeOf extracts the code from err, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MessageOf extracts the caller-facing message from err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}

// ToHTTPStatus maps a code onto the HTTP status transport should emit.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeInsufficientPayment:
		return http.StatusPaymentRequired
	case CodeSupplyExceeded, CodeBatchTooLarge, CodeLengthMismatch, CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotOwner, CodeNotAdmin:
		return http.StatusForbidden
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeNothingToWithdraw:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
