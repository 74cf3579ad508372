// Package errors provides structured error handling for the combat core.
//
// Domain packages reject invalid input with typed errors carrying a
// machine-readable Code. The transport layer wrapping the core converts
// those errors to client responses via HandleError; the core itself never
// formats user-facing text outside the i18n catalogs.
package errors

import (
	"fmt"

	"google.golang.org/grpc/status"
)

// Error is a domain error with a machine-readable code and optional
// metadata for message interpolation.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
	cause    error
}

// New creates a domain error with the given code and developer message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a domain error with a formatted developer message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// WithMeta returns a copy of the error with metadata attached.
// The receiver is not modified, so sentinel errors stay immutable.
func (e *Error) WithMeta(meta map[string]string) *Error {
	clone := *e
	clone.Metadata = meta
	return &clone
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is a domain error with the same code.
// Sentinel errors compare by code so WithMeta copies still match.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// ToGRPCStatus converts the error to a gRPC status with a localized
// user-facing message.
func (e *Error) ToGRPCStatus(userMessage string) error {
	return status.Error(e.Code.GRPCCode(), userMessage)
}
