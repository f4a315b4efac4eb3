// Package apperr defines the closed error taxonomy used by every core
// operation. Handlers map a Kind to a transport status and a public
// message; internal detail stays in the server log.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	Validation Kind = iota
	TokenExpired
	TokenInvalid
	SessionNotFound
	Forbidden
	FileIsPrivate
	UnverifiedAdmin
	UserNotFound
	FileNotFound
	StorageLimit
	EmailExists
	StatusAlreadyAssigned
	FileExtNotSupport
	RateLimit
	Internal
)

type Error struct {
	Kind Kind

	// Optional wrapped cause, never shown to the caller
	Err error
}

func New(k Kind) *Error {
	return &Error{Kind: k}
}

// Wrap attaches a cause to a Kind. The cause only surfaces through
// errors.Unwrap and the server-side log.
func Wrap(k Kind, err error) *Error {
	return &Error{Kind: k, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind.Message(), e.Err)
	}

	return e.Kind.Message()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is match two taxonomy errors by Kind so that callers
// can compare against the sentinel values below
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return e.Kind == t.Kind
}

// KindOf extracts the taxonomy Kind from any error chain. Unclassified
// failures count as Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return Internal
}

// Status maps a Kind to its HTTP status family. The switch is exhaustive
// over the closed Kind set.
func (k Kind) Status() int {
	switch k {
	case Validation:
		return http.StatusBadRequest
	case TokenExpired, TokenInvalid, SessionNotFound:
		return http.StatusUnauthorized
	case Forbidden, FileIsPrivate, UnverifiedAdmin:
		return http.StatusForbidden
	case UserNotFound, FileNotFound:
		return http.StatusNotFound
	case StorageLimit, EmailExists, StatusAlreadyAssigned:
		return http.StatusConflict
	case FileExtNotSupport:
		return http.StatusUnsupportedMediaType
	case RateLimit:
		return http.StatusTooManyRequests
	case Internal:
		return http.StatusInternalServerError
	}

	return http.StatusInternalServerError
}

// Message returns the user-facing message for a Kind. No internal
// diagnostic detail ever ends up here.
func (k Kind) Message() string {
	switch k {
	case Validation:
		return "Bad request"
	case TokenExpired:
		return "Token expired"
	case TokenInvalid:
		return "Invalid token"
	case SessionNotFound:
		return "Session not found"
	case Forbidden:
		return "Forbidden"
	case FileIsPrivate:
		return "File is private"
	case UnverifiedAdmin:
		return "Admin access required"
	case UserNotFound:
		return "User not found"
	case FileNotFound:
		return "File not found"
	case StorageLimit:
		return "Storage limit reached"
	case EmailExists:
		return "Email already exists"
	case StatusAlreadyAssigned:
		return "Status already assigned"
	case FileExtNotSupport:
		return "Unsupported file extension"
	case RateLimit:
		return "Too many requests"
	case Internal:
		return "Internal server error"
	}

	return "Internal server error"
}
