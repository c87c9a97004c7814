package lcu

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed taxonomy from the error-handling design: callers
// branch on kind via errors.Is against the sentinels below, never on
// wrapped-string matching.
type ErrorKind string

const (
	KindNoCredential ErrorKind = "no_credential"
	KindHTTPStatus   ErrorKind = "http_status"
	KindUnauthorized ErrorKind = "unauthorized"
	KindTransport    ErrorKind = "transport"
	KindParse        ErrorKind = "parse"
	KindInvariant    ErrorKind = "invariant"
)

// Sentinel values for errors.Is comparisons against a *Error's Kind.
var (
	ErrNoCredential = &Error{Kind: KindNoCredential}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
)

// Error is the single typed error surfaced across the lcu package. Status
// is populated only for KindHTTPStatus.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message == "" && e.Cause == nil {
		return string(e.Kind)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, lcu.ErrUnauthorized) match any *Error with the
// same Kind, regardless of message/cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewError constructs an *Error with a formatted message.
func NewError(kind ErrorKind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// NewHTTPStatusError constructs an HTTPStatus error carrying the status code.
func NewHTTPStatusError(status int, body string) *Error {
	return &Error{Kind: KindHTTPStatus, Status: status, Message: fmt.Sprintf("unexpected status %d: %s", status, body)}
}

// KindOf extracts the Kind of err if it (or something it wraps) is an
// *Error, and ok=false otherwise.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
