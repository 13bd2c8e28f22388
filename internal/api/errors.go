package api

import (
	"errors"
	"fmt"
)

// Kind classifies an API failure so callers can pick a recovery path
// without parsing messages.
type Kind int

const (
	// KindUnknown covers unclassified failures; surfaced as a generic message.
	KindUnknown Kind = iota
	// KindNetwork marks transport-level failures: the request may never have
	// reached the server.
	KindNetwork
	// KindUnauthorized marks an invalid or expired session.
	KindUnauthorized
	// KindValidation marks input the server (or client) rejected; recoverable
	// by user correction.
	KindValidation
	// KindConflict marks duplicate-resource failures, e.g. an existing account.
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUnauthorized:
		return "unauthorized"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Error is the typed failure returned by every Client method. Message is
// human-readable and safe to show verbatim; Fields optionally carries
// per-field validation details.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	cause   error
}

// NewError builds an Error with the given kind and message.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf extracts the failure kind from err, unwrapping as needed.
// Anything that is not an *Error counts as KindUnknown.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the user-facing message from err, or fallback when err
// carries none. Flow controllers use it to surface server text verbatim.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
