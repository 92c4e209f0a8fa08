package resource

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed taxonomy of read failures.
type ErrorKind int

const (
	// ErrInvalidParams indicates caller-supplied input outside the legal set
	ErrInvalidParams ErrorKind = iota
	// ErrNotFound indicates a specific requested entity does not exist
	ErrNotFound
	// ErrInternal indicates an upstream failure or unclassifiable output
	ErrInternal
)

// Error is a typed read failure carrying the original message. The kind,
// never the message content, determines the wire code and status.
type Error struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	switch e.Kind {
	case ErrInvalidParams:
		return fmt.Sprintf("Invalid parameters: %s", e.Message)
	case ErrNotFound:
		return fmt.Sprintf("Resource not found: %s", e.Message)
	default:
		return fmt.Sprintf("Internal error: %s", e.Message)
	}
}

// InvalidParams creates an invalid-parameters error
func InvalidParams(message string) *Error {
	return &Error{Kind: ErrInvalidParams, Message: message}
}

// NotFound creates a not-found error
func NotFound(message string) *Error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// Internal creates an internal error
func Internal(message string) *Error {
	return &Error{Kind: ErrInternal, Message: message}
}

// AsError returns the typed read error inside err, if any
func AsError(err error) (*Error, bool) {
	var re *Error
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
