package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// InvalidStateError reports an operation attempted from a lifecycle state
// that does not permit it. Message is the caller-facing reason.
type InvalidStateError struct {
	Message string
}

// NewInvalidState builds an InvalidStateError with the given reason.
func NewInvalidState(message string) error {
	return &InvalidStateError{Message: message}
}

func (e *InvalidStateError) Error() string   { return e.Message }
func (e *InvalidStateError) StatusCode() int { return http.StatusBadRequest }

// Is allows errors.Is() to match against ErrInvalidState
func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}

// ConflictError represents a uniqueness violation with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // space, article, version, review_request, tag
	ResourceID   string // ID or natural key of the conflicting resource, when known
}

func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode reports a bad request; conflicts surface to callers with their reason.
func (e *ConflictError) StatusCode() int {
	return http.StatusBadRequest
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
