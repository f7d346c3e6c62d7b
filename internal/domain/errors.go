package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is part of the error vocabulary but nothing emits it
	// today: cross-owner access is masked as ErrNotFound so responses
	// never confirm that a resource exists under another owner.
	ErrForbidden = errors.New("forbidden")
)

// ConflictError represents a resource conflict with details about the
// existing resource. Callers can use ResourceID to retry as an update
// or surface the colliding row.
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (page, folder)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface. Conflicts surface as
// 400: the caller fixes the name or retries as an update, the same as
// any other input problem.
func (e *ConflictError) StatusCode() int {
	return http.StatusBadRequest
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
