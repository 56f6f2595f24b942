package service

import "errors"

// ErrNotFound indicates the requested template was not found (or is
// soft-deleted and hidden).
var ErrNotFound = errors.New("not found")

// ValidationError represents a bad-request condition (HTTP 400).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// AuthorizationError represents a denied operation (HTTP 403). Upstream
// permission-service failures surface as this, never as a server error.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }
