package github

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLocation indicates the repository URL does not match the
	// expected host/owner/repo shape.
	ErrInvalidLocation = errors.New("github: repository location is invalid")
	// ErrNotConfigured indicates the client is used before Configure.
	ErrNotConfigured = errors.New("github: client is not configured")
	// ErrUnauthorized indicates the credential was rejected.
	ErrUnauthorized = errors.New("github: unauthorized")
	// ErrNotFound indicates the repository, file, or publish target is absent.
	ErrNotFound = errors.New("github: not found")
	// ErrConflict indicates the supplied revision no longer matches the
	// file's current state.
	ErrConflict = errors.New("github: revision conflict")
	// ErrAlreadyExists indicates a create collided with an existing file.
	ErrAlreadyExists = errors.New("github: already exists")
	// ErrUnreachable indicates a network or unexpected remote failure.
	ErrUnreachable = errors.New("github: remote unreachable")
	// ErrEncoding indicates a payload failed the transport round-trip check.
	ErrEncoding = errors.New("github: payload failed encoding round-trip")
)

// APIError carries the operation and path that produced a remote failure so
// per-artifact error reporting can name the artifact.
type APIError struct {
	Op     string
	Path   string
	Status int
	Kind   error
}

func (e *APIError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v (status %d)", e.Op, e.Path, e.Kind, e.Status)
	}
	return fmt.Sprintf("%s: %v (status %d)", e.Op, e.Kind, e.Status)
}

func (e *APIError) Unwrap() error {
	return e.Kind
}

func apiError(op, path string, status int, kind error) error {
	return &APIError{Op: op, Path: path, Status: status, Kind: kind}
}
