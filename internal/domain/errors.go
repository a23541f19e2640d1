package domain

import "errors"

// Sentinel errors shared across services and repositories. Repositories map
// storage-level misses onto ErrNotFound; services translate business rule
// violations onto the rest. Controllers map each onto an HTTP status exactly
// once.
var (
	// ErrNotFound is returned when a referenced key or id does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned for duplicate membership or exhausted capacity.
	// It marks a user-correctable state conflict, not a bug.
	ErrConflict = errors.New("conflict")

	// ErrForbidden is returned when the caller is not the resource's organizer.
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthorized is returned when no caller identity is resolved, or a
	// session is created against a conference that does not exist.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidInput is returned for malformed or missing required input.
	ErrInvalidInput = errors.New("invalid input")
)
