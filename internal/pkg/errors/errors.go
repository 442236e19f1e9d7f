// Package errors holds the sentinel errors shared across repos, services and
// handlers. Benign idempotency outcomes (ErrAlreadyCompleted, ErrAlreadyLiked)
// are surfaced as no-ops, never as hard failures.
package errors

import "errors"

var (
	// ErrNotFound is returned when a referenced user, artifact or record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyCompleted is returned when the day's challenge was completed before.
	ErrAlreadyCompleted = errors.New("already completed")
	// ErrAlreadyLiked is returned when the user already liked the post.
	ErrAlreadyLiked = errors.New("already liked")
	// ErrStoreUnavailable wraps backing-store I/O failures; callers may retry.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
)
