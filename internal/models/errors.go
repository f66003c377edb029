package models

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist or
	// is not visible to the caller.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEntry is returned when an insert would violate a
	// uniqueness invariant, such as adding the same media to a list twice.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrCrossOwnerViolation is returned when an operation would mix
	// resources owned by two different users.
	ErrCrossOwnerViolation = errors.New("resources belong to different users")

	// ErrInvalidMedia is returned when an operation requires a specific
	// media type, e.g. episode tracking on a movie.
	ErrInvalidMedia = errors.New("invalid media type for operation")
)
