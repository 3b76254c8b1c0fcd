package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedSource indicates an unknown version source kind.
	// Valid kinds are "commit", "tag", and "release".
	ErrUnsupportedSource = errors.New("unsupported version source")

	// ErrNoVersionPinned indicates no materialization version has been pinned
	// on the annotation client.
	ErrNoVersionPinned = errors.New("no materialization version pinned")
)
