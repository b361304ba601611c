package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources. Mutations on
	// records owned by another user also surface as ErrNotFound so that
	// existence is never confirmed to non-owners.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
)
