package repository

import "errors"

var (
	// ErrNotFound covers genuinely absent documents, malformed ids and
	// ownership mismatches alike, so callers cannot probe for the existence
	// of other users' data.
	ErrNotFound = errors.New("not found")

	ErrDuplicateEmail = errors.New("email already registered")
)
