package store

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a unique constraint is violated,
// e.g. signing up with an email that is already registered.
var ErrConflict = errors.New("already exists")
