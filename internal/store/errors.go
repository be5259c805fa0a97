package store

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("already exists")
	// ErrNoMatch is returned when a conditional write matched no row.
	ErrNoMatch = errors.New("no row matched the expected state")
)
