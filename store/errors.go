package store

import "errors"

var (
	// ErrNotFound is returned when no item exists for the requested key.
	ErrNotFound = errors.New("store: item not found")

	// ErrEmptyPatch is returned when a patch has no writable attributes
	// once the key and protected attributes are removed.
	ErrEmptyPatch = errors.New("store: patch has no writable attributes")
)
