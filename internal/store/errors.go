package store

import "errors"

var (
	// ErrNoScope is returned by mutations on a per-trip store with no trip selected.
	ErrNoScope = errors.New("no trip selected")
	// ErrNotFound is returned when the id is not in the collection.
	ErrNotFound = errors.New("entity not found")
	// ErrPending is returned when the entity's create has not settled yet.
	ErrPending = errors.New("entity is still being created")
)
