package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrQuizNotFound is returned when no quiz matches the given slug or token.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuizExists is returned when a quiz with the same (name, slug) pair already exists.
	ErrQuizExists = errors.New("quiz already exists")
)

// ValidationError reports a rejected field on a creation request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// StorageError wraps a backing-store failure so the transport can map it to
// a generic server error without inspecting driver internals.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
