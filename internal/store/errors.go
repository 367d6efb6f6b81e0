package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches every *NotFoundError via errors.Is.
	ErrNotFound = errors.New("profile not found")

	// ErrCorrupt matches every *CorruptStateError via errors.Is.
	ErrCorrupt = errors.New("profile state corrupt")
)

// NotFoundError indicates no document exists for a profile key. Callers
// normally treat it as a new, empty profile.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("profile %q not found", e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// CorruptStateError indicates a stored document exists but is not a valid
// profile. The document is never repaired.
type CorruptStateError struct {
	Key string
	Err error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("profile %q is corrupt: %v", e.Key, e.Err)
}

func (e *CorruptStateError) Unwrap() error { return e.Err }

func (e *CorruptStateError) Is(target error) bool { return target == ErrCorrupt }
