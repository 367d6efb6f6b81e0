package tracker

import "fmt"

// ValidationError reports input rejected before it could reach a User.
// The User is never mutated when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
