// Package tracker implements the application tracking and feed exclusion
// engine: it records apply/ignore decisions with at-most-one-application
// semantics and filters already-decided jobs out of the browse feed.
package tracker

import (
	"fmt"

	"github.com/google/uuid"
)

// ValidationError indicates caller-supplied input failed structural checks.
// It is always recoverable by the caller and nothing is persisted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ConflictError indicates the apply-uniqueness invariant blocked the write.
// The prior decision row is untouched.
type ConflictError struct {
	UserID uuid.UUID
	JobID  uuid.UUID
}

func (e *ConflictError) Error() string {
	return "You've already applied for this job. Check your application status in 'My Jobs'."
}

// NotFoundError indicates a referenced entity is absent
type NotFoundError struct {
	Kind string // "job" or "user"
	ID   uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}
