// Package server provides the HTTP REST API for the NextStep job platform.
package server

import (
	"fmt"
	"net/http"

	"github.com/nextstep/nextstep-api/internal/tracker"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Tracker errors carry the engine's taxonomy: conflicts are an expected,
// frequent outcome (repeat swipes) and map to 409, not a generic failure.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrEmailAlreadyExists, *tracker.ConflictError:
		return http.StatusConflict
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *ErrValidation, *tracker.ValidationError:
		return http.StatusBadRequest
	case *tracker.NotFoundError:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
