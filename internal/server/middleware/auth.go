// Package middleware provides HTTP middleware for authentication.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// userIDKey is the context key for storing the authenticated user ID.
const userIDKey ContextKey = "userID"

// employerKey is the context key for the caller's employer flag.
const employerKey ContextKey = "isEmployer"

// TokenValidator is an interface for validating session tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (CallerClaims, error)
}

// CallerClaims is an interface for extracting caller identity from token
// claims.
type CallerClaims interface {
	GetUserID() uuid.UUID
	GetIsEmployer() bool
}

// bearerToken extracts the token from an Authorization header.
// Returns "" if no well-formed bearer token is present.
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth creates middleware that rejects requests without a valid token
// and adds the caller identity to the request context. Write paths use this:
// a present-but-invalid credential is an error here.
func RequireAuth(jwtService TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				http.Error(w, "Unauthorized. Missing or invalid token.", http.StatusUnauthorized)
				return
			}

			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				http.Error(w, "Invalid authentication token.", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(withCaller(r.Context(), claims)))
		})
	}
}

// OptionalAuth creates middleware that attaches the caller identity when a
// valid token is present and otherwise passes the request through
// anonymously. Read paths use this: an expired or invalid credential
// degrades to anonymous browsing instead of failing.
func OptionalAuth(jwtService TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := bearerToken(r); token != "" {
				if claims, err := jwtService.ValidateToken(token); err == nil {
					r = r.WithContext(withCaller(r.Context(), claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func withCaller(ctx context.Context, claims CallerClaims) context.Context {
	ctx = context.WithValue(ctx, userIDKey, claims.GetUserID())
	return context.WithValue(ctx, employerKey, claims.GetIsEmployer())
}

// GetUserID extracts the authenticated user ID from the request context.
func GetUserID(r *http.Request) (uuid.UUID, error) {
	userID, ok := r.Context().Value(userIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("user ID not found in request context")
	}
	return userID, nil
}

// OptionalUserID returns the caller's user ID, or nil for anonymous callers.
func OptionalUserID(r *http.Request) *uuid.UUID {
	if userID, ok := r.Context().Value(userIDKey).(uuid.UUID); ok {
		return &userID
	}
	return nil
}

// IsEmployer reports whether the authenticated caller is an employer.
func IsEmployer(r *http.Request) bool {
	flag, ok := r.Context().Value(employerKey).(bool)
	return ok && flag
}

// WithTestCaller injects a caller identity into the context (for testing
// purposes).
func WithTestCaller(ctx context.Context, userID uuid.UUID, isEmployer bool) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, employerKey, isEmployer)
}
