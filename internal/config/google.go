package config

import (
	"fmt"
	"os"
)

// GoogleConfig holds configuration for Google sign-in verification.
type GoogleConfig struct {
	ClientID string
}

// NewGoogleConfig creates a Google sign-in configuration from the
// GOOGLE_CLIENT_ID environment variable. Returns (nil, nil) when unset, in
// which case the /auth/google route is disabled.
func NewGoogleConfig() (*GoogleConfig, error) {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	if clientID == "" {
		return nil, nil
	}
	if len(clientID) < 10 {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID looks malformed: %q", clientID)
	}
	return &GoogleConfig{ClientID: clientID}, nil
}
