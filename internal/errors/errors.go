package errors

import (
	"errors"
	"fmt"
)

// Common error types for the Spotify backend
var (
	// Authorization flow errors
	ErrProviderAuthorization = errors.New("Spotify authorization error")
	ErrInvalidState          = errors.New("invalid state parameter")
	ErrMissingCode           = errors.New("no authorization code provided")

	// Provider token errors
	ErrTokenExchange = errors.New("token exchange failed")
	ErrTokenRefresh  = errors.New("token refresh failed")
	ErrUpstreamAuth  = errors.New("client credentials request failed")
	ErrProfileFetch  = errors.New("failed to get user profile")

	// Session errors
	ErrInvalidToken    = errors.New("invalid token")
	ErrSessionNotFound = errors.New("session not found")

	// Configuration errors
	ErrCredentialsNotConfigured = errors.New("spotify credentials not configured")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
