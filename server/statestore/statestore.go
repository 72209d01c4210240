// Package statestore issues and validates the one-time CSRF state values
// embedded in the OAuth redirect round trip.
package statestore

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

// stateLength is the number of random bytes per state (192 bits of entropy).
const stateLength = 24

// Repo records outstanding CSRF states. A state is outstanding from Issue
// until Consume removes it; a state that was never issued, or already
// consumed, does not validate.
type Repo interface {
	// Issue generates a random URL-safe state and records it as outstanding
	Issue() (string, error)

	// Validate reports whether state is currently outstanding, without removing it
	Validate(state string) bool

	// Consume validates state and removes it, so it cannot be replayed
	Consume(state string) bool

	// DeleteExpired drops states issued before the cutoff (orphans from
	// abandoned login attempts)
	DeleteExpired(cutoff time.Time)
}

func generateState() (string, error) {
	b := make([]byte, stateLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
