// Package token mints and validates the app-issued session tokens: signed
// JWTs whose subject is the Spotify user id. These are the backend's own
// credentials, distinct from the provider tokens stored in the session.
package token

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Issuer creates signed session tokens with a fixed lifetime.
type Issuer struct {
	signer Signer
	ttl    time.Duration
}

// NewIssuer creates a new session token issuer
func NewIssuer(signer Signer, ttl time.Duration) *Issuer {
	return &Issuer{
		signer: signer,
		ttl:    ttl,
	}
}

// Issue produces a signed token embedding subject (the user id) and an
// expiry. Deterministic in subject, non-deterministic in issuance time
// and token id.
func (i *Issuer) Issue(subject string) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("subject is required")
	}

	claims := jwtlib.MapClaims{
		"sub": subject,
		"iat": NowTimeFunc().Unix(),
		"exp": NowTimeFunc().Add(i.ttl).Unix(),
		"jti": uuid.New().String(),
	}

	signedToken, err := i.signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signedToken, nil
}
