package token_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/rdsmusic/spotify-backend/internal/errors"
	"github.com/rdsmusic/spotify-backend/token"
)

const (
	testSecret  = "test-signing-secret"
	testSubject = "spotify-user-1"
)

func newIssuerVerifier(ttl time.Duration) (*token.Issuer, *token.Verifier) {
	signer := token.NewHMACSigner(testSecret)
	return token.NewIssuer(signer, ttl), token.NewVerifier(signer)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	issuer, verifier := newIssuerVerifier(time.Hour)

	raw, err := issuer.Issue(testSubject)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := verifier.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, testSubject, claims.Subject)
	require.NotEmpty(t, claims.TokenID)
	require.Greater(t, claims.Expiry, claims.IssuedAt)
}

func TestIssueRequiresSubject(t *testing.T) {
	issuer, _ := newIssuerVerifier(time.Hour)
	_, err := issuer.Issue("")
	require.Error(t, err)
}

func TestIssuedTokensHaveUniqueIDs(t *testing.T) {
	issuer, verifier := newIssuerVerifier(time.Hour)

	first, err := issuer.Issue(testSubject)
	require.NoError(t, err)
	second, err := issuer.Issue(testSubject)
	require.NoError(t, err)

	firstClaims, err := verifier.Verify(first)
	require.NoError(t, err)
	secondClaims, err := verifier.Verify(second)
	require.NoError(t, err)
	require.NotEqual(t, firstClaims.TokenID, secondClaims.TokenID)
}

func TestVerifyTamperedToken(t *testing.T) {
	issuer, verifier := newIssuerVerifier(time.Hour)

	raw, err := issuer.Issue(testSubject)
	require.NoError(t, err)

	// Flip a character in the signature segment.
	tampered := raw[:len(raw)-1]
	if strings.HasSuffix(raw, "A") {
		tampered += "B"
	} else {
		tampered += "A"
	}

	_, err = verifier.Verify(tampered)
	require.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestVerifyExpiredToken(t *testing.T) {
	issuer, verifier := newIssuerVerifier(-time.Hour)

	raw, err := issuer.Issue(testSubject)
	require.NoError(t, err)

	_, err = verifier.Verify(raw)
	require.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestVerifyMalformedToken(t *testing.T) {
	_, verifier := newIssuerVerifier(time.Hour)

	for _, raw := range []string{"", "   ", "not-a-jwt", "a.b.c"} {
		_, err := verifier.Verify(raw)
		require.ErrorIs(t, err, apperrors.ErrInvalidToken, "input %q", raw)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := token.NewIssuer(token.NewHMACSigner("other-secret"), time.Hour)
	_, verifier := newIssuerVerifier(time.Hour)

	raw, err := issuer.Issue(testSubject)
	require.NoError(t, err)

	_, err = verifier.Verify(raw)
	require.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
