package token

import (
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"

	apperrors "github.com/rdsmusic/spotify-backend/internal/errors"
)

// Claims is the decoded payload of a verified session token.
type Claims struct {
	Subject  string
	IssuedAt int64
	Expiry   int64
	TokenID  string
}

// Verifier validates session tokens. Verification is stateless: signature
// and expiry only, no lookup.
type Verifier struct {
	signer Signer
}

// NewVerifier creates a new session token verifier
func NewVerifier(signer Signer) *Verifier {
	return &Verifier{signer: signer}
}

// Verify validates signature and expiry and returns the decoded claims.
// Malformed, tampered and expired tokens all fail with ErrInvalidToken.
func (v *Verifier) Verify(rawToken string) (*Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, apperrors.ErrInvalidToken
	}

	token, err := jwtlib.ParseWithClaims(rawToken, jwtlib.MapClaims{}, v.signer.GetVerificationKey)
	if err != nil || !token.Valid {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidToken, "parse session token")
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, apperrors.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, apperrors.ErrInvalidToken
	}
	iat, _ := claims["iat"].(float64)
	exp, _ := claims["exp"].(float64)
	jti, _ := claims["jti"].(string)

	return &Claims{
		Subject:  sub,
		IssuedAt: int64(iat),
		Expiry:   int64(exp),
		TokenID:  jti,
	}, nil
}
