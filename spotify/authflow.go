package spotify

import (
	"context"
	"time"

	"golang.org/x/oauth2"

	"github.com/rdsmusic/spotify-backend/internal/config"
	apperrors "github.com/rdsmusic/spotify-backend/internal/errors"
)

// Scopes requested during user login. Read access for stats plus playlist
// modification for the smart-playlist features.
var Scopes = []string{
	"user-read-private",
	"user-read-email",
	"user-top-read",
	"user-read-recently-played",
	"playlist-modify-public",
	"playlist-modify-private",
}

// TokenPair is a user-scoped access/refresh token pair from a code exchange
// or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // seconds until the access token expires
}

// AuthFlow implements the provider side of the authorization-code flow:
// building the login redirect URL and exchanging codes and refresh tokens.
type AuthFlow struct {
	config *oauth2.Config
}

// NewAuthFlow builds an AuthFlow from the Spotify configuration. Spotify
// requires client credentials Basic-auth-encoded at the token endpoint.
func NewAuthFlow(cfg config.Spotify) *AuthFlow {
	return &AuthFlow{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
	}
}

// AuthorizationURL composes the provider's authorize URL with the issued
// CSRF state. show_dialog forces the Spotify consent dialog on every login.
func (f *AuthFlow) AuthorizationURL(state string) string {
	return f.config.AuthCodeURL(state, oauth2.SetAuthURLParam("show_dialog", "true"))
}

// Exchange trades a single-use authorization code for a token pair. The
// redirect URI sent here must exactly match the one used to obtain the code.
// Failures are not retried; a code that failed once will fail identically.
func (f *AuthFlow) Exchange(ctx context.Context, code string) (*TokenPair, error) {
	if f.config.ClientID == "" || f.config.ClientSecret == "" {
		return nil, apperrors.ErrCredentialsNotConfigured
	}

	tok, err := f.config.Exchange(ctx, code)
	if err != nil {
		return nil, wrapRetrieveError(apperrors.ErrTokenExchange, "exchange authorization code", err)
	}
	return pairFromToken(tok), nil
}

// Refresh obtains a fresh access token from a refresh token.
func (f *AuthFlow) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if f.config.ClientID == "" || f.config.ClientSecret == "" {
		return nil, apperrors.ErrCredentialsNotConfigured
	}

	tok, err := f.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return nil, wrapRetrieveError(apperrors.ErrTokenRefresh, "refresh access token", err)
	}

	pair := pairFromToken(tok)
	if pair.RefreshToken == "" {
		// Spotify omits the refresh token when it is unchanged.
		pair.RefreshToken = refreshToken
	}
	return pair, nil
}

func pairFromToken(tok *oauth2.Token) *TokenPair {
	expiresIn := tok.ExpiresIn
	if expiresIn == 0 && !tok.Expiry.IsZero() {
		expiresIn = int64(time.Until(tok.Expiry).Seconds())
	}
	return &TokenPair{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresIn:    expiresIn,
	}
}
