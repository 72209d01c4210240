package spotify

import (
	"context"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/rdsmusic/spotify-backend/internal/config"
	apperrors "github.com/rdsmusic/spotify-backend/internal/errors"
)

// ClientTokenLifetime is how long a fetched client-credentials token is
// served from the cache. Spotify advertises a 60 minute lifetime; caching
// for less guarantees the cache never hands out an expired token under
// normal clock skew.
const ClientTokenLifetime = 50 * time.Minute

// RefreshObserver receives the outcome ("success" or "failure") of each
// network refresh the cache performs.
type RefreshObserver interface {
	RecordClientTokenRefresh(outcome string)
}

// ClientTokenCache lazily obtains and caches the application-level bearer
// token used for API calls not tied to an end user. One instance is shared
// process-wide; construct it once and inject it.
type ClientTokenCache struct {
	cc       *clientcredentials.Config
	lifetime time.Duration
	observer RefreshObserver
	now      func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewClientTokenCache creates a cache around the client-credentials grant.
// observer may be nil.
func NewClientTokenCache(cfg config.Spotify, observer RefreshObserver) *ClientTokenCache {
	return &ClientTokenCache{
		cc: &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		lifetime: ClientTokenLifetime,
		observer: observer,
		now:      time.Now,
	}
}

// Token returns the cached token if still valid, otherwise performs a
// client-credentials exchange and caches the result. The whole get-or-refresh
// sequence is serialized so concurrent callers trigger a single exchange.
func (c *ClientTokenCache) Token(ctx context.Context) (string, error) {
	if c.cc.ClientID == "" || c.cc.ClientSecret == "" {
		return "", apperrors.ErrCredentialsNotConfigured
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expiresAt) {
		return c.token, nil
	}

	tok, err := c.cc.Token(ctx)
	if err != nil {
		c.record("failure")
		return "", wrapRetrieveError(apperrors.ErrUpstreamAuth, "request client credentials token", err)
	}

	c.token = tok.AccessToken
	c.expiresAt = c.now().Add(c.lifetime)
	c.record("success")
	return c.token, nil
}

// Clear invalidates the cached token. The next Token call performs a fresh
// exchange regardless of prior expiry state. Used for credential rotation
// and test isolation.
func (c *ClientTokenCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.expiresAt = time.Time{}
}

// Status reports whether a currently-valid token is held and when it lapses.
func (c *ClientTokenCache) Status() (held bool, expiresAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == "" || !c.now().Before(c.expiresAt) {
		return false, time.Time{}
	}
	return true, c.expiresAt
}

func (c *ClientTokenCache) record(outcome string) {
	if c.observer != nil {
		c.observer.RecordClientTokenRefresh(outcome)
	}
}
