package spotify_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rdsmusic/spotify-backend/internal/config"
	apperrors "github.com/rdsmusic/spotify-backend/internal/errors"
	"github.com/rdsmusic/spotify-backend/spotify"
)

type refreshCounter struct {
	success int32
	failure int32
}

func (rc *refreshCounter) RecordClientTokenRefresh(outcome string) {
	if outcome == "success" {
		atomic.AddInt32(&rc.success, 1)
	} else {
		atomic.AddInt32(&rc.failure, 1)
	}
}

// newTokenEndpoint fakes the provider's token endpoint and counts exchanges.
func newTokenEndpoint(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)

		_, _, ok := r.BasicAuth()
		require.True(t, ok, "client credentials must be Basic-auth-encoded")
		require.NoError(t, r.ParseForm())
		require.Equal(t, "client_credentials", r.FormValue("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"app-token","token_type":"Bearer","expires_in":3600}`))
	}))
}

func testSpotifyConfig(tokenURL string) config.Spotify {
	return config.Spotify{
		ClientID:     "test-client-id",
		ClientSecret: "test-client-secret",
		TokenURL:     tokenURL,
	}
}

func TestTokenCachedWithinLifetime(t *testing.T) {
	var calls int32
	ts := newTokenEndpoint(t, &calls)
	defer ts.Close()

	counter := &refreshCounter{}
	cache := spotify.NewClientTokenCache(testSpotifyConfig(ts.URL), counter)

	first, err := cache.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, "app-token", first)

	second, err := cache.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, first, second)

	require.Equal(t, int32(1), atomic.LoadInt32(&calls), "second call must be served from the cache")
	require.Equal(t, int32(1), atomic.LoadInt32(&counter.success))
}

func TestClearForcesRefresh(t *testing.T) {
	var calls int32
	ts := newTokenEndpoint(t, &calls)
	defer ts.Close()

	cache := spotify.NewClientTokenCache(testSpotifyConfig(ts.URL), nil)

	_, err := cache.Token(context.Background())
	require.NoError(t, err)

	cache.Clear()
	held, _ := cache.Status()
	require.False(t, held)

	_, err = cache.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestStatusReportsExpiry(t *testing.T) {
	var calls int32
	ts := newTokenEndpoint(t, &calls)
	defer ts.Close()

	cache := spotify.NewClientTokenCache(testSpotifyConfig(ts.URL), nil)

	held, _ := cache.Status()
	require.False(t, held)

	_, err := cache.Token(context.Background())
	require.NoError(t, err)

	held, expiresAt := cache.Status()
	require.True(t, held)
	require.False(t, expiresAt.IsZero())
}

func TestTokenUpstreamFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
	}))
	defer ts.Close()

	counter := &refreshCounter{}
	cache := spotify.NewClientTokenCache(testSpotifyConfig(ts.URL), counter)

	_, err := cache.Token(context.Background())
	require.ErrorIs(t, err, apperrors.ErrUpstreamAuth)

	var upstream *spotify.UpstreamError
	require.ErrorAs(t, err, &upstream)
	require.Equal(t, http.StatusUnauthorized, upstream.StatusCode)
	require.Contains(t, upstream.Body, "invalid_client")
	require.Equal(t, int32(1), atomic.LoadInt32(&counter.failure))
}

func TestTokenCredentialsNotConfigured(t *testing.T) {
	cache := spotify.NewClientTokenCache(config.Spotify{TokenURL: "http://127.0.0.1:0"}, nil)

	_, err := cache.Token(context.Background())
	require.ErrorIs(t, err, apperrors.ErrCredentialsNotConfigured)
}
