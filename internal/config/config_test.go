package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rdsmusic/spotify-backend/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "8000", cfg.Port)
	require.Equal(t, 168*time.Hour, cfg.SessionTokenTTL)
	require.Equal(t, "https://accounts.spotify.com/authorize", cfg.Spotify.AuthURL)
	require.Equal(t, "https://accounts.spotify.com/api/token", cfg.Spotify.TokenURL)
	require.Equal(t, "https://api.spotify.com/v1", cfg.Spotify.APIBaseURL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SECRET_KEY", "env-secret")
	t.Setenv("SPOTIFY_CLIENT_ID", "env-client-id")
	t.Setenv("ALLOWED_ORIGINS", "http://a.example.com,http://b.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "env-secret", cfg.SecretKey)
	require.Equal(t, "env-client-id", cfg.Spotify.ClientID)
	require.Equal(t, []string{"http://a.example.com", "http://b.example.com"}, cfg.AllowedOrigins)
}

func TestAddr(t *testing.T) {
	cfg := &config.Config{Port: "8000"}
	require.Equal(t, ":8000", cfg.Addr())

	cfg.Port = ":8000"
	require.Equal(t, ":8000", cfg.Addr())
}

func TestIsAllowedOrigin(t *testing.T) {
	cfg := &config.Config{AllowedOrigins: []string{"http://localhost:3000"}}
	require.True(t, cfg.IsAllowedOrigin("http://localhost:3000"))
	require.False(t, cfg.IsAllowedOrigin("http://evil.example.com"))

	cfg.AllowedOrigins = []string{"*"}
	require.True(t, cfg.IsAllowedOrigin("http://anything.example.com"))
}
