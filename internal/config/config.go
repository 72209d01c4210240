package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the full application configuration, loaded once from the
// environment at startup and treated as immutable afterwards.
type Config struct {
	AppName string `env:"APP_NAME" envDefault:"RDS Spotify Backend"`
	Port    string `env:"PORT" envDefault:"8000"`
	Env     string `env:"ENV" envDefault:"DEV"`

	// SecretKey signs the session tokens handed to the frontend.
	SecretKey string `env:"SECRET_KEY" envDefault:"fallback-secret-key-change-in-production"`

	// SessionTokenTTL bounds how long an issued session token verifies.
	SessionTokenTTL time.Duration `env:"SESSION_TOKEN_TTL" envDefault:"168h"`

	// FrontendCallbackURL is where the callback handler redirects the browser
	// after a successful login, with the encoded payload appended.
	FrontendCallbackURL string `env:"FRONTEND_CALLBACK_URL" envDefault:"http://localhost:3000/auth/callback"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000"`

	Spotify Spotify `envPrefix:"SPOTIFY_"`
}

// Spotify holds the provider credentials and endpoints. The URLs default to
// the production Spotify endpoints and are overridable for tests.
type Spotify struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURI  string `env:"REDIRECT_URI" envDefault:"http://localhost:8000/api/auth/callback"`

	AuthURL    string `env:"AUTH_URL" envDefault:"https://accounts.spotify.com/authorize"`
	TokenURL   string `env:"TOKEN_URL" envDefault:"https://accounts.spotify.com/api/token"`
	APIBaseURL string `env:"API_BASE_URL" envDefault:"https://api.spotify.com/v1"`
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	if len(c.Port) > 0 && c.Port[0] == ':' {
		return c.Port
	}
	return ":" + c.Port
}

// IsAllowedOrigin reports whether the given Origin header value may receive
// CORS headers.
func (c *Config) IsAllowedOrigin(origin string) bool {
	for _, o := range c.AllowedOrigins {
		if o == origin || o == "*" {
			return true
		}
	}
	return false
}
