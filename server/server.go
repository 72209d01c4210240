package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/rdsmusic/spotify-backend/internal/config"
	"github.com/rdsmusic/spotify-backend/internal/metrics"
	"github.com/rdsmusic/spotify-backend/server/statestore"
	"github.com/rdsmusic/spotify-backend/sessions"
	"github.com/rdsmusic/spotify-backend/spotify"
	"github.com/rdsmusic/spotify-backend/token"
)

// Deps are the collaborators the handlers need. Each is one explicitly
// constructed instance shared by all requests; tests construct fresh ones.
type Deps struct {
	Flow         *spotify.AuthFlow
	API          *spotify.Client
	ClientTokens *spotify.ClientTokenCache
	Sessions     sessions.Repo
	States       statestore.Repo
	Issuer       *token.Issuer
	Verifier     *token.Verifier
	Metrics      *metrics.Collector
}

type Server struct {
	env     string
	mux     *http.ServeMux
	routes  []string
	config  *config.Config
	limiter *ipRateLimiter

	flow         *spotify.AuthFlow
	api          *spotify.Client
	clientTokens *spotify.ClientTokenCache
	sessions     sessions.Repo
	states       statestore.Repo
	issuer       *token.Issuer
	verifier     *token.Verifier
	metrics      *metrics.Collector
}

func New(cfg *config.Config, deps Deps) *Server {
	s := &Server{
		env:          cfg.Env,
		mux:          http.NewServeMux(),
		config:       cfg,
		limiter:      newIPRateLimiter(authRateLimit, authRateBurst),
		flow:         deps.Flow,
		api:          deps.API,
		clientTokens: deps.ClientTokens,
		sessions:     deps.Sessions,
		states:       deps.States,
		issuer:       deps.Issuer,
		verifier:     deps.Verifier,
		metrics:      deps.Metrics,
	}

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		log.Debug().Str("route", route).Msg("registered")
	}
}
