package server

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"error": detail})
}

// IndexHandler serves the API welcome document
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Welcome to " + s.config.AppName,
			"endpoints": map[string]string{
				"login":  RouteAuthLogin,
				"token":  RouteSpotifyToken,
				"search": RouteSpotifySearch,
			},
		})
	}
}

// HealthHandler reports process liveness
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": "spotify-api",
		})
	}
}

// ProviderCallbackHandler is the bare redirect target registered with
// Spotify. It forwards the query string untouched to the API callback route.
func (s *Server) ProviderCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target := RouteAuthCallback
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusFound)
	}
}
