package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	apperrors "github.com/rdsmusic/spotify-backend/internal/errors"
	"github.com/rdsmusic/spotify-backend/spotify"
)

// ClientTokenHandler hands out the shared application-level bearer token.
func (s *Server) ClientTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := s.clientTokens.Token(r.Context())
		if err != nil {
			s.writeTokenError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"token": token})
	}
}

// TokenHealthHandler reports the state of the client-credentials cache
// without forcing a refresh.
func (s *Server) TokenHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		held, expiresAt := s.clientTokens.Status()
		payload := map[string]interface{}{
			"status":       "ok",
			"token_cached": held,
		}
		if held {
			payload["expires_at"] = expiresAt.UTC().Format(time.RFC3339)
		}
		writeJSON(w, http.StatusOK, payload)
	}
}

// SearchHandler proxies the Spotify search endpoint with the cached
// client-credentials token.
func (s *Server) SearchHandler() http.HandlerFunc {
	return s.searchHandler("")
}

// SearchTracksHandler searches tracks only.
func (s *Server) SearchTracksHandler() http.HandlerFunc {
	return s.searchHandler("track")
}

// SearchArtistsHandler searches artists only.
func (s *Server) SearchArtistsHandler() http.HandlerFunc {
	return s.searchHandler("artist")
}

func (s *Server) searchHandler(fixedType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		q := query.Get("q")
		if q == "" {
			writeError(w, http.StatusBadRequest, "missing query parameter 'q'")
			return
		}

		types := fixedType
		if types == "" {
			types = sanitizeSearchTypes(query.Get("type"))
			if types == "" {
				writeError(w, http.StatusBadRequest, "invalid search type; use 'track' and/or 'artist'")
				return
			}
		}

		limit, _ := strconv.Atoi(query.Get("limit"))

		token, err := s.clientTokens.Token(r.Context())
		if err != nil {
			s.writeTokenError(w, err)
			return
		}

		results, err := s.api.Search(r.Context(), token, q, types, limit)
		if err != nil {
			log.Err(err).Str("query", q).Msg("search failed")
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		payload := map[string]interface{}{}
		if strings.Contains(types, "track") {
			payload["tracks"] = emptyIfNilTracks(results.Tracks)
		}
		if strings.Contains(types, "artist") {
			payload["artists"] = emptyIfNilArtists(results.Artists)
		}
		writeJSON(w, http.StatusOK, payload)
	}
}

// sanitizeSearchTypes keeps only the supported type names, defaulting to
// both when the parameter is absent.
func sanitizeSearchTypes(raw string) string {
	if raw == "" {
		return "track,artist"
	}

	var kept []string
	for _, t := range strings.Split(raw, ",") {
		switch strings.TrimSpace(t) {
		case "track", "artist":
			kept = append(kept, strings.TrimSpace(t))
		}
	}
	return strings.Join(kept, ",")
}

func (s *Server) writeTokenError(w http.ResponseWriter, err error) {
	if !apperrors.Is(err, apperrors.ErrCredentialsNotConfigured) {
		log.Err(err).Msg("client token unavailable")
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func emptyIfNilTracks(tracks []spotify.Track) []spotify.Track {
	if tracks == nil {
		return []spotify.Track{}
	}
	return tracks
}

func emptyIfNilArtists(artists []spotify.Artist) []spotify.Artist {
	if artists == nil {
		return []spotify.Artist{}
	}
	return artists
}
