package server

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	apperrors "github.com/rdsmusic/spotify-backend/internal/errors"
	"github.com/rdsmusic/spotify-backend/sessions"
)

// stateTTL bounds how long an issued CSRF state stays outstanding. Orphans
// from abandoned logins are swept lazily on the next login request.
const stateTTL = 10 * time.Minute

// callbackUser is the public part of the profile included in the frontend
// redirect payload.
type callbackUser struct {
	ID           string `json:"id"`
	DisplayName  string `json:"display_name"`
	Email        string `json:"email"`
	ProfileImage string `json:"profile_image"`
}

type callbackPayload struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    callbackUser `json:"user"`
}

// sessionView is the session as surfaced to the client: everything except
// the provider access/refresh tokens, which never cross the boundary.
type sessionView struct {
	ID           string    `json:"id"`
	DisplayName  string    `json:"display_name"`
	Email        string    `json:"email"`
	Country      string    `json:"country"`
	ProfileImage string    `json:"profile_image"`
	ExpiresIn    int64     `json:"expires_in"`
	CreatedAt    time.Time `json:"created_at"`
}

// LoginHandler redirects the browser to the Spotify login page with a
// freshly issued CSRF state.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.states.DeleteExpired(time.Now().Add(-stateTTL))

		state, err := s.states.Issue()
		if err != nil {
			log.Err(err).Msg("failed to issue CSRF state")
			writeError(w, http.StatusInternalServerError, "failed to start login")
			return
		}

		s.metrics.RecordLogin()
		http.Redirect(w, r, s.flow.AuthorizationURL(state), http.StatusFound)
	}
}

// CallbackHandler completes the authorization-code flow. Each step is
// attempted exactly once; any failure aborts the login.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		if errParam := query.Get("error"); errParam != "" {
			s.metrics.RecordCallback("provider_error")
			writeError(w, http.StatusBadRequest, apperrors.ErrProviderAuthorization.Error()+": "+errParam)
			return
		}

		if !s.states.Consume(query.Get("state")) {
			s.metrics.RecordCallback("invalid_state")
			writeError(w, http.StatusBadRequest, apperrors.ErrInvalidState.Error())
			return
		}

		code := query.Get("code")
		if code == "" {
			s.metrics.RecordCallback("missing_code")
			writeError(w, http.StatusBadRequest, apperrors.ErrMissingCode.Error())
			return
		}

		pair, err := s.flow.Exchange(r.Context(), code)
		if err != nil {
			s.metrics.RecordCallback("exchange_failed")
			log.Err(err).Msg("token exchange failed")
			writeError(w, http.StatusInternalServerError, "authentication failed: "+err.Error())
			return
		}

		profile, err := s.api.Me(r.Context(), pair.AccessToken)
		if err != nil {
			s.metrics.RecordCallback("profile_failed")
			log.Err(err).Msg("profile fetch failed")
			writeError(w, http.StatusInternalServerError, "authentication failed: "+err.Error())
			return
		}

		sessionToken, err := s.issuer.Issue(profile.ID)
		if err != nil {
			s.metrics.RecordCallback("token_issue_failed")
			log.Err(err).Msg("session token issue failed")
			writeError(w, http.StatusInternalServerError, "authentication failed")
			return
		}

		session := sessions.Session{
			UserID:          profile.ID,
			DisplayName:     profile.DisplayName,
			Email:           profile.Email,
			Country:         profile.Country,
			ProfileImageURL: profile.ProfileImageURL(),
			AccessToken:     pair.AccessToken,
			RefreshToken:    pair.RefreshToken,
			ExpiresIn:       pair.ExpiresIn,
			SessionToken:    sessionToken,
			CreatedAt:       time.Now(),
		}
		if err := s.sessions.Upsert(profile.ID, session); err != nil {
			s.metrics.RecordCallback("session_store_failed")
			log.Err(err).Msg("failed to store session")
			writeError(w, http.StatusInternalServerError, "authentication failed")
			return
		}

		payload, err := json.Marshal(callbackPayload{
			Success: true,
			Token:   sessionToken,
			User: callbackUser{
				ID:           profile.ID,
				DisplayName:  profile.DisplayName,
				Email:        profile.Email,
				ProfileImage: profile.ProfileImageURL(),
			},
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "authentication failed")
			return
		}

		s.metrics.RecordCallback("success")
		log.Info().Str("user_id", profile.ID).Msg("user logged in")

		redirectURL := s.config.FrontendCallbackURL + "?data=" +
			url.QueryEscape(base64.StdEncoding.EncodeToString(payload))
		http.Redirect(w, r, redirectURL, http.StatusFound)
	}
}

// MeHandler returns the authenticated user's session data, minus the
// provider tokens.
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := s.sessions.Get(userIDFromContext(r.Context()))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "user not found or session expired")
			return
		}

		writeJSON(w, http.StatusOK, map[string]sessionView{"user": {
			ID:           session.UserID,
			DisplayName:  session.DisplayName,
			Email:        session.Email,
			Country:      session.Country,
			ProfileImage: session.ProfileImageURL,
			ExpiresIn:    session.ExpiresIn,
			CreatedAt:    session.CreatedAt,
		}})
	}
}

// LogoutHandler deletes the user's session. The session token remains
// cryptographically valid until expiry but no longer matches a session.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromContext(r.Context())
		if err := s.sessions.Delete(userID); err != nil {
			log.Err(err).Str("user_id", userID).Msg("failed to delete session")
			writeError(w, http.StatusInternalServerError, "logout failed")
			return
		}

		log.Info().Str("user_id", userID).Msg("user logged out")
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "logged out successfully",
		})
	}
}
