package sessions

import "time"

// Session is the server-side record of a logged-in user, keyed by the stable
// Spotify user id. Provider tokens live here and are stripped at the HTTP
// boundary, never in storage.
type Session struct {
	// Identity
	UserID          string
	DisplayName     string
	Email           string
	Country         string
	ProfileImageURL string

	// Provider tokens
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64

	// App-issued session token returned to the client
	SessionToken string

	CreatedAt time.Time
}

// Repo is the session store. A session exists here exactly while a session
// token bearing its user id is valid and not yet invalidated by logout.
type Repo interface {
	// Upsert creates or replaces the session for a user (re-login wins)
	Upsert(userID string, session Session) error

	// Get retrieves a session by user id
	Get(userID string) (Session, error)

	// Delete removes the session if present; deleting a missing session is a no-op
	Delete(userID string) error
}
