package sessions

import (
	"fmt"
	"sync"

	apperrors "github.com/rdsmusic/spotify-backend/internal/errors"
)

// InMemoryRepo is an in-memory implementation of Repo. Sessions live until
// explicit logout or process restart; there is no TTL eviction.
type InMemoryRepo struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewInMemoryRepo creates a new in-memory session repository
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		sessions: make(map[string]Session),
	}
}

// Upsert creates or replaces a session
func (r *InMemoryRepo) Upsert(userID string, session Session) error {
	if userID == "" {
		return fmt.Errorf("userID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[userID] = session
	return nil
}

// Get retrieves a session by user id
func (r *InMemoryRepo) Get(userID string) (Session, error) {
	if userID == "" {
		return Session{}, fmt.Errorf("userID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[userID]
	if !ok {
		return Session{}, apperrors.ErrSessionNotFound
	}
	return session, nil
}

// Delete removes a session. Idempotent.
func (r *InMemoryRepo) Delete(userID string) error {
	if userID == "" {
		return fmt.Errorf("userID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, userID)
	return nil
}
