package statestore

import (
	"sync"
	"time"
)

// InMemoryRepo is a thread-safe in-memory implementation of the Repo interface
type InMemoryRepo struct {
	mu     sync.Mutex
	states map[string]time.Time // state -> issued at
	now    func() time.Time
}

// NewInMemoryRepo creates a new in-memory CSRF state repository
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		states: make(map[string]time.Time),
		now:    time.Now,
	}
}

// Issue generates and records a new outstanding state
func (r *InMemoryRepo) Issue() (string, error) {
	state, err := generateState()
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.states[state] = r.now()
	return state, nil
}

// Validate reports whether state is outstanding
func (r *InMemoryRepo) Validate(state string) bool {
	if state == "" {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.states[state]
	return ok
}

// Consume validates and removes state in one step
func (r *InMemoryRepo) Consume(state string) bool {
	if state == "" {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.states[state]
	if ok {
		delete(r.states, state)
	}
	return ok
}

// DeleteExpired removes states issued before cutoff
func (r *InMemoryRepo) DeleteExpired(cutoff time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for state, issuedAt := range r.states {
		if issuedAt.Before(cutoff) {
			delete(r.states, state)
		}
	}
}

// Len returns the number of outstanding states. For tests and metrics.
func (r *InMemoryRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}
