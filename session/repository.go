package session

import (
	"fmt"
	"sync"
)

// Repository abstracts session record storage so the in-memory table can be
// swapped for a durable backend without changing the Manager. Implementations
// must be safe for concurrent use; no caller may ever observe a torn record.
type Repository interface {
	// Create inserts a new record. Returns ErrSessionExists on a duplicate ID.
	Create(s Session) error
	// Get returns the record for id, or ErrSessionNotFound.
	Get(id string) (Session, error)
	// Update replaces an existing record, or returns ErrSessionNotFound.
	Update(s Session) error
	// Delete removes the record for id, or returns ErrSessionNotFound.
	Delete(id string) error
	// List returns a point-in-time snapshot of all records.
	List() ([]Session, error)
}

// memoryRepository is the default table-wide-locked map backend. Table-wide
// locking is adequate for expected session counts.
type memoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryRepository creates a Repository backed by an in-memory map.
// All state is lost on process restart.
func NewMemoryRepository() Repository {
	return &memoryRepository{sessions: make(map[string]Session)}
}

func (r *memoryRepository) Create(s Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[s.ID]; exists {
		return fmt.Errorf("%w: %s", ErrSessionExists, s.ID)
	}
	r.sessions[s.ID] = s
	return nil
}

func (r *memoryRepository) Get(id string) (Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.sessions[id]
	if !exists {
		return Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

func (r *memoryRepository) Update(s Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[s.ID]; !exists {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, s.ID)
	}
	r.sessions[s.ID] = s
	return nil
}

func (r *memoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[id]; !exists {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(r.sessions, id)
	return nil
}

func (r *memoryRepository) List() ([]Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	return sessions, nil
}
