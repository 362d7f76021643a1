package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/olibranch/platform/internal/models"
)

// MemoryStore keeps sessions in process memory. It backs the ephemeral
// scope: everything in it is gone when the server stops, the same way a
// browser's session storage dies with the tab.
type MemoryStore struct {
	mu      sync.RWMutex
	byToken map[string]*models.Session
}

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byToken: make(map[string]*models.Session)}
}

// Create inserts a session
func (s *MemoryStore) Create(session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	s.byToken[session.Token] = &copied
	return nil
}

// GetByToken returns the session for token, or nil when absent
func (s *MemoryStore) GetByToken(token string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.byToken[token]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

// DeleteByToken removes the session for token, if any
func (s *MemoryStore) DeleteByToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byToken, token)
	return nil
}

// DeleteByUserID removes all sessions belonging to userID
func (s *MemoryStore) DeleteByUserID(userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, session := range s.byToken {
		if session.UserID == userID {
			delete(s.byToken, token)
		}
	}
	return nil
}

// DeleteExpired removes all expired sessions
func (s *MemoryStore) DeleteExpired() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, session := range s.byToken {
		if session.IsExpired() {
			delete(s.byToken, token)
		}
	}
	return nil
}

// Len reports the number of stored sessions
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byToken)
}
