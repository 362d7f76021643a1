package storage

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/olibranch/platform/internal/models"
)

// MemoryUserStore is an in-memory user registry keyed by normalized
// email. It serves tests and demo runs that have no database; the auth
// service only sees the store interface either way.
type MemoryUserStore struct {
	mu      sync.RWMutex
	byEmail map[string]*models.User
}

// NewMemoryUserStore creates an empty in-memory user store
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{byEmail: make(map[string]*models.User)}
}

// Create inserts a new user, rejecting duplicate emails case-insensitively
func (s *MemoryUserStore) Create(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := NormalizeEmail(user.Email)
	if _, exists := s.byEmail[key]; exists {
		return fmt.Errorf("failed to create user: email %q taken", key)
	}
	user.Email = key
	copied := *user
	s.byEmail[key] = &copied
	return nil
}

// GetByEmail retrieves a user by email, case-insensitively, or nil
func (s *MemoryUserStore) GetByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byEmail[NormalizeEmail(email)]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

// GetByID retrieves a user by ID, or nil
func (s *MemoryUserStore) GetByID(id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.byEmail {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

// EmailExists checks if an email is already registered
func (s *MemoryUserStore) EmailExists(email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byEmail[NormalizeEmail(email)]
	return ok, nil
}

// Update replaces the stored record for the user
func (s *MemoryUserStore) Update(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := NormalizeEmail(user.Email)
	if _, ok := s.byEmail[key]; !ok {
		return fmt.Errorf("user %s not found", user.ID)
	}
	copied := *user
	s.byEmail[key] = &copied
	return nil
}
