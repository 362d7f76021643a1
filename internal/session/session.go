// Package session tracks authenticated sessions across two storage
// scopes: durable (survives a server restart) and ephemeral (lives only
// as long as the process). The scope is selected per login by the
// "remember me" flag.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/olibranch/platform/internal/models"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrExpired  = errors.New("session expired")
)

// Scope identifies which backing store holds a session
type Scope int

const (
	ScopeEphemeral Scope = iota
	ScopeDurable
)

// Store persists sessions for a single scope
type Store interface {
	Create(s *models.Session) error
	// GetByToken returns nil, nil when no session matches.
	GetByToken(token string) (*models.Session, error)
	DeleteByToken(token string) error
	DeleteByUserID(userID uuid.UUID) error
	DeleteExpired() error
}

// Manager owns both scopes and all cross-scope bookkeeping. Callers never
// talk to a Store directly, so the "clear the other scope" rule lives in
// exactly one place.
type Manager struct {
	durable   Store
	ephemeral Store
}

// NewManager creates a session manager over the two scope stores
func NewManager(durable, ephemeral Store) *Manager {
	return &Manager{durable: durable, ephemeral: ephemeral}
}

// Put writes the session to the given scope. Any previous sessions for
// the same user are removed from both scopes first, so at most one
// session per user is ever readable and the most recent login wins.
func (m *Manager) Put(s *models.Session, scope Scope) error {
	if err := m.RevokeUser(s.UserID); err != nil {
		return err
	}

	store := m.ephemeral
	if scope == ScopeDurable {
		store = m.durable
	}
	if err := store.Create(s); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Get looks a token up in the ephemeral scope first, then the durable
// scope. An expired hit is deleted on the spot and reported as ErrExpired,
// so correctness never depends on a sweep having run.
func (m *Manager) Get(token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrNotFound
	}

	for _, store := range []Store{m.ephemeral, m.durable} {
		s, err := store.GetByToken(token)
		if err != nil {
			return nil, err
		}
		if s == nil {
			continue
		}
		if s.IsExpired() {
			if err := store.DeleteByToken(token); err != nil {
				return nil, err
			}
			return nil, ErrExpired
		}
		return s, nil
	}

	return nil, ErrNotFound
}

// Delete removes the token from both scopes unconditionally. Deleting a
// token that does not exist is not an error.
func (m *Manager) Delete(token string) error {
	for _, store := range []Store{m.ephemeral, m.durable} {
		if err := store.DeleteByToken(token); err != nil {
			return err
		}
	}
	return nil
}

// RevokeUser removes all of the user's sessions from both scopes
func (m *Manager) RevokeUser(userID uuid.UUID) error {
	for _, store := range []Store{m.ephemeral, m.durable} {
		if err := store.DeleteByUserID(userID); err != nil {
			return err
		}
	}
	return nil
}

// Cleanup removes expired sessions from both scopes
func (m *Manager) Cleanup() error {
	for _, store := range []Store{m.ephemeral, m.durable} {
		if err := store.DeleteExpired(); err != nil {
			return err
		}
	}
	return nil
}

// NewToken mints an opaque session token: 32 bytes of entropy,
// base64url without padding.
func NewToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
