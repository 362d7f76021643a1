package storage

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/olibranch/platform/internal/models"
)

// SessionRepository provides session data access backed by SQLite.
// It implements session.Store and backs the durable scope: rows survive
// a server restart the way a browser's local storage survives a reopen.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session
func (r *SessionRepository) Create(session *models.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, token, remembered, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		session.ID.String(),
		session.UserID.String(),
		session.Token,
		session.Remembered,
		session.ExpiresAt,
		session.CreatedAt,
	)
	return err
}

// GetByToken retrieves a session by token, or nil when absent
func (r *SessionRepository) GetByToken(token string) (*models.Session, error) {
	query := `
		SELECT id, user_id, token, remembered, expires_at, created_at
		FROM sessions WHERE token = ?
	`
	var session models.Session
	var id, userID string

	err := r.db.QueryRow(query, token).Scan(
		&id,
		&userID,
		&session.Token,
		&session.Remembered,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	session.ID, _ = uuid.Parse(id)
	session.UserID, _ = uuid.Parse(userID)

	return &session, nil
}

// DeleteByToken removes the session with the given token
func (r *SessionRepository) DeleteByToken(token string) error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE token = ?", token)
	return err
}

// DeleteByUserID removes all sessions for a user
func (r *SessionRepository) DeleteByUserID(userID uuid.UUID) error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE user_id = ?", userID.String())
	return err
}

// DeleteExpired removes all expired sessions
func (r *SessionRepository) DeleteExpired() error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE expires_at < ?", time.Now().UTC())
	return err
}
