// Package auth provides authentication services
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/olibranch/platform/internal/config"
	"github.com/olibranch/platform/internal/models"
	"github.com/olibranch/platform/internal/session"
	"github.com/olibranch/platform/internal/storage"
	"github.com/olibranch/platform/internal/validate"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so a caller cannot probe which half failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrSessionExpired     = errors.New("session expired")
	ErrInvalidToken       = errors.New("invalid token")
)

// ValidationError carries per-field messages from the form validators
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

// UserStore is the user registry the service operates on
type UserStore interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id uuid.UUID) (*models.User, error)
	EmailExists(email string) (bool, error)
	Update(user *models.User) error
}

// Service handles authentication operations
type Service struct {
	cfg      *config.Config
	users    UserStore
	sessions *session.Manager
	rules    validate.Rules
}

// NewService creates a new auth service
func NewService(cfg *config.Config, users UserStore, sessions *session.Manager) *Service {
	rules := validate.DefaultRules
	rules.PasswordMinLength = cfg.PasswordMinLength
	return &Service{
		cfg:      cfg,
		users:    users,
		sessions: sessions,
		rules:    rules,
	}
}

// RegisterInput contains registration data
type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	Name            string

	BusinessName       string
	EntityType         string
	AccountType        string
	MonthlyRevenue     decimal.Decimal
	MonthlyBankingFees decimal.Decimal
	ZipCode            string
	CashDeposits       bool
	FundingInterest    bool
	IsVeteran          bool
	IsImmigrant        bool
}

// Register creates a new user account and returns its public shape
func (s *Service) Register(input RegisterInput) (*models.PublicUser, error) {
	res := s.rules.RegistrationForm(validate.Registration{
		Email:           input.Email,
		Password:        input.Password,
		ConfirmPassword: input.ConfirmPassword,
		Name:            input.Name,
	})
	if !res.Valid {
		return nil, &ValidationError{Fields: res.Errors}
	}

	email := storage.NormalizeEmail(input.Email)
	exists, err := s.users.EmailExists(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(email, input.Name, string(hash))
	user.BusinessName = input.BusinessName
	user.EntityType = input.EntityType
	user.AccountType = input.AccountType
	user.MonthlyRevenue = input.MonthlyRevenue
	user.MonthlyBankingFees = input.MonthlyBankingFees
	user.ZipCode = input.ZipCode
	user.CashDeposits = input.CashDeposits
	user.FundingInterest = input.FundingInterest
	user.IsVeteran = input.IsVeteran
	user.IsImmigrant = input.IsImmigrant

	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user.Public(), nil
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	User    *models.PublicUser
	Token   string
	Expires time.Time
}

// Login authenticates a user and creates a session. The rememberMe flag
// picks the session scope: durable sessions survive a server restart and
// live 30 days, ephemeral ones die with the process and live 24 hours
// (both configurable).
func (s *Service) Login(email, password string, rememberMe bool) (*LoginResult, error) {
	user, err := s.users.GetByEmail(storage.NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := session.NewToken()
	if err != nil {
		return nil, fmt.Errorf("failed to create token: %w", err)
	}

	ttl := s.cfg.SessionDuration
	scope := session.ScopeEphemeral
	if rememberMe {
		ttl = s.cfg.RememberMeDuration
		scope = session.ScopeDurable
	}

	now := time.Now().UTC()
	sess := &models.Session{
		ID:         uuid.New(),
		UserID:     user.ID,
		Token:      token,
		Remembered: rememberMe,
		ExpiresAt:  now.Add(ttl),
		CreatedAt:  now,
	}
	if err := s.sessions.Put(sess, scope); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &LoginResult{
		User:    user.Public(),
		Token:   token,
		Expires: sess.ExpiresAt,
	}, nil
}

// CurrentSession resolves a token to its live session. Expired sessions
// are cleared by the read and reported as ErrSessionExpired.
func (s *Service) CurrentSession(token string) (*models.Session, error) {
	sess, err := s.sessions.Get(token)
	if err == session.ErrNotFound {
		return nil, ErrInvalidToken
	}
	if err == session.ErrExpired {
		return nil, ErrSessionExpired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	return sess, nil
}

// CurrentUser resolves a token to the public shape of its user
func (s *Service) CurrentUser(token string) (*models.PublicUser, error) {
	sess, err := s.CurrentSession(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	return user.Public(), nil
}

// Logout removes the session for token from both scopes. Logging out an
// already logged-out token is a no-op.
func (s *Service) Logout(token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(token)
}

// ChangePassword updates a user's password and revokes all sessions
func (s *Service) ChangePassword(userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := s.users.GetByID(userID)
	if err != nil || user == nil {
		return ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	if !s.rules.ValidPassword(newPassword) {
		return &ValidationError{Fields: map[string]string{
			"password": fmt.Sprintf("Password must be at least %d characters", s.rules.PasswordMinLength),
		}}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	if err := s.users.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return s.sessions.RevokeUser(userID)
}

// CreateResetToken mints a short-lived signed token for the password
// reset flow. An unknown email yields an empty token and no error so the
// HTTP layer can answer identically either way.
func (s *Service) CreateResetToken(email string) (string, error) {
	user, err := s.users.GetByEmail(storage.NormalizeEmail(email))
	if err != nil {
		return "", fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return "", nil
	}

	claims := jwt.MapClaims{
		"sub":     user.ID.String(),
		"purpose": "password_reset",
		"exp":     time.Now().Add(s.cfg.ResetTokenDuration).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SecretKey))
}

// ResetPassword verifies a reset token, sets the new password and
// revokes all of the user's sessions.
func (s *Service) ResetPassword(tokenString, newPassword string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ErrInvalidToken
	}
	if purpose, _ := claims["purpose"].(string); purpose != "password_reset" {
		return ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return ErrInvalidToken
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return ErrInvalidToken
	}

	if !s.rules.ValidPassword(newPassword) {
		return &ValidationError{Fields: map[string]string{
			"password": fmt.Sprintf("Password must be at least %d characters", s.rules.PasswordMinLength),
		}}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	if err := s.users.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return s.sessions.RevokeUser(userID)
}

// CleanupExpiredSessions sweeps expired sessions from both scopes
func (s *Service) CleanupExpiredSessions() error {
	return s.sessions.Cleanup()
}
