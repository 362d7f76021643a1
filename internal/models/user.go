// Package models defines core domain types
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered business owner.
// Email is stored normalized (trimmed, lower-cased); uniqueness is
// case-insensitive.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize to JSON
	Name         string    `json:"name"`

	// Business profile
	BusinessName       string          `json:"business_name"`
	EntityType         string          `json:"entity_type"`
	AccountType        string          `json:"account_type"`
	MonthlyRevenue     decimal.Decimal `json:"monthly_revenue"`
	MonthlyBankingFees decimal.Decimal `json:"monthly_banking_fees"`
	ZipCode            string          `json:"zip_code"`
	CashDeposits       bool            `json:"cash_deposits"`
	FundingInterest    bool            `json:"funding_interest"`
	IsVeteran          bool            `json:"is_veteran"`
	IsImmigrant        bool            `json:"is_immigrant"`

	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates a new user with generated ID, default role and timestamps
func NewUser(email, name, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:                 uuid.New(),
		Email:              email,
		Name:               name,
		PasswordHash:       passwordHash,
		MonthlyRevenue:     decimal.Zero,
		MonthlyBankingFees: decimal.Zero,
		Role:               RoleUser,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// PublicUser is the shape of a user that is safe to expose to clients.
// It never carries credential material.
type PublicUser struct {
	ID                 uuid.UUID       `json:"id"`
	Email              string          `json:"email"`
	Name               string          `json:"name"`
	BusinessName       string          `json:"business_name"`
	EntityType         string          `json:"entity_type"`
	AccountType        string          `json:"account_type"`
	MonthlyRevenue     decimal.Decimal `json:"monthly_revenue"`
	MonthlyBankingFees decimal.Decimal `json:"monthly_banking_fees"`
	ZipCode            string          `json:"zip_code"`
	CashDeposits       bool            `json:"cash_deposits"`
	FundingInterest    bool            `json:"funding_interest"`
	IsVeteran          bool            `json:"is_veteran"`
	IsImmigrant        bool            `json:"is_immigrant"`
	Role               string          `json:"role"`
	CreatedAt          time.Time       `json:"created_at"`
}

// Public returns the public shape of the user
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:                 u.ID,
		Email:              u.Email,
		Name:               u.Name,
		BusinessName:       u.BusinessName,
		EntityType:         u.EntityType,
		AccountType:        u.AccountType,
		MonthlyRevenue:     u.MonthlyRevenue,
		MonthlyBankingFees: u.MonthlyBankingFees,
		ZipCode:            u.ZipCode,
		CashDeposits:       u.CashDeposits,
		FundingInterest:    u.FundingInterest,
		IsVeteran:          u.IsVeteran,
		IsImmigrant:        u.IsImmigrant,
		Role:               u.Role,
		CreatedAt:          u.CreatedAt,
	}
}

// Session represents an active user session
type Session struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Token      string    `json:"-"`
	Remembered bool      `json:"remembered"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// IsExpired checks if the session has expired.
// A session without an expiry is treated as expired (fail closed).
func (s *Session) IsExpired() bool {
	if s.ExpiresAt.IsZero() {
		return true
	}
	return time.Now().UTC().After(s.ExpiresAt)
}
