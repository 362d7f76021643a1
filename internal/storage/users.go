package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/olibranch/platform/internal/models"
	"github.com/shopspring/decimal"
)

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
// All email lookups and uniqueness checks run on this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserRepository provides user data access backed by SQLite
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. The email is stored normalized.
func (r *UserRepository) Create(user *models.User) error {
	user.Email = NormalizeEmail(user.Email)
	query := `
		INSERT INTO users (
			id, email, password_hash, name, business_name, entity_type,
			account_type, monthly_revenue, monthly_banking_fees, zip_code,
			cash_deposits, funding_interest, is_veteran, is_immigrant,
			role, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		user.ID.String(),
		user.Email,
		user.PasswordHash,
		user.Name,
		user.BusinessName,
		user.EntityType,
		user.AccountType,
		user.MonthlyRevenue.String(),
		user.MonthlyBankingFees.String(),
		user.ZipCode,
		user.CashDeposits,
		user.FundingInterest,
		user.IsVeteran,
		user.IsImmigrant,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

const userColumns = `
	id, email, password_hash, name, business_name, entity_type,
	account_type, monthly_revenue, monthly_banking_fees, zip_code,
	cash_deposits, funding_interest, is_veteran, is_immigrant,
	role, created_at, updated_at
`

// GetByID retrieves a user by ID, or nil when absent
func (r *UserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.scanUser(r.db.QueryRow(query, id.String()))
}

// GetByEmail retrieves a user by email, case-insensitively, or nil when
// absent
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return r.scanUser(r.db.QueryRow(query, NormalizeEmail(email)))
}

// EmailExists checks if an email is already registered, case-insensitively
func (r *UserRepository) EmailExists(email string) (bool, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM users WHERE email = ?", NormalizeEmail(email)).Scan(&count)
	return count > 0, err
}

// Update modifies an existing user
func (r *UserRepository) Update(user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE users SET
			password_hash = ?, name = ?, business_name = ?, entity_type = ?,
			account_type = ?, monthly_revenue = ?, monthly_banking_fees = ?,
			zip_code = ?, cash_deposits = ?, funding_interest = ?,
			is_veteran = ?, is_immigrant = ?, role = ?, updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.Exec(query,
		user.PasswordHash,
		user.Name,
		user.BusinessName,
		user.EntityType,
		user.AccountType,
		user.MonthlyRevenue.String(),
		user.MonthlyBankingFees.String(),
		user.ZipCode,
		user.CashDeposits,
		user.FundingInterest,
		user.IsVeteran,
		user.IsImmigrant,
		user.Role,
		user.UpdatedAt,
		user.ID.String(),
	)
	return err
}

// Delete removes a user
func (r *UserRepository) Delete(id uuid.UUID) error {
	_, err := r.db.Exec("DELETE FROM users WHERE id = ?", id.String())
	return err
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	var id, monthlyRevenue, monthlyFees string

	err := row.Scan(
		&id,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.BusinessName,
		&user.EntityType,
		&user.AccountType,
		&monthlyRevenue,
		&monthlyFees,
		&user.ZipCode,
		&user.CashDeposits,
		&user.FundingInterest,
		&user.IsVeteran,
		&user.IsImmigrant,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	user.ID, _ = uuid.Parse(id)
	user.MonthlyRevenue, _ = decimal.NewFromString(monthlyRevenue)
	user.MonthlyBankingFees, _ = decimal.NewFromString(monthlyFees)

	return &user, nil
}
