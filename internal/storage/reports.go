package storage

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/olibranch/platform/internal/models"
	"github.com/shopspring/decimal"
)

// ReportRepository provides audit-report data access
type ReportRepository struct {
	db *DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create inserts a new report
func (r *ReportRepository) Create(report *models.Report) error {
	query := `
		INSERT INTO reports (
			id, user_id, title, monthly_revenue, monthly_banking_fees,
			annual_fees, estimated_savings, grade, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		report.ID.String(),
		report.UserID.String(),
		report.Title,
		report.MonthlyRevenue.String(),
		report.MonthlyBankingFees.String(),
		report.AnnualFees.String(),
		report.EstimatedSavings.String(),
		report.Grade,
		report.CreatedAt,
	)
	return err
}

// GetByID retrieves a report by ID, or nil when absent
func (r *ReportRepository) GetByID(id uuid.UUID) (*models.Report, error) {
	query := `
		SELECT id, user_id, title, monthly_revenue, monthly_banking_fees,
			annual_fees, estimated_savings, grade, created_at
		FROM reports WHERE id = ?
	`
	rows, err := r.db.Query(query, id.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanReport(rows)
}

// GetByUserID retrieves all reports for a user, newest first
func (r *ReportRepository) GetByUserID(userID uuid.UUID) ([]*models.Report, error) {
	query := `
		SELECT id, user_id, title, monthly_revenue, monthly_banking_fees,
			annual_fees, estimated_savings, grade, created_at
		FROM reports WHERE user_id = ? ORDER BY created_at DESC
	`
	rows, err := r.db.Query(query, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*models.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// Delete removes a report
func (r *ReportRepository) Delete(id uuid.UUID) error {
	_, err := r.db.Exec("DELETE FROM reports WHERE id = ?", id.String())
	return err
}

func scanReport(rows *sql.Rows) (*models.Report, error) {
	var report models.Report
	var id, userID, revenue, fees, annual, savings string

	err := rows.Scan(
		&id,
		&userID,
		&report.Title,
		&revenue,
		&fees,
		&annual,
		&savings,
		&report.Grade,
		&report.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan report: %w", err)
	}

	report.ID, _ = uuid.Parse(id)
	report.UserID, _ = uuid.Parse(userID)
	report.MonthlyRevenue, _ = decimal.NewFromString(revenue)
	report.MonthlyBankingFees, _ = decimal.NewFromString(fees)
	report.AnnualFees, _ = decimal.NewFromString(annual)
	report.EstimatedSavings, _ = decimal.NewFromString(savings)

	return &report, nil
}
