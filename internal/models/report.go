package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Report is a saved fee-audit result for a user
type Report struct {
	ID                 uuid.UUID       `json:"id"`
	UserID             uuid.UUID       `json:"user_id"`
	Title              string          `json:"title"`
	MonthlyRevenue     decimal.Decimal `json:"monthly_revenue"`
	MonthlyBankingFees decimal.Decimal `json:"monthly_banking_fees"`
	AnnualFees         decimal.Decimal `json:"annual_fees"`
	EstimatedSavings   decimal.Decimal `json:"estimated_savings"`
	Grade              string          `json:"grade"`
	CreatedAt          time.Time       `json:"created_at"`
}

// NewReport creates a report with generated ID and timestamp
func NewReport(userID uuid.UUID, title string) *Report {
	return &Report{
		ID:                 uuid.New(),
		UserID:             userID,
		Title:              title,
		MonthlyRevenue:     decimal.Zero,
		MonthlyBankingFees: decimal.Zero,
		AnnualFees:         decimal.Zero,
		EstimatedSavings:   decimal.Zero,
		CreatedAt:          time.Now().UTC(),
	}
}
