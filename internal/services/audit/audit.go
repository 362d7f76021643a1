// Package audit computes banking-fee audits for small businesses
package audit

import (
	"fmt"

	"github.com/olibranch/platform/internal/services/bankrates"
	"github.com/shopspring/decimal"
)

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// Input holds the figures under audit. Amounts are monthly.
type Input struct {
	MonthlyRevenue     decimal.Decimal            `json:"monthly_revenue"`
	MonthlyBankingFees decimal.Decimal            `json:"monthly_banking_fees"`
	AccountType        string                     `json:"account_type"`
	CashDeposits       bool                       `json:"cash_deposits"`
	FeeBreakdown       map[string]decimal.Decimal `json:"fee_breakdown,omitempty"`
}

// Result is the outcome of a fee audit
type Result struct {
	AnnualFees       decimal.Decimal            `json:"annual_fees"`
	FeeToRevenuePct  decimal.Decimal            `json:"fee_to_revenue_pct"`
	BenchmarkMonthly decimal.Decimal            `json:"benchmark_monthly_fee"`
	MonthlyOverage   decimal.Decimal            `json:"monthly_overage"`
	EstimatedSavings decimal.Decimal            `json:"estimated_annual_savings"`
	Grade            string                     `json:"grade"`
	FeeBreakdown     map[string]decimal.Decimal `json:"fee_breakdown,omitempty"`
	BenchmarkAccount string                     `json:"benchmark_account_type"`
}

// Service runs fee audits against benchmark data
type Service struct {
	rates *bankrates.Service
}

// NewService creates a new audit service
func NewService(rates *bankrates.Service) *Service {
	return &Service{rates: rates}
}

// Run audits the given figures. Savings are floored at zero: paying less
// than the benchmark is reported as no savings opportunity, not a
// negative one.
func (s *Service) Run(in Input) (*Result, error) {
	benchmark, err := s.rates.GetBenchmark(in.AccountType)
	if err != nil {
		return nil, fmt.Errorf("failed to load benchmark: %w", err)
	}

	expected := benchmark.MonthlyFee
	if in.CashDeposits {
		expected = expected.Add(benchmark.CashHandlingFee)
	}

	annualFees := in.MonthlyBankingFees.Mul(twelve)

	ratio := decimal.Zero
	if in.MonthlyRevenue.IsPositive() {
		ratio = in.MonthlyBankingFees.Div(in.MonthlyRevenue).Mul(hundred).Round(4)
	}

	overage := in.MonthlyBankingFees.Sub(expected)
	if overage.IsNegative() {
		overage = decimal.Zero
	}

	return &Result{
		AnnualFees:       annualFees,
		FeeToRevenuePct:  ratio,
		BenchmarkMonthly: expected,
		MonthlyOverage:   overage,
		EstimatedSavings: overage.Mul(twelve),
		Grade:            grade(in.MonthlyRevenue, in.MonthlyBankingFees, ratio, expected),
		FeeBreakdown:     in.FeeBreakdown,
		BenchmarkAccount: benchmark.AccountType,
	}, nil
}

// grade maps the fee-to-revenue ratio to a letter grade. Without revenue
// figures it falls back to comparing fees against the benchmark.
func grade(revenue, fees, ratio decimal.Decimal, expected decimal.Decimal) string {
	if !revenue.IsPositive() {
		switch {
		case !fees.IsPositive():
			return "A"
		case fees.LessThanOrEqual(expected):
			return "B"
		case fees.LessThanOrEqual(expected.Mul(decimal.NewFromInt(2))):
			return "C"
		default:
			return "D"
		}
	}

	switch {
	case ratio.LessThanOrEqual(decimal.NewFromFloat(0.10)):
		return "A"
	case ratio.LessThanOrEqual(decimal.NewFromFloat(0.25)):
		return "B"
	case ratio.LessThanOrEqual(decimal.NewFromFloat(0.50)):
		return "C"
	case ratio.LessThanOrEqual(decimal.NewFromInt(1)):
		return "D"
	default:
		return "F"
	}
}
