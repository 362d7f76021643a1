package handlers

import (
	"net/http"

	"github.com/olibranch/platform/internal/middleware"
	"github.com/olibranch/platform/internal/services/audit"
	"github.com/shopspring/decimal"
)

type auditRequest struct {
	MonthlyRevenue     *decimal.Decimal `json:"monthly_revenue"`
	MonthlyBankingFees *decimal.Decimal `json:"monthly_banking_fees"`
	AccountType        string           `json:"account_type"`
	CashDeposits       *bool            `json:"cash_deposits"`
}

// RunAudit audits the posted figures, falling back to the numbers from
// the user's profile for anything omitted.
func (h *Handler) RunAudit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req auditRequest
	if err := h.decode(r, &req); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	in := audit.Input{
		MonthlyRevenue:     user.MonthlyRevenue,
		MonthlyBankingFees: user.MonthlyBankingFees,
		AccountType:        user.AccountType,
		CashDeposits:       user.CashDeposits,
	}
	if req.MonthlyRevenue != nil {
		in.MonthlyRevenue = *req.MonthlyRevenue
	}
	if req.MonthlyBankingFees != nil {
		in.MonthlyBankingFees = *req.MonthlyBankingFees
	}
	if req.AccountType != "" {
		in.AccountType = req.AccountType
	}
	if req.CashDeposits != nil {
		in.CashDeposits = *req.CashDeposits
	}

	result, err := h.auditService.Run(in)
	if err != nil {
		h.jsonError(w, "Audit failed", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// ImportStatement parses an uploaded bank-statement CSV and audits the
// fees found on it.
func (h *Handler) ImportStatement(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		h.jsonError(w, "Invalid upload", http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("statement")
	if err != nil {
		h.jsonError(w, "Missing statement file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	parsed, err := h.importer.Parse(file)
	if err != nil {
		h.jsonError(w, "Could not parse statement: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	result, err := h.auditService.Run(audit.Input{
		MonthlyRevenue:     user.MonthlyRevenue,
		MonthlyBankingFees: parsed.TotalFees,
		AccountType:        user.AccountType,
		CashDeposits:       user.CashDeposits,
		FeeBreakdown:       parsed.ByCategory,
	})
	if err != nil {
		h.jsonError(w, "Audit failed", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"statement": parsed,
		"audit":     result,
	})
}
