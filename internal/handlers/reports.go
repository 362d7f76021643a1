package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/olibranch/platform/internal/middleware"
	"github.com/olibranch/platform/internal/models"
	"github.com/shopspring/decimal"
)

type createReportRequest struct {
	Title              string          `json:"title"`
	MonthlyRevenue     decimal.Decimal `json:"monthly_revenue"`
	MonthlyBankingFees decimal.Decimal `json:"monthly_banking_fees"`
	AnnualFees         decimal.Decimal `json:"annual_fees"`
	EstimatedSavings   decimal.Decimal `json:"estimated_savings"`
	Grade              string          `json:"grade"`
}

// Reports routes /api/reports by method.
func (h *Handler) Reports(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listReports(w, r)
	case http.MethodPost:
		h.createReport(w, r)
	case http.MethodDelete:
		h.deleteReport(w, r)
	default:
		h.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) listReports(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	reports, err := h.reportRepo.GetByUserID(user.ID)
	if err != nil {
		h.jsonError(w, "Could not load reports", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"reports": reports})
}

func (h *Handler) createReport(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createReportRequest
	if err := h.decode(r, &req); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "Fee audit"
	}

	report := models.NewReport(user.ID, title)
	report.MonthlyRevenue = req.MonthlyRevenue
	report.MonthlyBankingFees = req.MonthlyBankingFees
	report.AnnualFees = req.AnnualFees
	report.EstimatedSavings = req.EstimatedSavings
	report.Grade = req.Grade

	if err := h.reportRepo.Create(report); err != nil {
		h.jsonError(w, "Could not save report", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusCreated, report)
}

func (h *Handler) deleteReport(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		h.jsonError(w, "Invalid report ID", http.StatusBadRequest)
		return
	}

	// Ownership check before delete
	report, err := h.reportRepo.GetByID(id)
	if err != nil {
		h.jsonError(w, "Could not load report", http.StatusInternalServerError)
		return
	}
	if report == nil || report.UserID != user.ID {
		h.jsonError(w, "Report not found", http.StatusNotFound)
		return
	}

	if err := h.reportRepo.Delete(id); err != nil {
		h.jsonError(w, "Could not delete report", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
