package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/olibranch/platform/internal/middleware"
	"github.com/olibranch/platform/internal/services/auth"
	"github.com/shopspring/decimal"
)

type signupRequest struct {
	Email              string          `json:"email"`
	Password           string          `json:"password"`
	ConfirmPassword    string          `json:"confirm_password"`
	FullName           string          `json:"full_name"`
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
}

// Signup registers a new account and logs it straight in
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req signupRequest
	if err := h.decode(r, &req); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.authService.Register(auth.RegisterInput{
		Email:              req.Email,
		Password:           req.Password,
		ConfirmPassword:    req.ConfirmPassword,
		Name:               req.FullName,
		BusinessName:       req.BusinessName,
		EntityType:         req.EntityType,
		AccountType:        req.AccountType,
		MonthlyRevenue:     req.MonthlyRevenue,
		MonthlyBankingFees: req.MonthlyBankingFees,
		ZipCode:            req.ZipCode,
		CashDeposits:       req.CashDeposits,
		FundingInterest:    req.FundingInterest,
		IsVeteran:          req.IsVeteran,
		IsImmigrant:        req.IsImmigrant,
	})
	if err != nil {
		var verr *auth.ValidationError
		switch {
		case errors.As(err, &verr):
			h.jsonFieldErrors(w, verr.Fields)
		case errors.Is(err, auth.ErrEmailExists):
			h.jsonError(w, "An account with this email already exists", http.StatusConflict)
		default:
			h.jsonError(w, "Registration failed", http.StatusInternalServerError)
		}
		return
	}

	// Auto-login after registration
	result, err := h.authService.Login(req.Email, req.Password, false)
	if err != nil {
		// The account exists; let the client log in explicitly.
		h.writeJSON(w, http.StatusCreated, map[string]interface{}{"user": user})
		return
	}

	h.setSessionCookie(w, result.Token, result.Expires)
	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"user":       result.User,
		"token":      result.Token,
		"expires_at": result.Expires,
	})
}

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

// Login authenticates and issues a session token
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := h.decode(r, &req); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.authService.Login(req.Email, req.Password, req.RememberMe)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.jsonError(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		h.jsonError(w, "Login failed", http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, result.Token, result.Expires)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":       result.User,
		"token":      result.Token,
		"expires_at": result.Expires,
	})
}

// Logout drops the session. Safe to call without one.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	token := middleware.ExtractToken(r)
	if err := h.authService.Logout(token); err != nil {
		h.jsonError(w, "Logout failed", http.StatusInternalServerError)
		return
	}

	h.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the authenticated user
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword starts the reset flow. The response is identical for
// known and unknown emails.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req forgotPasswordRequest
	if err := h.decode(r, &req); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.authService.CreateResetToken(req.Email)
	if err != nil {
		h.jsonError(w, "Reset failed", http.StatusInternalServerError)
		return
	}

	response := map[string]string{"message": "If the email is registered, a reset link has been sent"}
	// No mailer in development: hand the token back so the flow can be
	// exercised end to end.
	if token != "" && h.cfg.IsDevelopment() {
		response["reset_token"] = token
	}
	h.writeJSON(w, http.StatusAccepted, response)
}

type resetPasswordRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ResetPassword completes the reset flow
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req resetPasswordRequest
	if err := h.decode(r, &req); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Password != req.ConfirmPassword {
		h.jsonFieldErrors(w, map[string]string{"confirm_password": "Passwords do not match"})
		return
	}

	err := h.authService.ResetPassword(req.Token, req.Password)
	if err != nil {
		var verr *auth.ValidationError
		switch {
		case errors.As(err, &verr):
			h.jsonFieldErrors(w, verr.Fields)
		case errors.Is(err, auth.ErrInvalidToken):
			h.jsonError(w, "Invalid or expired reset token", http.StatusUnauthorized)
		default:
			h.jsonError(w, "Reset failed", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})
}
