// Package handlers provides HTTP request handlers
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/olibranch/platform/internal/config"
	"github.com/olibranch/platform/internal/services/audit"
	"github.com/olibranch/platform/internal/services/auth"
	"github.com/olibranch/platform/internal/services/importer"
	"github.com/olibranch/platform/internal/storage"
)

// Handler contains all HTTP handlers and dependencies
type Handler struct {
	cfg          *config.Config
	authService  *auth.Service
	auditService *audit.Service
	importer     *importer.Service
	reportRepo   *storage.ReportRepository
}

// New creates a new handler with all dependencies
func New(
	cfg *config.Config,
	authService *auth.Service,
	auditService *audit.Service,
	importerService *importer.Service,
	reportRepo *storage.ReportRepository,
) *Handler {
	return &Handler{
		cfg:          cfg,
		authService:  authService,
		auditService: auditService,
		importer:     importerService,
		reportRepo:   reportRepo,
	}
}

// Health reports service liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// writeJSON writes a JSON response with the given status
func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are gone at this point; nothing to do but log upstream.
		return
	}
}

// jsonError writes a JSON error response
func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

// jsonFieldErrors writes a validation failure with per-field messages
func (h *Handler) jsonFieldErrors(w http.ResponseWriter, fields map[string]string) {
	h.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":  "Validation failed",
		"fields": fields,
	})
}

// decode parses a JSON request body into dst
func (h *Handler) decode(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}
