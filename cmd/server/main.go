// Oli-Branch - Banking Fee Audit Platform
// Entry point for the API server
package main

import (
	"log"
	"net/http"
	"time"

	"github.com/olibranch/platform/internal/config"
	"github.com/olibranch/platform/internal/handlers"
	"github.com/olibranch/platform/internal/middleware"
	"github.com/olibranch/platform/internal/services/audit"
	"github.com/olibranch/platform/internal/services/auth"
	"github.com/olibranch/platform/internal/services/bankrates"
	"github.com/olibranch/platform/internal/services/importer"
	"github.com/olibranch/platform/internal/session"
	"github.com/olibranch/platform/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := storage.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	userRepo := storage.NewUserRepository(db)
	sessionRepo := storage.NewSessionRepository(db)
	reportRepo := storage.NewReportRepository(db)

	// Sessions: remembered logins persist in SQLite, the rest live in memory
	// and vanish on restart.
	sessions := session.NewManager(sessionRepo, session.NewMemoryStore())

	// Initialize services
	authService := auth.NewService(cfg, userRepo, sessions)
	ratesService := bankrates.NewService(bankrates.Config{
		Provider: bankrates.ProviderMock, // Use mock benchmarks for development
		CacheTTL: 0,                      // Use default cache TTL
	})
	auditService := audit.NewService(ratesService)
	importerService := importer.NewService()

	// Initialize handlers
	h := handlers.New(cfg, authService, auditService, importerService, reportRepo)

	// Initialize auth middleware
	authMiddleware := middleware.NewAuth(authService)

	// Sweep expired sessions in the background; reads already skip
	// expired rows, this just keeps the table small.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := authService.CleanupExpiredSessions(); err != nil {
				log.Printf("Session cleanup failed: %v", err)
			}
		}
	}()

	// Setup routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("/api/health", h.Health)
	mux.HandleFunc("/api/auth/signup", h.Signup)
	mux.HandleFunc("/api/auth/login", h.Login)
	mux.HandleFunc("/api/auth/logout", h.Logout)
	mux.HandleFunc("/api/auth/forgot-password", h.ForgotPassword)
	mux.HandleFunc("/api/auth/reset-password", h.ResetPassword)

	// Protected routes (require authentication)
	mux.Handle("/api/auth/me", authMiddleware.RequireAuth(http.HandlerFunc(h.Me)))
	mux.Handle("/api/audit", authMiddleware.RequireAuth(http.HandlerFunc(h.RunAudit)))
	mux.Handle("/api/audit/import", authMiddleware.RequireAuth(http.HandlerFunc(h.ImportStatement)))
	mux.Handle("/api/reports", authMiddleware.RequireAuth(http.HandlerFunc(h.Reports)))

	// Apply global middleware
	handler := middleware.Chain(
		mux,
		middleware.Recover,
		middleware.SecurityHeaders,
		middleware.CORS,
		middleware.Logger,
	)

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Oli-Branch server starting on http://localhost%s", addr)
	log.Printf("Environment: %s", cfg.Environment)

	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
