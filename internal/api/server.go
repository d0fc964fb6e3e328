package api

import (
	"net/http"
	"time"

	"github.com/futig/resume-assistant/internal/api/docs"
	"github.com/futig/resume-assistant/internal/api/middleware"
	sessionapi "github.com/futig/resume-assistant/internal/api/session"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(sessionHandler *sessionapi.Handler, requestTimeout time.Duration, allowedOrigins []string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)               // Recover from panics
	r.Use(chimiddleware.RequestID)               // Add request ID
	r.Use(middleware.Logger(logger))             // Log requests
	r.Use(middleware.CORS(allowedOrigins))       // Handle CORS
	r.Use(chimiddleware.Timeout(requestTimeout)) // Request deadline

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	sessionapi.RegisterRoutes(r, sessionHandler)

	return r
}
