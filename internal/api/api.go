package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"portfoliochat/pkg/assistant"
)

// NewRouter builds the HTTP API router.
func NewRouter(core *assistant.Core) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLoggingMiddleware(core.Logger()))
	r.Use(recoveryLoggingMiddleware(core.Logger()))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	h := &handler{core: core}

	r.Get("/api/health", h.health)

	// Assistant
	r.Post("/api/chat", h.chat)
	r.Get("/api/providers", h.getProviders)
	r.Put("/api/provider", h.setProvider)

	// Portfolio
	r.Get("/api/portfolio/summary", h.getPortfolioSummary)
	r.Get("/api/portfolio/assets", h.getAssets)
	r.Get("/api/portfolio/allocation", h.getAllocation)

	// Settings
	r.Get("/api/settings", h.getSettings)
	r.Put("/api/settings", h.setSettings)

	return r
}

type handler struct {
	core *assistant.Core
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
