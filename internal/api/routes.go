package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/owenk/chessinsights/internal/services"
)

// Server holds the service dependencies for the HTTP API.
type Server struct {
	Stats    services.StatsService
	Settings services.SettingsService
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/api/health", s.handleHealth)
	r.Get("/api/stats", s.handlePlayersStats)
	r.Get("/api/stats/{username}", s.handlePlayerStats)
	r.Get("/api/settings", s.handleGetSettings)
	r.Put("/api/settings", s.handleUpdateSettings)

	return r
}
