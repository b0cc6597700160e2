package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/owenk/chessinsights/internal/errors"
	"github.com/owenk/chessinsights/internal/logger"
	"github.com/owenk/chessinsights/internal/models"
	"github.com/owenk/chessinsights/internal/stats"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// criteria resolves the filter criteria for a request: query parameters win,
// stored settings fill the gaps. The stats core itself never defaults these.
func (s *Server) criteria(r *http.Request) ([]stats.GameMode, stats.TimeInterval, error) {
	var (
		modes    []stats.GameMode
		interval stats.TimeInterval
	)

	if raw := r.URL.Query().Get("game_modes"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			mode := stats.GameMode(strings.TrimSpace(part))
			if !stats.ValidGameMode(mode) {
				return nil, "", apperrors.NewValidationError("game_modes", "unknown game mode: "+string(mode))
			}
			modes = append(modes, mode)
		}
	}
	if raw := r.URL.Query().Get("time_interval"); raw != "" {
		interval = stats.TimeInterval(raw)
		if !stats.ValidTimeInterval(interval) {
			return nil, "", apperrors.NewValidationError("time_interval", "unknown time interval: "+raw)
		}
	}

	if modes != nil && interval != "" {
		return modes, interval, nil
	}

	settings, err := s.Settings.Get(r.Context())
	if err != nil {
		return nil, "", err
	}
	if modes == nil {
		modes = settings.GameModes
	}
	if interval == "" {
		interval = settings.TimeInterval
	}
	return modes, interval, nil
}

func (s *Server) handlePlayerStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	username := strings.TrimSpace(chi.URLParam(r, "username"))
	if username == "" {
		handleError(w, r, apperrors.NewBadRequestError("username required"))
		return
	}

	modes, interval, err := s.criteria(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("stats request: username=%s", username)
	result, err := s.Stats.GetStats(r.Context(), username, modes, interval)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

type playerStatsResponse struct {
	Username string       `json:"username"`
	Stats    *stats.Stats `json:"stats,omitempty"`
	Error    *errorBody   `json:"error,omitempty"`
}

// handlePlayersStats serves both players of a live game in one request. The
// two lookups run concurrently and fail independently; a failed player comes
// back with an error body while the other still carries its stats.
func (s *Server) handlePlayersStats(w http.ResponseWriter, r *http.Request) {
	white := strings.TrimSpace(r.URL.Query().Get("white"))
	black := strings.TrimSpace(r.URL.Query().Get("black"))
	if white == "" || black == "" {
		handleError(w, r, apperrors.NewBadRequestError("white and black usernames required"))
		return
	}

	modes, interval, err := s.criteria(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	results := s.Stats.GetStatsForPlayers(r.Context(), []string{white, black}, modes, interval)

	players := make([]playerStatsResponse, len(results))
	for i, res := range results {
		players[i] = playerStatsResponse{Username: res.Username, Stats: res.Stats}
		if res.Err != nil {
			body, _ := toErrorBody(res.Err)
			players[i].Error = &body
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{"players": players})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.Settings.Get(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		handleError(w, r, apperrors.NewBadRequestError("invalid settings payload"))
		return
	}

	saved, err := s.Settings.Update(r.Context(), settings)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, saved)
}
