package api

import (
	"encoding/json"
	"net/http"

	"github.com/owenk/chessinsights/internal/errors"
	"github.com/owenk/chessinsights/internal/logger"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func toErrorBody(err error) (errorBody, int) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		appErr = errors.NewInternalError(err)
	}
	return errorBody{Code: appErr.Code, Message: appErr.Message}, appErr.Status
}

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	body, status := toErrorBody(err)

	if status >= 500 {
		log.Error("server error: %v", err)
	} else if status >= 400 {
		log.Warn("client error: %v", err)
	} else {
		log.Debug("error: %v", err)
	}

	respondJSON(w, status, map[string]any{"error": body})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
