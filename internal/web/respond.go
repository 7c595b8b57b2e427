package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/emiliopalmerini/mood/internal/domain"
	"github.com/emiliopalmerini/mood/internal/ports"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}

// respondServiceError maps service failures onto HTTP statuses.
func (s *Server) respondServiceError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		respondError(w, http.StatusUnprocessableEntity, string(ve.Code), err.Error())
	case errors.Is(err, ports.ErrNotAuthorized):
		respondError(w, http.StatusForbidden, "not_authorized", err.Error())
	case errors.Is(err, ports.ErrRecordNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		s.logger.Error("sink failure", "error", err)
		respondError(w, http.StatusBadGateway, "sink_unavailable", "health data store unavailable")
	}
}
