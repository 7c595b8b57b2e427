package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/emiliopalmerini/mood/internal/domain"
	"github.com/emiliopalmerini/mood/internal/ports"
	"github.com/emiliopalmerini/mood/internal/web/templates"
)

const (
	defaultListLimit = 50
	defaultStatsTop  = 5
)

type recordRequest struct {
	Kind         string     `json:"kind"`
	Valence      string     `json:"valence"`
	Labels       []string   `json:"labels"`
	Associations []string   `json:"associations"`
	Notes        string     `json:"notes"`
	Timestamp    *time.Time `json:"timestamp,omitempty"`
}

type recordResponse struct {
	ID           string               `json:"id"`
	Kind         domain.Kind          `json:"kind"`
	Scope        domain.Scope         `json:"scope"`
	Valence      domain.ValenceLevel  `json:"valence"`
	ValenceScore float64              `json:"valence_score"`
	Labels       []domain.Label       `json:"labels"`
	Associations []domain.Association `json:"associations"`
	Notes        string               `json:"notes,omitempty"`
	StartAt      time.Time            `json:"start_at"`
	EndAt        time.Time            `json:"end_at"`
	CreatedAt    time.Time            `json:"created_at"`
}

func toRecordResponse(r *domain.StoredRecord) recordResponse {
	return recordResponse{
		ID:           r.ID,
		Kind:         r.Kind,
		Scope:        r.Scope,
		Valence:      r.Valence,
		ValenceScore: r.ValenceScore,
		Labels:       r.Labels,
		Associations: r.Associations,
		Notes:        r.Notes,
		StartAt:      r.Timestamp,
		EndAt:        r.EndAt,
		CreatedAt:    r.CreatedAt,
	}
}

// parseRecordRequest resolves vocabulary names. Kind and valence failures are
// reported as validation errors so they share the 422 mapping with Build.
func parseRecordRequest(req recordRequest) (domain.MoodObservation, domain.Kind, error) {
	kind, err := domain.ParseKind(req.Kind)
	if err != nil {
		return domain.MoodObservation{}, 0, &domain.ValidationError{Code: domain.CodeUnknownKind, Field: "kind", Value: req.Kind}
	}
	valence, err := domain.ParseValenceLevel(req.Valence)
	if err != nil {
		return domain.MoodObservation{}, 0, &domain.ValidationError{Code: domain.CodeUnknownValenceLevel, Field: "valence", Kind: kind, Value: req.Valence}
	}
	labels, err := domain.ParseLabelSet(req.Labels)
	if err != nil {
		return domain.MoodObservation{}, 0, err
	}
	assocs, err := domain.ParseAssociationSet(req.Associations)
	if err != nil {
		return domain.MoodObservation{}, 0, err
	}
	return domain.MoodObservation{
		Valence:      valence,
		Labels:       labels,
		Associations: assocs,
		Notes:        req.Notes,
		Timestamp:    req.Timestamp,
	}, kind, nil
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "invalid JSON body")
		return
	}

	obs, kind, err := parseRecordRequest(req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownLabel):
			respondError(w, http.StatusBadRequest, "unknown_label", err.Error())
		case errors.Is(err, domain.ErrUnknownAssociation):
			respondError(w, http.StatusBadRequest, "unknown_association", err.Error())
		default:
			s.respondServiceError(w, err)
		}
		return
	}

	stored, err := s.service.Record(r.Context(), obs, kind)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toRecordResponse(stored))
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	opts, err := parseListOptions(r, defaultListLimit)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}

	records, err := s.service.List(r.Context(), opts)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	out := make([]recordResponse, len(records))
	for i, rec := range records {
		out[i] = toRecordResponse(rec)
	}
	respondJSON(w, http.StatusOK, out)
}

func parseListOptions(r *http.Request, limit int) (ports.ListRecordsOptions, error) {
	q := r.URL.Query()
	opts := ports.ListRecordsOptions{Limit: limit}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, errors.New("limit must be a non-negative integer")
		}
		opts.Limit = n
	}
	if v := q.Get("kind"); v != "" {
		kind, err := domain.ParseKind(v)
		if err != nil {
			return opts, err
		}
		opts.Kind = &kind
	}
	if v := q.Get("since"); v != "" {
		since, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return opts, errors.New("since must be an RFC3339 timestamp")
		}
		opts.Since = &since
	}
	if v := q.Get("before"); v != "" {
		before, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return opts, errors.New("before must be an RFC3339 timestamp")
		}
		opts.Before = &before
	}
	return opts, nil
}

type countEntry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type statsResponse struct {
	RecordCount      int                         `json:"record_count"`
	ByKind           map[domain.Kind]int         `json:"by_kind"`
	ByValence        map[domain.ValenceLevel]int `json:"by_valence"`
	AverageScore     float64                     `json:"average_score"`
	RecordsWithNotes int                         `json:"records_with_notes"`
	TopLabels        []countEntry                `json:"top_labels"`
	TopAssociations  []countEntry                `json:"top_associations"`
}

func toStatsResponse(st domain.SummaryStats) statsResponse {
	out := statsResponse{
		RecordCount:      st.RecordCount,
		ByKind:           st.ByKind,
		ByValence:        st.ByValence,
		AverageScore:     st.AverageScore,
		RecordsWithNotes: st.RecordsWithNotes,
		TopLabels:        make([]countEntry, 0, len(st.TopLabels)),
		TopAssociations:  make([]countEntry, 0, len(st.TopAssociations)),
	}
	for _, l := range st.TopLabels {
		out.TopLabels = append(out.TopLabels, countEntry{Key: l.Label.Key(), Count: l.Count})
	}
	for _, a := range st.TopAssociations {
		out.TopAssociations = append(out.TopAssociations, countEntry{Key: a.Association.Key(), Count: a.Count})
	}
	return out
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	opts, err := parseListOptions(r, 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}
	top := defaultStatsTop
	if v := r.URL.Query().Get("top"); v != "" {
		if top, err = strconv.Atoi(v); err != nil || top < 0 {
			respondError(w, http.StatusBadRequest, "invalid_query", "top must be a non-negative integer")
			return
		}
	}

	st, err := s.service.Summary(r.Context(), opts, top)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toStatsResponse(st))
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type authorizationResponse struct {
	Scope   domain.Scope `json:"scope"`
	Granted bool         `json:"granted"`
}

func (s *Server) scopeParam(w http.ResponseWriter, r *http.Request) (domain.Scope, bool) {
	scope, err := domain.ParseScope(chi.URLParam(r, "scope"))
	if err != nil {
		respondError(w, http.StatusNotFound, "unknown_scope", err.Error())
		return "", false
	}
	return scope, true
}

func (s *Server) handleAuthorize(w http.ResponseWriter, r *http.Request) {
	scope, ok := s.scopeParam(w, r)
	if !ok {
		return
	}
	granted, err := s.service.RequestAuthorization(r.Context(), scope)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, authorizationResponse{Scope: scope, Granted: granted})
}

func (s *Server) handleAuthorizationStatus(w http.ResponseWriter, r *http.Request) {
	scope, ok := s.scopeParam(w, r)
	if !ok {
		return
	}
	granted, err := s.service.IsAuthorized(r.Context(), scope)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, authorizationResponse{Scope: scope, Granted: granted})
}

func (s *Server) handleRevoke(w http.ResponseWriter, r *http.Request) {
	scope, ok := s.scopeParam(w, r)
	if !ok {
		return
	}
	if err := s.service.Revoke(r.Context(), scope); err != nil {
		s.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, authorizationResponse{Scope: scope, Granted: false})
}

func (s *Server) handleVocabulary(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, templates.NewVocabulary())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := templates.IndexData{Vocabulary: templates.NewVocabulary()}

	records, err := s.service.List(r.Context(), ports.ListRecordsOptions{Limit: 10})
	if err != nil {
		s.logger.Warn("failed to load recent records", "error", err)
	} else {
		page.Recent = records
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Index(page).Render(r.Context(), w); err != nil {
		s.logger.Error("failed to render index", "error", err)
	}
}
