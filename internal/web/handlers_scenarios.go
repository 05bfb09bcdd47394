package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/emiliopalmerini/assistroi/internal/domain"
	"github.com/emiliopalmerini/assistroi/internal/ports"
	"github.com/emiliopalmerini/assistroi/internal/roi"
)

type scenarioRequest struct {
	Name        string                  `json:"name"`
	Description *string                 `json:"description,omitempty"`
	IndustryID  string                  `json:"industry_id"`
	Parameters  *roi.Parameters         `json:"parameters"`
	History     *domain.HistorySettings `json:"history,omitempty"`
}

type scenarioResponse struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description *string                `json:"description,omitempty"`
	IndustryID  string                 `json:"industry_id"`
	Parameters  roi.Parameters         `json:"parameters"`
	History     domain.HistorySettings `json:"history"`
	Results     roi.Results            `json:"results"`
	CreatedAt   string                 `json:"created_at"`
	UpdatedAt   string                 `json:"updated_at"`
}

func toScenarioResponse(sc *domain.Scenario) scenarioResponse {
	return scenarioResponse{
		ID:          sc.ID,
		Name:        sc.Name,
		Description: sc.Description,
		IndustryID:  sc.IndustryID,
		Parameters:  sc.Parameters,
		History:     sc.History,
		Results:     sc.Evaluate(),
		CreatedAt:   sc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   sc.UpdatedAt.Format(time.RFC3339),
	}
}

// requireStore writes 503 when no scenario store is configured.
func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.scenarioRepo == nil {
		s.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "scenario storage is not configured"})
		return false
	}
	return true
}

func (s *Server) handleAPIListScenarios(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	opts := ports.ListScenariosOptions{Limit: 100}
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		opts.Limit = l
	}
	if ind := r.URL.Query().Get("industry"); ind != "" {
		opts.IndustryID = &ind
	}

	scenarios, err := s.scenarioRepo.List(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]scenarioResponse, 0, len(scenarios))
	for _, sc := range scenarios {
		out = append(out, toScenarioResponse(sc))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAPISaveScenario(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	ctx := r.Context()

	var req scenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidParameters, err))
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		s.writeError(w, r, &domain.ValidationError{Fields: []domain.FieldError{{Field: "name", Message: "is required"}}})
		return
	}

	params := s.defaults.Parameters
	if req.IndustryID != "" {
		ind, err := s.catalog.Lookup(req.IndustryID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		req.IndustryID = ind.ID
		params = ind.Apply(params)
	}
	if req.Parameters != nil {
		params = *req.Parameters
	}
	history := s.defaults.History
	if req.History != nil {
		history = *req.History
		history.Frequency = domain.ParseAnalysisFrequency(string(history.Frequency))
	}

	sc, err := domain.NewScenario(req.Name, req.IndustryID, params, history)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sc.Description = req.Description

	status := http.StatusCreated
	existing, err := s.scenarioRepo.GetByName(ctx, req.Name)
	switch {
	case err == nil:
		sc.ID = existing.ID
		sc.CreatedAt = existing.CreatedAt
		status = http.StatusOK
	case !errors.Is(err, domain.ErrScenarioNotFound):
		s.writeError(w, r, err)
		return
	}

	if err := s.scenarioRepo.Save(ctx, sc); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.evaluate(r, "api", calcInput{Parameters: sc.Parameters, Industry: domain.Industry{ID: sc.IndustryID}}, &sc.ID)
	s.writeJSON(w, status, toScenarioResponse(sc))
}

func (s *Server) handleAPIGetScenario(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	sc, err := s.scenarioRepo.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toScenarioResponse(sc))
}

func (s *Server) handleAPIDeleteScenario(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	if err := s.scenarioRepo.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
