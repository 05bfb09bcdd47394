package web

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/emiliopalmerini/assistroi/internal/domain"
	"github.com/emiliopalmerini/assistroi/internal/roi"
)

type resultsResponse struct {
	Industry   domain.Industry        `json:"industry"`
	Parameters roi.Parameters         `json:"parameters"`
	History    domain.HistorySettings `json:"history"`
	Results    roi.Results            `json:"results"`
}

func (s *Server) handleAPIResults(w http.ResponseWriter, r *http.Request) {
	in, err := s.parseInput(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	results := s.evaluate(r, "api", in, nil)
	s.writeJSON(w, http.StatusOK, resultsResponse{
		Industry:   in.Industry,
		Parameters: in.Parameters,
		History:    in.History,
		Results:    results,
	})
}

// handleAPIResultsJSON evaluates a full parameter set posted as JSON.
// Values are validated but not clamped.
func (s *Server) handleAPIResultsJSON(w http.ResponseWriter, r *http.Request) {
	var p roi.Parameters
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidParameters, err))
		return
	}
	if err := domain.Validate(p); err != nil {
		s.writeError(w, r, err)
		return
	}

	in := calcInput{Parameters: p, History: s.defaults.History}
	results := s.evaluate(r, "api", in, nil)
	s.writeJSON(w, http.StatusOK, resultsResponse{Parameters: p, History: in.History, Results: results})
}

func (s *Server) handleAPIBreakEven(w http.ResponseWriter, r *http.Request) {
	in, err := s.parseInput(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, roi.FindBreakEven(in.Parameters))
}

// parseSteps reads comma-separated uplift percentages, defaulting to
// roi.DefaultUpliftSteps.
func parseSteps(raw string) ([]float64, error) {
	if raw == "" {
		return roi.DefaultUpliftSteps, nil
	}
	var steps []float64
	for _, part := range strings.Split(raw, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return nil, &domain.ValidationError{Fields: []domain.FieldError{
				{Field: "steps", Message: fmt.Sprintf("invalid uplift step %q", part)},
			}}
		}
		steps = append(steps, v/100)
	}
	return steps, nil
}

func (s *Server) handleAPISweep(w http.ResponseWriter, r *http.Request) {
	in, err := s.parseInput(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	steps, err := parseSteps(r.URL.Query().Get("steps"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, roi.SweepUplift(in.Parameters, steps))
}

func (s *Server) handleAPIPresets(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.catalog.List())
}

type defaultsResponse struct {
	Currency   string                 `json:"currency"`
	Parameters roi.Parameters         `json:"parameters"`
	History    domain.HistorySettings `json:"history"`
}

func (s *Server) handleAPIDefaults(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, defaultsResponse{
		Currency:   s.defaults.Currency,
		Parameters: s.defaults.Parameters,
		History:    s.defaults.History,
	})
}

type chartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

func (s *Server) handleAPIChartCosts(w http.ResponseWriter, r *http.Request) {
	in, err := s.parseInput(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res := roi.Aggregate(in.Parameters)

	points := make([]chartPoint, 0, 4)
	for _, b := range costBars(res) {
		points = append(points, chartPoint{Label: b.Label, Value: b.Value})
	}
	s.writeJSON(w, http.StatusOK, points)
}

func (s *Server) handleAPIChartCategories(w http.ResponseWriter, r *http.Request) {
	insights := s.defaults.InsightsOrSample()
	points := make([]chartPoint, 0, len(insights.Categories))
	for _, c := range insights.Categories {
		points = append(points, chartPoint{Label: c.Name, Value: c.Percent})
	}
	s.writeJSON(w, http.StatusOK, points)
}
