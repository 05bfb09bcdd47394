package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/emiliopalmerini/assistroi/internal/domain"
	"github.com/emiliopalmerini/assistroi/internal/ports"
	"github.com/emiliopalmerini/assistroi/internal/roi"
)

type errorResponse struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

// writeJSON encodes v before writing the header so an encoding failure
// becomes a logged 500 rather than an empty 200.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to encode response", "type", fmt.Sprintf("%T", v), "error", err)
		status = http.StatusInternalServerError
		body = []byte(`{"error":"internal error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidParameters), errors.Is(err, domain.ErrUnknownIndustry):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrScenarioNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := errorResponse{Error: err.Error()}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Fields = verr.Fields
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		resp.Error = "internal error"
	}
	s.writeJSON(w, status, resp)
}

// evaluate runs the engine once and reports the evaluation.
func (s *Server) evaluate(r *http.Request, source string, in calcInput, scenarioID *string) roi.Results {
	results := roi.Aggregate(in.Parameters)
	if s.recorder != nil {
		ev := &ports.Evaluation{
			Source:     source,
			IndustryID: in.Industry.ID,
			ScenarioID: scenarioID,
			Parameters: in.Parameters,
			Results:    results,
		}
		if err := s.recorder.RecordEvaluation(r.Context(), ev); err != nil {
			s.logger.Warn("failed to record evaluation", "error", err)
		}
	}
	return results
}
