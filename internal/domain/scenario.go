package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/emiliopalmerini/assistroi/internal/roi"
)

// Scenario is a named, saved parameter set.
type Scenario struct {
	ID          string
	Name        string
	Description *string
	IndustryID  string
	Parameters  roi.Parameters
	History     HistorySettings
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewScenario validates p and returns an unsaved scenario with a fresh ID.
func NewScenario(name string, industryID string, p roi.Parameters, history HistorySettings) (*Scenario, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Scenario{
		ID:         uuid.New().String(),
		Name:       name,
		IndustryID: industryID,
		Parameters: p,
		History:    history,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Evaluate runs the ROI engine on the scenario's parameters.
func (s *Scenario) Evaluate() roi.Results {
	return roi.Aggregate(s.Parameters)
}
