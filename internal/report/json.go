package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/emiliopalmerini/assistroi/internal/domain"
	"github.com/emiliopalmerini/assistroi/internal/roi"
)

// Document is the JSON export shape.
type Document struct {
	Title       string                 `json:"title"`
	GeneratedAt string                 `json:"generated_at"`
	Currency    string                 `json:"currency"`
	Industry    domain.Industry        `json:"industry"`
	Parameters  roi.Parameters         `json:"parameters"`
	Results     roi.Results            `json:"results"`
	Sweep       []roi.SweepPoint       `json:"uplift_sensitivity"`
	History     domain.HistorySettings `json:"history"`
	Insights    domain.Insights        `json:"insights"`
}

// NewDocument converts r into its JSON export shape.
func NewDocument(r *Report) Document {
	return Document{
		Title:       r.Title,
		GeneratedAt: r.GeneratedAt.Format(time.RFC3339),
		Currency:    r.Currency,
		Industry:    r.Industry,
		Parameters:  r.Parameters,
		Results:     r.Results,
		Sweep:       r.Sweep,
		History:     r.History,
		Insights:    r.Insights,
	}
}

func WriteJSON(w io.Writer, r *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(NewDocument(r)); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
