package ports

import (
	"context"

	"github.com/emiliopalmerini/assistroi/internal/roi"
)

// EvaluationRecorder reports completed evaluations to an observability backend.
type EvaluationRecorder interface {
	// RecordEvaluation records one engine evaluation and where it came from.
	RecordEvaluation(ctx context.Context, e *Evaluation) error
	// Close flushes pending data and releases resources.
	Close(ctx context.Context) error
}

// Evaluation is an engine run together with the context it ran in.
type Evaluation struct {
	Source     string // "cli", "web", "api"
	IndustryID string
	ScenarioID *string
	Parameters roi.Parameters
	Results    roi.Results
}
