package otel

import (
	"context"

	"github.com/emiliopalmerini/assistroi/internal/ports"
)

// NoOpExporter is an evaluation recorder that does nothing.
type NoOpExporter struct{}

// NewNoOpExporter creates a new no-op exporter for graceful degradation.
func NewNoOpExporter() *NoOpExporter {
	return &NoOpExporter{}
}

func (e *NoOpExporter) RecordEvaluation(ctx context.Context, ev *ports.Evaluation) error {
	return nil
}

func (e *NoOpExporter) Close(ctx context.Context) error {
	return nil
}
