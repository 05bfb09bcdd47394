package ports_test

import (
	"testing"

	"github.com/emiliopalmerini/assistroi/internal/adapters/otel"
	"github.com/emiliopalmerini/assistroi/internal/adapters/prometheus"
	"github.com/emiliopalmerini/assistroi/internal/adapters/redis"
	"github.com/emiliopalmerini/assistroi/internal/adapters/turso"
	"github.com/emiliopalmerini/assistroi/internal/ports"
)

// Compile-time interface conformance checks.
// These verify that concrete adapters properly implement their port interfaces.

func TestScenarioRepositoryConformance(t *testing.T) {
	var _ ports.ScenarioRepository = (*turso.ScenarioRepository)(nil)
	var _ ports.ScenarioRepository = (*redis.ScenarioRepository)(nil)
}

func TestEvaluationRecorderConformance(t *testing.T) {
	var _ ports.EvaluationRecorder = (*otel.Exporter)(nil)
	var _ ports.EvaluationRecorder = (*otel.NoOpExporter)(nil)
	var _ ports.EvaluationRecorder = (*prometheus.Collector)(nil)
	var _ ports.EvaluationRecorder = ports.MultiRecorder(nil)
}
