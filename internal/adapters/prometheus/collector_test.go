package prometheus

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emiliopalmerini/assistroi/internal/domain"
	"github.com/emiliopalmerini/assistroi/internal/ports"
	"github.com/emiliopalmerini/assistroi/internal/roi"
)

func evaluation(source string, p roi.Parameters) *ports.Evaluation {
	return &ports.Evaluation{Source: source, IndustryID: "it", Parameters: p, Results: roi.Aggregate(p)}
}

func TestCollector_RecordEvaluation(t *testing.T) {
	c := NewCollector()
	ctx := context.Background()

	p := domain.DefaultParameters()
	require.NoError(t, c.RecordEvaluation(ctx, evaluation("web", p)))

	losing := p
	losing.InquiryVolume = 10
	losing.InternalChannelEnabled = false
	losing.AssistantMonthlyCost = 5000000
	require.NoError(t, c.RecordEvaluation(ctx, evaluation("web", losing)))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.EvaluationsTotal.WithLabelValues("web", "recoverable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.EvaluationsTotal.WithLabelValues("web", "unrecoverable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.BreakEvenNotFound.WithLabelValues("web")))
	assert.Equal(t, roi.Aggregate(losing).TotalMonthlyValue,
		testutil.ToFloat64(c.LastMonthlyValue.WithLabelValues("web", "it")))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	require.NoError(t, c.RecordEvaluation(context.Background(), evaluation("cli", domain.DefaultParameters())))

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.True(t, strings.Contains(string(body), `assistroi_evaluations_total{outcome="recoverable",source="cli"} 1`))
	assert.True(t, strings.Contains(string(body), "go_goroutines"))
}

func TestCollectors_AreIndependent(t *testing.T) {
	a := NewCollector()
	b := NewCollector()
	require.NoError(t, a.RecordEvaluation(context.Background(), evaluation("api", domain.DefaultParameters())))

	assert.Equal(t, 0.0, testutil.ToFloat64(b.EvaluationsTotal.WithLabelValues("api", "recoverable")))
}
