// Package prometheus exposes evaluation metrics for scraping on /metrics.
package prometheus

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/emiliopalmerini/assistroi/internal/ports"
)

// Collector records evaluations into a dedicated registry.
type Collector struct {
	registry *prometheus.Registry

	EvaluationsTotal  *prometheus.CounterVec
	MonthlySavings    *prometheus.HistogramVec
	PaybackMonths     *prometheus.HistogramVec
	BreakEvenVolume   *prometheus.HistogramVec
	BreakEvenNotFound *prometheus.CounterVec
	LastMonthlyValue  *prometheus.GaugeVec
}

// NewCollector creates a collector with its own registry, including the Go
// runtime and process collectors.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,

		EvaluationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistroi_evaluations_total",
				Help: "Total number of ROI evaluations",
			},
			[]string{"source", "outcome"}, // outcome: recoverable, unrecoverable
		),

		MonthlySavings: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "assistroi_monthly_savings",
				Help:    "Monthly net savings per evaluation",
				Buckets: []float64{-500000, -100000, -10000, 0, 10000, 50000, 100000, 250000, 500000, 1000000},
			},
			[]string{"source"},
		),

		PaybackMonths: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "assistroi_payback_months",
				Help:    "Payback period of recoverable evaluations",
				Buckets: []float64{1, 3, 6, 12, 24, 36, 60, 120},
			},
			[]string{"source"},
		),

		BreakEvenVolume: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "assistroi_break_even_volume",
				Help:    "Break-even monthly inquiry volume",
				Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
			},
			[]string{"source"},
		),

		BreakEvenNotFound: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistroi_break_even_not_found_total",
				Help: "Evaluations with no break-even inside the modelled range",
			},
			[]string{"source"},
		),

		LastMonthlyValue: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "assistroi_last_total_monthly_value",
				Help: "Total monthly value of the most recent evaluation",
			},
			[]string{"source", "industry_id"},
		),
	}
}

// RecordEvaluation records one engine evaluation.
func (c *Collector) RecordEvaluation(ctx context.Context, ev *ports.Evaluation) error {
	r := ev.Results

	outcome := "unrecoverable"
	if r.Payback.Recoverable {
		outcome = "recoverable"
		c.PaybackMonths.WithLabelValues(ev.Source).Observe(r.Payback.Months)
	}
	c.EvaluationsTotal.WithLabelValues(ev.Source, outcome).Inc()
	c.MonthlySavings.WithLabelValues(ev.Source).Observe(r.MonthlySavings)

	if r.BreakEven.Found {
		c.BreakEvenVolume.WithLabelValues(ev.Source).Observe(float64(r.BreakEven.Volume))
	} else {
		c.BreakEvenNotFound.WithLabelValues(ev.Source).Inc()
	}

	c.LastMonthlyValue.WithLabelValues(ev.Source, ev.IndustryID).Set(r.TotalMonthlyValue)
	return nil
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Close(ctx context.Context) error {
	return nil
}
