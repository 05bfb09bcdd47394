package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/emiliopalmerini/assistroi/internal/ports"
)

const (
	serviceName    = "assistroi"
	serviceVersion = "1.0.0"
)

// Exporter pushes evaluation metrics to an OTEL Collector.
type Exporter struct {
	provider          *sdkmetric.MeterProvider
	meter             metric.Meter
	evaluationsTotal  metric.Int64Counter
	monthlySavings    metric.Float64Histogram
	paybackMonths     metric.Float64Histogram
	breakEvenVolume   metric.Int64Histogram
	unrecoverable     metric.Int64Counter
	breakEvenNotFound metric.Int64Counter
}

// NewExporter creates a new OTEL metrics exporter.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Active() {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	e, err := newExporter(provider)
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, err
	}
	return e, nil
}

func newExporter(provider *sdkmetric.MeterProvider) (*Exporter, error) {
	meter := provider.Meter(serviceName)

	evaluationsTotal, err := meter.Int64Counter(
		"assistroi_evaluations_total",
		metric.WithDescription("Total number of ROI evaluations"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating evaluations counter: %w", err)
	}

	monthlySavings, err := meter.Float64Histogram(
		"assistroi_monthly_savings",
		metric.WithDescription("Monthly net savings per evaluation"),
		metric.WithUnit("{currency}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating savings histogram: %w", err)
	}

	paybackMonths, err := meter.Float64Histogram(
		"assistroi_payback_months",
		metric.WithDescription("Payback period of recoverable evaluations"),
		metric.WithUnit("mo"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating payback histogram: %w", err)
	}

	breakEvenVolume, err := meter.Int64Histogram(
		"assistroi_break_even_volume",
		metric.WithDescription("Break-even monthly inquiry volume"),
		metric.WithUnit("{inquiry}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating break-even histogram: %w", err)
	}

	unrecoverable, err := meter.Int64Counter(
		"assistroi_unrecoverable_total",
		metric.WithDescription("Evaluations whose setup cost is never recovered"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating unrecoverable counter: %w", err)
	}

	breakEvenNotFound, err := meter.Int64Counter(
		"assistroi_break_even_not_found_total",
		metric.WithDescription("Evaluations with no break-even inside the modelled range"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating break-even counter: %w", err)
	}

	return &Exporter{
		provider:          provider,
		meter:             meter,
		evaluationsTotal:  evaluationsTotal,
		monthlySavings:    monthlySavings,
		paybackMonths:     paybackMonths,
		breakEvenVolume:   breakEvenVolume,
		unrecoverable:     unrecoverable,
		breakEvenNotFound: breakEvenNotFound,
	}, nil
}

func evaluationAttributes(ev *ports.Evaluation) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("source", ev.Source),
		attribute.String("industry_id", ev.IndustryID),
		attribute.Bool("internal_channel", ev.Parameters.InternalChannelEnabled),
		attribute.Bool("analytics", ev.Parameters.AnalyticsEnabled),
	}
	if ev.ScenarioID != nil {
		attrs = append(attrs, attribute.String("scenario_id", *ev.ScenarioID))
	}
	return attrs
}

// RecordEvaluation records one engine evaluation.
func (e *Exporter) RecordEvaluation(ctx context.Context, ev *ports.Evaluation) error {
	opt := metric.WithAttributes(evaluationAttributes(ev)...)
	r := ev.Results

	e.evaluationsTotal.Add(ctx, 1, opt)
	e.monthlySavings.Record(ctx, r.MonthlySavings, opt)

	if r.Payback.Recoverable {
		e.paybackMonths.Record(ctx, r.Payback.Months, opt)
	} else {
		e.unrecoverable.Add(ctx, 1, opt)
	}

	if r.BreakEven.Found {
		e.breakEvenVolume.Record(ctx, int64(r.BreakEven.Volume), opt)
	} else {
		e.breakEvenNotFound.Add(ctx, 1, opt)
	}

	return nil
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
