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

	"github.com/emiliopalmerini/mood/internal/config"
	"github.com/emiliopalmerini/mood/internal/ports"
)

const (
	serviceName    = "mood"
	serviceVersion = "1.0.0"
)

// Exporter exports record metrics to an OTEL Collector.
type Exporter struct {
	provider          *sdkmetric.MeterProvider
	recordsTotal      metric.Int64Counter
	valenceHist       metric.Float64Histogram
	labelsTotal       metric.Int64Counter
	associationsTotal metric.Int64Counter
}

// NewExporter creates a new OTEL metrics exporter pushing over OTLP/gRPC.
func NewExporter(ctx context.Context, cfg config.Telemetry) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
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

	return newExporter(provider)
}

// newExporter registers the instruments on provider.
func newExporter(provider *sdkmetric.MeterProvider) (*Exporter, error) {
	meter := provider.Meter(serviceName)

	recordsTotal, err := meter.Int64Counter(
		"mood_records_total",
		metric.WithDescription("Total number of records accepted by the sink"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating records counter: %w", err)
	}

	valenceHist, err := meter.Float64Histogram(
		"mood_valence_score",
		metric.WithDescription("Valence score of accepted records"),
		metric.WithExplicitBucketBoundaries(-1, -0.75, -0.5, 0, 0.25, 0.5, 1),
	)
	if err != nil {
		return nil, fmt.Errorf("creating valence histogram: %w", err)
	}

	labelsTotal, err := meter.Int64Counter(
		"mood_labels_total",
		metric.WithDescription("Emotion labels selected on accepted records"),
		metric.WithUnit("{label}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating labels counter: %w", err)
	}

	associationsTotal, err := meter.Int64Counter(
		"mood_associations_total",
		metric.WithDescription("Life associations selected on accepted records"),
		metric.WithUnit("{association}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating associations counter: %w", err)
	}

	return &Exporter{
		provider:          provider,
		recordsTotal:      recordsTotal,
		valenceHist:       valenceHist,
		labelsTotal:       labelsTotal,
		associationsTotal: associationsTotal,
	}, nil
}

// ExportRecordMetrics records one accepted record. Notes never leave the process.
func (e *Exporter) ExportRecordMetrics(ctx context.Context, m *ports.RecordMetrics) error {
	opt := metric.WithAttributes(
		attribute.String("kind", m.Kind),
		attribute.String("scope", m.Scope),
	)

	e.recordsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", m.Kind),
		attribute.String("scope", m.Scope),
		attribute.String("valence", m.Valence),
		attribute.Bool("has_notes", m.HasNotes),
	))
	e.valenceHist.Record(ctx, m.ValenceScore, opt)

	for _, l := range m.Labels {
		e.labelsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("kind", m.Kind),
			attribute.String("label", l),
		))
	}
	for _, a := range m.Associations {
		e.associationsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("kind", m.Kind),
			attribute.String("association", a),
		))
	}

	return nil
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
