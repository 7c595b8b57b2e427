// Package prometheus exposes record and HTTP metrics on a pull-based /metrics endpoint.
package prometheus

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/emiliopalmerini/mood/internal/ports"
)

// Metrics contains all Prometheus metrics of the mood service.
type Metrics struct {
	RecordsTotal      *prom.CounterVec
	ValenceScore      *prom.HistogramVec
	LabelsTotal       *prom.CounterVec
	AssociationsTotal *prom.CounterVec

	HTTPRequestsTotal   *prom.CounterVec
	HTTPRequestDuration *prom.HistogramVec

	registry *prom.Registry
}

// NewMetrics creates the metrics and registers them on registry.
func NewMetrics(registry *prom.Registry) (*Metrics, error) {
	m := &Metrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register mood metrics: %w", err)
	}
	return m, nil
}

func (m *Metrics) initMetrics() {
	m.RecordsTotal = prom.NewCounterVec(
		prom.CounterOpts{
			Name: "mood_records_total",
			Help: "Total number of records accepted by the sink.",
		},
		[]string{"kind", "scope", "valence"},
	)
	m.ValenceScore = prom.NewHistogramVec(
		prom.HistogramOpts{
			Name:    "mood_valence_score",
			Help:    "Valence score of accepted records.",
			Buckets: []float64{-1, -0.75, -0.5, 0, 0.25, 0.5, 1},
		},
		[]string{"kind"},
	)
	m.LabelsTotal = prom.NewCounterVec(
		prom.CounterOpts{
			Name: "mood_labels_total",
			Help: "Emotion labels selected on accepted records.",
		},
		[]string{"label"},
	)
	m.AssociationsTotal = prom.NewCounterVec(
		prom.CounterOpts{
			Name: "mood_associations_total",
			Help: "Life associations selected on accepted records.",
		},
		[]string{"association"},
	)

	m.HTTPRequestsTotal = prom.NewCounterVec(
		prom.CounterOpts{
			Name: "mood_http_requests_total",
			Help: "HTTP requests partitioned by route and status code.",
		},
		[]string{"method", "route", "status"},
	)
	m.HTTPRequestDuration = prom.NewHistogramVec(
		prom.HistogramOpts{
			Name:    "mood_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prom.ExponentialBuckets(0.001, 2, 12), // 1ms to ~2s
		},
		[]string{"method", "route"},
	)
}

// Describe implements the prometheus.Collector interface.
func (m *Metrics) Describe(ch chan<- *prom.Desc) {
	m.RecordsTotal.Describe(ch)
	m.ValenceScore.Describe(ch)
	m.LabelsTotal.Describe(ch)
	m.AssociationsTotal.Describe(ch)
	m.HTTPRequestsTotal.Describe(ch)
	m.HTTPRequestDuration.Describe(ch)
}

// Collect implements the prometheus.Collector interface.
func (m *Metrics) Collect(ch chan<- prom.Metric) {
	m.RecordsTotal.Collect(ch)
	m.ValenceScore.Collect(ch)
	m.LabelsTotal.Collect(ch)
	m.AssociationsTotal.Collect(ch)
	m.HTTPRequestsTotal.Collect(ch)
	m.HTTPRequestDuration.Collect(ch)
}

// ExportRecordMetrics counts one accepted record.
func (m *Metrics) ExportRecordMetrics(_ context.Context, rm *ports.RecordMetrics) error {
	m.RecordsTotal.WithLabelValues(rm.Kind, rm.Scope, rm.Valence).Inc()
	m.ValenceScore.WithLabelValues(rm.Kind).Observe(rm.ValenceScore)
	for _, l := range rm.Labels {
		m.LabelsTotal.WithLabelValues(l).Inc()
	}
	for _, a := range rm.Associations {
		m.AssociationsTotal.WithLabelValues(a).Inc()
	}
	return nil
}

// Close is a no-op; the registry is scraped, not pushed.
func (m *Metrics) Close(context.Context) error {
	return nil
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
