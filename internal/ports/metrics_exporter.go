package ports

import (
	"context"
	"time"
)

// MetricsExporter exports record metrics to an external observability system.
type MetricsExporter interface {
	// ExportRecordMetrics exports metrics for a record accepted by the sink.
	ExportRecordMetrics(ctx context.Context, m *RecordMetrics) error
	// Close shuts down the exporter and flushes any pending metrics.
	Close(ctx context.Context) error
}

// RecordMetrics describes one submitted record without its free-text notes.
type RecordMetrics struct {
	RecordID     string
	Kind         string
	Scope        string
	Valence      string
	ValenceScore float64
	Labels       []string
	Associations []string
	HasNotes     bool
	RecordedAt   time.Time
}
