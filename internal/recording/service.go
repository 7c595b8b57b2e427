// Package recording turns observations into stored records: build, submit to the
// health data sink, then export metrics.
package recording

import (
	"context"
	"fmt"
	"time"

	"github.com/emiliopalmerini/mood/internal/domain"
	"github.com/emiliopalmerini/mood/internal/logging"
	"github.com/emiliopalmerini/mood/internal/ports"
)

type Service struct {
	builder   domain.RecordBuilder
	sink      ports.HealthDataSink
	auth      ports.AuthorizationProvider
	exporters []ports.MetricsExporter
	logger    *logging.Logger
	now       func() time.Time
}

type Option func(*Service)

// WithClock sets the clock used for observations without a timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.builder = domain.NewRecordBuilder(now)
		if now != nil {
			s.now = now
		}
	}
}

// WithExporters adds metrics exporters notified after every accepted record.
func WithExporters(exporters ...ports.MetricsExporter) Option {
	return func(s *Service) { s.exporters = append(s.exporters, exporters...) }
}

func WithLogger(l *logging.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func NewService(sink ports.HealthDataSink, auth ports.AuthorizationProvider, opts ...Option) *Service {
	s := &Service{
		builder: domain.NewRecordBuilder(nil),
		sink:    sink,
		auth:    auth,
		logger:  logging.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record builds a record of kind from obs and submits it under the kind's scope.
// Validation errors are returned unwrapped; sink errors are wrapped.
func (s *Service) Record(ctx context.Context, obs domain.MoodObservation, kind domain.Kind) (*domain.StoredRecord, error) {
	rec, err := s.builder.Build(obs, kind)
	if err != nil {
		s.logger.Debug("observation rejected", "kind", kind.Key(), "error", err)
		return nil, err
	}

	scope := domain.ScopeFor(kind)
	stored, err := s.sink.Save(ctx, &rec, scope)
	if err != nil {
		s.logger.Warn("record submission failed", "kind", kind.Key(), "scope", string(scope), "error", err)
		return nil, fmt.Errorf("submit record: %w", err)
	}

	s.logger.Info("record saved",
		"record_id", stored.ID,
		"kind", kind.Key(),
		"scope", string(scope),
		"valence", rec.Valence.Key(),
		"labels", len(rec.Labels),
		"associations", len(rec.Associations),
	)

	s.export(ctx, stored)
	return stored, nil
}

func (s *Service) export(ctx context.Context, rec *domain.StoredRecord) {
	if len(s.exporters) == 0 {
		return
	}
	m := recordMetrics(rec)
	for _, exp := range s.exporters {
		if err := exp.ExportRecordMetrics(ctx, m); err != nil {
			s.logger.Warn("failed to export record metrics", "record_id", rec.ID, "error", err)
		}
	}
}

func recordMetrics(rec *domain.StoredRecord) *ports.RecordMetrics {
	labels := make([]string, len(rec.Labels))
	for i, l := range rec.Labels {
		labels[i] = l.Key()
	}
	assocs := make([]string, len(rec.Associations))
	for i, a := range rec.Associations {
		assocs[i] = a.Key()
	}
	return &ports.RecordMetrics{
		RecordID:     rec.ID,
		Kind:         rec.Kind.Key(),
		Scope:        string(rec.Scope),
		Valence:      rec.Valence.Key(),
		ValenceScore: rec.ValenceScore,
		Labels:       labels,
		Associations: assocs,
		HasNotes:     rec.Notes != "",
		RecordedAt:   rec.Timestamp,
	}
}

// List returns stored records newest first. Unless opts.Until is set, only samples
// that have ended by now are returned.
func (s *Service) List(ctx context.Context, opts ports.ListRecordsOptions) ([]*domain.StoredRecord, error) {
	if opts.Until == nil {
		until := s.now()
		opts.Until = &until
	}
	records, err := s.sink.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.sink.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	s.logger.Info("record deleted", "record_id", id)
	return nil
}

// RequestAuthorization asks the provider to grant scope and reports the outcome.
func (s *Service) RequestAuthorization(ctx context.Context, scope domain.Scope) (bool, error) {
	granted, err := s.auth.RequestAuthorization(ctx, scope)
	if err != nil {
		return false, fmt.Errorf("request authorization: %w", err)
	}
	s.logger.Info("authorization requested", "scope", string(scope), "granted", granted)
	return granted, nil
}

// AuthorizeKind requests the scope records of kind are written under.
func (s *Service) AuthorizeKind(ctx context.Context, kind domain.Kind) (bool, error) {
	return s.RequestAuthorization(ctx, domain.ScopeFor(kind))
}

func (s *Service) IsAuthorized(ctx context.Context, scope domain.Scope) (bool, error) {
	ok, err := s.auth.IsAuthorized(ctx, scope)
	if err != nil {
		return false, fmt.Errorf("check authorization: %w", err)
	}
	return ok, nil
}

func (s *Service) Revoke(ctx context.Context, scope domain.Scope) error {
	if err := s.auth.Revoke(ctx, scope); err != nil {
		return fmt.Errorf("revoke authorization: %w", err)
	}
	s.logger.Info("authorization revoked", "scope", string(scope))
	return nil
}

// Summary aggregates the records matching opts.
func (s *Service) Summary(ctx context.Context, opts ports.ListRecordsOptions, top int) (domain.SummaryStats, error) {
	records, err := s.List(ctx, opts)
	if err != nil {
		return domain.SummaryStats{}, err
	}
	return domain.Summarize(records, top), nil
}
