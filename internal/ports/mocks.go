package ports

import (
	"context"

	"github.com/emiliopalmerini/mood/internal/domain"
)

// MockHealthDataSink is a mock implementation of HealthDataSink for testing.
type MockHealthDataSink struct {
	SaveFunc   func(ctx context.Context, rec *domain.NormalizedRecord, scope domain.Scope) (*domain.StoredRecord, error)
	ListFunc   func(ctx context.Context, opts ListRecordsOptions) ([]*domain.StoredRecord, error)
	DeleteFunc func(ctx context.Context, id string) error
}

func (m *MockHealthDataSink) Save(ctx context.Context, rec *domain.NormalizedRecord, scope domain.Scope) (*domain.StoredRecord, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, rec, scope)
	}
	return &domain.StoredRecord{
		ID:               "mock-record",
		NormalizedRecord: *rec,
		Scope:            scope,
		EndAt:            rec.SampleEnd(),
	}, nil
}

func (m *MockHealthDataSink) List(ctx context.Context, opts ListRecordsOptions) ([]*domain.StoredRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, opts)
	}
	return []*domain.StoredRecord{}, nil
}

func (m *MockHealthDataSink) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockAuthorizationProvider is a mock implementation of AuthorizationProvider for testing.
// Without overrides every scope is granted.
type MockAuthorizationProvider struct {
	RequestAuthorizationFunc func(ctx context.Context, scope domain.Scope) (bool, error)
	IsAuthorizedFunc         func(ctx context.Context, scope domain.Scope) (bool, error)
	RevokeFunc               func(ctx context.Context, scope domain.Scope) error
}

func (m *MockAuthorizationProvider) RequestAuthorization(ctx context.Context, scope domain.Scope) (bool, error) {
	if m.RequestAuthorizationFunc != nil {
		return m.RequestAuthorizationFunc(ctx, scope)
	}
	return true, nil
}

func (m *MockAuthorizationProvider) IsAuthorized(ctx context.Context, scope domain.Scope) (bool, error) {
	if m.IsAuthorizedFunc != nil {
		return m.IsAuthorizedFunc(ctx, scope)
	}
	return true, nil
}

func (m *MockAuthorizationProvider) Revoke(ctx context.Context, scope domain.Scope) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, scope)
	}
	return nil
}

// MockMetricsExporter is a mock implementation of MetricsExporter for testing.
type MockMetricsExporter struct {
	ExportRecordMetricsFunc func(ctx context.Context, m *RecordMetrics) error
	CloseFunc               func(ctx context.Context) error
}

func (m *MockMetricsExporter) ExportRecordMetrics(ctx context.Context, rm *RecordMetrics) error {
	if m.ExportRecordMetricsFunc != nil {
		return m.ExportRecordMetricsFunc(ctx, rm)
	}
	return nil
}

func (m *MockMetricsExporter) Close(ctx context.Context) error {
	if m.CloseFunc != nil {
		return m.CloseFunc(ctx)
	}
	return nil
}
