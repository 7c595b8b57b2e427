package ports

import (
	"context"
	"errors"
	"time"

	"github.com/emiliopalmerini/mood/internal/domain"
)

// ErrNotAuthorized is returned by a sink when the record's scope has not been granted.
var ErrNotAuthorized = errors.New("not authorized for scope")

// ErrRecordNotFound is returned when deleting a record that does not exist.
var ErrRecordNotFound = errors.New("record not found")

// HealthDataSink persists normalized records. Implementations enforce authorization
// themselves; callers treat every failure as opaque.
type HealthDataSink interface {
	Save(ctx context.Context, rec *domain.NormalizedRecord, scope domain.Scope) (*domain.StoredRecord, error)
	List(ctx context.Context, opts ListRecordsOptions) ([]*domain.StoredRecord, error)
	Delete(ctx context.Context, id string) error
}

// ListRecordsOptions filters a record listing. Results are newest first.
// Since and Before bound the record timestamp; Until bounds the end of the
// sample window, inclusive.
type ListRecordsOptions struct {
	Limit  int
	Kind   *domain.Kind
	Since  *time.Time
	Before *time.Time
	Until  *time.Time
}
