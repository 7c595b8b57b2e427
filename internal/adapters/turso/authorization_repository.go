package turso

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/emiliopalmerini/mood/internal/domain"
	"github.com/emiliopalmerini/mood/internal/util"
)

// AuthorizationRepository stores per-scope grants. Scopes in the denied set
// are refused whenever authorization is requested.
type AuthorizationRepository struct {
	db     *sql.DB
	denied map[domain.Scope]struct{}
	now    func() time.Time
}

func NewAuthorizationRepository(db *sql.DB, denied []domain.Scope) *AuthorizationRepository {
	set := make(map[domain.Scope]struct{}, len(denied))
	for _, s := range denied {
		set[s] = struct{}{}
	}
	return &AuthorizationRepository{db: db, denied: set, now: time.Now}
}

// RequestAuthorization records the outcome of a grant request and returns it.
func (r *AuthorizationRepository) RequestAuthorization(ctx context.Context, scope domain.Scope) (bool, error) {
	_, granted := r.denied[scope]
	granted = !granted
	if err := r.set(ctx, scope, granted); err != nil {
		return false, err
	}
	return granted, nil
}

func (r *AuthorizationRepository) IsAuthorized(ctx context.Context, scope domain.Scope) (bool, error) {
	return WithRetry(ctx, maxStreamRetries, func() (bool, error) {
		var granted int64
		err := r.db.QueryRowContext(ctx, `SELECT granted FROM authorization_grants WHERE scope = ?`, string(scope)).Scan(&granted)
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("failed to read grant for %s: %w", scope, err)
		}
		return granted == 1, nil
	})
}

func (r *AuthorizationRepository) Revoke(ctx context.Context, scope domain.Scope) error {
	return r.set(ctx, scope, false)
}

func (r *AuthorizationRepository) set(ctx context.Context, scope domain.Scope, granted bool) error {
	_, err := WithRetry(ctx, maxStreamRetries, func() (sql.Result, error) {
		return r.db.ExecContext(ctx, `
			INSERT INTO authorization_grants (scope, granted, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(scope) DO UPDATE SET granted = excluded.granted, updated_at = excluded.updated_at`,
			string(scope), util.BoolToInt64(granted), util.FormatTimestamp(r.now()))
	})
	if err != nil {
		return fmt.Errorf("failed to store grant for %s: %w", scope, err)
	}
	return nil
}
