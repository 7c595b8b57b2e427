package ports

import (
	"context"

	"github.com/emiliopalmerini/mood/internal/domain"
)

// AuthorizationProvider grants and checks read/write access to a record scope.
type AuthorizationProvider interface {
	RequestAuthorization(ctx context.Context, scope domain.Scope) (bool, error)
	IsAuthorized(ctx context.Context, scope domain.Scope) (bool, error)
	Revoke(ctx context.Context, scope domain.Scope) error
}
