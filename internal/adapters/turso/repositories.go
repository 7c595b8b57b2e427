package turso

import (
	"database/sql"

	"github.com/emiliopalmerini/mood/internal/domain"
	"github.com/emiliopalmerini/mood/internal/ports"
)

// Repositories holds all turso repository implementations as port interfaces.
type Repositories struct {
	Records       ports.HealthDataSink
	Authorization ports.AuthorizationProvider
}

// NewRepositories creates all turso repository implementations from a database connection.
func NewRepositories(db *sql.DB, deniedScopes []domain.Scope) *Repositories {
	auth := NewAuthorizationRepository(db, deniedScopes)
	return &Repositories{
		Records:       NewRecordRepository(db, auth),
		Authorization: auth,
	}
}
