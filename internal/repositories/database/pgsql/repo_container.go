package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/railsathi/railsathi_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository over one shared
// connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		JourneyRepo: newPgxJourneyRepository(pool),
		KVRepo:      newPgxKVRepository(pool),
		QnARepo:     newPgxQnARepository(pool),
		StationRepo: newPgxStationRepository(pool),
	}
}
