package repositories

import (
	"context"

	"github.com/railsathi/railsathi_backend/internal/core/domain"
)

// StationReader defines read operations on the station directory. The
// directory is seeded content; there is no write path.
type StationReader interface {
	// ListStations returns stations matching the search term (code, name or
	// city, case-insensitive), or all stations when the term is empty.
	ListStations(ctx context.Context, search string) ([]domain.Station, error)

	// FindStationByCode retrieves one station with its layout and amenities.
	FindStationByCode(ctx context.Context, code string) (*domain.Station, error)
}
