package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/railsathi/railsathi_backend/internal/apperrors"
	"github.com/railsathi/railsathi_backend/internal/core/domain"
	portsrepo "github.com/railsathi/railsathi_backend/internal/core/ports/repositories"
	"github.com/railsathi/railsathi_backend/internal/models"
	"github.com/railsathi/railsathi_backend/internal/utils/mapping"
)

type PgxStationRepository struct {
	BaseRepository
}

// newPgxStationRepository creates a new repository for station directory data.
func newPgxStationRepository(pool *pgxpool.Pool) portsrepo.StationReader {
	return &PgxStationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.StationReader = (*PgxStationRepository)(nil)

const stationColumns = `code, name, city, zone, platform_count, platforms, amenities`

func scanStation(row pgx.Row) (models.Station, error) {
	var m models.Station
	err := row.Scan(&m.Code, &m.Name, &m.City, &m.Zone, &m.PlatformCount, &m.Platforms, &m.Amenities)
	return m, err
}

// ListStations returns directory entries matching the search term against
// code, name and city. An empty term lists everything.
func (r *PgxStationRepository) ListStations(ctx context.Context, search string) ([]domain.Station, error) {
	query := `SELECT ` + stationColumns + `
		FROM stations
		WHERE $1 = '' OR code ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%' OR city ILIKE '%' || $1 || '%'
		ORDER BY name ASC;`

	rows, err := r.Pool.Query(ctx, query, strings.TrimSpace(search))
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	defer rows.Close()

	modelStations, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Station, error) {
		return scanStation(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan stations: %w", err)
	}

	stations := make([]domain.Station, 0, len(modelStations))
	for _, m := range modelStations {
		station, err := mapping.ToDomainStation(m)
		if err != nil {
			return nil, err
		}
		stations = append(stations, station)
	}
	return stations, nil
}

// FindStationByCode retrieves one station by its code, case-insensitively.
func (r *PgxStationRepository) FindStationByCode(ctx context.Context, code string) (*domain.Station, error) {
	query := `SELECT ` + stationColumns + ` FROM stations WHERE code = UPPER($1);`

	m, err := scanStation(r.Pool.QueryRow(ctx, query, strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find station %s: %w", code, err)
	}

	station, err := mapping.ToDomainStation(m)
	if err != nil {
		return nil, err
	}
	return &station, nil
}
