package services

import (
	"context"

	"github.com/railsathi/railsathi_backend/internal/core/domain"
)

// StationSvcFacade serves the station layout/amenity directory.
type StationSvcFacade interface {
	ListStations(ctx context.Context, search string) ([]domain.Station, error)
	GetStationByCode(ctx context.Context, code string) (*domain.Station, error)
}
