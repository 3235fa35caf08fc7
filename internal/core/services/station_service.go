package services

import (
	"context"
	"fmt"

	"github.com/railsathi/railsathi_backend/internal/core/domain"
	portsrepo "github.com/railsathi/railsathi_backend/internal/core/ports/repositories"
	portssvc "github.com/railsathi/railsathi_backend/internal/core/ports/services"
)

// StationService serves the seeded station layout/amenity directory.
type StationService struct {
	BaseService
	stationRepo portsrepo.StationReader
}

func NewStationService(stationRepo portsrepo.StationReader) *StationService {
	return &StationService{stationRepo: stationRepo}
}

// Ensure implementation matches interface
var _ portssvc.StationSvcFacade = (*StationService)(nil)

func (s *StationService) ListStations(ctx context.Context, search string) ([]domain.Station, error) {
	stations, err := s.stationRepo.ListStations(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list stations: %w", err)
	}
	if stations == nil {
		stations = []domain.Station{}
	}
	return stations, nil
}

func (s *StationService) GetStationByCode(ctx context.Context, code string) (*domain.Station, error) {
	return s.stationRepo.FindStationByCode(ctx, code)
}
