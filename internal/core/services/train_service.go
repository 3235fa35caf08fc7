package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/railsathi/railsathi_backend/internal/core/domain"
	portssvc "github.com/railsathi/railsathi_backend/internal/core/ports/services"
	"github.com/railsathi/railsathi_backend/internal/upstream"
)

// TrainService proxies timetable and live running-status lookups to the
// upstream train data provider. Results are returned as fetched; there is no
// caching layer, the provider is the source of truth for liveness.
type TrainService struct {
	BaseService
	provider  upstream.TrainProvider
	searchSvc portssvc.SearchSvcFacade
}

func NewTrainService(provider upstream.TrainProvider, searchSvc portssvc.SearchSvcFacade) *TrainService {
	return &TrainService{provider: provider, searchSvc: searchSvc}
}

// Ensure implementation matches interface
var _ portssvc.TrainSvcFacade = (*TrainService)(nil)

// GetSchedule returns the full timetable for a train number.
func (s *TrainService) GetSchedule(ctx context.Context, deviceID, trainNumber string) (*domain.TrainSchedule, error) {
	schedule, err := s.provider.FetchSchedule(ctx, trainNumber)
	if err != nil {
		return nil, err
	}
	s.recordSearch(ctx, deviceID, trainNumber)
	return schedule, nil
}

// GetLiveStatus returns the train's current running position. date is
// optional and passed to the provider as received.
func (s *TrainService) GetLiveStatus(ctx context.Context, deviceID, trainNumber, date string) (*domain.LiveStatus, error) {
	status, err := s.provider.FetchLiveStatus(ctx, trainNumber, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch live status for train %s: %w", trainNumber, err)
	}
	s.recordSearch(ctx, deviceID, trainNumber)
	return status, nil
}

func (s *TrainService) recordSearch(ctx context.Context, deviceID, trainNumber string) {
	if s.searchSvc == nil || deviceID == "" {
		return
	}
	if err := s.searchSvc.RecordSearch(ctx, deviceID, domain.SearchTrain, trainNumber); err != nil {
		s.LogError(ctx, err, "Failed to record recent search", slog.String("train_number", trainNumber))
	}
}
