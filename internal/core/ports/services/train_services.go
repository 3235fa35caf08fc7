package services

import (
	"context"

	"github.com/railsathi/railsathi_backend/internal/core/domain"
)

// TrainSvcFacade serves timetable and live running-status lookups, both
// read-only proxies of the upstream train data provider.
type TrainSvcFacade interface {
	// GetSchedule returns the full timetable for a train number.
	GetSchedule(ctx context.Context, deviceID, trainNumber string) (*domain.TrainSchedule, error)

	// GetLiveStatus returns the current running position. date is optional
	// and passed through to the provider as received.
	GetLiveStatus(ctx context.Context, deviceID, trainNumber, date string) (*domain.LiveStatus, error)
}
