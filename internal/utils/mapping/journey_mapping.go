package mapping

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/railsathi/railsathi_backend/internal/core/domain"
	"github.com/railsathi/railsathi_backend/internal/models"
)

// ToModelJourney converts a domain record to its row shape, serializing the
// passenger list. The whole record is written in one statement, so a failed
// serialization here leaves the stored state untouched.
func ToModelJourney(r domain.JourneyRecord) (models.Journey, error) {
	passengers := r.Passengers
	if passengers == nil {
		passengers = []domain.Passenger{}
	}
	blob, err := json.Marshal(passengers)
	if err != nil {
		return models.Journey{}, fmt.Errorf("failed to serialize passengers: %w", err)
	}

	var lastChecked *time.Time
	if !r.LastChecked.IsZero() {
		t := r.LastChecked
		lastChecked = &t
	}

	return models.Journey{
		JourneyID:        r.JourneyID,
		DeviceID:         r.DeviceID,
		PNR:              r.PNR,
		TrainNumber:      r.TrainNumber,
		TrainName:        r.TrainName,
		FromStation:      r.From,
		ToStation:        r.To,
		BoardingPoint:    r.BoardingPoint,
		ReservationUpto:  r.ReservationUpto,
		SourceDate:       r.SourceDate,
		DestinationDate:  r.DestinationDate,
		JourneyClass:     r.JourneyClass,
		Quota:            r.Quota,
		CoachPosition:    r.CoachPosition,
		ArrivalTime:      r.ArrivalTime,
		DepartureTime:    r.DepartureTime,
		ExpectedPlatform: r.ExpectedPlatform,
		TicketFare:       r.TicketFare,
		BookingFare:      r.BookingFare,
		ChartPrepared:    r.ChartPrepared,
		Passengers:       blob,
		LastChecked:      lastChecked,
		SavedAt:          r.SavedAt,
	}, nil
}

// ToDomainJourney converts a row back to the domain record. IsRefreshing is
// deliberately left false: the flag is UI-transient and a record loaded from
// storage must never claim a refresh is in flight.
func ToDomainJourney(m models.Journey) (domain.JourneyRecord, error) {
	passengers := []domain.Passenger{}
	if len(m.Passengers) > 0 {
		if err := json.Unmarshal(m.Passengers, &passengers); err != nil {
			return domain.JourneyRecord{}, fmt.Errorf("failed to deserialize passengers for journey %s: %w", m.JourneyID, err)
		}
	}
	if passengers == nil {
		passengers = []domain.Passenger{}
	}

	var lastChecked time.Time
	if m.LastChecked != nil {
		lastChecked = *m.LastChecked
	}

	return domain.JourneyRecord{
		JourneyID:        m.JourneyID,
		DeviceID:         m.DeviceID,
		PNR:              m.PNR,
		TrainNumber:      m.TrainNumber,
		TrainName:        m.TrainName,
		From:             m.FromStation,
		To:               m.ToStation,
		BoardingPoint:    m.BoardingPoint,
		ReservationUpto:  m.ReservationUpto,
		SourceDate:       m.SourceDate,
		DestinationDate:  m.DestinationDate,
		JourneyClass:     m.JourneyClass,
		Quota:            m.Quota,
		CoachPosition:    m.CoachPosition,
		ArrivalTime:      m.ArrivalTime,
		DepartureTime:    m.DepartureTime,
		ExpectedPlatform: m.ExpectedPlatform,
		TicketFare:       m.TicketFare,
		BookingFare:      m.BookingFare,
		ChartPrepared:    m.ChartPrepared,
		Passengers:       passengers,
		LastChecked:      lastChecked,
		SavedAt:          m.SavedAt,
		IsRefreshing:     false,
	}, nil
}
