package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/railsathi/railsathi_backend/internal/apperrors"
	"github.com/railsathi/railsathi_backend/internal/core/domain"
	portsrepo "github.com/railsathi/railsathi_backend/internal/core/ports/repositories"
	portssvc "github.com/railsathi/railsathi_backend/internal/core/ports/services"
)

// JourneyService owns the device's saved-journey list and the next-journey
// marker that sits beside it.
type JourneyService struct {
	BaseService
	journeyRepo portsrepo.JourneyRepositoryFacade
	kvRepo      portsrepo.KVRepositoryFacade
	pnrSvc      portssvc.PNRLookupSvc
	now         func() time.Time
	newID       func() string
}

func NewJourneyService(journeyRepo portsrepo.JourneyRepositoryFacade, kvRepo portsrepo.KVRepositoryFacade, pnrSvc portssvc.PNRLookupSvc) *JourneyService {
	return &JourneyService{
		journeyRepo: journeyRepo,
		kvRepo:      kvRepo,
		pnrSvc:      pnrSvc,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Ensure implementation matches interface
var _ portssvc.JourneySvcFacade = (*JourneyService)(nil)

// ListJourneys returns the device's saved list, most-recent-first.
func (s *JourneyService) ListJourneys(ctx context.Context, deviceID string) ([]domain.JourneyRecord, error) {
	records, err := s.journeyRepo.ListJourneys(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list journeys: %w", err)
	}
	if records == nil {
		records = []domain.JourneyRecord{}
	}
	return records, nil
}

// SaveJourney looks the PNR up and upserts the result into the saved list.
// When an entry with the same PNR already exists, its JourneyID and SavedAt
// survive the overwrite, which keeps both the record's identity and its list
// position stable.
func (s *JourneyService) SaveJourney(ctx context.Context, deviceID, pnr string) (*domain.JourneyRecord, error) {
	fresh, err := s.pnrSvc.LookupPNR(ctx, deviceID, pnr)
	if err != nil {
		return nil, err
	}

	now := s.now()
	fresh.DeviceID = deviceID
	fresh.LastChecked = now

	existing, err := s.journeyRepo.FindJourneyByPNR(ctx, deviceID, pnr)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing journey: %w", err)
	}

	if existing != nil {
		fresh.JourneyID = existing.JourneyID
		fresh.SavedAt = existing.SavedAt
		if err := s.journeyRepo.ReplaceJourney(ctx, *fresh); err != nil {
			return nil, fmt.Errorf("failed to update saved journey: %w", err)
		}
		s.LogInfo(ctx, "Saved journey updated in place", slog.String("journey_id", fresh.JourneyID), slog.String("pnr", pnr))
		return fresh, nil
	}

	fresh.JourneyID = s.newID()
	fresh.SavedAt = now
	if err := s.journeyRepo.InsertJourney(ctx, *fresh); err != nil {
		return nil, fmt.Errorf("failed to save journey: %w", err)
	}
	s.LogInfo(ctx, "Journey saved", slog.String("journey_id", fresh.JourneyID), slog.String("pnr", pnr))
	return fresh, nil
}

// RefreshJourney re-fetches the journey's PNR and overwrites everything
// except the identity fields. A failed fetch leaves the stored record
// untouched.
func (s *JourneyService) RefreshJourney(ctx context.Context, deviceID, journeyID string) (*domain.JourneyRecord, error) {
	existing, err := s.journeyRepo.FindJourneyByID(ctx, deviceID, journeyID)
	if err != nil {
		return nil, err
	}

	fresh, err := s.pnrSvc.LookupPNR(ctx, deviceID, existing.PNR)
	if err != nil {
		return nil, err
	}

	fresh.JourneyID = existing.JourneyID
	fresh.DeviceID = deviceID
	fresh.SavedAt = existing.SavedAt
	fresh.LastChecked = s.now()

	if err := s.journeyRepo.ReplaceJourney(ctx, *fresh); err != nil {
		return nil, fmt.Errorf("failed to store refreshed journey: %w", err)
	}
	return fresh, nil
}

// DeleteJourney removes the record. The repository clears the next-journey
// marker in the same transaction when it points at the deleted record.
func (s *JourneyService) DeleteJourney(ctx context.Context, deviceID, journeyID string) error {
	if err := s.journeyRepo.DeleteJourney(ctx, deviceID, journeyID); err != nil {
		return err
	}
	s.LogInfo(ctx, "Journey deleted", slog.String("journey_id", journeyID))
	return nil
}

// GetNextJourney resolves the marker to its journey record. A marker whose
// journey no longer exists is treated as unset and cleared.
func (s *JourneyService) GetNextJourney(ctx context.Context, deviceID string) (*domain.JourneyRecord, error) {
	marker, err := s.readMarker(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if marker == nil {
		return nil, nil
	}

	record, err := s.journeyRepo.FindJourneyByPNR(ctx, deviceID, marker.PNR)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Stale marker; delete-side integrity should prevent this, but
			// self-heal rather than serve a dangling reference.
			s.LogInfo(ctx, "Clearing stale next-journey marker", slog.String("pnr", marker.PNR))
			if delErr := s.kvRepo.Delete(ctx, deviceID, portsrepo.KeyNextJourney); delErr != nil {
				s.LogError(ctx, delErr, "Failed to clear stale next-journey marker")
			}
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

// MarkNextJourney designates the saved journey with this PNR as the next
// journey. The marker is a singleton: marking the already-marked journey
// toggles it off, and marking while a different journey holds the marker is
// rejected without changing anything.
func (s *JourneyService) MarkNextJourney(ctx context.Context, deviceID, pnr string) (bool, error) {
	if _, err := s.journeyRepo.FindJourneyByPNR(ctx, deviceID, pnr); err != nil {
		return false, err
	}

	current, err := s.readMarker(ctx, deviceID)
	if err != nil {
		return false, err
	}

	if current != nil {
		if current.PNR == pnr {
			if err := s.kvRepo.Delete(ctx, deviceID, portsrepo.KeyNextJourney); err != nil {
				return false, fmt.Errorf("failed to unmark next journey: %w", err)
			}
			return false, nil
		}
		return false, apperrors.ErrAlreadyMarked
	}

	marker := domain.NextJourneyMarker{PNR: pnr, MarkedAt: s.now()}
	value, err := json.Marshal(marker)
	if err != nil {
		return false, fmt.Errorf("failed to serialize next-journey marker: %w", err)
	}
	if err := s.kvRepo.Put(ctx, deviceID, portsrepo.KeyNextJourney, value); err != nil {
		return false, fmt.Errorf("failed to mark next journey: %w", err)
	}
	return true, nil
}

// UnmarkNextJourney clears the marker unconditionally.
func (s *JourneyService) UnmarkNextJourney(ctx context.Context, deviceID string) error {
	if err := s.kvRepo.Delete(ctx, deviceID, portsrepo.KeyNextJourney); err != nil {
		return fmt.Errorf("failed to unmark next journey: %w", err)
	}
	return nil
}

func (s *JourneyService) readMarker(ctx context.Context, deviceID string) (*domain.NextJourneyMarker, error) {
	value, err := s.kvRepo.Get(ctx, deviceID, portsrepo.KeyNextJourney)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read next-journey marker: %w", err)
	}

	var marker domain.NextJourneyMarker
	if err := json.Unmarshal(value, &marker); err != nil {
		return nil, fmt.Errorf("failed to deserialize next-journey marker: %w", err)
	}
	if marker.PNR == "" {
		return nil, nil
	}
	return &marker, nil
}
