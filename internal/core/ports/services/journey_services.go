package services

import (
	"context"

	"github.com/railsathi/railsathi_backend/internal/core/domain"
)

// JourneyReaderSvc defines read operations on a device's saved journeys.
type JourneyReaderSvc interface {
	// ListJourneys returns the saved list, most-recent-first.
	ListJourneys(ctx context.Context, deviceID string) ([]domain.JourneyRecord, error)

	// GetNextJourney returns the journey currently marked as next, or nil
	// when nothing is marked.
	GetNextJourney(ctx context.Context, deviceID string) (*domain.JourneyRecord, error)
}

// JourneyWriterSvc defines the mutations a user can trigger on the list.
type JourneyWriterSvc interface {
	// SaveJourney looks the PNR up and upserts it into the device's list:
	// an existing entry with the same PNR is replaced in place (same ID,
	// same position); otherwise a new record is inserted at the head.
	SaveJourney(ctx context.Context, deviceID, pnr string) (*domain.JourneyRecord, error)

	// RefreshJourney re-fetches the journey's PNR and overwrites all fields
	// except the ID and creation time; LastChecked is set to now.
	RefreshJourney(ctx context.Context, deviceID, journeyID string) (*domain.JourneyRecord, error)

	// DeleteJourney removes the record, implicitly unmarking it if it is
	// the current next journey.
	DeleteJourney(ctx context.Context, deviceID, journeyID string) error

	// MarkNextJourney designates the saved journey with this PNR as the
	// next journey. Marking the already-marked journey toggles it off;
	// marking while a different journey is marked fails with
	// apperrors.ErrAlreadyMarked and changes nothing.
	MarkNextJourney(ctx context.Context, deviceID, pnr string) (marked bool, err error)

	// UnmarkNextJourney clears the marker unconditionally.
	UnmarkNextJourney(ctx context.Context, deviceID string) error
}

// JourneySvcFacade combines the saved-journey service interfaces.
type JourneySvcFacade interface {
	JourneyReaderSvc
	JourneyWriterSvc
}
