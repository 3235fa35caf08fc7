package repositories

import (
	"context"

	"github.com/railsathi/railsathi_backend/internal/core/domain"
)

// JourneyReader defines read operations on a device's saved-journey list.
type JourneyReader interface {
	// ListJourneys returns the device's saved journeys, most-recent-first.
	ListJourneys(ctx context.Context, deviceID string) ([]domain.JourneyRecord, error)

	// FindJourneyByID retrieves one saved journey by its synthetic ID.
	FindJourneyByID(ctx context.Context, deviceID, journeyID string) (*domain.JourneyRecord, error)

	// FindJourneyByPNR retrieves one saved journey by its PNR, the natural
	// key used to detect that a save is an update rather than an insert.
	FindJourneyByPNR(ctx context.Context, deviceID, pnr string) (*domain.JourneyRecord, error)
}

// JourneyWriter defines write operations on a device's saved-journey list.
type JourneyWriter interface {
	// InsertJourney persists a brand-new record at the head of the list.
	InsertJourney(ctx context.Context, record domain.JourneyRecord) error

	// ReplaceJourney overwrites every stored field of the record identified
	// by record.JourneyID except journey_id and saved_at, which are
	// immutable so the record keeps its list position.
	ReplaceJourney(ctx context.Context, record domain.JourneyRecord) error

	// DeleteJourney removes the record and, in the same transaction, clears
	// the device's next-journey marker when it references the deleted
	// record's PNR. Returns apperrors.ErrNotFound when the record is absent.
	DeleteJourney(ctx context.Context, deviceID, journeyID string) error
}

// JourneyRepositoryFacade combines all journey repository interfaces.
type JourneyRepositoryFacade interface {
	JourneyReader
	JourneyWriter
}

// JourneyRepositoryWithTx extends the facade with transaction capabilities.
type JourneyRepositoryWithTx interface {
	JourneyRepositoryFacade
	TransactionManager
}
