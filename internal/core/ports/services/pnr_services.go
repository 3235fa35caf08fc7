package services

import (
	"context"

	"github.com/railsathi/railsathi_backend/internal/core/domain"
)

// PNRLookupSvc performs live PNR-status lookups against the upstream
// providers. Lookups persist nothing except a recent-search entry; saving is
// the journey service's job.
type PNRLookupSvc interface {
	// LookupPNR fetches and normalizes the current status of a PNR, trying
	// providers in order and returning the first usable response. Failures
	// surface immediately; nothing is retried automatically.
	LookupPNR(ctx context.Context, deviceID, pnr string) (*domain.JourneyRecord, error)
}
