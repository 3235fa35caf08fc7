package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/railsathi/railsathi_backend/internal/apperrors"
	"github.com/railsathi/railsathi_backend/internal/core/domain"
	portssvc "github.com/railsathi/railsathi_backend/internal/core/ports/services"
	"github.com/railsathi/railsathi_backend/internal/upstream"
)

// PNRService resolves a PNR's live status by walking the configured providers
// in order and returning the first usable response. A provider failure moves
// on to the next provider once; there is no retry of the same provider and no
// backoff, a failed lookup surfaces to the caller immediately.
type PNRService struct {
	BaseService
	providers []upstream.PNRProvider
	searchSvc portssvc.SearchSvcFacade
}

func NewPNRService(providers []upstream.PNRProvider, searchSvc portssvc.SearchSvcFacade) *PNRService {
	return &PNRService{providers: providers, searchSvc: searchSvc}
}

// Ensure implementation matches interface
var _ portssvc.PNRLookupSvc = (*PNRService)(nil)

// LookupPNR fetches and normalizes the PNR's current status.
func (s *PNRService) LookupPNR(ctx context.Context, deviceID, pnr string) (*domain.JourneyRecord, error) {
	if len(s.providers) == 0 {
		return nil, fmt.Errorf("no pnr providers configured: %w", apperrors.ErrUpstream)
	}

	var lastErr error
	for _, provider := range s.providers {
		record, err := provider.FetchPNRStatus(ctx, pnr)
		if err == nil {
			s.recordSearch(ctx, deviceID, pnr)
			return record, nil
		}

		// An unknown PNR is a definitive answer, not a provider outage; asking
		// another provider the same question would just burn quota.
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}

		s.LogError(ctx, err, "PNR provider failed, trying next",
			slog.String("provider", provider.Name()),
			slog.String("pnr", pnr),
		)
		lastErr = err
	}

	return nil, lastErr
}

// recordSearch remembers the lookup on the device's recent list. Never fatal.
func (s *PNRService) recordSearch(ctx context.Context, deviceID, pnr string) {
	if s.searchSvc == nil || deviceID == "" {
		return
	}
	if err := s.searchSvc.RecordSearch(ctx, deviceID, domain.SearchPNR, pnr); err != nil {
		s.LogError(ctx, err, "Failed to record recent search", slog.String("pnr", pnr))
	}
}
