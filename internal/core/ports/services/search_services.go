package services

import (
	"context"

	"github.com/railsathi/railsathi_backend/internal/core/domain"
)

// SearchSvcFacade tracks what a device looked up recently. The list is
// capped, deduplicated and most-recent-first.
type SearchSvcFacade interface {
	RecentSearches(ctx context.Context, deviceID string) ([]domain.RecentSearch, error)

	// RecordSearch pushes a search onto the device's recent list. Failures
	// are reported but are never fatal to the lookup that triggered them.
	RecordSearch(ctx context.Context, deviceID string, kind domain.SearchKind, query string) error
}
