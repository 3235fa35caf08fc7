package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/railsathi/railsathi_backend/internal/apperrors"
	"github.com/railsathi/railsathi_backend/internal/core/domain"
	portsrepo "github.com/railsathi/railsathi_backend/internal/core/ports/repositories"
	portssvc "github.com/railsathi/railsathi_backend/internal/core/ports/services"
)

// SearchService keeps the per-device recent-searches list in a single KV
// slot: capped, deduplicated, most-recent-first. The whole list is rewritten
// on every record, matching the slot's replace-whole-value contract.
type SearchService struct {
	BaseService
	kvRepo portsrepo.KVRepositoryFacade
	now    func() time.Time
}

func NewSearchService(kvRepo portsrepo.KVRepositoryFacade) *SearchService {
	return &SearchService{kvRepo: kvRepo, now: time.Now}
}

// Ensure implementation matches interface
var _ portssvc.SearchSvcFacade = (*SearchService)(nil)

// RecentSearches returns the device's recent list, newest first.
func (s *SearchService) RecentSearches(ctx context.Context, deviceID string) ([]domain.RecentSearch, error) {
	value, err := s.kvRepo.Get(ctx, deviceID, portsrepo.KeyRecentSearches)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return []domain.RecentSearch{}, nil
		}
		return nil, fmt.Errorf("failed to read recent searches: %w", err)
	}

	searches := []domain.RecentSearch{}
	if err := json.Unmarshal(value, &searches); err != nil {
		return nil, fmt.Errorf("failed to deserialize recent searches: %w", err)
	}
	return searches, nil
}

// RecordSearch pushes a search onto the front of the list. An identical
// earlier entry moves to the front instead of duplicating, and the list is
// trimmed to its cap.
func (s *SearchService) RecordSearch(ctx context.Context, deviceID string, kind domain.SearchKind, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	existing, err := s.RecentSearches(ctx, deviceID)
	if err != nil {
		return err
	}

	searches := make([]domain.RecentSearch, 0, len(existing)+1)
	searches = append(searches, domain.RecentSearch{Kind: kind, Query: query, SearchedAt: s.now()})
	for _, entry := range existing {
		if entry.Kind == kind && entry.Query == query {
			continue
		}
		searches = append(searches, entry)
	}
	if len(searches) > domain.MaxRecentSearches {
		searches = searches[:domain.MaxRecentSearches]
	}

	value, err := json.Marshal(searches)
	if err != nil {
		return fmt.Errorf("failed to serialize recent searches: %w", err)
	}
	if err := s.kvRepo.Put(ctx, deviceID, portsrepo.KeyRecentSearches, value); err != nil {
		return fmt.Errorf("failed to write recent searches: %w", err)
	}
	return nil
}
