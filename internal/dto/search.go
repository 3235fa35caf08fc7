package dto

import (
	"time"

	"github.com/railsathi/railsathi_backend/internal/core/domain"
	"github.com/railsathi/railsathi_backend/internal/utils/display"
)

// RecentSearchResponse is one entry in the recent-searches list.
type RecentSearchResponse struct {
	Kind        string    `json:"kind"`
	Query       string    `json:"query"`
	SearchedAt  time.Time `json:"searchedAt"`
	SearchedAgo string    `json:"searchedAgo"`
}

// ToRecentSearchListResponse converts the recent list to its wire shape.
func ToRecentSearchListResponse(searches []domain.RecentSearch) []RecentSearchResponse {
	res := make([]RecentSearchResponse, len(searches))
	for i, s := range searches {
		res[i] = RecentSearchResponse{
			Kind:        string(s.Kind),
			Query:       s.Query,
			SearchedAt:  s.SearchedAt,
			SearchedAgo: display.Relative(s.SearchedAt),
		}
	}
	return res
}
