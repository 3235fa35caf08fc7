package domain

import "time"

// SearchKind distinguishes what the user looked up.
type SearchKind string

const (
	SearchPNR   SearchKind = "pnr"
	SearchTrain SearchKind = "train"
)

// RecentSearch is one entry in a device's recent-searches list.
type RecentSearch struct {
	Kind       SearchKind `json:"kind"`
	Query      string     `json:"query"`
	SearchedAt time.Time  `json:"searchedAt"`
}

// MaxRecentSearches caps the per-device recent list; older entries fall off.
const MaxRecentSearches = 10
