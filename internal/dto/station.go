package dto

import "github.com/railsathi/railsathi_backend/internal/core/domain"

// AmenityResponse is one station facility.
type AmenityResponse struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Paid     bool   `json:"paid"`
}

// PlatformResponse is one platform in the station layout.
type PlatformResponse struct {
	Number      string `json:"number"`
	Description string `json:"description"`
}

// StationResponse is the wire shape of a station directory entry.
type StationResponse struct {
	Code          string             `json:"code"`
	Name          string             `json:"name"`
	City          string             `json:"city"`
	Zone          string             `json:"zone"`
	PlatformCount int                `json:"platformCount"`
	Platforms     []PlatformResponse `json:"platforms"`
	Amenities     []AmenityResponse  `json:"amenities"`
}

// ToStationResponse converts a domain station to its wire shape.
func ToStationResponse(s *domain.Station) StationResponse {
	platforms := make([]PlatformResponse, len(s.Platforms))
	for i, p := range s.Platforms {
		platforms[i] = PlatformResponse(p)
	}
	amenities := make([]AmenityResponse, len(s.Amenities))
	for i, a := range s.Amenities {
		amenities[i] = AmenityResponse(a)
	}
	return StationResponse{
		Code:          s.Code,
		Name:          s.Name,
		City:          s.City,
		Zone:          s.Zone,
		PlatformCount: s.PlatformCount,
		Platforms:     platforms,
		Amenities:     amenities,
	}
}

// ToStationListResponse converts a directory listing. Layout details are
// kept; the list is small and the client caches it per screen focus.
func ToStationListResponse(stations []domain.Station) []StationResponse {
	res := make([]StationResponse, len(stations))
	for i, s := range stations {
		res[i] = ToStationResponse(&s)
	}
	return res
}
