package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/railsathi/railsathi_backend/internal/core/domain"
	"github.com/railsathi/railsathi_backend/internal/models"
)

// ToDomainStation converts a station row, deserializing layout and amenities.
func ToDomainStation(m models.Station) (domain.Station, error) {
	platforms := []domain.PlatformInfo{}
	if len(m.Platforms) > 0 {
		if err := json.Unmarshal(m.Platforms, &platforms); err != nil {
			return domain.Station{}, fmt.Errorf("failed to deserialize platforms for station %s: %w", m.Code, err)
		}
	}
	amenities := []domain.Amenity{}
	if len(m.Amenities) > 0 {
		if err := json.Unmarshal(m.Amenities, &amenities); err != nil {
			return domain.Station{}, fmt.Errorf("failed to deserialize amenities for station %s: %w", m.Code, err)
		}
	}

	return domain.Station{
		Code:          m.Code,
		Name:          m.Name,
		City:          m.City,
		Zone:          m.Zone,
		PlatformCount: m.PlatformCount,
		Platforms:     platforms,
		Amenities:     amenities,
	}, nil
}
