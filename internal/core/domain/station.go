package domain

// Amenity is a facility available at a station (waiting room, cloak room, lift...).
type Amenity struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Paid     bool   `json:"paid"`
}

// PlatformInfo describes one platform in a station layout.
type PlatformInfo struct {
	Number      string `json:"number"`
	Description string `json:"description"`
}

// Station is the directory entry for one railway station.
type Station struct {
	Code          string         `json:"code"`
	Name          string         `json:"name"`
	City          string         `json:"city"`
	Zone          string         `json:"zone"`
	PlatformCount int            `json:"platformCount"`
	Platforms     []PlatformInfo `json:"platforms"`
	Amenities     []Amenity      `json:"amenities"`
}
