package models

// Station is the database row shape for a station directory entry. Layout
// and amenities are JSON blobs; they are seeded content read as a whole.
type Station struct {
	Code          string
	Name          string
	City          string
	Zone          string
	PlatformCount int
	Platforms     []byte
	Amenities     []byte
}
