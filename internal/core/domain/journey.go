package domain

import "time"

// Placeholder is the display value substituted for optional fields the
// upstream provider did not send. Rendering code never has to null-check.
const Placeholder = "-"

// Passenger is one traveller on a PNR. Order within a journey is significant:
// the first passenger is the default display-selected one, and positions are
// preserved across refreshes (upstream gives us no per-passenger identifier).
type Passenger struct {
	Number int    `json:"number"`
	Status string `json:"status"`
	Coach  string `json:"coach"`
	Berth  string `json:"berth"`
	Seat   string `json:"seat"`
}

// JourneyRecord is the canonical shape every upstream PNR payload is
// normalized into, and the unit stored in the saved-journeys list.
type JourneyRecord struct {
	// JourneyID is a synthetic identifier generated at save time. It is the
	// merge/lookup key and never changes, even when the record is refreshed.
	JourneyID string `json:"journeyID"`
	// DeviceID scopes the record to the device that saved it.
	DeviceID string `json:"deviceID"`
	// PNR is the 10-digit booking reference, the natural key used to detect
	// that a save is an update of an existing entry rather than a new one.
	PNR string `json:"pnr"`

	TrainNumber string `json:"trainNumber"`
	TrainName   string `json:"trainName"`

	From            string `json:"from"`
	To              string `json:"to"`
	BoardingPoint   string `json:"boardingPoint"`
	ReservationUpto string `json:"reservationUpto"`

	// Journey dates stay free-form strings; upstream mixes DD-MM-YYYY and
	// YYYY-MM-DD and the display layer parses defensively.
	SourceDate      string `json:"sourceDate"`
	DestinationDate string `json:"destinationDate"`

	JourneyClass  string `json:"journeyClass"`
	Quota         string `json:"quota"`
	CoachPosition string `json:"coachPosition"`

	ArrivalTime      string `json:"arrivalTime"`
	DepartureTime    string `json:"departureTime"`
	ExpectedPlatform string `json:"expectedPlatform"`

	TicketFare  string `json:"ticketFare"`
	BookingFare string `json:"bookingFare"`

	// ChartPrepared false means passenger statuses are still the provisional
	// booking-time values rather than finalized ones.
	ChartPrepared bool `json:"chartPrepared"`

	// Passengers is never nil; absence upstream collapses to an empty slice.
	Passengers []Passenger `json:"passengers"`

	// LastChecked is the time of the most recent successful refresh.
	LastChecked time.Time `json:"lastChecked"`
	// SavedAt is set once at creation and doubles as the list-position key
	// (saved journeys are ordered most-recent-first).
	SavedAt time.Time `json:"savedAt"`

	// IsRefreshing is UI-transient: it exists only while a refresh is in
	// flight and is never persisted, so a record loaded from storage always
	// reports false.
	IsRefreshing bool `json:"isRefreshing"`
}

// NextJourneyMarker is the single optional "next journey" reference held per
// device, stored out-of-band from the journey list and keyed by PNR.
type NextJourneyMarker struct {
	PNR      string    `json:"pnr"`
	MarkedAt time.Time `json:"markedAt"`
}
