package models

import "time"

// Journey is the database row shape for a saved journey. Passengers travel
// as one JSON blob: they are only ever read and written as a whole, ordered,
// alongside the record itself.
type Journey struct {
	JourneyID        string
	DeviceID         string
	PNR              string
	TrainNumber      string
	TrainName        string
	FromStation      string
	ToStation        string
	BoardingPoint    string
	ReservationUpto  string
	SourceDate       string
	DestinationDate  string
	JourneyClass     string
	Quota            string
	CoachPosition    string
	ArrivalTime      string
	DepartureTime    string
	ExpectedPlatform string
	TicketFare       string
	BookingFare      string
	ChartPrepared    bool
	Passengers       []byte
	LastChecked      *time.Time
	SavedAt          time.Time
}
