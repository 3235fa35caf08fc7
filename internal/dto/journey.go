package dto

import (
	"time"

	"github.com/railsathi/railsathi_backend/internal/core/domain"
	"github.com/railsathi/railsathi_backend/internal/utils/display"
)

// SaveJourneyRequest asks for a PNR to be looked up and saved. PNR length is
// validated here, before any network call happens.
type SaveJourneyRequest struct {
	PNR string `json:"pnr" binding:"required,pnr"`
}

// MarkNextJourneyRequest designates a saved journey as the next journey.
type MarkNextJourneyRequest struct {
	PNR string `json:"pnr" binding:"required,pnr"`
}

// PassengerView is a passenger with its presentation values resolved.
type PassengerView struct {
	Number      int    `json:"number"`
	Status      string `json:"status"`
	StatusLabel string `json:"statusLabel"`
	StatusColor string `json:"statusColor"`
	Coach       string `json:"coach"`
	Berth       string `json:"berth"`
	Seat        string `json:"seat"`
}

// JourneyResponse is the wire shape of a journey, raw fields plus the
// display values the client renders directly.
type JourneyResponse struct {
	JourneyID string `json:"journeyID,omitempty"`
	PNR       string `json:"pnr"`

	TrainNumber string `json:"trainNumber"`
	TrainName   string `json:"trainName"`

	From            string `json:"from"`
	To              string `json:"to"`
	BoardingPoint   string `json:"boardingPoint"`
	ReservationUpto string `json:"reservationUpto"`

	SourceDate             string `json:"sourceDate"`
	SourceDateDisplay      string `json:"sourceDateDisplay"`
	DestinationDate        string `json:"destinationDate"`
	DestinationDateDisplay string `json:"destinationDateDisplay"`

	JourneyClass  string `json:"journeyClass"`
	Quota         string `json:"quota"`
	CoachPosition string `json:"coachPosition"`

	ArrivalTime      string `json:"arrivalTime"`
	DepartureTime    string `json:"departureTime"`
	ExpectedPlatform string `json:"expectedPlatform"`

	TicketFare  string `json:"ticketFare"`
	BookingFare string `json:"bookingFare"`

	ChartPrepared bool            `json:"chartPrepared"`
	Passengers    []PassengerView `json:"passengers"`

	LastChecked        string    `json:"lastChecked,omitempty"`
	LastCheckedDisplay string    `json:"lastCheckedDisplay,omitempty"`
	SavedAt            time.Time `json:"savedAt,omitempty"`

	IsRefreshing  bool `json:"isRefreshing"`
	IsNextJourney bool `json:"isNextJourney"`
}

// ToJourneyResponse converts a domain.JourneyRecord to its wire shape.
func ToJourneyResponse(r *domain.JourneyRecord) JourneyResponse {
	passengers := make([]PassengerView, len(r.Passengers))
	for i, p := range r.Passengers {
		passengers[i] = PassengerView{
			Number:      p.Number,
			Status:      p.Status,
			StatusLabel: display.LabelFor(p.Status),
			StatusColor: display.ColorFor(p.Status),
			Coach:       p.Coach,
			Berth:       p.Berth,
			Seat:        p.Seat,
		}
	}

	resp := JourneyResponse{
		JourneyID:              r.JourneyID,
		PNR:                    r.PNR,
		TrainNumber:            r.TrainNumber,
		TrainName:              r.TrainName,
		From:                   r.From,
		To:                     r.To,
		BoardingPoint:          r.BoardingPoint,
		ReservationUpto:        r.ReservationUpto,
		SourceDate:             r.SourceDate,
		SourceDateDisplay:      display.FormatJourneyDate(r.SourceDate),
		DestinationDate:        r.DestinationDate,
		DestinationDateDisplay: display.FormatJourneyDate(r.DestinationDate),
		JourneyClass:           r.JourneyClass,
		Quota:                  r.Quota,
		CoachPosition:          r.CoachPosition,
		ArrivalTime:            r.ArrivalTime,
		DepartureTime:          r.DepartureTime,
		ExpectedPlatform:       r.ExpectedPlatform,
		TicketFare:             r.TicketFare,
		BookingFare:            r.BookingFare,
		ChartPrepared:          r.ChartPrepared,
		Passengers:             passengers,
		SavedAt:                r.SavedAt,
		IsRefreshing:           r.IsRefreshing,
	}

	if !r.LastChecked.IsZero() {
		resp.LastChecked = r.LastChecked.Format(time.RFC3339)
		resp.LastCheckedDisplay = display.Relative(r.LastChecked)
	}
	return resp
}

// ToJourneyListResponse converts a saved list, flagging the next journey.
func ToJourneyListResponse(records []domain.JourneyRecord, nextPNR string) []JourneyResponse {
	res := make([]JourneyResponse, len(records))
	for i, r := range records {
		res[i] = ToJourneyResponse(&r)
		res[i].IsNextJourney = nextPNR != "" && r.PNR == nextPNR
	}
	return res
}
