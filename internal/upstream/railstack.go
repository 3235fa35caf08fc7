package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/railsathi/railsathi_backend/internal/apperrors"
	"github.com/railsathi/railsathi_backend/internal/core/domain"
	"github.com/railsathi/railsathi_backend/pkg/metrics"
)

const railstackName = "railstack"

// RailStackClient talks to the RailStack PNR-status API (camelCase schema,
// success-flag envelope). Requests are keyed by an API key header and the
// 10-digit PNR as a path parameter.
type RailStackClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewRailStackClient creates a RailStack adapter.
func NewRailStackClient(baseURL, apiKey string, timeout time.Duration) *RailStackClient {
	return &RailStackClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *RailStackClient) Name() string { return railstackName }

// railstackEnvelope is the provider's response wrapper. A false success flag
// or an absent data payload means the lookup failed as a whole.
type railstackEnvelope struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    *railstackData `json:"data"`
}

type railstackData struct {
	PNRNumber          FlexString           `json:"pnrNumber"`
	TrainNumber        FlexString           `json:"trainNumber"`
	TrainName          string               `json:"trainName"`
	SourceStation      string               `json:"sourceStation"`
	DestinationStation string               `json:"destinationStation"`
	BoardingPoint      string               `json:"boardingPoint"`
	ReservationUpto    string               `json:"reservationUpto"`
	DateOfJourney      string               `json:"dateOfJourney"`
	ArrivalDate        string               `json:"arrivalDate"`
	JourneyClass       string               `json:"journeyClass"`
	Quota              string               `json:"quota"`
	ChartStatus        string               `json:"chartStatus"`
	CoachPosition      FlexString           `json:"coachPosition"`
	ExpectedPlatformNo FlexString           `json:"expectedPlatformNo"`
	ArrivalTime        string               `json:"arrivalTime"`
	DepartureTime      string               `json:"departureTime"`
	BookingFare        FlexString           `json:"bookingFare"`
	TicketFare         FlexString           `json:"ticketFare"`
	PassengerList      []railstackPassenger `json:"passengerList"`
}

type railstackPassenger struct {
	PassengerSerialNumber int        `json:"passengerSerialNumber"`
	BookingStatus         string     `json:"bookingStatus"`
	BookingCoachID        string     `json:"bookingCoachId"`
	BookingBerthCode      string     `json:"bookingBerthCode"`
	BookingBerthNo        FlexString `json:"bookingBerthNo"`
	CurrentStatus         string     `json:"currentStatus"`
	CurrentCoachID        string     `json:"currentCoachId"`
	CurrentBerthCode      string     `json:"currentBerthCode"`
	CurrentBerthNo        FlexString `json:"currentBerthNo"`
}

// FetchPNRStatus looks up a PNR and normalizes the payload. It returns an
// error outcome, never a partial record, when the provider reports failure.
func (c *RailStackClient) FetchPNRStatus(ctx context.Context, pnr string) (*domain.JourneyRecord, error) {
	started := time.Now()

	url := fmt.Sprintf("%s/api/v3/getPNRStatus/%s", c.baseURL, pnr)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("railstack: build request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(railstackName, "pnr", "transport_error", started)
		return nil, fmt.Errorf("%w: railstack unreachable: %v", apperrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		metrics.ObserveUpstream(railstackName, "pnr", "not_found", started)
		return nil, fmt.Errorf("%w: pnr %s", apperrors.ErrNotFound, pnr)
	}
	if resp.StatusCode != http.StatusOK {
		metrics.ObserveUpstream(railstackName, "pnr", "http_error", started)
		return nil, fmt.Errorf("%w: railstack returned status %d", apperrors.ErrUpstream, resp.StatusCode)
	}

	var envelope railstackEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		metrics.ObserveUpstream(railstackName, "pnr", "decode_error", started)
		return nil, fmt.Errorf("%w: railstack sent malformed JSON: %v", apperrors.ErrUpstream, err)
	}

	record, err := normalizeRailStack(pnr, envelope)
	if err != nil {
		metrics.ObserveUpstream(railstackName, "pnr", "rejected", started)
		return nil, err
	}

	metrics.ObserveUpstream(railstackName, "pnr", "ok", started)
	return record, nil
}

// normalizeRailStack maps the RailStack schema into the canonical record.
func normalizeRailStack(pnr string, envelope railstackEnvelope) (*domain.JourneyRecord, error) {
	if !envelope.Success || envelope.Data == nil {
		msg := envelope.Message
		if msg == "" {
			msg = "lookup unsuccessful"
		}
		return nil, fmt.Errorf("%w: railstack: %s", apperrors.ErrUpstream, msg)
	}
	d := envelope.Data

	// Passengers must never be nil; absence collapses to an empty sequence.
	passengers := make([]domain.Passenger, 0, len(d.PassengerList))
	for i, p := range d.PassengerList {
		number := p.PassengerSerialNumber
		if number == 0 {
			number = i + 1
		}
		passengers = append(passengers, domain.Passenger{
			Number: number,
			Status: pick(p.CurrentStatus, p.BookingStatus, "Unknown"),
			Coach:  pick(p.CurrentCoachID, p.BookingCoachID, domain.Placeholder),
			Berth:  pick(p.CurrentBerthCode, p.BookingBerthCode, domain.Placeholder),
			Seat:   pick(p.CurrentBerthNo.String(), p.BookingBerthNo.String(), domain.Placeholder),
		})
	}

	recordPNR := strings.TrimSpace(d.PNRNumber.String())
	if recordPNR == "" {
		recordPNR = pnr
	}

	return &domain.JourneyRecord{
		PNR:              recordPNR,
		TrainNumber:      orDash(d.TrainNumber.String()),
		TrainName:        orDash(d.TrainName),
		From:             orDash(d.SourceStation),
		To:               orDash(d.DestinationStation),
		BoardingPoint:    orDash(d.BoardingPoint),
		ReservationUpto:  orDash(d.ReservationUpto),
		SourceDate:       d.DateOfJourney,
		DestinationDate:  d.ArrivalDate,
		JourneyClass:     orDash(d.JourneyClass),
		Quota:            orDash(d.Quota),
		CoachPosition:    orDash(d.CoachPosition.String()),
		ArrivalTime:      orDash(d.ArrivalTime),
		DepartureTime:    orDash(d.DepartureTime),
		ExpectedPlatform: orDash(d.ExpectedPlatformNo.String()),
		TicketFare:       normalizeFare(d.TicketFare),
		BookingFare:      normalizeFare(d.BookingFare),
		ChartPrepared:    chartPreparedFromStatus(d.ChartStatus),
		Passengers:       passengers,
	}, nil
}

// chartPreparedFromStatus interprets RailStack's free-text chart status
// ("Chart Prepared" / "Chart Not Prepared").
func chartPreparedFromStatus(status string) bool {
	s := strings.ToLower(status)
	return strings.Contains(s, "prepared") && !strings.Contains(s, "not")
}
