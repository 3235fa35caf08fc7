package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/railsathi/railsathi_backend/internal/apperrors"
	"github.com/railsathi/railsathi_backend/internal/core/domain"
	"github.com/railsathi/railsathi_backend/pkg/metrics"
)

const trainvistaName = "trainvista"

// TrainVistaClient talks to the TrainVista API (PascalCase schema,
// ResponseCode envelope). It is both the fallback PNR source and the sole
// source for timetables and live running status, keyed by train number.
type TrainVistaClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewTrainVistaClient creates a TrainVista adapter.
func NewTrainVistaClient(baseURL, apiKey string, timeout time.Duration) *TrainVistaClient {
	return &TrainVistaClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *TrainVistaClient) Name() string { return trainvistaName }

// get performs one authenticated GET and decodes the body into out.
func (c *TrainVistaClient) get(ctx context.Context, endpoint, path string, query url.Values, out any) error {
	started := time.Now()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("trainvista: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(trainvistaName, endpoint, "transport_error", started)
		return fmt.Errorf("%w: trainvista unreachable: %v", apperrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		metrics.ObserveUpstream(trainvistaName, endpoint, "not_found", started)
		return apperrors.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		metrics.ObserveUpstream(trainvistaName, endpoint, "http_error", started)
		return fmt.Errorf("%w: trainvista returned status %d", apperrors.ErrUpstream, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.ObserveUpstream(trainvistaName, endpoint, "decode_error", started)
		return fmt.Errorf("%w: trainvista sent malformed JSON: %v", apperrors.ErrUpstream, err)
	}

	metrics.ObserveUpstream(trainvistaName, endpoint, "ok", started)
	return nil
}

// trainvistaPNRResponse is the provider's PNR payload. Unlike RailStack
// there is no nested data object; the envelope and the payload are one.
type trainvistaPNRResponse struct {
	ResponseCode       int                   `json:"ResponseCode"`
	Status             string                `json:"Status"`
	Pnr                FlexString            `json:"Pnr"`
	TrainNo            FlexString            `json:"TrainNo"`
	TrainName          string                `json:"TrainName"`
	Doj                string                `json:"Doj"`
	ArrivalDoj         string                `json:"ArrivalDoj"`
	From               string                `json:"From"`
	To                 string                `json:"To"`
	BoardingPoint      string                `json:"BoardingPoint"`
	ReservationUpto    string                `json:"ReservationUpto"`
	Class              string                `json:"Class"`
	Quota              string                `json:"Quota"`
	ChartPrepared      bool                  `json:"ChartPrepared"`
	ExpectedPlatformNo FlexString            `json:"ExpectedPlatformNo"`
	ArrivalTime        string                `json:"ArrivalTime"`
	DepartureTime      string                `json:"DepartureTime"`
	TicketFare         FlexString            `json:"TicketFare"`
	BookingFare        FlexString            `json:"BookingFare"`
	PassengerStatus    []trainvistaPassenger `json:"PassengerStatus"`
}

type trainvistaPassenger struct {
	Number         int        `json:"Number"`
	BookingStatus  string     `json:"BookingStatus"`
	BookingCoach   string     `json:"BookingCoach"`
	BookingBerth   FlexString `json:"BookingBerth"`
	BookingBerthNo FlexString `json:"BookingBerthNo"`
	CurrentStatus  string     `json:"CurrentStatus"`
	CurrentCoach   string     `json:"CurrentCoach"`
	CurrentBerth   FlexString `json:"CurrentBerth"`
	CurrentBerthNo FlexString `json:"CurrentBerthNo"`
}

// FetchPNRStatus looks up a PNR and normalizes the payload.
func (c *TrainVistaClient) FetchPNRStatus(ctx context.Context, pnr string) (*domain.JourneyRecord, error) {
	var payload trainvistaPNRResponse
	if err := c.get(ctx, "pnr", "/v2/pnr-status/"+pnr, nil, &payload); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: pnr %s", apperrors.ErrNotFound, pnr)
		}
		return nil, err
	}
	return normalizeTrainVista(pnr, payload)
}

// normalizeTrainVista maps the TrainVista schema into the canonical record.
func normalizeTrainVista(pnr string, payload trainvistaPNRResponse) (*domain.JourneyRecord, error) {
	if payload.ResponseCode != http.StatusOK || !strings.EqualFold(payload.Status, "SUCCESS") {
		return nil, fmt.Errorf("%w: trainvista: lookup failed with code %d", apperrors.ErrUpstream, payload.ResponseCode)
	}

	passengers := make([]domain.Passenger, 0, len(payload.PassengerStatus))
	for i, p := range payload.PassengerStatus {
		number := p.Number
		if number == 0 {
			number = i + 1
		}
		passengers = append(passengers, domain.Passenger{
			Number: number,
			Status: pick(p.CurrentStatus, p.BookingStatus, "Unknown"),
			Coach:  pick(p.CurrentCoach, p.BookingCoach, domain.Placeholder),
			Berth:  pick(p.CurrentBerth.String(), p.BookingBerth.String(), domain.Placeholder),
			Seat:   pick(p.CurrentBerthNo.String(), p.BookingBerthNo.String(), domain.Placeholder),
		})
	}

	recordPNR := strings.TrimSpace(payload.Pnr.String())
	if recordPNR == "" {
		recordPNR = pnr
	}

	return &domain.JourneyRecord{
		PNR:              recordPNR,
		TrainNumber:      orDash(payload.TrainNo.String()),
		TrainName:        orDash(payload.TrainName),
		From:             orDash(payload.From),
		To:               orDash(payload.To),
		BoardingPoint:    orDash(payload.BoardingPoint),
		ReservationUpto:  orDash(payload.ReservationUpto),
		SourceDate:       payload.Doj,
		DestinationDate:  payload.ArrivalDoj,
		JourneyClass:     orDash(payload.Class),
		Quota:            orDash(payload.Quota),
		CoachPosition:    domain.Placeholder,
		ArrivalTime:      orDash(payload.ArrivalTime),
		DepartureTime:    orDash(payload.DepartureTime),
		ExpectedPlatform: orDash(payload.ExpectedPlatformNo.String()),
		TicketFare:       normalizeFare(payload.TicketFare),
		BookingFare:      normalizeFare(payload.BookingFare),
		ChartPrepared:    payload.ChartPrepared,
		Passengers:       passengers,
	}, nil
}

// trainvistaScheduleResponse is the timetable payload.
type trainvistaScheduleResponse struct {
	ResponseCode int                   `json:"ResponseCode"`
	TrainNo      FlexString            `json:"TrainNo"`
	TrainName    string                `json:"TrainName"`
	RunDays      []string              `json:"RunDays"`
	Route        []trainvistaRouteStop `json:"Route"`
}

type trainvistaRouteStop struct {
	StationCode string     `json:"StationCode"`
	StationName string     `json:"StationName"`
	ArrivalTime string     `json:"ArrivalTime"`
	DepartTime  string     `json:"DepartTime"`
	Halt        string     `json:"Halt"`
	Day         int        `json:"Day"`
	Distance    float64    `json:"Distance"`
	Platform    FlexString `json:"Platform"`
}

// FetchSchedule fetches and normalizes the timetable for a train number.
func (c *TrainVistaClient) FetchSchedule(ctx context.Context, trainNumber string) (*domain.TrainSchedule, error) {
	var payload trainvistaScheduleResponse
	if err := c.get(ctx, "schedule", "/v2/train-schedule/"+trainNumber, nil, &payload); err != nil {
		return nil, err
	}
	if payload.ResponseCode != http.StatusOK {
		return nil, fmt.Errorf("%w: trainvista: schedule lookup failed with code %d", apperrors.ErrUpstream, payload.ResponseCode)
	}

	stops := make([]domain.ScheduleStop, 0, len(payload.Route))
	for _, s := range payload.Route {
		stops = append(stops, domain.ScheduleStop{
			StationCode: s.StationCode,
			StationName: orDash(s.StationName),
			Arrival:     orDash(s.ArrivalTime),
			Departure:   orDash(s.DepartTime),
			Halt:        orDash(s.Halt),
			Day:         s.Day,
			DistanceKm:  s.Distance,
			Platform:    orDash(s.Platform.String()),
		})
	}

	return &domain.TrainSchedule{
		TrainNumber: orDash(payload.TrainNo.String()),
		TrainName:   orDash(payload.TrainName),
		RunDays:     payload.RunDays,
		Stops:       stops,
	}, nil
}

// trainvistaLiveResponse is the live running-status payload.
type trainvistaLiveResponse struct {
	ResponseCode   int                   `json:"ResponseCode"`
	TrainNo        FlexString            `json:"TrainNo"`
	TrainName      string                `json:"TrainName"`
	CurrentStation string                `json:"CurrentStation"`
	Status         string                `json:"Status"`
	DelayMinutes   int                   `json:"DelayMinutes"`
	LastUpdatedAt  string                `json:"LastUpdatedAt"`
	Upcoming       []trainvistaRouteStop `json:"Upcoming"`
}

// FetchLiveStatus fetches the live position of a train on the given date
// (YYYYMMDD as the provider expects; passed through as received).
func (c *TrainVistaClient) FetchLiveStatus(ctx context.Context, trainNumber string, date string) (*domain.LiveStatus, error) {
	query := url.Values{}
	if date != "" {
		query.Set("date", date)
	}

	var payload trainvistaLiveResponse
	if err := c.get(ctx, "live_status", "/v2/live-status/"+trainNumber, query, &payload); err != nil {
		return nil, err
	}
	if payload.ResponseCode != http.StatusOK {
		return nil, fmt.Errorf("%w: trainvista: live status lookup failed with code %d", apperrors.ErrUpstream, payload.ResponseCode)
	}

	upcoming := make([]domain.ScheduleStop, 0, len(payload.Upcoming))
	for _, s := range payload.Upcoming {
		upcoming = append(upcoming, domain.ScheduleStop{
			StationCode: s.StationCode,
			StationName: orDash(s.StationName),
			Arrival:     orDash(s.ArrivalTime),
			Departure:   orDash(s.DepartTime),
			Halt:        orDash(s.Halt),
			Day:         s.Day,
			DistanceKm:  s.Distance,
			Platform:    orDash(s.Platform.String()),
		})
	}

	lastUpdated := time.Now()
	if t, err := time.Parse(time.RFC3339, payload.LastUpdatedAt); err == nil {
		lastUpdated = t
	}

	return &domain.LiveStatus{
		TrainNumber:    orDash(payload.TrainNo.String()),
		TrainName:      orDash(payload.TrainName),
		CurrentStation: orDash(payload.CurrentStation),
		StatusNote:     orDash(payload.Status),
		DelayMinutes:   payload.DelayMinutes,
		LastUpdated:    lastUpdated,
		Upcoming:       upcoming,
	}, nil
}
