package dto

import (
	"time"

	"github.com/railsathi/railsathi_backend/internal/core/domain"
	"github.com/railsathi/railsathi_backend/internal/utils/display"
)

// ScheduleStopResponse is one halt on the timetable.
type ScheduleStopResponse struct {
	StationCode string  `json:"stationCode"`
	StationName string  `json:"stationName"`
	Arrival     string  `json:"arrival"`
	Departure   string  `json:"departure"`
	Halt        string  `json:"halt"`
	Day         int     `json:"day"`
	DistanceKm  float64 `json:"distanceKm"`
	Platform    string  `json:"platform"`
}

// TrainScheduleResponse is the full timetable for a train.
type TrainScheduleResponse struct {
	TrainNumber string                 `json:"trainNumber"`
	TrainName   string                 `json:"trainName"`
	RunDays     []string               `json:"runDays"`
	Stops       []ScheduleStopResponse `json:"stops"`
}

// ToTrainScheduleResponse converts a domain schedule to its wire shape.
func ToTrainScheduleResponse(s *domain.TrainSchedule) TrainScheduleResponse {
	stops := make([]ScheduleStopResponse, len(s.Stops))
	for i, st := range s.Stops {
		stops[i] = ScheduleStopResponse(st)
	}
	return TrainScheduleResponse{
		TrainNumber: s.TrainNumber,
		TrainName:   s.TrainName,
		RunDays:     s.RunDays,
		Stops:       stops,
	}
}

// LiveStatusResponse is the current running position of a train.
type LiveStatusResponse struct {
	TrainNumber        string                 `json:"trainNumber"`
	TrainName          string                 `json:"trainName"`
	CurrentStation     string                 `json:"currentStation"`
	StatusNote         string                 `json:"statusNote"`
	DelayMinutes       int                    `json:"delayMinutes"`
	LastUpdated        time.Time              `json:"lastUpdated"`
	LastUpdatedDisplay string                 `json:"lastUpdatedDisplay"`
	Upcoming           []ScheduleStopResponse `json:"upcoming"`
}

// ToLiveStatusResponse converts a domain live status to its wire shape.
func ToLiveStatusResponse(s *domain.LiveStatus) LiveStatusResponse {
	upcoming := make([]ScheduleStopResponse, len(s.Upcoming))
	for i, st := range s.Upcoming {
		upcoming[i] = ScheduleStopResponse(st)
	}
	return LiveStatusResponse{
		TrainNumber:        s.TrainNumber,
		TrainName:          s.TrainName,
		CurrentStation:     s.CurrentStation,
		StatusNote:         s.StatusNote,
		DelayMinutes:       s.DelayMinutes,
		LastUpdated:        s.LastUpdated,
		LastUpdatedDisplay: display.Relative(s.LastUpdated),
		Upcoming:           upcoming,
	}
}

// CalendarResponse is the month grid the date picker renders.
type CalendarResponse struct {
	Year  int      `json:"year"`
	Month int      `json:"month"`
	Weeks [][7]int `json:"weeks"`
}
