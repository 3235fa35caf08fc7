package domain

import "time"

// ScheduleStop is one halt on a train's timetable.
type ScheduleStop struct {
	StationCode string  `json:"stationCode"`
	StationName string  `json:"stationName"`
	Arrival     string  `json:"arrival"`
	Departure   string  `json:"departure"`
	Halt        string  `json:"halt"`
	Day         int     `json:"day"`
	DistanceKm  float64 `json:"distanceKm"`
	Platform    string  `json:"platform"`
}

// TrainSchedule is the full timetable for a train number.
type TrainSchedule struct {
	TrainNumber string         `json:"trainNumber"`
	TrainName   string         `json:"trainName"`
	RunDays     []string       `json:"runDays"`
	Stops       []ScheduleStop `json:"stops"`
}

// LiveStatus is a snapshot of where a train currently is.
type LiveStatus struct {
	TrainNumber    string    `json:"trainNumber"`
	TrainName      string    `json:"trainName"`
	CurrentStation string    `json:"currentStation"`
	StatusNote     string    `json:"statusNote"`
	DelayMinutes   int       `json:"delayMinutes"`
	LastUpdated    time.Time `json:"lastUpdated"`
	Upcoming       []ScheduleStop `json:"upcoming"`
}
