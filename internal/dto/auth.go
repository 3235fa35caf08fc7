package dto

import "time"

// DeviceAuthRequest registers (or re-registers) a device. A device that
// already has an ID sends it back to keep its saved data across reinstalls.
type DeviceAuthRequest struct {
	DeviceID string `json:"deviceID" binding:"omitempty,uuid"`
}

// DeviceAuthResponse carries the bearer token the app uses from then on.
type DeviceAuthResponse struct {
	DeviceID  string    `json:"deviceID"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
