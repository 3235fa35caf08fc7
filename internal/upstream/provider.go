// Package upstream holds the adapters for the third-party railway data
// providers. Each provider has its own wire schema; one adapter per source
// maps it into the canonical domain shapes so schema drift stays isolated
// to a single translation point.
package upstream

import (
	"context"
	"strings"

	"github.com/railsathi/railsathi_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PNRProvider is implemented by each upstream PNR-status source. The
// returned record has its identity fields (JourneyID, DeviceID, SavedAt)
// unset; those belong to the save path, not to the lookup.
type PNRProvider interface {
	Name() string
	FetchPNRStatus(ctx context.Context, pnr string) (*domain.JourneyRecord, error)
}

// TrainProvider serves timetable and live running status lookups.
type TrainProvider interface {
	FetchSchedule(ctx context.Context, trainNumber string) (*domain.TrainSchedule, error)
	FetchLiveStatus(ctx context.Context, trainNumber string, date string) (*domain.LiveStatus, error)
}

// pick resolves one passenger field current-over-booking. Each field is
// resolved independently so a partial response (current coach known, current
// berth unknown) still yields the best available value per field.
func pick(current, booking, fallback string) string {
	if v := strings.TrimSpace(current); v != "" {
		return v
	}
	if v := strings.TrimSpace(booking); v != "" {
		return v
	}
	return fallback
}

// orDash substitutes the display placeholder for a missing optional field so
// rendering never has to deal with empty strings.
func orDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return domain.Placeholder
	}
	return v
}

// normalizeFare canonicalizes a fare to two decimal places when it is
// numeric, and keeps it verbatim otherwise (some providers send "N/A").
func normalizeFare(v FlexString) string {
	s := strings.TrimSpace(v.String())
	if s == "" {
		return domain.Placeholder
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d.StringFixed(2)
	}
	return s
}
