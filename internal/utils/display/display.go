// Package display holds the pure presentation helpers used when shaping API
// responses: status colors/labels, defensive journey-date formatting,
// relative timestamps and the date-picker month grid. No state, no side effects.
package display

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DatePlaceholder is returned when no interpretation of a journey date parses.
const DatePlaceholder = "Date unavailable"

// Status colors, as hex values the client renders directly.
const (
	ColorConfirmed  = "#16a34a" // green
	ColorWaitlisted = "#d97706" // amber
	ColorRAC        = "#2563eb" // blue
	ColorCancelled  = "#dc2626" // red
	ColorNeutral    = "#6b7280" // gray
)

// Upstream sometimes appends a waitlist position to the code, e.g. "WL/23".
var statusSuffix = regexp.MustCompile(`/\d+$`)

// normalizeStatus uppercases the token and strips a trailing "/<digits>"
// suffix so "wl/23" matches the same as "WL".
func normalizeStatus(status string) string {
	return statusSuffix.ReplaceAllString(strings.ToUpper(strings.TrimSpace(status)), "")
}

// ColorFor maps a raw status code to its display color. Matching is
// case-insensitive and suffix-insensitive; unknown codes get the neutral gray.
func ColorFor(status string) string {
	switch normalizeStatus(status) {
	case "CNF", "CONFIRMED":
		return ColorConfirmed
	case "WL", "WAITLISTED":
		return ColorWaitlisted
	case "RAC":
		return ColorRAC
	case "CAN", "CANCELLED":
		return ColorCancelled
	default:
		return ColorNeutral
	}
}

// LabelFor maps a raw status code to a human-readable label. Unrecognized
// tokens pass through unchanged so codes we don't know yet still render.
func LabelFor(status string) string {
	switch normalizeStatus(status) {
	case "CNF", "CONFIRMED":
		return "Confirmed"
	case "WL", "WAITLISTED":
		return "Waitlisted"
	case "RAC":
		return "RAC"
	case "CAN", "CANCELLED":
		return "Cancelled"
	default:
		return status
	}
}

// FormatJourneyDate renders an upstream journey date as e.g. "Sat, Sep 21st".
// Upstream mixes YYYY-MM-DD and DD-MM-YYYY; whichever segment has four digits
// disambiguates. Anything else falls back to a generic parse, and a value
// that parses no way at all yields DatePlaceholder rather than an error.
func FormatJourneyDate(raw string) string {
	t, ok := parseJourneyDate(raw)
	if !ok {
		return DatePlaceholder
	}
	return fmt.Sprintf("%s, %s %d%s", t.Format("Mon"), t.Format("Jan"), t.Day(), ordinalSuffix(t.Day()))
}

// ParseJourneyDate exposes the defensive parse for callers that need the
// time.Time itself (e.g. sorting upcoming journeys).
func ParseJourneyDate(raw string) (time.Time, bool) {
	return parseJourneyDate(raw)
}

func parseJourneyDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	if parts := strings.Split(raw, "-"); len(parts) == 3 {
		var layout string
		switch {
		case len(parts[0]) == 4:
			layout = "2006-1-2"
		case len(parts[2]) == 4:
			layout = "2-1-2006"
		}
		if layout != "" {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, true
			}
		}
	}

	// Generic fallbacks for the odd provider that uses something else.
	for _, layout := range []string{"2/1/2006", "2006/1/2", "Jan 2, 2006", "2 Jan 2006", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ordinalSuffix follows the English rule: 11-13 always "th", otherwise by
// the ones digit.
func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// RelativeSince renders how long ago t was, relative to now.
func RelativeSince(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "Never"
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%d min ago", int(d.Minutes()))
	case d < 24*time.Hour:
		h := int(d.Hours())
		if h == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", h)
	case d < 48*time.Hour:
		return "Yesterday"
	default:
		return t.Format("2 Jan 2006")
	}
}

// Relative is RelativeSince against the current time.
func Relative(t time.Time) string {
	return RelativeSince(t, time.Now())
}

// MonthGrid builds the calendar grid the client's date picker renders: one
// row per week, Sunday first, zero for cells outside the month.
func MonthGrid(year int, month time.Month) [][7]int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	var weeks [][7]int
	var week [7]int
	col := int(first.Weekday())

	for day := 1; day <= daysInMonth; day++ {
		week[col] = day
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = [7]int{}
			col = 0
		}
	}
	if col != 0 {
		weeks = append(weeks, week)
	}
	return weeks
}
