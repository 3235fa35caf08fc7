package upstream

import (
	"encoding/json"
	"testing"

	"github.com/railsathi/railsathi_backend/internal/apperrors"
	"github.com/railsathi/railsathi_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexStringAcceptsNumberOrString(t *testing.T) {
	var payload struct {
		Platform FlexString `json:"platform"`
		BerthNo  FlexString `json:"berthNo"`
		Fare     FlexString `json:"fare"`
		Missing  FlexString `json:"missing"`
	}

	raw := `{"platform": 4, "berthNo": "32", "fare": 1250.5, "missing": null}`
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	assert.Equal(t, "4", payload.Platform.String())
	assert.Equal(t, "32", payload.BerthNo.String())
	assert.Equal(t, "1250.5", payload.Fare.String())
	assert.Equal(t, "", payload.Missing.String())
}

func TestFlexStringKeepsNonNumericPlaceholder(t *testing.T) {
	var payload struct {
		Platform FlexString `json:"platform"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"platform": "N/A"}`), &payload))
	assert.Equal(t, "N/A", payload.Platform.String())
}

func TestNormalizeRailStackPrefersCurrentOverBooking(t *testing.T) {
	envelope := railstackEnvelope{
		Success: true,
		Data: &railstackData{
			TrainNumber: "12951",
			TrainName:   "Mumbai Rajdhani",
			PassengerList: []railstackPassenger{
				{
					PassengerSerialNumber: 1,
					BookingStatus:         "WL/12",
					BookingCoachID:        "B4",
					BookingBerthCode:      "LB",
					BookingBerthNo:        "17",
					CurrentStatus:         "CNF",
					CurrentCoachID:        "B2",
					CurrentBerthCode:      "UB",
					CurrentBerthNo:        "32",
				},
			},
		},
	}

	record, err := normalizeRailStack("8524567890", envelope)
	require.NoError(t, err)
	require.Len(t, record.Passengers, 1)

	p := record.Passengers[0]
	assert.Equal(t, "CNF", p.Status)
	assert.Equal(t, "B2", p.Coach)
	assert.Equal(t, "UB", p.Berth)
	assert.Equal(t, "32", p.Seat)
}

func TestNormalizeRailStackFallsBackToBookingValues(t *testing.T) {
	envelope := railstackEnvelope{
		Success: true,
		Data: &railstackData{
			PassengerList: []railstackPassenger{
				{
					PassengerSerialNumber: 1,
					BookingStatus:         "WL/12",
					BookingCoachID:        "B4",
					BookingBerthCode:      "LB",
					BookingBerthNo:        "17",
				},
			},
		},
	}

	record, err := normalizeRailStack("8524567890", envelope)
	require.NoError(t, err)

	p := record.Passengers[0]
	assert.Equal(t, "WL/12", p.Status)
	assert.Equal(t, "B4", p.Coach)
	assert.Equal(t, "LB", p.Berth)
	assert.Equal(t, "17", p.Seat)
}

func TestNormalizeRailStackResolvesFieldsIndependently(t *testing.T) {
	// Current coach known but current berth unknown: the coach comes from
	// the current values while the berth falls back to booking, per field.
	envelope := railstackEnvelope{
		Success: true,
		Data: &railstackData{
			PassengerList: []railstackPassenger{
				{
					BookingStatus:    "RAC/4",
					BookingCoachID:   "S6",
					BookingBerthCode: "SL",
					BookingBerthNo:   "44",
					CurrentCoachID:   "S2",
				},
			},
		},
	}

	record, err := normalizeRailStack("8524567890", envelope)
	require.NoError(t, err)

	p := record.Passengers[0]
	assert.Equal(t, "RAC/4", p.Status)
	assert.Equal(t, "S2", p.Coach)
	assert.Equal(t, "SL", p.Berth)
	assert.Equal(t, "44", p.Seat)
}

func TestNormalizeRailStackStatusFallsBackToUnknown(t *testing.T) {
	envelope := railstackEnvelope{
		Success: true,
		Data: &railstackData{
			PassengerList: []railstackPassenger{{PassengerSerialNumber: 1}},
		},
	}

	record, err := normalizeRailStack("8524567890", envelope)
	require.NoError(t, err)
	assert.Equal(t, "Unknown", record.Passengers[0].Status)
}

func TestNormalizeRailStackMissingOptionalFieldsBecomeDash(t *testing.T) {
	envelope := railstackEnvelope{
		Success: true,
		Data:    &railstackData{TrainNumber: "12951"},
	}

	record, err := normalizeRailStack("8524567890", envelope)
	require.NoError(t, err)

	assert.Equal(t, domain.Placeholder, record.TrainName)
	assert.Equal(t, domain.Placeholder, record.BoardingPoint)
	assert.Equal(t, domain.Placeholder, record.ExpectedPlatform)
	assert.Equal(t, domain.Placeholder, record.TicketFare)
	assert.NotNil(t, record.Passengers)
	assert.Empty(t, record.Passengers)
}

func TestNormalizeRailStackRejectsUnsuccessfulEnvelope(t *testing.T) {
	record, err := normalizeRailStack("8524567890", railstackEnvelope{Success: false, Message: "flushed"})
	assert.Nil(t, record)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)

	// A success flag with no data payload is just as unusable.
	record, err = normalizeRailStack("8524567890", railstackEnvelope{Success: true})
	assert.Nil(t, record)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestNormalizeRailStackFareCanonicalized(t *testing.T) {
	envelope := railstackEnvelope{
		Success: true,
		Data: &railstackData{
			TicketFare:  "1250.5",
			BookingFare: "N/A",
		},
	}

	record, err := normalizeRailStack("8524567890", envelope)
	require.NoError(t, err)
	assert.Equal(t, "1250.50", record.TicketFare)
	assert.Equal(t, "N/A", record.BookingFare)
}

func TestNormalizeRailStackChartStatus(t *testing.T) {
	assert.True(t, chartPreparedFromStatus("Chart Prepared"))
	assert.False(t, chartPreparedFromStatus("Chart Not Prepared"))
	assert.False(t, chartPreparedFromStatus(""))
}

func TestNormalizeTrainVista(t *testing.T) {
	payload := trainvistaPNRResponse{
		ResponseCode:       200,
		Status:             "SUCCESS",
		TrainNo:            "12951",
		TrainName:          "Mumbai Rajdhani",
		Doj:                "21-09-2024",
		From:               "NDLS",
		To:                 "BCT",
		Class:              "3A",
		ChartPrepared:      true,
		ExpectedPlatformNo: "5",
		PassengerStatus: []trainvistaPassenger{
			{Number: 1, BookingStatus: "WL/3", CurrentStatus: "RAC/1", BookingCoach: "B1", CurrentCoach: "B1", CurrentBerthNo: "12"},
			{BookingStatus: "WL/4"},
		},
	}

	record, err := normalizeTrainVista("8524567890", payload)
	require.NoError(t, err)

	assert.Equal(t, "12951", record.TrainNumber)
	assert.Equal(t, "5", record.ExpectedPlatform)
	assert.True(t, record.ChartPrepared)
	require.Len(t, record.Passengers, 2)
	assert.Equal(t, "RAC/1", record.Passengers[0].Status)
	// A missing serial number falls back to the positional index.
	assert.Equal(t, 2, record.Passengers[1].Number)
	assert.Equal(t, "WL/4", record.Passengers[1].Status)
}

func TestNormalizeTrainVistaRejectsFailure(t *testing.T) {
	record, err := normalizeTrainVista("8524567890", trainvistaPNRResponse{ResponseCode: 500, Status: "FAILED"})
	assert.Nil(t, record)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}
