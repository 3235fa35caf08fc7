package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/railsathi/railsathi_backend/internal/apperrors"
	"github.com/railsathi/railsathi_backend/internal/core/domain"
	portssvc "github.com/railsathi/railsathi_backend/internal/core/ports/services"
	"github.com/railsathi/railsathi_backend/internal/dto"
	"github.com/railsathi/railsathi_backend/internal/handlers"
	"github.com/railsathi/railsathi_backend/internal/middleware"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JourneyService ---
type MockJourneyService struct {
	mock.Mock
}

func (m *MockJourneyService) ListJourneys(ctx context.Context, deviceID string) ([]domain.JourneyRecord, error) {
	args := m.Called(ctx, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JourneyRecord), args.Error(1)
}

func (m *MockJourneyService) GetNextJourney(ctx context.Context, deviceID string) (*domain.JourneyRecord, error) {
	args := m.Called(ctx, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JourneyRecord), args.Error(1)
}

func (m *MockJourneyService) SaveJourney(ctx context.Context, deviceID, pnr string) (*domain.JourneyRecord, error) {
	args := m.Called(ctx, deviceID, pnr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JourneyRecord), args.Error(1)
}

func (m *MockJourneyService) RefreshJourney(ctx context.Context, deviceID, journeyID string) (*domain.JourneyRecord, error) {
	args := m.Called(ctx, deviceID, journeyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JourneyRecord), args.Error(1)
}

func (m *MockJourneyService) DeleteJourney(ctx context.Context, deviceID, journeyID string) error {
	args := m.Called(ctx, deviceID, journeyID)
	return args.Error(0)
}

func (m *MockJourneyService) MarkNextJourney(ctx context.Context, deviceID, pnr string) (bool, error) {
	args := m.Called(ctx, deviceID, pnr)
	return args.Bool(0), args.Error(1)
}

func (m *MockJourneyService) UnmarkNextJourney(ctx context.Context, deviceID string) error {
	args := m.Called(ctx, deviceID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.JourneySvcFacade = (*MockJourneyService)(nil)

// --- Test Suite ---
type JourneyHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockJourneyService
	jwtSecret   string
	deviceID    string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *JourneyHandlerTestSuite) generateTestToken(deviceID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "railsathi-test",
		Subject:   deviceID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *JourneyHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.deviceID = uuid.NewString()

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockService = new(MockJourneyService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterJourneyRoutes(v1, suite.mockService)
}

func (suite *JourneyHandlerTestSuite) doRequest(method, url, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.deviceID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *JourneyHandlerTestSuite) TestListJourneys_FlagsNextJourney() {
	records := []domain.JourneyRecord{
		{JourneyID: uuid.NewString(), PNR: "1234567890", Passengers: []domain.Passenger{}},
		{JourneyID: uuid.NewString(), PNR: "9876543210", Passengers: []domain.Passenger{}},
	}
	next := records[1]

	suite.mockService.On("ListJourneys", mock.Anything, suite.deviceID).Return(records, nil).Once()
	suite.mockService.On("GetNextJourney", mock.Anything, suite.deviceID).Return(&next, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/journeys", "")

	suite.Equal(http.StatusOK, w.Code)

	var resp []dto.JourneyResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 2)
	suite.False(resp[0].IsNextJourney)
	suite.True(resp[1].IsNextJourney)
}

func (suite *JourneyHandlerTestSuite) TestSaveJourney_InvalidPNRRejectedBeforeService() {
	w := suite.doRequest(http.MethodPost, "/api/v1/journeys", `{"pnr":"12345"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "SaveJourney", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JourneyHandlerTestSuite) TestSaveJourney_Success() {
	pnr := "1234567890"
	record := &domain.JourneyRecord{
		JourneyID:  uuid.NewString(),
		DeviceID:   suite.deviceID,
		PNR:        pnr,
		Passengers: []domain.Passenger{{Number: 1, Status: "WL/23"}},
	}

	suite.mockService.On("SaveJourney", mock.Anything, suite.deviceID, pnr).Return(record, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/journeys", fmt.Sprintf(`{"pnr":%q}`, pnr))

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.JourneyResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(pnr, resp.PNR)
	suite.Require().Len(resp.Passengers, 1)
	// Display values for the raw status travel with the response.
	suite.Equal("Waitlisted", resp.Passengers[0].StatusLabel)
	suite.Equal("#d97706", resp.Passengers[0].StatusColor)
}

func (suite *JourneyHandlerTestSuite) TestSaveJourney_UnknownPNR() {
	pnr := "1234567890"

	suite.mockService.On("SaveJourney", mock.Anything, suite.deviceID, pnr).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/journeys", fmt.Sprintf(`{"pnr":%q}`, pnr))

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *JourneyHandlerTestSuite) TestRefreshJourney_UpstreamFailure() {
	journeyID := uuid.NewString()

	suite.mockService.On("RefreshJourney", mock.Anything, suite.deviceID, journeyID).Return(nil, apperrors.ErrUpstream).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/journeys/"+journeyID+"/refresh", "")

	suite.Equal(http.StatusBadGateway, w.Code)
}

func (suite *JourneyHandlerTestSuite) TestDeleteJourney_Success() {
	journeyID := uuid.NewString()

	suite.mockService.On("DeleteJourney", mock.Anything, suite.deviceID, journeyID).Return(nil).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/journeys/"+journeyID, "")

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *JourneyHandlerTestSuite) TestGetNextJourney_NothingMarked() {
	suite.mockService.On("GetNextJourney", mock.Anything, suite.deviceID).Return(nil, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/journeys/next", "")

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *JourneyHandlerTestSuite) TestMarkNextJourney_Conflict() {
	pnr := "1234567890"

	suite.mockService.On("MarkNextJourney", mock.Anything, suite.deviceID, pnr).Return(false, apperrors.ErrAlreadyMarked).Once()

	w := suite.doRequest(http.MethodPut, "/api/v1/journeys/next", fmt.Sprintf(`{"pnr":%q}`, pnr))

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *JourneyHandlerTestSuite) TestMarkNextJourney_Toggle() {
	pnr := "1234567890"

	suite.mockService.On("MarkNextJourney", mock.Anything, suite.deviceID, pnr).Return(false, nil).Once()

	w := suite.doRequest(http.MethodPut, "/api/v1/journeys/next", fmt.Sprintf(`{"pnr":%q}`, pnr))

	suite.Equal(http.StatusOK, w.Code)

	var resp map[string]bool
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp["marked"])
}

func (suite *JourneyHandlerTestSuite) TestUnauthorizedWithoutToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/journeys", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListJourneys", mock.Anything, mock.Anything)
}

func TestJourneyHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(JourneyHandlerTestSuite))
}
