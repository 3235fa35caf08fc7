package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/railsathi/railsathi_backend/internal/apperrors"
	"github.com/railsathi/railsathi_backend/internal/core/domain"
	portsrepo "github.com/railsathi/railsathi_backend/internal/core/ports/repositories"
	portssvc "github.com/railsathi/railsathi_backend/internal/core/ports/services"
	"github.com/railsathi/railsathi_backend/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JourneyRepository ---
type MockJourneyRepository struct {
	mock.Mock
}

func (m *MockJourneyRepository) ListJourneys(ctx context.Context, deviceID string) ([]domain.JourneyRecord, error) {
	args := m.Called(ctx, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JourneyRecord), args.Error(1)
}

func (m *MockJourneyRepository) FindJourneyByID(ctx context.Context, deviceID, journeyID string) (*domain.JourneyRecord, error) {
	args := m.Called(ctx, deviceID, journeyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JourneyRecord), args.Error(1)
}

func (m *MockJourneyRepository) FindJourneyByPNR(ctx context.Context, deviceID, pnr string) (*domain.JourneyRecord, error) {
	args := m.Called(ctx, deviceID, pnr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JourneyRecord), args.Error(1)
}

func (m *MockJourneyRepository) InsertJourney(ctx context.Context, record domain.JourneyRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockJourneyRepository) ReplaceJourney(ctx context.Context, record domain.JourneyRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockJourneyRepository) DeleteJourney(ctx context.Context, deviceID, journeyID string) error {
	args := m.Called(ctx, deviceID, journeyID)
	return args.Error(0)
}

// --- Mock KVRepository ---
type MockKVRepository struct {
	mock.Mock
}

func (m *MockKVRepository) Get(ctx context.Context, deviceID, key string) ([]byte, error) {
	args := m.Called(ctx, deviceID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKVRepository) Put(ctx context.Context, deviceID, key string, value []byte) error {
	args := m.Called(ctx, deviceID, key, value)
	return args.Error(0)
}

func (m *MockKVRepository) Delete(ctx context.Context, deviceID, key string) error {
	args := m.Called(ctx, deviceID, key)
	return args.Error(0)
}

// --- Mock PNRLookupSvc ---
type MockPNRLookupSvc struct {
	mock.Mock
}

func (m *MockPNRLookupSvc) LookupPNR(ctx context.Context, deviceID, pnr string) (*domain.JourneyRecord, error) {
	args := m.Called(ctx, deviceID, pnr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JourneyRecord), args.Error(1)
}

// --- Test Suite ---
type JourneyServiceTestSuite struct {
	suite.Suite
	mockJourneyRepo *MockJourneyRepository
	mockKVRepo      *MockKVRepository
	mockPNRSvc      *MockPNRLookupSvc
	service         portssvc.JourneySvcFacade
	deviceID        string
}

func (suite *JourneyServiceTestSuite) SetupTest() {
	suite.mockJourneyRepo = new(MockJourneyRepository)
	suite.mockKVRepo = new(MockKVRepository)
	suite.mockPNRSvc = new(MockPNRLookupSvc)
	suite.service = services.NewJourneyService(suite.mockJourneyRepo, suite.mockKVRepo, suite.mockPNRSvc)
	suite.deviceID = uuid.NewString()
}

func freshRecord(pnr string) *domain.JourneyRecord {
	return &domain.JourneyRecord{
		PNR:         pnr,
		TrainNumber: "12951",
		TrainName:   "Rajdhani Express",
		From:        "BCT",
		To:          "NDLS",
		Passengers:  []domain.Passenger{{Number: 1, Status: "CNF", Coach: "B2", Berth: "23", Seat: "UB"}},
	}
}

// --- SaveJourney ---

func (suite *JourneyServiceTestSuite) TestSaveJourney_NewRecord() {
	ctx := context.Background()
	pnr := "1234567890"

	suite.mockPNRSvc.On("LookupPNR", ctx, suite.deviceID, pnr).Return(freshRecord(pnr), nil).Once()
	suite.mockJourneyRepo.On("FindJourneyByPNR", ctx, suite.deviceID, pnr).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockJourneyRepo.On("InsertJourney", ctx, mock.MatchedBy(func(r domain.JourneyRecord) bool {
		return r.PNR == pnr && r.DeviceID == suite.deviceID && r.JourneyID != "" && !r.SavedAt.IsZero() && !r.LastChecked.IsZero()
	})).Return(nil).Once()

	record, err := suite.service.SaveJourney(ctx, suite.deviceID, pnr)

	suite.Require().NoError(err)
	suite.Require().NotNil(record)
	suite.NotEmpty(record.JourneyID)
	suite.Equal(suite.deviceID, record.DeviceID)
	suite.mockJourneyRepo.AssertExpectations(suite.T())
}

func (suite *JourneyServiceTestSuite) TestSaveJourney_ExistingPNRKeepsIdentity() {
	ctx := context.Background()
	pnr := "1234567890"
	existingID := uuid.NewString()
	savedAt := time.Now().Add(-48 * time.Hour)

	existing := freshRecord(pnr)
	existing.JourneyID = existingID
	existing.DeviceID = suite.deviceID
	existing.SavedAt = savedAt

	suite.mockPNRSvc.On("LookupPNR", ctx, suite.deviceID, pnr).Return(freshRecord(pnr), nil).Once()
	suite.mockJourneyRepo.On("FindJourneyByPNR", ctx, suite.deviceID, pnr).Return(existing, nil).Once()
	suite.mockJourneyRepo.On("ReplaceJourney", ctx, mock.MatchedBy(func(r domain.JourneyRecord) bool {
		// Identity fields survive the overwrite; SavedAt staying put is what
		// keeps the record at its original list position.
		return r.JourneyID == existingID && r.SavedAt.Equal(savedAt)
	})).Return(nil).Once()

	record, err := suite.service.SaveJourney(ctx, suite.deviceID, pnr)

	suite.Require().NoError(err)
	suite.Equal(existingID, record.JourneyID)
	suite.True(record.SavedAt.Equal(savedAt))
	suite.mockJourneyRepo.AssertExpectations(suite.T())
	suite.mockJourneyRepo.AssertNotCalled(suite.T(), "InsertJourney", mock.Anything, mock.Anything)
}

func (suite *JourneyServiceTestSuite) TestSaveJourney_LookupFailureSavesNothing() {
	ctx := context.Background()
	pnr := "1234567890"

	suite.mockPNRSvc.On("LookupPNR", ctx, suite.deviceID, pnr).Return(nil, apperrors.ErrUpstream).Once()

	record, err := suite.service.SaveJourney(ctx, suite.deviceID, pnr)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUpstream)
	suite.Nil(record)
	suite.mockJourneyRepo.AssertNotCalled(suite.T(), "InsertJourney", mock.Anything, mock.Anything)
	suite.mockJourneyRepo.AssertNotCalled(suite.T(), "ReplaceJourney", mock.Anything, mock.Anything)
}

// --- RefreshJourney ---

func (suite *JourneyServiceTestSuite) TestRefreshJourney_PreservesIdentity() {
	ctx := context.Background()
	pnr := "1234567890"
	journeyID := uuid.NewString()
	savedAt := time.Now().Add(-24 * time.Hour)

	existing := freshRecord(pnr)
	existing.JourneyID = journeyID
	existing.DeviceID = suite.deviceID
	existing.SavedAt = savedAt
	existing.LastChecked = savedAt

	updated := freshRecord(pnr)
	updated.Passengers[0].Status = "CNF"
	updated.ChartPrepared = true

	suite.mockJourneyRepo.On("FindJourneyByID", ctx, suite.deviceID, journeyID).Return(existing, nil).Once()
	suite.mockPNRSvc.On("LookupPNR", ctx, suite.deviceID, pnr).Return(updated, nil).Once()
	suite.mockJourneyRepo.On("ReplaceJourney", ctx, mock.MatchedBy(func(r domain.JourneyRecord) bool {
		return r.JourneyID == journeyID && r.SavedAt.Equal(savedAt) && r.LastChecked.After(savedAt) && r.ChartPrepared
	})).Return(nil).Once()

	record, err := suite.service.RefreshJourney(ctx, suite.deviceID, journeyID)

	suite.Require().NoError(err)
	suite.Equal(journeyID, record.JourneyID)
	suite.True(record.SavedAt.Equal(savedAt))
	suite.True(record.ChartPrepared)
	suite.mockJourneyRepo.AssertExpectations(suite.T())
}

func (suite *JourneyServiceTestSuite) TestRefreshJourney_FetchFailureLeavesRecordUntouched() {
	ctx := context.Background()
	journeyID := uuid.NewString()

	existing := freshRecord("1234567890")
	existing.JourneyID = journeyID
	existing.DeviceID = suite.deviceID

	suite.mockJourneyRepo.On("FindJourneyByID", ctx, suite.deviceID, journeyID).Return(existing, nil).Once()
	suite.mockPNRSvc.On("LookupPNR", ctx, suite.deviceID, existing.PNR).Return(nil, apperrors.ErrUpstream).Once()

	record, err := suite.service.RefreshJourney(ctx, suite.deviceID, journeyID)

	suite.Require().Error(err)
	suite.Nil(record)
	suite.mockJourneyRepo.AssertNotCalled(suite.T(), "ReplaceJourney", mock.Anything, mock.Anything)
}

func (suite *JourneyServiceTestSuite) TestRefreshJourney_UnknownID() {
	ctx := context.Background()
	journeyID := uuid.NewString()

	suite.mockJourneyRepo.On("FindJourneyByID", ctx, suite.deviceID, journeyID).Return(nil, apperrors.ErrNotFound).Once()

	record, err := suite.service.RefreshJourney(ctx, suite.deviceID, journeyID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(record)
}

// --- MarkNextJourney ---

func (suite *JourneyServiceTestSuite) TestMarkNextJourney_FirstMark() {
	ctx := context.Background()
	pnr := "1234567890"

	existing := freshRecord(pnr)
	existing.DeviceID = suite.deviceID

	suite.mockJourneyRepo.On("FindJourneyByPNR", ctx, suite.deviceID, pnr).Return(existing, nil).Once()
	suite.mockKVRepo.On("Get", ctx, suite.deviceID, portsrepo.KeyNextJourney).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockKVRepo.On("Put", ctx, suite.deviceID, portsrepo.KeyNextJourney, mock.MatchedBy(func(value []byte) bool {
		var marker domain.NextJourneyMarker
		return json.Unmarshal(value, &marker) == nil && marker.PNR == pnr
	})).Return(nil).Once()

	marked, err := suite.service.MarkNextJourney(ctx, suite.deviceID, pnr)

	suite.Require().NoError(err)
	suite.True(marked)
	suite.mockKVRepo.AssertExpectations(suite.T())
}

func (suite *JourneyServiceTestSuite) TestMarkNextJourney_SamePNRTogglesOff() {
	ctx := context.Background()
	pnr := "1234567890"

	existing := freshRecord(pnr)
	existing.DeviceID = suite.deviceID
	marker, _ := json.Marshal(domain.NextJourneyMarker{PNR: pnr, MarkedAt: time.Now()})

	suite.mockJourneyRepo.On("FindJourneyByPNR", ctx, suite.deviceID, pnr).Return(existing, nil).Once()
	suite.mockKVRepo.On("Get", ctx, suite.deviceID, portsrepo.KeyNextJourney).Return(marker, nil).Once()
	suite.mockKVRepo.On("Delete", ctx, suite.deviceID, portsrepo.KeyNextJourney).Return(nil).Once()

	marked, err := suite.service.MarkNextJourney(ctx, suite.deviceID, pnr)

	suite.Require().NoError(err)
	suite.False(marked)
	suite.mockKVRepo.AssertExpectations(suite.T())
	suite.mockKVRepo.AssertNotCalled(suite.T(), "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JourneyServiceTestSuite) TestMarkNextJourney_DifferentPNRRejected() {
	ctx := context.Background()
	pnr := "1234567890"
	otherPNR := "9876543210"

	existing := freshRecord(pnr)
	existing.DeviceID = suite.deviceID
	marker, _ := json.Marshal(domain.NextJourneyMarker{PNR: otherPNR, MarkedAt: time.Now()})

	suite.mockJourneyRepo.On("FindJourneyByPNR", ctx, suite.deviceID, pnr).Return(existing, nil).Once()
	suite.mockKVRepo.On("Get", ctx, suite.deviceID, portsrepo.KeyNextJourney).Return(marker, nil).Once()

	marked, err := suite.service.MarkNextJourney(ctx, suite.deviceID, pnr)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyMarked)
	suite.False(marked)
	suite.mockKVRepo.AssertNotCalled(suite.T(), "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockKVRepo.AssertNotCalled(suite.T(), "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JourneyServiceTestSuite) TestMarkNextJourney_UnsavedPNRRejected() {
	ctx := context.Background()
	pnr := "1234567890"

	suite.mockJourneyRepo.On("FindJourneyByPNR", ctx, suite.deviceID, pnr).Return(nil, apperrors.ErrNotFound).Once()

	marked, err := suite.service.MarkNextJourney(ctx, suite.deviceID, pnr)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.False(marked)
}

// --- GetNextJourney ---

func (suite *JourneyServiceTestSuite) TestGetNextJourney_NoMarker() {
	ctx := context.Background()

	suite.mockKVRepo.On("Get", ctx, suite.deviceID, portsrepo.KeyNextJourney).Return(nil, apperrors.ErrNotFound).Once()

	record, err := suite.service.GetNextJourney(ctx, suite.deviceID)

	suite.Require().NoError(err)
	suite.Nil(record)
}

func (suite *JourneyServiceTestSuite) TestGetNextJourney_ResolvesMarker() {
	ctx := context.Background()
	pnr := "1234567890"

	existing := freshRecord(pnr)
	existing.DeviceID = suite.deviceID
	marker, _ := json.Marshal(domain.NextJourneyMarker{PNR: pnr, MarkedAt: time.Now()})

	suite.mockKVRepo.On("Get", ctx, suite.deviceID, portsrepo.KeyNextJourney).Return(marker, nil).Once()
	suite.mockJourneyRepo.On("FindJourneyByPNR", ctx, suite.deviceID, pnr).Return(existing, nil).Once()

	record, err := suite.service.GetNextJourney(ctx, suite.deviceID)

	suite.Require().NoError(err)
	suite.Require().NotNil(record)
	suite.Equal(pnr, record.PNR)
}

func (suite *JourneyServiceTestSuite) TestGetNextJourney_StaleMarkerSelfHeals() {
	ctx := context.Background()
	pnr := "1234567890"
	marker, _ := json.Marshal(domain.NextJourneyMarker{PNR: pnr, MarkedAt: time.Now()})

	suite.mockKVRepo.On("Get", ctx, suite.deviceID, portsrepo.KeyNextJourney).Return(marker, nil).Once()
	suite.mockJourneyRepo.On("FindJourneyByPNR", ctx, suite.deviceID, pnr).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockKVRepo.On("Delete", ctx, suite.deviceID, portsrepo.KeyNextJourney).Return(nil).Once()

	record, err := suite.service.GetNextJourney(ctx, suite.deviceID)

	suite.Require().NoError(err)
	suite.Nil(record)
	suite.mockKVRepo.AssertExpectations(suite.T())
}

// --- DeleteJourney ---

func (suite *JourneyServiceTestSuite) TestDeleteJourney() {
	ctx := context.Background()
	journeyID := uuid.NewString()

	suite.mockJourneyRepo.On("DeleteJourney", ctx, suite.deviceID, journeyID).Return(nil).Once()

	err := suite.service.DeleteJourney(ctx, suite.deviceID, journeyID)

	suite.Require().NoError(err)
	suite.mockJourneyRepo.AssertExpectations(suite.T())
}

func (suite *JourneyServiceTestSuite) TestUnmarkNextJourney() {
	ctx := context.Background()

	suite.mockKVRepo.On("Delete", ctx, suite.deviceID, portsrepo.KeyNextJourney).Return(nil).Once()

	err := suite.service.UnmarkNextJourney(ctx, suite.deviceID)

	suite.Require().NoError(err)
	suite.mockKVRepo.AssertExpectations(suite.T())
}

func TestJourneyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JourneyServiceTestSuite))
}
