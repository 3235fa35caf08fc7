package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/railsathi/railsathi_backend/internal/apperrors"
	"github.com/railsathi/railsathi_backend/internal/core/domain"
	portsrepo "github.com/railsathi/railsathi_backend/internal/core/ports/repositories"
	"github.com/railsathi/railsathi_backend/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SearchServiceTestSuite struct {
	suite.Suite
	mockKVRepo *MockKVRepository
	service    *services.SearchService
	deviceID   string
}

func (suite *SearchServiceTestSuite) SetupTest() {
	suite.mockKVRepo = new(MockKVRepository)
	suite.service = services.NewSearchService(suite.mockKVRepo)
	suite.deviceID = "device-1"
}

func (suite *SearchServiceTestSuite) searchesJSON(searches []domain.RecentSearch) []byte {
	value, err := json.Marshal(searches)
	suite.Require().NoError(err)
	return value
}

func (suite *SearchServiceTestSuite) TestRecentSearches_EmptySlot() {
	ctx := context.Background()

	suite.mockKVRepo.On("Get", ctx, suite.deviceID, portsrepo.KeyRecentSearches).Return(nil, apperrors.ErrNotFound).Once()

	searches, err := suite.service.RecentSearches(ctx, suite.deviceID)

	suite.Require().NoError(err)
	suite.Empty(searches)
	suite.NotNil(searches)
}

func (suite *SearchServiceTestSuite) TestRecordSearch_PrependsNewest() {
	ctx := context.Background()
	existing := []domain.RecentSearch{
		{Kind: domain.SearchTrain, Query: "12951", SearchedAt: time.Now().Add(-time.Hour)},
	}

	suite.mockKVRepo.On("Get", ctx, suite.deviceID, portsrepo.KeyRecentSearches).Return(suite.searchesJSON(existing), nil).Once()
	suite.mockKVRepo.On("Put", ctx, suite.deviceID, portsrepo.KeyRecentSearches, mock.MatchedBy(func(value []byte) bool {
		var searches []domain.RecentSearch
		if err := json.Unmarshal(value, &searches); err != nil {
			return false
		}
		return len(searches) == 2 && searches[0].Query == "1234567890" && searches[1].Query == "12951"
	})).Return(nil).Once()

	err := suite.service.RecordSearch(ctx, suite.deviceID, domain.SearchPNR, "1234567890")

	suite.Require().NoError(err)
	suite.mockKVRepo.AssertExpectations(suite.T())
}

func (suite *SearchServiceTestSuite) TestRecordSearch_DeduplicatesAndMovesToFront() {
	ctx := context.Background()
	existing := []domain.RecentSearch{
		{Kind: domain.SearchTrain, Query: "12951", SearchedAt: time.Now().Add(-2 * time.Hour)},
		{Kind: domain.SearchPNR, Query: "1234567890", SearchedAt: time.Now().Add(-time.Hour)},
	}

	suite.mockKVRepo.On("Get", ctx, suite.deviceID, portsrepo.KeyRecentSearches).Return(suite.searchesJSON(existing), nil).Once()
	suite.mockKVRepo.On("Put", ctx, suite.deviceID, portsrepo.KeyRecentSearches, mock.MatchedBy(func(value []byte) bool {
		var searches []domain.RecentSearch
		if err := json.Unmarshal(value, &searches); err != nil {
			return false
		}
		// Repeated search moved to the front, no duplicate left behind.
		return len(searches) == 2 && searches[0].Query == "1234567890" && searches[1].Query == "12951"
	})).Return(nil).Once()

	err := suite.service.RecordSearch(ctx, suite.deviceID, domain.SearchPNR, "1234567890")

	suite.Require().NoError(err)
	suite.mockKVRepo.AssertExpectations(suite.T())
}

func (suite *SearchServiceTestSuite) TestRecordSearch_CapsList() {
	ctx := context.Background()
	existing := make([]domain.RecentSearch, domain.MaxRecentSearches)
	for i := range existing {
		existing[i] = domain.RecentSearch{Kind: domain.SearchTrain, Query: string(rune('a' + i)), SearchedAt: time.Now()}
	}

	suite.mockKVRepo.On("Get", ctx, suite.deviceID, portsrepo.KeyRecentSearches).Return(suite.searchesJSON(existing), nil).Once()
	suite.mockKVRepo.On("Put", ctx, suite.deviceID, portsrepo.KeyRecentSearches, mock.MatchedBy(func(value []byte) bool {
		var searches []domain.RecentSearch
		if err := json.Unmarshal(value, &searches); err != nil {
			return false
		}
		// Oldest entry fell off the end.
		return len(searches) == domain.MaxRecentSearches && searches[0].Query == "1234567890"
	})).Return(nil).Once()

	err := suite.service.RecordSearch(ctx, suite.deviceID, domain.SearchPNR, "1234567890")

	suite.Require().NoError(err)
	suite.mockKVRepo.AssertExpectations(suite.T())
}

func (suite *SearchServiceTestSuite) TestRecordSearch_IgnoresBlankQuery() {
	ctx := context.Background()

	err := suite.service.RecordSearch(ctx, suite.deviceID, domain.SearchPNR, "   ")

	suite.Require().NoError(err)
	suite.mockKVRepo.AssertNotCalled(suite.T(), "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SearchServiceTestSuite))
}
