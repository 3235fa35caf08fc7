package handlers_test

import (
	"context"
	"encoding/json"
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

// --- Mock QnAService ---
type MockQnAService struct {
	mock.Mock
}

func (m *MockQnAService) ListQuestions(ctx context.Context, params dto.ListQuestionsParams) ([]domain.Question, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Question), args.Error(1)
}

func (m *MockQnAService) GetQuestion(ctx context.Context, questionID string) (*domain.Question, error) {
	args := m.Called(ctx, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQnAService) PostQuestion(ctx context.Context, req dto.PostQuestionRequest, deviceID string) (*domain.Question, error) {
	args := m.Called(ctx, req, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQnAService) DeleteQuestion(ctx context.Context, questionID, deviceID string) error {
	args := m.Called(ctx, questionID, deviceID)
	return args.Error(0)
}

func (m *MockQnAService) PostAnswer(ctx context.Context, questionID string, req dto.PostAnswerRequest, deviceID string) (*domain.Answer, error) {
	args := m.Called(ctx, questionID, req, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Answer), args.Error(1)
}

func (m *MockQnAService) VoteQuestion(ctx context.Context, questionID, deviceID string, direction domain.VoteDirection) (*domain.Question, error) {
	args := m.Called(ctx, questionID, deviceID, direction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQnAService) Subscribe() (<-chan domain.BoardEvent, func()) {
	args := m.Called()
	return args.Get(0).(<-chan domain.BoardEvent), args.Get(1).(func())
}

// Ensure mock implements the interface
var _ portssvc.QnASvcFacade = (*MockQnAService)(nil)

// --- Test Suite ---
type QnAHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockQnAService
	jwtSecret   string
	deviceID    string
}

func (suite *QnAHandlerTestSuite) generateTestToken(deviceID string) string {
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

func (suite *QnAHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.deviceID = uuid.NewString()

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockService = new(MockQnAService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterQnARoutes(v1, suite.mockService)
}

func (suite *QnAHandlerTestSuite) doRequest(method, url, body string) *httptest.ResponseRecorder {
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

func (suite *QnAHandlerTestSuite) TestListQuestions_PassesViewerDevice() {
	questions := []domain.Question{
		{QuestionID: uuid.NewString(), DeviceID: suite.deviceID, Title: "t", Body: "b", AnswerCount: 3, MyVote: domain.VoteUp},
	}

	suite.mockService.On("ListQuestions", mock.Anything, mock.MatchedBy(func(p dto.ListQuestionsParams) bool {
		return p.DeviceID == suite.deviceID
	})).Return(questions, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/questions?limit=20", "")

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.QuestionListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Questions, 1)
	suite.True(resp.Questions[0].Mine)
	suite.Equal("up", resp.Questions[0].MyVote)
	suite.Equal(3, resp.Questions[0].AnswerCount)
	// One question against a page size of 20: no further page.
	suite.Empty(resp.NextToken)
}

func (suite *QnAHandlerTestSuite) TestListQuestions_FullPageCarriesNextToken() {
	questions := make([]domain.Question, 2)
	for i := range questions {
		questions[i] = domain.Question{QuestionID: uuid.NewString(), CreatedAt: time.Now()}
	}

	suite.mockService.On("ListQuestions", mock.Anything, mock.Anything).Return(questions, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/questions?limit=2", "")

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.QuestionListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.NotEmpty(resp.NextToken)
}

func (suite *QnAHandlerTestSuite) TestPostQuestion_Success() {
	question := &domain.Question{
		QuestionID: uuid.NewString(),
		DeviceID:   suite.deviceID,
		Title:      "Which platform for 12951 at NDLS?",
		Body:       "Usually late evening.",
	}

	suite.mockService.On("PostQuestion", mock.Anything, mock.MatchedBy(func(r dto.PostQuestionRequest) bool {
		return r.Title == question.Title
	}), suite.deviceID).Return(question, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/questions",
		`{"title":"Which platform for 12951 at NDLS?","body":"Usually late evening."}`)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.QuestionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Mine)
}

func (suite *QnAHandlerTestSuite) TestPostQuestion_MissingTitleRejected() {
	w := suite.doRequest(http.MethodPost, "/api/v1/questions", `{"body":"no title"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "PostQuestion", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *QnAHandlerTestSuite) TestDeleteQuestion_ForbiddenForNonAuthor() {
	questionID := uuid.NewString()

	suite.mockService.On("DeleteQuestion", mock.Anything, questionID, suite.deviceID).Return(apperrors.ErrForbidden).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/questions/"+questionID, "")

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *QnAHandlerTestSuite) TestVoteQuestion_InvalidDirectionRejected() {
	questionID := uuid.NewString()

	w := suite.doRequest(http.MethodPut, "/api/v1/questions/"+questionID+"/vote", `{"direction":"sideways"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "VoteQuestion", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *QnAHandlerTestSuite) TestVoteQuestion_Success() {
	questionID := uuid.NewString()
	question := &domain.Question{QuestionID: questionID, Upvotes: 4, MyVote: domain.VoteUp}

	suite.mockService.On("VoteQuestion", mock.Anything, questionID, suite.deviceID, domain.VoteUp).Return(question, nil).Once()

	w := suite.doRequest(http.MethodPut, "/api/v1/questions/"+questionID+"/vote", `{"direction":"up"}`)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.QuestionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(4, resp.Upvotes)
	suite.Equal("up", resp.MyVote)
}

func (suite *QnAHandlerTestSuite) TestPostAnswer_UnknownQuestion() {
	questionID := uuid.NewString()

	suite.mockService.On("PostAnswer", mock.Anything, questionID, mock.Anything, suite.deviceID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/questions/"+questionID+"/answers", `{"body":"Platform 16 usually."}`)

	suite.Equal(http.StatusNotFound, w.Code)
}

func TestQnAHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(QnAHandlerTestSuite))
}
