package dto

import (
	"time"

	"github.com/railsathi/railsathi_backend/internal/core/domain"
	"github.com/railsathi/railsathi_backend/internal/utils/display"
	"github.com/railsathi/railsathi_backend/internal/utils/pagination"
)

// PostQuestionRequest creates a new question on the board.
type PostQuestionRequest struct {
	Title string `json:"title" binding:"required,max=200"`
	Body  string `json:"body" binding:"required,max=4000"`
}

// PostAnswerRequest replies to a question.
type PostAnswerRequest struct {
	Body string `json:"body" binding:"required,max=4000"`
}

// VoteRequest applies the device's vote on a question.
type VoteRequest struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

// ListQuestionsParams filters the board listing. Bound from query params.
type ListQuestionsParams struct {
	Search       string `form:"search"`
	AnsweredOnly bool   `form:"answeredOnly"`
	Limit        int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset       int    `form:"offset" binding:"omitempty,min=0"`
	// NextToken resumes a previous listing; see pagination.EncodeToken.
	NextToken string `form:"nextToken"`

	// DeviceID annotates each question with the caller's own vote; filled
	// from the auth context, never from the query string.
	DeviceID string `form:"-"`
}

// AnswerResponse is the wire shape of an answer.
type AnswerResponse struct {
	AnswerID  string    `json:"answerID"`
	Body      string    `json:"body"`
	Mine      bool      `json:"mine"`
	CreatedAt time.Time `json:"createdAt"`
	PostedAgo string    `json:"postedAgo"`
}

// QuestionResponse is the wire shape of a question with its tallies.
type QuestionResponse struct {
	QuestionID  string           `json:"questionID"`
	Title       string           `json:"title"`
	Body        string           `json:"body"`
	Upvotes     int              `json:"upvotes"`
	Downvotes   int              `json:"downvotes"`
	AnswerCount int              `json:"answerCount"`
	MyVote      string           `json:"myVote,omitempty"`
	Mine        bool             `json:"mine"`
	CreatedAt   time.Time        `json:"createdAt"`
	PostedAgo   string           `json:"postedAgo"`
	Answers     []AnswerResponse `json:"answers,omitempty"`
}

// ToQuestionResponse converts a domain question for the given viewer.
func ToQuestionResponse(q *domain.Question, viewerDeviceID string) QuestionResponse {
	answers := make([]AnswerResponse, len(q.Answers))
	for i, a := range q.Answers {
		answers[i] = AnswerResponse{
			AnswerID:  a.AnswerID,
			Body:      a.Body,
			Mine:      a.DeviceID == viewerDeviceID,
			CreatedAt: a.CreatedAt,
			PostedAgo: display.Relative(a.CreatedAt),
		}
	}

	answerCount := q.AnswerCount
	if len(q.Answers) > 0 {
		answerCount = len(q.Answers)
	}

	return QuestionResponse{
		QuestionID:  q.QuestionID,
		Title:       q.Title,
		Body:        q.Body,
		Upvotes:     q.Upvotes,
		Downvotes:   q.Downvotes,
		AnswerCount: answerCount,
		MyVote:      string(q.MyVote),
		Mine:        q.DeviceID == viewerDeviceID,
		CreatedAt:   q.CreatedAt,
		PostedAgo:   display.Relative(q.CreatedAt),
		Answers:     answers,
	}
}

// QuestionListResponse is one page of the board listing.
type QuestionListResponse struct {
	Questions []QuestionResponse `json:"questions"`
	// NextToken resumes the listing after the last question on this page.
	// Empty when this page was not full.
	NextToken string `json:"nextToken,omitempty"`
}

// ToQuestionListResponse converts a board listing page for the given viewer.
// Answer bodies are not included in listings; only counts travel.
func ToQuestionListResponse(questions []domain.Question, viewerDeviceID string, pageSize int) QuestionListResponse {
	res := make([]QuestionResponse, len(questions))
	for i, q := range questions {
		res[i] = ToQuestionResponse(&q, viewerDeviceID)
		res[i].Answers = nil
	}

	var nextToken string
	if pageSize > 0 && len(questions) == pageSize {
		last := questions[len(questions)-1]
		nextToken = pagination.EncodeToken(last.CreatedAt, last.QuestionID)
	}

	return QuestionListResponse{Questions: res, NextToken: nextToken}
}
