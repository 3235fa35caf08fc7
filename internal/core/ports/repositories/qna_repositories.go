package repositories

import (
	"context"
	"time"

	"github.com/railsathi/railsathi_backend/internal/core/domain"
)

// QuestionListFilter narrows the question board listing.
type QuestionListFilter struct {
	// Search matches against title and body, case-insensitive.
	Search string
	// AnsweredOnly keeps only questions that have at least one answer.
	AnsweredOnly bool
	Limit        int
	Offset       int
	// BeforeCreatedAt/BeforeQuestionID form a cursor: only questions strictly
	// older than this (created_at, question_id) pair are returned. Zero means
	// start from the top.
	BeforeCreatedAt  time.Time
	BeforeQuestionID string
	// ViewerDeviceID, when set, annotates each question with that device's
	// own vote.
	ViewerDeviceID string
}

// QnAReader defines read operations for the community question board.
type QnAReader interface {
	// ListQuestions returns questions newest-first with vote tallies and
	// answer counts folded in.
	ListQuestions(ctx context.Context, filter QuestionListFilter) ([]domain.Question, error)

	// FindQuestionByID retrieves one question with its answers.
	FindQuestionByID(ctx context.Context, questionID string) (*domain.Question, error)

	// FindVote returns the device's vote on a question, or
	// apperrors.ErrNotFound when it has not voted.
	FindVote(ctx context.Context, questionID, deviceID string) (*domain.Vote, error)
}

// QnAWriter defines write operations for the community question board.
type QnAWriter interface {
	SaveQuestion(ctx context.Context, question domain.Question) error
	// DeleteQuestion removes a question with its answers and votes.
	DeleteQuestion(ctx context.Context, questionID string) error
	SaveAnswer(ctx context.Context, answer domain.Answer) error
	// SaveVote inserts or updates the device's vote on a question.
	SaveVote(ctx context.Context, vote domain.Vote) error
	// DeleteVote removes the device's vote; no-op when absent.
	DeleteVote(ctx context.Context, questionID, deviceID string) error
}

// QnARepositoryFacade combines the question-board repository interfaces.
type QnARepositoryFacade interface {
	QnAReader
	QnAWriter
}
