package services

import (
	"context"

	"github.com/railsathi/railsathi_backend/internal/core/domain"
	"github.com/railsathi/railsathi_backend/internal/dto"
)

// QnAReaderSvc defines read operations for the community question board.
type QnAReaderSvc interface {
	ListQuestions(ctx context.Context, params dto.ListQuestionsParams) ([]domain.Question, error)
	GetQuestion(ctx context.Context, questionID string) (*domain.Question, error)
}

// QnAWriterSvc defines the mutations a device can make on the board.
type QnAWriterSvc interface {
	PostQuestion(ctx context.Context, req dto.PostQuestionRequest, deviceID string) (*domain.Question, error)

	// DeleteQuestion removes a question. Only the device that posted it may
	// delete it; anyone else gets apperrors.ErrForbidden.
	DeleteQuestion(ctx context.Context, questionID, deviceID string) error

	PostAnswer(ctx context.Context, questionID string, req dto.PostAnswerRequest, deviceID string) (*domain.Answer, error)

	// VoteQuestion applies one device's vote. Repeating the same direction
	// removes the vote (toggle); the opposite direction flips it. The
	// returned question carries the fresh tallies.
	VoteQuestion(ctx context.Context, questionID, deviceID string, direction domain.VoteDirection) (*domain.Question, error)
}

// QnAStreamSvc exposes the realtime change feed for the board.
type QnAStreamSvc interface {
	// Subscribe registers a listener for board events. The returned cancel
	// function must be called when the consumer goes away.
	Subscribe() (<-chan domain.BoardEvent, func())
}

// QnASvcFacade combines the question-board service interfaces.
type QnASvcFacade interface {
	QnAReaderSvc
	QnAWriterSvc
	QnAStreamSvc
}
