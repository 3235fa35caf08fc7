package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/railsathi/railsathi_backend/internal/apperrors"
	"github.com/railsathi/railsathi_backend/internal/core/domain"
	portsrepo "github.com/railsathi/railsathi_backend/internal/core/ports/repositories"
	portssvc "github.com/railsathi/railsathi_backend/internal/core/ports/services"
	"github.com/railsathi/railsathi_backend/internal/dto"
	"github.com/railsathi/railsathi_backend/internal/utils/pagination"
)

// boardBroadcaster fans board events out to every live stream subscriber.
// Slow subscribers drop events instead of blocking writers; the stream is a
// change notification, clients re-fetch on receipt.
type boardBroadcaster struct {
	mu   sync.Mutex
	subs map[int]chan domain.BoardEvent
	next int
}

func newBoardBroadcaster() *boardBroadcaster {
	return &boardBroadcaster{subs: make(map[int]chan domain.BoardEvent)}
}

func (b *boardBroadcaster) subscribe() (<-chan domain.BoardEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan domain.BoardEvent, 16)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (b *boardBroadcaster) publish(event domain.BoardEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// QnAService owns the community question board: questions, answers, votes
// and the realtime change feed.
type QnAService struct {
	BaseService
	qnaRepo     portsrepo.QnARepositoryFacade
	broadcaster *boardBroadcaster
	now         func() time.Time
	newID       func() string
}

func NewQnAService(qnaRepo portsrepo.QnARepositoryFacade) *QnAService {
	return &QnAService{
		qnaRepo:     qnaRepo,
		broadcaster: newBoardBroadcaster(),
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Ensure implementation matches interface
var _ portssvc.QnASvcFacade = (*QnAService)(nil)

// ListQuestions returns board questions for the viewing device.
func (s *QnAService) ListQuestions(ctx context.Context, params dto.ListQuestionsParams) ([]domain.Question, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	filter := portsrepo.QuestionListFilter{
		Search:         params.Search,
		AnsweredOnly:   params.AnsweredOnly,
		Limit:          limit,
		Offset:         params.Offset,
		ViewerDeviceID: params.DeviceID,
	}
	if params.NextToken != "" {
		createdAt, questionID, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		filter.BeforeCreatedAt = createdAt
		filter.BeforeQuestionID = questionID
	}

	questions, err := s.qnaRepo.ListQuestions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	if questions == nil {
		questions = []domain.Question{}
	}
	return questions, nil
}

// GetQuestion retrieves one question with its answers.
func (s *QnAService) GetQuestion(ctx context.Context, questionID string) (*domain.Question, error) {
	return s.qnaRepo.FindQuestionByID(ctx, questionID)
}

// PostQuestion creates a new question authored by the device.
func (s *QnAService) PostQuestion(ctx context.Context, req dto.PostQuestionRequest, deviceID string) (*domain.Question, error) {
	now := s.now()
	question := domain.Question{
		QuestionID: s.newID(),
		DeviceID:   deviceID,
		Title:      req.Title,
		Body:       req.Body,
		CreatedAt:  now,
		UpdatedAt:  now,
		Answers:    []domain.Answer{},
	}

	if err := s.qnaRepo.SaveQuestion(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to post question: %w", err)
	}

	s.LogInfo(ctx, "Question posted", slog.String("question_id", question.QuestionID))
	s.broadcaster.publish(domain.BoardEvent{Kind: domain.EventQuestionPosted, QuestionID: question.QuestionID, OccurredAt: now})
	return &question, nil
}

// DeleteQuestion removes a question. Only its author may delete it.
func (s *QnAService) DeleteQuestion(ctx context.Context, questionID, deviceID string) error {
	question, err := s.qnaRepo.FindQuestionByID(ctx, questionID)
	if err != nil {
		return err
	}
	if question.DeviceID != deviceID {
		return apperrors.ErrForbidden
	}

	if err := s.qnaRepo.DeleteQuestion(ctx, questionID); err != nil {
		return err
	}

	s.LogInfo(ctx, "Question deleted", slog.String("question_id", questionID))
	s.broadcaster.publish(domain.BoardEvent{Kind: domain.EventQuestionDeleted, QuestionID: questionID, OccurredAt: s.now()})
	return nil
}

// PostAnswer appends an answer to a question.
func (s *QnAService) PostAnswer(ctx context.Context, questionID string, req dto.PostAnswerRequest, deviceID string) (*domain.Answer, error) {
	answer := domain.Answer{
		AnswerID:   s.newID(),
		QuestionID: questionID,
		DeviceID:   deviceID,
		Body:       req.Body,
		CreatedAt:  s.now(),
	}

	if err := s.qnaRepo.SaveAnswer(ctx, answer); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to post answer: %w", err)
	}

	s.broadcaster.publish(domain.BoardEvent{Kind: domain.EventAnswerPosted, QuestionID: questionID, OccurredAt: answer.CreatedAt})
	return &answer, nil
}

// VoteQuestion applies one device's vote on a question. Repeating the same
// direction removes the vote; the opposite direction flips it. The returned
// question carries the fresh tallies.
func (s *QnAService) VoteQuestion(ctx context.Context, questionID, deviceID string, direction domain.VoteDirection) (*domain.Question, error) {
	if _, err := s.qnaRepo.FindQuestionByID(ctx, questionID); err != nil {
		return nil, err
	}

	existing, err := s.qnaRepo.FindVote(ctx, questionID, deviceID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing vote: %w", err)
	}

	if existing != nil && existing.Direction == direction {
		if err := s.qnaRepo.DeleteVote(ctx, questionID, deviceID); err != nil {
			return nil, err
		}
	} else {
		vote := domain.Vote{
			QuestionID: questionID,
			DeviceID:   deviceID,
			Direction:  direction,
			CreatedAt:  s.now(),
		}
		if err := s.qnaRepo.SaveVote(ctx, vote); err != nil {
			return nil, err
		}
	}

	s.broadcaster.publish(domain.BoardEvent{Kind: domain.EventVoteChanged, QuestionID: questionID, OccurredAt: s.now()})

	question, err := s.qnaRepo.FindQuestionByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	// FindQuestionByID doesn't know the viewer; annotate from what we just did.
	if existing == nil || existing.Direction != direction {
		question.MyVote = direction
	}
	return question, nil
}

// Subscribe registers a listener on the board change feed.
func (s *QnAService) Subscribe() (<-chan domain.BoardEvent, func()) {
	return s.broadcaster.subscribe()
}
