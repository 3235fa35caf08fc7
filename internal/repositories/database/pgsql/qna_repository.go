package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/railsathi/railsathi_backend/internal/apperrors"
	"github.com/railsathi/railsathi_backend/internal/core/domain"
	portsrepo "github.com/railsathi/railsathi_backend/internal/core/ports/repositories"
)

type PgxQnARepository struct {
	BaseRepository
}

// newPgxQnARepository creates a new repository for question-board data.
func newPgxQnARepository(pool *pgxpool.Pool) portsrepo.QnARepositoryFacade {
	return &PgxQnARepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.QnARepositoryFacade = (*PgxQnARepository)(nil)

// questionSelect folds vote tallies, the answer count and the viewer's own
// vote into each row so listings never need a second round trip.
const questionSelect = `
	SELECT
		q.question_id, q.device_id, q.title, q.body,
		(SELECT COUNT(*) FROM question_votes v WHERE v.question_id = q.question_id AND v.direction = 'up'),
		(SELECT COUNT(*) FROM question_votes v WHERE v.question_id = q.question_id AND v.direction = 'down'),
		(SELECT COUNT(*) FROM answers a WHERE a.question_id = q.question_id),
		q.created_at, q.updated_at,
		COALESCE((SELECT v.direction FROM question_votes v WHERE v.question_id = q.question_id AND v.device_id = $1), '')
	FROM questions q`

func scanQuestion(row pgx.Row) (domain.Question, error) {
	var q domain.Question
	var myVote string
	err := row.Scan(
		&q.QuestionID, &q.DeviceID, &q.Title, &q.Body,
		&q.Upvotes, &q.Downvotes, &q.AnswerCount,
		&q.CreatedAt, &q.UpdatedAt, &myVote,
	)
	q.MyVote = domain.VoteDirection(myVote)
	return q, err
}

// ListQuestions returns board questions newest-first.
func (r *PgxQnARepository) ListQuestions(ctx context.Context, filter portsrepo.QuestionListFilter) ([]domain.Question, error) {
	var before *time.Time
	if !filter.BeforeCreatedAt.IsZero() {
		before = &filter.BeforeCreatedAt
	}

	query := questionSelect + `
	WHERE ($2 = '' OR q.title ILIKE '%' || $2 || '%' OR q.body ILIKE '%' || $2 || '%')
	  AND (NOT $3 OR EXISTS (SELECT 1 FROM answers a WHERE a.question_id = q.question_id))
	  AND ($6::timestamptz IS NULL OR q.created_at < $6 OR (q.created_at = $6 AND q.question_id < $7))
	ORDER BY q.created_at DESC, q.question_id DESC
	LIMIT $4 OFFSET $5;`

	rows, err := r.Pool.Query(ctx, query,
		filter.ViewerDeviceID, filter.Search, filter.AnsweredOnly, filter.Limit, filter.Offset,
		before, filter.BeforeQuestionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	questions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Question, error) {
		return scanQuestion(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan questions: %w", err)
	}
	return questions, nil
}

// FindQuestionByID retrieves one question with its answers, oldest answer
// first. The viewer annotation is left empty; callers that need it use
// FindVote.
func (r *PgxQnARepository) FindQuestionByID(ctx context.Context, questionID string) (*domain.Question, error) {
	query := questionSelect + ` WHERE q.question_id = $2;`

	q, err := scanQuestion(r.Pool.QueryRow(ctx, query, "", questionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find question %s: %w", questionID, err)
	}

	rows, err := r.Pool.Query(ctx,
		`SELECT answer_id, question_id, device_id, body, created_at
		 FROM answers WHERE question_id = $1 ORDER BY created_at ASC, answer_id ASC;`,
		questionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query answers for question %s: %w", questionID, err)
	}
	defer rows.Close()

	answers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Answer, error) {
		var a domain.Answer
		err := row.Scan(&a.AnswerID, &a.QuestionID, &a.DeviceID, &a.Body, &a.CreatedAt)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan answers for question %s: %w", questionID, err)
	}

	q.Answers = answers
	return &q, nil
}

// FindVote returns the device's vote on a question.
func (r *PgxQnARepository) FindVote(ctx context.Context, questionID, deviceID string) (*domain.Vote, error) {
	var v domain.Vote
	var direction string
	err := r.Pool.QueryRow(ctx,
		`SELECT question_id, device_id, direction, created_at
		 FROM question_votes WHERE question_id = $1 AND device_id = $2;`,
		questionID, deviceID,
	).Scan(&v.QuestionID, &v.DeviceID, &direction, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find vote on question %s: %w", questionID, err)
	}
	v.Direction = domain.VoteDirection(direction)
	return &v, nil
}

// SaveQuestion inserts or updates a question's authored fields.
func (r *PgxQnARepository) SaveQuestion(ctx context.Context, question domain.Question) error {
	query := `
		INSERT INTO questions (question_id, device_id, title, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (question_id) DO UPDATE SET
			title = EXCLUDED.title,
			body = EXCLUDED.body,
			updated_at = EXCLUDED.updated_at;
	`
	_, err := r.Pool.Exec(ctx, query,
		question.QuestionID, question.DeviceID, question.Title, question.Body,
		question.CreatedAt, question.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save question %s: %w", question.QuestionID, err)
	}
	return nil
}

// DeleteQuestion removes a question. Answers and votes go with it via the
// schema's ON DELETE CASCADE.
func (r *PgxQnARepository) DeleteQuestion(ctx context.Context, questionID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM questions WHERE question_id = $1;`, questionID)
	if err != nil {
		return fmt.Errorf("failed to delete question %s: %w", questionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveAnswer appends an answer and bumps the question's updated_at so the
// board listing reflects fresh activity.
func (r *PgxQnARepository) SaveAnswer(ctx context.Context, answer domain.Answer) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	_, err = tx.Exec(ctx,
		`INSERT INTO answers (answer_id, question_id, device_id, body, created_at)
		 VALUES ($1, $2, $3, $4, $5);`,
		answer.AnswerID, answer.QuestionID, answer.DeviceID, answer.Body, answer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save answer on question %s: %w", answer.QuestionID, err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE questions SET updated_at = $2 WHERE question_id = $1;`,
		answer.QuestionID, answer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to touch question %s: %w", answer.QuestionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// SaveVote inserts or flips the device's vote on a question.
func (r *PgxQnARepository) SaveVote(ctx context.Context, vote domain.Vote) error {
	query := `
		INSERT INTO question_votes (question_id, device_id, direction, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (question_id, device_id) DO UPDATE SET
			direction = EXCLUDED.direction,
			created_at = EXCLUDED.created_at;
	`
	_, err := r.Pool.Exec(ctx, query, vote.QuestionID, vote.DeviceID, string(vote.Direction), vote.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save vote on question %s: %w", vote.QuestionID, err)
	}
	return nil
}

// DeleteVote removes the device's vote on a question.
func (r *PgxQnARepository) DeleteVote(ctx context.Context, questionID, deviceID string) error {
	if _, err := r.Pool.Exec(ctx,
		`DELETE FROM question_votes WHERE question_id = $1 AND device_id = $2;`,
		questionID, deviceID,
	); err != nil {
		return fmt.Errorf("failed to delete vote on question %s: %w", questionID, err)
	}
	return nil
}
