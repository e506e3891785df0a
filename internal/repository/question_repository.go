package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mockdesk/mockdesk-backend/internal/model"
)

// QuestionRepository handles question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListByMock retrieves all questions of a mock ordered by section then
// position. Unsectioned questions come first.
func (r *QuestionRepository) ListByMock(ctx context.Context, mockID int) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, mock_id, section_id, question_html, options, correct_option,
		        COALESCE(solution_html, ''), position, created_at
		 FROM mock_questions WHERE mock_id = $1
		 ORDER BY section_id NULLS FIRST, position`, mockID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestions(rows)
}

// ListBySection retrieves the questions of one section, ordered by position.
func (r *QuestionRepository) ListBySection(ctx context.Context, mockID, sectionID int) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, mock_id, section_id, question_html, options, correct_option,
		        COALESCE(solution_html, ''), position, created_at
		 FROM mock_questions WHERE mock_id = $1 AND section_id = $2
		 ORDER BY position`, mockID, sectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestions(rows)
}

// CreateWithNextPosition inserts a question with position = count-in-scope + 1.
// The ordering scope is (mock_id, section_id) when the question belongs to a
// section and the mock's unsectioned pool otherwise; the two counters are
// independent. As with sections, the count is part of the INSERT and partial
// unique indexes on the scope guarantee losers of a race retry rather than
// committing a duplicate position.
func (r *QuestionRepository) CreateWithNextPosition(ctx context.Context, q *model.Question) error {
	optionsJSON, err := json.Marshal(q.Options)
	if err != nil {
		return fmt.Errorf("marshal options: %w", err)
	}

	var solution *string
	if q.SolutionHTML != "" {
		solution = &q.SolutionHTML
	}

	for attempt := 0; attempt < maxPositionRetries; attempt++ {
		var err error
		if q.SectionID != nil {
			err = r.pool.QueryRow(ctx,
				`INSERT INTO mock_questions
				   (mock_id, section_id, question_html, options, correct_option, solution_html, position)
				 SELECT $1, $2, $3, $4, $5, $6, COUNT(*) + 1
				 FROM mock_questions WHERE mock_id = $1 AND section_id = $2
				 RETURNING id, position, created_at`,
				q.MockID, *q.SectionID, q.QuestionHTML, optionsJSON, q.CorrectOption, solution,
			).Scan(&q.ID, &q.Position, &q.CreatedAt)
		} else {
			err = r.pool.QueryRow(ctx,
				`INSERT INTO mock_questions
				   (mock_id, section_id, question_html, options, correct_option, solution_html, position)
				 SELECT $1, NULL, $2, $3, $4, $5, COUNT(*) + 1
				 FROM mock_questions WHERE mock_id = $1 AND section_id IS NULL
				 RETURNING id, position, created_at`,
				q.MockID, q.QuestionHTML, optionsJSON, q.CorrectOption, solution,
			).Scan(&q.ID, &q.Position, &q.CreatedAt)
		}
		if err == nil {
			return nil
		}
		if isForeignKeyViolation(err) {
			return ErrParentMissing
		}
		if !isUniqueViolation(err) {
			return err
		}
	}
	return ErrPositionContention
}

func scanQuestions(rows pgx.Rows) ([]model.Question, error) {
	var questions []model.Question
	for rows.Next() {
		var q model.Question
		var optionsJSON []byte
		if err := rows.Scan(&q.ID, &q.MockID, &q.SectionID, &q.QuestionHTML, &optionsJSON,
			&q.CorrectOption, &q.SolutionHTML, &q.Position, &q.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(optionsJSON, &q.Options); err != nil {
			return nil, fmt.Errorf("unmarshal options: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
