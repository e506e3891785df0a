package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mockdesk/mockdesk-backend/internal/model"
)

// MockRepository handles mock test data access.
type MockRepository struct {
	pool *pgxpool.Pool
}

// NewMockRepository creates a new MockRepository.
func NewMockRepository(pool *pgxpool.Pool) *MockRepository {
	return &MockRepository{pool: pool}
}

// GetByID retrieves a mock by its id.
func (r *MockRepository) GetByID(ctx context.Context, id int) (*model.Mock, error) {
	m := &model.Mock{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, test_name, exam_type, exam_time_minutes, total_questions,
		        marks_per_question::text, negative_marks::text, created_at, updated_at
		 FROM mocks WHERE id = $1`, id,
	).Scan(&m.ID, &m.UserID, &m.TestName, &m.ExamType, &m.ExamTimeMinutes, &m.TotalQuestions,
		&m.MarksPerQuestion, &m.NegativeMarks, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListByOwnerPaginated retrieves mocks owned by a user with pagination,
// newest first.
func (r *MockRepository) ListByOwnerPaginated(ctx context.Context, userID, limit, offset int) ([]model.Mock, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM mocks WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, test_name, exam_type, exam_time_minutes, total_questions,
		        marks_per_question::text, negative_marks::text, created_at, updated_at
		 FROM mocks WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var mocks []model.Mock
	for rows.Next() {
		var m model.Mock
		if err := rows.Scan(&m.ID, &m.UserID, &m.TestName, &m.ExamType, &m.ExamTimeMinutes,
			&m.TotalQuestions, &m.MarksPerQuestion, &m.NegativeMarks, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, 0, err
		}
		mocks = append(mocks, m)
	}
	return mocks, total, rows.Err()
}

// Create inserts a new mock.
func (r *MockRepository) Create(ctx context.Context, m *model.Mock) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO mocks (user_id, test_name, exam_type, exam_time_minutes, total_questions,
		                    marks_per_question, negative_marks)
		 VALUES ($1, $2, $3, $4, $5, $6::numeric, $7::numeric)
		 RETURNING id, created_at, updated_at`,
		m.UserID, m.TestName, m.ExamType, m.ExamTimeMinutes, m.TotalQuestions,
		m.MarksPerQuestion, m.NegativeMarks,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

// Update modifies an existing mock.
func (r *MockRepository) Update(ctx context.Context, m *model.Mock) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE mocks
		 SET test_name = $1, exam_type = $2, exam_time_minutes = $3, total_questions = $4,
		     marks_per_question = $5::numeric, negative_marks = $6::numeric, updated_at = NOW()
		 WHERE id = $7`,
		m.TestName, m.ExamType, m.ExamTimeMinutes, m.TotalQuestions,
		m.MarksPerQuestion, m.NegativeMarks, m.ID)
	return err
}

// Delete removes a mock. Sections and questions cascade.
func (r *MockRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM mocks WHERE id = $1`, id)
	return err
}
