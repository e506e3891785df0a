package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mockdesk/mockdesk-backend/internal/model"
)

// SectionRepository handles section data access.
type SectionRepository struct {
	pool *pgxpool.Pool
}

// NewSectionRepository creates a new SectionRepository.
func NewSectionRepository(pool *pgxpool.Pool) *SectionRepository {
	return &SectionRepository{pool: pool}
}

// ListByMock retrieves all sections of a mock, ordered by position.
func (r *SectionRepository) ListByMock(ctx context.Context, mockID int) ([]model.Section, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, mock_id, name, position, created_at
		 FROM mock_sections WHERE mock_id = $1
		 ORDER BY position`, mockID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []model.Section
	for rows.Next() {
		var s model.Section
		if err := rows.Scan(&s.ID, &s.MockID, &s.Name, &s.Position, &s.CreatedAt); err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

// CreateWithNextPosition inserts a section with position = count-in-mock + 1.
// The count happens inside the INSERT statement itself and the schema carries
// a unique index on (mock_id, position), so two racing writers cannot both
// commit the same position; the loser gets a 23505 and we recompute.
func (r *SectionRepository) CreateWithNextPosition(ctx context.Context, s *model.Section) error {
	for attempt := 0; attempt < maxPositionRetries; attempt++ {
		err := r.pool.QueryRow(ctx,
			`INSERT INTO mock_sections (mock_id, name, position)
			 SELECT $1, $2, COUNT(*) + 1 FROM mock_sections WHERE mock_id = $1
			 RETURNING id, position, created_at`,
			s.MockID, s.Name,
		).Scan(&s.ID, &s.Position, &s.CreatedAt)
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
