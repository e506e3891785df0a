package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/mockdesk/mockdesk-backend/internal/model"
	"github.com/rs/zerolog"
)

// SectionService assigns positions to new sections and persists them.
type SectionService struct {
	mocks    MockStore
	sections SectionStore
	cache    EditorCache
	log      zerolog.Logger
}

// NewSectionService creates a new SectionService.
func NewSectionService(mocks MockStore, sections SectionStore, cache EditorCache, log zerolog.Logger) *SectionService {
	return &SectionService{
		mocks:    mocks,
		sections: sections,
		cache:    cache,
		log:      log.With().Str("component", "section_service").Logger(),
	}
}

// Create adds a section to a mock. The section's position is the next free
// slot in the mock's 1-based sequence, claimed atomically by the store. The
// cached editor view is invalidated afterwards so subsequent reads see the
// new section.
func (s *SectionService) Create(ctx context.Context, userID, mockID int, name string) (*model.Section, error) {
	mock, err := s.mocks.GetByID(ctx, mockID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMockNotFound
		}
		return nil, err
	}
	if mock.UserID != userID {
		return nil, ErrNotMockOwner
	}

	section := &model.Section{
		MockID: mockID,
		Name:   name,
	}
	if err := s.sections.CreateWithNextPosition(ctx, section); err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, mockID); err != nil {
		s.log.Warn().Err(err).Int("mock_id", mockID).Msg("Invalidate after section create failed")
	}

	s.log.Info().
		Int("mock_id", mockID).
		Int("section_id", section.ID).
		Int("position", section.Position).
		Msg("Section created")
	return section, nil
}

// ListByMock retrieves a mock's sections ordered by position, after
// verifying ownership.
func (s *SectionService) ListByMock(ctx context.Context, userID, mockID int) ([]model.Section, error) {
	mock, err := s.mocks.GetByID(ctx, mockID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMockNotFound
		}
		return nil, err
	}
	if mock.UserID != userID {
		return nil, ErrNotMockOwner
	}

	return s.sections.ListByMock(ctx, mockID)
}
