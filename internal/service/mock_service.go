package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mockdesk/mockdesk-backend/internal/model"
	"github.com/mockdesk/mockdesk-backend/internal/response"
	"github.com/rs/zerolog"
)

// Domain errors shared by the mock/section/question services.
var (
	ErrMockNotFound    = errors.New("mock not found")
	ErrSectionNotFound = errors.New("section not found")
	ErrNotMockOwner    = errors.New("not the owner of this mock")
)

// MockService handles mock test business logic and the editor view cache.
type MockService struct {
	mocks     MockStore
	sections  SectionStore
	questions QuestionStore
	cache     EditorCache
	log       zerolog.Logger
}

// NewMockService creates a new MockService.
func NewMockService(
	mocks MockStore,
	sections SectionStore,
	questions QuestionStore,
	cache EditorCache,
	log zerolog.Logger,
) *MockService {
	return &MockService{
		mocks:     mocks,
		sections:  sections,
		questions: questions,
		cache:     cache,
		log:       log.With().Str("component", "mock_service").Logger(),
	}
}

// Create inserts a new mock owned by userID.
func (s *MockService) Create(ctx context.Context, mock *model.Mock) error {
	if err := s.mocks.Create(ctx, mock); err != nil {
		return err
	}
	s.log.Info().Int("mock_id", mock.ID).Int("user_id", mock.UserID).Msg("Mock created")
	return nil
}

// GetOwned retrieves a mock and verifies ownership.
func (s *MockService) GetOwned(ctx context.Context, mockID, userID int) (*model.Mock, error) {
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
	return mock, nil
}

// ListByOwner retrieves the caller's mocks with pagination.
func (s *MockService) ListByOwner(ctx context.Context, userID, page, perPage int) ([]model.Mock, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	limit := perPage
	offset := (page - 1) * perPage

	mocks, total, err := s.mocks.ListByOwnerPaginated(ctx, userID, limit, offset)
	if err != nil {
		return nil, nil, err
	}

	if mocks == nil {
		mocks = []model.Mock{}
	}

	totalPages := (total + perPage - 1) / perPage

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	}

	return mocks, pagination, nil
}

// Update modifies an existing mock after verifying ownership.
func (s *MockService) Update(ctx context.Context, userID int, mock *model.Mock) error {
	if _, err := s.GetOwned(ctx, mock.ID, userID); err != nil {
		return err
	}
	if err := s.mocks.Update(ctx, mock); err != nil {
		return err
	}
	if err := s.cache.Invalidate(ctx, mock.ID); err != nil {
		s.log.Warn().Err(err).Int("mock_id", mock.ID).Msg("Invalidate after update failed")
	}
	return nil
}

// Delete removes a mock after verifying ownership. Sections and questions
// cascade in the store.
func (s *MockService) Delete(ctx context.Context, mockID, userID int) error {
	if _, err := s.GetOwned(ctx, mockID, userID); err != nil {
		return err
	}
	if err := s.mocks.Delete(ctx, mockID); err != nil {
		return err
	}
	if err := s.cache.Invalidate(ctx, mockID); err != nil {
		s.log.Warn().Err(err).Int("mock_id", mockID).Msg("Invalidate after delete failed")
	}
	s.log.Info().Int("mock_id", mockID).Msg("Mock deleted")
	return nil
}

// GetEditorView assembles the full editing payload for a mock: the shell plus
// all sections and questions ordered by position. Reads through the Redis
// cache; a miss rebuilds from the store and repopulates the cache.
func (s *MockService) GetEditorView(ctx context.Context, mockID, userID int) (*model.EditorView, error) {
	mock, err := s.GetOwned(ctx, mockID, userID)
	if err != nil {
		return nil, err
	}

	if view, ok := s.cache.Get(ctx, mockID); ok {
		return view, nil
	}

	sections, err := s.sections.ListByMock(ctx, mockID)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	questions, err := s.questions.ListByMock(ctx, mockID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	if sections == nil {
		sections = []model.Section{}
	}
	if questions == nil {
		questions = []model.Question{}
	}

	view := &model.EditorView{
		Mock:      *mock,
		Sections:  sections,
		Questions: questions,
	}
	s.cache.Set(ctx, mockID, view)

	return view, nil
}
