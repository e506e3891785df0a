package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/mockdesk/mockdesk-backend/internal/model"
	"github.com/rs/zerolog"
)

// ErrUnknownCorrectOption is returned when the correct option label does not
// match exactly one of the question's options.
var ErrUnknownCorrectOption = errors.New("correct option does not match any option label")

// QuestionService assigns positions to new questions and persists them.
type QuestionService struct {
	mocks     MockStore
	questions QuestionStore
	cache     EditorCache
	log       zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(mocks MockStore, questions QuestionStore, cache EditorCache, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		mocks:     mocks,
		questions: questions,
		cache:     cache,
		log:       log.With().Str("component", "question_service").Logger(),
	}
}

// Create adds a question to a mock. The ordering scope is (mock, section)
// when the question carries a section id and the mock's unsectioned pool
// otherwise; the two sequences are counted independently. The position is
// claimed atomically by the store and returned so the caller can advance its
// own numbering. The cached editor view is invalidated afterwards.
//
// The correct option must match exactly one option label; duplicate or
// unknown labels are rejected before anything is written.
func (s *QuestionService) Create(ctx context.Context, userID int, q *model.Question) error {
	if err := validateCorrectOption(q); err != nil {
		return err
	}

	mock, err := s.mocks.GetByID(ctx, q.MockID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrMockNotFound
		}
		return err
	}
	if mock.UserID != userID {
		return ErrNotMockOwner
	}

	if err := s.questions.CreateWithNextPosition(ctx, q); err != nil {
		return err
	}

	if err := s.cache.Invalidate(ctx, q.MockID); err != nil {
		s.log.Warn().Err(err).Int("mock_id", q.MockID).Msg("Invalidate after question create failed")
	}

	event := s.log.Info().
		Int("mock_id", q.MockID).
		Int("question_id", q.ID).
		Int("position", q.Position)
	if q.SectionID != nil {
		event = event.Int("section_id", *q.SectionID)
	}
	event.Msg("Question created")
	return nil
}

// List retrieves a mock's questions ordered by position, optionally filtered
// to one section, after verifying ownership.
func (s *QuestionService) List(ctx context.Context, userID, mockID int, sectionID *int) ([]model.Question, error) {
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

	if sectionID != nil {
		return s.questions.ListBySection(ctx, mockID, *sectionID)
	}
	return s.questions.ListByMock(ctx, mockID)
}

func validateCorrectOption(q *model.Question) error {
	matches := 0
	for _, opt := range q.Options {
		if opt.Label == q.CorrectOption {
			matches++
		}
	}
	if matches != 1 {
		return ErrUnknownCorrectOption
	}
	return nil
}
