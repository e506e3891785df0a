package service

import (
	"context"

	"github.com/mockdesk/mockdesk-backend/internal/model"
)

// Store interfaces consumed by the services. The pgx repositories satisfy
// them in production; tests swap in in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int) (*model.User, error)
}

type MockStore interface {
	GetByID(ctx context.Context, id int) (*model.Mock, error)
	ListByOwnerPaginated(ctx context.Context, userID, limit, offset int) ([]model.Mock, int, error)
	Create(ctx context.Context, m *model.Mock) error
	Update(ctx context.Context, m *model.Mock) error
	Delete(ctx context.Context, id int) error
}

type SectionStore interface {
	ListByMock(ctx context.Context, mockID int) ([]model.Section, error)
	CreateWithNextPosition(ctx context.Context, s *model.Section) error
}

type QuestionStore interface {
	ListByMock(ctx context.Context, mockID int) ([]model.Question, error)
	ListBySection(ctx context.Context, mockID, sectionID int) ([]model.Question, error)
	CreateWithNextPosition(ctx context.Context, q *model.Question) error
}

// EditorCache caches the assembled editor view of a mock and broadcasts a
// stale signal when the view is invalidated by a mutation.
type EditorCache interface {
	Get(ctx context.Context, mockID int) (*model.EditorView, bool)
	Set(ctx context.Context, mockID int, view *model.EditorView)
	Invalidate(ctx context.Context, mockID int) error
}
