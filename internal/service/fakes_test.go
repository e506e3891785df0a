package service

// In-memory fakes satisfying the store interfaces, so sequencing and
// validation rules can be exercised without a database.

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/mockdesk/mockdesk-backend/internal/model"
)

type fakeMockStore struct {
	mocks map[int]model.Mock
}

func newFakeMockStore(mocks ...model.Mock) *fakeMockStore {
	s := &fakeMockStore{mocks: map[int]model.Mock{}}
	for _, m := range mocks {
		s.mocks[m.ID] = m
	}
	return s
}

func (s *fakeMockStore) GetByID(_ context.Context, id int) (*model.Mock, error) {
	m, ok := s.mocks[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &m, nil
}

func (s *fakeMockStore) ListByOwnerPaginated(_ context.Context, userID, limit, offset int) ([]model.Mock, int, error) {
	var owned []model.Mock
	for _, m := range s.mocks {
		if m.UserID == userID {
			owned = append(owned, m)
		}
	}
	total := len(owned)
	if offset > len(owned) {
		offset = len(owned)
	}
	owned = owned[offset:]
	if limit < len(owned) {
		owned = owned[:limit]
	}
	return owned, total, nil
}

func (s *fakeMockStore) Create(_ context.Context, m *model.Mock) error {
	m.ID = len(s.mocks) + 1
	s.mocks[m.ID] = *m
	return nil
}

func (s *fakeMockStore) Update(_ context.Context, m *model.Mock) error {
	s.mocks[m.ID] = *m
	return nil
}

func (s *fakeMockStore) Delete(_ context.Context, id int) error {
	delete(s.mocks, id)
	return nil
}

type fakeSectionStore struct {
	sections []model.Section
	nextID   int
	failWith error // injected once; cleared after the failed call
}

func (s *fakeSectionStore) ListByMock(_ context.Context, mockID int) ([]model.Section, error) {
	var out []model.Section
	for _, sec := range s.sections {
		if sec.MockID == mockID {
			out = append(out, sec)
		}
	}
	return out, nil
}

func (s *fakeSectionStore) CreateWithNextPosition(_ context.Context, sec *model.Section) error {
	if s.failWith != nil {
		err := s.failWith
		s.failWith = nil
		return err
	}
	count := 0
	for _, existing := range s.sections {
		if existing.MockID == sec.MockID {
			count++
		}
	}
	s.nextID++
	sec.ID = s.nextID
	sec.Position = count + 1
	s.sections = append(s.sections, *sec)
	return nil
}

type fakeQuestionStore struct {
	questions []model.Question
	nextID    int
	failWith  error // injected once; cleared after the failed call
}

func (s *fakeQuestionStore) ListByMock(_ context.Context, mockID int) ([]model.Question, error) {
	var out []model.Question
	for _, q := range s.questions {
		if q.MockID == mockID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *fakeQuestionStore) ListBySection(_ context.Context, mockID, sectionID int) ([]model.Question, error) {
	var out []model.Question
	for _, q := range s.questions {
		if q.MockID == mockID && q.SectionID != nil && *q.SectionID == sectionID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *fakeQuestionStore) CreateWithNextPosition(_ context.Context, q *model.Question) error {
	if s.failWith != nil {
		err := s.failWith
		s.failWith = nil
		return err
	}
	count := 0
	for _, existing := range s.questions {
		if existing.MockID != q.MockID {
			continue
		}
		if sameScope(existing.SectionID, q.SectionID) {
			count++
		}
	}
	s.nextID++
	q.ID = s.nextID
	q.Position = count + 1
	s.questions = append(s.questions, *q)
	return nil
}

func sameScope(a, b *int) bool {
	if a == nil && b == nil {
		return true
	}
	if a != nil && b != nil {
		return *a == *b
	}
	return false
}

type fakeEditorCache struct {
	views        map[int]*model.EditorView
	invalidated  []int
	invalidateFn func(mockID int) error
}

func newFakeEditorCache() *fakeEditorCache {
	return &fakeEditorCache{views: map[int]*model.EditorView{}}
}

func (c *fakeEditorCache) Get(_ context.Context, mockID int) (*model.EditorView, bool) {
	v, ok := c.views[mockID]
	return v, ok
}

func (c *fakeEditorCache) Set(_ context.Context, mockID int, view *model.EditorView) {
	c.views[mockID] = view
}

func (c *fakeEditorCache) Invalidate(_ context.Context, mockID int) error {
	if c.invalidateFn != nil {
		if err := c.invalidateFn(mockID); err != nil {
			return err
		}
	}
	delete(c.views, mockID)
	c.invalidated = append(c.invalidated, mockID)
	return nil
}
