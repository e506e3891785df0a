package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mockdesk/mockdesk-backend/internal/model"
	"github.com/rs/zerolog"
)

func testMock(id, userID int) model.Mock {
	return model.Mock{
		ID:               id,
		UserID:           userID,
		TestName:         "SSC CGL Tier 1",
		ExamType:         "SSC",
		ExamTimeMinutes:  60,
		TotalQuestions:   100,
		MarksPerQuestion: "2",
		NegativeMarks:    "0.5",
	}
}

func TestCreateSectionAssignsSequentialPositions(t *testing.T) {
	mocks := newFakeMockStore(testMock(7, 1))
	sections := &fakeSectionStore{}
	cache := newFakeEditorCache()
	svc := NewSectionService(mocks, sections, cache, zerolog.Nop())

	first, err := svc.Create(context.Background(), 1, 7, "English")
	if err != nil {
		t.Fatalf("create first section: %v", err)
	}
	if first.Position != 1 {
		t.Errorf("first section position = %d, want 1", first.Position)
	}
	if first.Name != "English" {
		t.Errorf("first section name = %q, want English", first.Name)
	}

	second, err := svc.Create(context.Background(), 1, 7, "Maths")
	if err != nil {
		t.Fatalf("create second section: %v", err)
	}
	if second.Position != 2 {
		t.Errorf("second section position = %d, want 2", second.Position)
	}

	for i := 3; i <= 6; i++ {
		s, err := svc.Create(context.Background(), 1, 7, fmt.Sprintf("Section %d", i))
		if err != nil {
			t.Fatalf("create section %d: %v", i, err)
		}
		if s.Position != i {
			t.Errorf("section %d position = %d, want %d", i, s.Position, i)
		}
	}
}

func TestCreateSectionCountsPerMock(t *testing.T) {
	mocks := newFakeMockStore(testMock(7, 1), testMock(8, 1))
	sections := &fakeSectionStore{}
	svc := NewSectionService(mocks, sections, newFakeEditorCache(), zerolog.Nop())

	if _, err := svc.Create(context.Background(), 1, 7, "English"); err != nil {
		t.Fatalf("create on mock 7: %v", err)
	}
	s, err := svc.Create(context.Background(), 1, 8, "Reasoning")
	if err != nil {
		t.Fatalf("create on mock 8: %v", err)
	}
	if s.Position != 1 {
		t.Errorf("other mock's first section position = %d, want 1", s.Position)
	}
}

func TestCreateSectionUnknownMock(t *testing.T) {
	mocks := newFakeMockStore()
	sections := &fakeSectionStore{}
	svc := NewSectionService(mocks, sections, newFakeEditorCache(), zerolog.Nop())

	_, err := svc.Create(context.Background(), 1, 404, "English")
	if !errors.Is(err, ErrMockNotFound) {
		t.Fatalf("err = %v, want ErrMockNotFound", err)
	}
	if len(sections.sections) != 0 {
		t.Errorf("sections written = %d, want 0", len(sections.sections))
	}
}

func TestCreateSectionNotOwner(t *testing.T) {
	mocks := newFakeMockStore(testMock(7, 1))
	sections := &fakeSectionStore{}
	cache := newFakeEditorCache()
	svc := NewSectionService(mocks, sections, cache, zerolog.Nop())

	_, err := svc.Create(context.Background(), 2, 7, "English")
	if !errors.Is(err, ErrNotMockOwner) {
		t.Fatalf("err = %v, want ErrNotMockOwner", err)
	}
	if len(sections.sections) != 0 {
		t.Errorf("sections written = %d, want 0", len(sections.sections))
	}
	if len(cache.invalidated) != 0 {
		t.Errorf("cache invalidated %d times, want 0", len(cache.invalidated))
	}
}

func TestCreateSectionFailureDoesNotAdvanceCounter(t *testing.T) {
	mocks := newFakeMockStore(testMock(7, 1))
	sections := &fakeSectionStore{failWith: errors.New("connection reset")}
	cache := newFakeEditorCache()
	svc := NewSectionService(mocks, sections, cache, zerolog.Nop())

	if _, err := svc.Create(context.Background(), 1, 7, "English"); err == nil {
		t.Fatal("expected store error, got nil")
	}
	if len(sections.sections) != 0 {
		t.Fatalf("failed insert wrote %d rows, want 0", len(sections.sections))
	}
	if len(cache.invalidated) != 0 {
		t.Errorf("cache invalidated after failed insert")
	}

	// The next valid call recomputes from the actual row count.
	s, err := svc.Create(context.Background(), 1, 7, "English")
	if err != nil {
		t.Fatalf("create after failure: %v", err)
	}
	if s.Position != 1 {
		t.Errorf("position after failed insert = %d, want 1", s.Position)
	}
}

func TestCreateSectionInvalidatesEditorCache(t *testing.T) {
	mocks := newFakeMockStore(testMock(7, 1))
	cache := newFakeEditorCache()
	cache.views[7] = &model.EditorView{}
	svc := NewSectionService(mocks, &fakeSectionStore{}, cache, zerolog.Nop())

	if _, err := svc.Create(context.Background(), 1, 7, "English"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != 7 {
		t.Errorf("invalidated = %v, want [7]", cache.invalidated)
	}
	if _, ok := cache.views[7]; ok {
		t.Error("editor view still cached after section create")
	}
}
