package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mockdesk/mockdesk-backend/internal/model"
	"github.com/rs/zerolog"
)

func testQuestion(mockID int, sectionID *int) *model.Question {
	return &model.Question{
		MockID:       mockID,
		SectionID:    sectionID,
		QuestionHTML: "<p>2 + 2 = ?</p>",
		Options: []model.Option{
			{Label: "A", Markup: "<p>3</p>"},
			{Label: "B", Markup: "<p>4</p>"},
			{Label: "C", Markup: "<p>5</p>"},
		},
		CorrectOption: "B",
		SolutionHTML:  "<p>Count on your fingers.</p>",
	}
}

func newQuestionService(mocks *fakeMockStore, questions *fakeQuestionStore, cache *fakeEditorCache) *QuestionService {
	return NewQuestionService(mocks, questions, cache, zerolog.Nop())
}

func TestCreateQuestionScopesAreDisjoint(t *testing.T) {
	mocks := newFakeMockStore(testMock(7, 1))
	questions := &fakeQuestionStore{}
	svc := newQuestionService(mocks, questions, newFakeEditorCache())

	sectionID := 50

	// Three unsectioned questions, then one in section 50.
	for want := 1; want <= 3; want++ {
		q := testQuestion(7, nil)
		if err := svc.Create(context.Background(), 1, q); err != nil {
			t.Fatalf("create unsectioned question %d: %v", want, err)
		}
		if q.Position != want {
			t.Errorf("unsectioned question position = %d, want %d", q.Position, want)
		}
	}

	scoped := testQuestion(7, &sectionID)
	if err := svc.Create(context.Background(), 1, scoped); err != nil {
		t.Fatalf("create sectioned question: %v", err)
	}
	if scoped.Position != 1 {
		t.Errorf("sectioned question position = %d, want 1 (independent counter)", scoped.Position)
	}

	// Two in the section, then back to the unsectioned pool.
	second := testQuestion(7, &sectionID)
	if err := svc.Create(context.Background(), 1, second); err != nil {
		t.Fatalf("create second sectioned question: %v", err)
	}
	if second.Position != 2 {
		t.Errorf("second sectioned question position = %d, want 2", second.Position)
	}

	unsectioned := testQuestion(7, nil)
	if err := svc.Create(context.Background(), 1, unsectioned); err != nil {
		t.Fatalf("create fourth unsectioned question: %v", err)
	}
	if unsectioned.Position != 4 {
		t.Errorf("unsectioned question position = %d, want 4", unsectioned.Position)
	}
}

func TestCreateQuestionDuplicatePayloadsMakeDistinctRows(t *testing.T) {
	// No dedup key: saving the same question twice is two rows, two orders.
	mocks := newFakeMockStore(testMock(7, 1))
	questions := &fakeQuestionStore{}
	svc := newQuestionService(mocks, questions, newFakeEditorCache())

	first := testQuestion(7, nil)
	second := testQuestion(7, nil)

	if err := svc.Create(context.Background(), 1, first); err != nil {
		t.Fatalf("create first: %v", err)
	}
	if err := svc.Create(context.Background(), 1, second); err != nil {
		t.Fatalf("create duplicate: %v", err)
	}

	if first.ID == second.ID {
		t.Error("duplicate payload reused the same row id")
	}
	if first.Position != 1 || second.Position != 2 {
		t.Errorf("positions = %d, %d, want 1, 2", first.Position, second.Position)
	}
}

func TestCreateQuestionRejectsUnknownCorrectOption(t *testing.T) {
	mocks := newFakeMockStore(testMock(7, 1))
	questions := &fakeQuestionStore{}
	svc := newQuestionService(mocks, questions, newFakeEditorCache())

	q := testQuestion(7, nil)
	q.CorrectOption = "D"

	err := svc.Create(context.Background(), 1, q)
	if !errors.Is(err, ErrUnknownCorrectOption) {
		t.Fatalf("err = %v, want ErrUnknownCorrectOption", err)
	}
	if len(questions.questions) != 0 {
		t.Errorf("questions written = %d, want 0", len(questions.questions))
	}
}

func TestCreateQuestionRejectsAmbiguousCorrectOption(t *testing.T) {
	mocks := newFakeMockStore(testMock(7, 1))
	svc := newQuestionService(mocks, &fakeQuestionStore{}, newFakeEditorCache())

	q := testQuestion(7, nil)
	q.Options = []model.Option{
		{Label: "A", Markup: "<p>3</p>"},
		{Label: "A", Markup: "<p>4</p>"},
	}
	q.CorrectOption = "A"

	if err := svc.Create(context.Background(), 1, q); !errors.Is(err, ErrUnknownCorrectOption) {
		t.Fatalf("err = %v, want ErrUnknownCorrectOption for duplicate labels", err)
	}
}

func TestCreateQuestionNotOwner(t *testing.T) {
	mocks := newFakeMockStore(testMock(7, 1))
	questions := &fakeQuestionStore{}
	svc := newQuestionService(mocks, questions, newFakeEditorCache())

	err := svc.Create(context.Background(), 2, testQuestion(7, nil))
	if !errors.Is(err, ErrNotMockOwner) {
		t.Fatalf("err = %v, want ErrNotMockOwner", err)
	}
	if len(questions.questions) != 0 {
		t.Errorf("questions written = %d, want 0", len(questions.questions))
	}
}

func TestCreateQuestionFailureDoesNotAdvanceCounter(t *testing.T) {
	mocks := newFakeMockStore(testMock(7, 1))
	questions := &fakeQuestionStore{failWith: errors.New("fk violation")}
	cache := newFakeEditorCache()
	svc := newQuestionService(mocks, questions, cache)

	if err := svc.Create(context.Background(), 1, testQuestion(7, nil)); err == nil {
		t.Fatal("expected store error, got nil")
	}
	if len(cache.invalidated) != 0 {
		t.Error("cache invalidated after failed insert")
	}

	q := testQuestion(7, nil)
	if err := svc.Create(context.Background(), 1, q); err != nil {
		t.Fatalf("create after failure: %v", err)
	}
	if q.Position != 1 {
		t.Errorf("position after failed insert = %d, want 1", q.Position)
	}
}

func TestCreateQuestionInvalidatesEditorCache(t *testing.T) {
	mocks := newFakeMockStore(testMock(7, 1))
	cache := newFakeEditorCache()
	cache.views[7] = &model.EditorView{}
	svc := newQuestionService(mocks, &fakeQuestionStore{}, cache)

	if err := svc.Create(context.Background(), 1, testQuestion(7, nil)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != 7 {
		t.Errorf("invalidated = %v, want [7]", cache.invalidated)
	}
}
