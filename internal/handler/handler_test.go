package handler

// HTTP-level tests running the real Gin stack (auth middleware, binding,
// envelope) over in-memory stores.

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/mockdesk/mockdesk-backend/internal/config"
	"github.com/mockdesk/mockdesk-backend/internal/middleware"
	"github.com/mockdesk/mockdesk-backend/internal/model"
	"github.com/mockdesk/mockdesk-backend/internal/response"
	"github.com/mockdesk/mockdesk-backend/internal/service"
	"github.com/mockdesk/mockdesk-backend/internal/validator"
	"github.com/rs/zerolog"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Setup()
}

type memMockStore struct {
	mocks map[int]model.Mock
}

func (s *memMockStore) GetByID(_ context.Context, id int) (*model.Mock, error) {
	m, ok := s.mocks[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &m, nil
}

func (s *memMockStore) ListByOwnerPaginated(_ context.Context, userID, limit, offset int) ([]model.Mock, int, error) {
	var owned []model.Mock
	for _, m := range s.mocks {
		if m.UserID == userID {
			owned = append(owned, m)
		}
	}
	return owned, len(owned), nil
}

func (s *memMockStore) Create(_ context.Context, m *model.Mock) error {
	m.ID = len(s.mocks) + 1
	s.mocks[m.ID] = *m
	return nil
}

func (s *memMockStore) Update(_ context.Context, m *model.Mock) error {
	s.mocks[m.ID] = *m
	return nil
}

func (s *memMockStore) Delete(_ context.Context, id int) error {
	delete(s.mocks, id)
	return nil
}

type memSectionStore struct {
	sections []model.Section
}

func (s *memSectionStore) ListByMock(_ context.Context, mockID int) ([]model.Section, error) {
	var out []model.Section
	for _, sec := range s.sections {
		if sec.MockID == mockID {
			out = append(out, sec)
		}
	}
	return out, nil
}

func (s *memSectionStore) CreateWithNextPosition(_ context.Context, sec *model.Section) error {
	count := 0
	for _, existing := range s.sections {
		if existing.MockID == sec.MockID {
			count++
		}
	}
	sec.ID = len(s.sections) + 1
	sec.Position = count + 1
	sec.CreatedAt = time.Now()
	s.sections = append(s.sections, *sec)
	return nil
}

type memQuestionStore struct {
	questions []model.Question
}

func (s *memQuestionStore) ListByMock(_ context.Context, mockID int) ([]model.Question, error) {
	var out []model.Question
	for _, q := range s.questions {
		if q.MockID == mockID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *memQuestionStore) ListBySection(_ context.Context, mockID, sectionID int) ([]model.Question, error) {
	var out []model.Question
	for _, q := range s.questions {
		if q.MockID == mockID && q.SectionID != nil && *q.SectionID == sectionID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *memQuestionStore) CreateWithNextPosition(_ context.Context, q *model.Question) error {
	count := 0
	for _, existing := range s.questions {
		if existing.MockID != q.MockID {
			continue
		}
		switch {
		case existing.SectionID == nil && q.SectionID == nil:
			count++
		case existing.SectionID != nil && q.SectionID != nil && *existing.SectionID == *q.SectionID:
			count++
		}
	}
	q.ID = len(s.questions) + 1
	q.Position = count + 1
	s.questions = append(s.questions, *q)
	return nil
}

type memEditorCache struct{}

func (memEditorCache) Get(context.Context, int) (*model.EditorView, bool) { return nil, false }
func (memEditorCache) Set(context.Context, int, *model.EditorView)        {}
func (memEditorCache) Invalidate(context.Context, int) error              { return nil }

type testEnv struct {
	router    *gin.Engine
	auth      *service.AuthService
	mocks     *memMockStore
	sections  *memSectionStore
	questions *memQuestionStore
}

func newTestEnv(seed ...model.Mock) *testEnv {
	cfg := &config.Config{JWTSecret: "handler-test-secret", JWTExpiry: time.Hour, BcryptCost: 4}
	auth := service.NewAuthService(cfg)

	mocks := &memMockStore{mocks: map[int]model.Mock{}}
	for _, m := range seed {
		mocks.mocks[m.ID] = m
	}
	sections := &memSectionStore{}
	questions := &memQuestionStore{}
	cache := memEditorCache{}
	log := zerolog.Nop()

	sectionHandler := NewSectionHandler(service.NewSectionService(mocks, sections, cache, log))
	questionHandler := NewQuestionHandler(service.NewQuestionService(mocks, questions, cache, log))

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(middleware.RequireAuth(auth))
	{
		api.GET("/mocks/:mock_id/sections", sectionHandler.ListSections)
		api.POST("/mocks/:mock_id/sections", sectionHandler.CreateSection)
		api.GET("/mocks/:mock_id/questions", questionHandler.ListQuestions)
		api.POST("/mocks/:mock_id/questions", questionHandler.CreateQuestion)
	}

	return &testEnv{router: r, auth: auth, mocks: mocks, sections: sections, questions: questions}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewBuffer(b)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) token(t *testing.T, userID int) string {
	t.Helper()
	token, err := e.auth.GenerateToken(userID)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var envelope response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return envelope
}

func seedMock(id, userID int) model.Mock {
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

func TestCreateSectionWithoutToken(t *testing.T) {
	env := newTestEnv(seedMock(7, 1))

	w := env.do(t, http.MethodPost, "/api/v1/mocks/7/sections", "", model.CreateSectionRequest{Name: "English"})

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	envelope := decodeEnvelope(t, w)
	if envelope.Error == nil || envelope.Error.Code != response.ErrTokenInvalid {
		t.Errorf("error = %+v, want code %s", envelope.Error, response.ErrTokenInvalid)
	}
	if len(env.sections.sections) != 0 {
		t.Error("section written despite missing token")
	}
}

func TestCreateSectionReturnsAssignedOrder(t *testing.T) {
	env := newTestEnv(seedMock(7, 1))
	token := env.token(t, 1)

	for want := 1; want <= 2; want++ {
		w := env.do(t, http.MethodPost, "/api/v1/mocks/7/sections", token, model.CreateSectionRequest{Name: "English"})
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
		}

		var body struct {
			Data struct {
				Section model.Section `json:"section"`
			} `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Data.Section.Position != want {
			t.Errorf("order = %d, want %d", body.Data.Section.Position, want)
		}
	}
}

func TestCreateSectionValidationError(t *testing.T) {
	env := newTestEnv(seedMock(7, 1))

	w := env.do(t, http.MethodPost, "/api/v1/mocks/7/sections", env.token(t, 1), model.CreateSectionRequest{Name: ""})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	envelope := decodeEnvelope(t, w)
	if envelope.Error == nil || envelope.Error.Code != response.ErrValidation {
		t.Fatalf("error = %+v, want code %s", envelope.Error, response.ErrValidation)
	}
	if _, ok := envelope.Error.Fields["name"]; !ok {
		t.Errorf("fields = %v, want entry for %q", envelope.Error.Fields, "name")
	}
}

func TestCreateSectionForeignMock(t *testing.T) {
	env := newTestEnv(seedMock(7, 1))

	w := env.do(t, http.MethodPost, "/api/v1/mocks/7/sections", env.token(t, 2), model.CreateSectionRequest{Name: "English"})

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	envelope := decodeEnvelope(t, w)
	if envelope.Error == nil || envelope.Error.Code != response.ErrNotMockOwner {
		t.Errorf("error = %+v, want code %s", envelope.Error, response.ErrNotMockOwner)
	}
}

func TestCreateQuestionUnknownCorrectOption(t *testing.T) {
	env := newTestEnv(seedMock(7, 1))

	req := model.CreateQuestionRequest{
		QuestionHTML: "<p>2 + 2 = ?</p>",
		Options: []model.Option{
			{Label: "A", Markup: "<p>3</p>"},
			{Label: "B", Markup: "<p>4</p>"},
		},
		CorrectOption: "Z",
	}
	w := env.do(t, http.MethodPost, "/api/v1/mocks/7/questions", env.token(t, 1), req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body.String())
	}
	envelope := decodeEnvelope(t, w)
	if envelope.Error == nil || envelope.Error.Code != response.ErrUnknownCorrectOption {
		t.Errorf("error = %+v, want code %s", envelope.Error, response.ErrUnknownCorrectOption)
	}
	if len(env.questions.questions) != 0 {
		t.Error("question written despite invalid correct option")
	}
}

func TestCreateQuestionAssignsScopedOrder(t *testing.T) {
	env := newTestEnv(seedMock(7, 1))
	token := env.token(t, 1)
	sectionID := 50

	req := func(sec *int) model.CreateQuestionRequest {
		return model.CreateQuestionRequest{
			SectionID:    sec,
			QuestionHTML: "<p>2 + 2 = ?</p>",
			Options: []model.Option{
				{Label: "A", Markup: "<p>3</p>"},
				{Label: "B", Markup: "<p>4</p>"},
			},
			CorrectOption: "B",
		}
	}

	steps := []struct {
		sec  *int
		want int
	}{
		{&sectionID, 1},
		{&sectionID, 2},
		{nil, 1},
	}
	for i, step := range steps {
		w := env.do(t, http.MethodPost, "/api/v1/mocks/7/questions", token, req(step.sec))
		if w.Code != http.StatusCreated {
			t.Fatalf("step %d: status = %d, want 201: %s", i, w.Code, w.Body.String())
		}

		var body struct {
			Data struct {
				Question model.Question `json:"question"`
			} `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Data.Question.Position != step.want {
			t.Errorf("step %d: order = %d, want %d", i, body.Data.Question.Position, step.want)
		}
	}
}

func TestListQuestionsFiltersBySection(t *testing.T) {
	env := newTestEnv(seedMock(7, 1))
	token := env.token(t, 1)
	sectionID := 50

	for _, sec := range []*int{&sectionID, nil} {
		req := model.CreateQuestionRequest{
			SectionID:    sec,
			QuestionHTML: "<p>2 + 2 = ?</p>",
			Options: []model.Option{
				{Label: "A", Markup: "<p>3</p>"},
				{Label: "B", Markup: "<p>4</p>"},
			},
			CorrectOption: "B",
		}
		if w := env.do(t, http.MethodPost, "/api/v1/mocks/7/questions", token, req); w.Code != http.StatusCreated {
			t.Fatalf("seed question: status = %d: %s", w.Code, w.Body.String())
		}
	}

	w := env.do(t, http.MethodGet, "/api/v1/mocks/7/questions?section_id=50", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var body struct {
		Data struct {
			Questions []model.Question `json:"questions"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data.Questions) != 1 {
		t.Fatalf("got %d questions, want 1 in section 50", len(body.Data.Questions))
	}
	if body.Data.Questions[0].SectionID == nil || *body.Data.Questions[0].SectionID != 50 {
		t.Errorf("question section = %v, want 50", body.Data.Questions[0].SectionID)
	}
}
