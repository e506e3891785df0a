package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mockdesk/mockdesk-backend/internal/middleware"
	"github.com/mockdesk/mockdesk-backend/internal/model"
	"github.com/mockdesk/mockdesk-backend/internal/response"
	"github.com/mockdesk/mockdesk-backend/internal/service"
	"github.com/mockdesk/mockdesk-backend/internal/validator"
)

// QuestionHandler handles question endpoints.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// ListQuestions godoc
// GET /api/v1/mocks/:mock_id/questions?section_id=
// Lists a mock's questions ordered by position, optionally filtered to one
// section.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	mockID, err := strconv.Atoi(c.Param("mock_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var sectionID *int
	if raw := c.Query("section_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		sectionID = &id
	}

	questions, err := h.questionService.List(c.Request.Context(), claims.UserID, mockID, sectionID)
	if err != nil {
		failMockAccess(c, err)
		return
	}

	if questions == nil {
		questions = []model.Question{}
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// CreateQuestion godoc
// POST /api/v1/mocks/:mock_id/questions
// Adds a question to a mock. The response carries the assigned order so the
// editor can advance its own numbering.
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	mockID, err := strconv.Atoi(c.Param("mock_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.CreateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question := &model.Question{
		MockID:        mockID,
		SectionID:     req.SectionID,
		QuestionHTML:  req.QuestionHTML,
		Options:       req.Options,
		CorrectOption: req.CorrectOption,
		SolutionHTML:  req.SolutionHTML,
	}

	if err := h.questionService.Create(c.Request.Context(), claims.UserID, question); err != nil {
		if errors.Is(err, service.ErrUnknownCorrectOption) {
			response.Fail(c, http.StatusBadRequest, response.ErrUnknownCorrectOption)
			return
		}
		failMockAccess(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"question": question})
}
