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

// MockHandler handles mock test management endpoints.
type MockHandler struct {
	mockService *service.MockService
}

// NewMockHandler creates a new MockHandler.
func NewMockHandler(mockService *service.MockService) *MockHandler {
	return &MockHandler{mockService: mockService}
}

// ListMocks godoc
// GET /api/v1/mocks
// Lists the caller's mocks with pagination.
func (h *MockHandler) ListMocks(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	mocks, pagination, err := h.mockService.ListByOwner(c.Request.Context(), claims.UserID, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"mocks": mocks}, pagination)
}

// CreateMock godoc
// POST /api/v1/mocks
// Creates a new mock test shell.
func (h *MockHandler) CreateMock(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateMockRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	mock := &model.Mock{
		UserID:           claims.UserID,
		TestName:         req.TestName,
		ExamType:         req.ExamType,
		ExamTimeMinutes:  req.ExamTimeMinutes,
		TotalQuestions:   req.TotalQuestions,
		MarksPerQuestion: req.MarksPerQuestion,
		NegativeMarks:    req.NegativeMarks,
	}

	if err := h.mockService.Create(c.Request.Context(), mock); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"mock": mock})
}

// GetMock godoc
// GET /api/v1/mocks/:mock_id
// Retrieves one of the caller's mocks.
func (h *MockHandler) GetMock(c *gin.Context) {
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

	mock, err := h.mockService.GetOwned(c.Request.Context(), mockID, claims.UserID)
	if err != nil {
		failMockAccess(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"mock": mock})
}

// GetEditor godoc
// GET /api/v1/mocks/:mock_id/editor
// Returns the assembled editor view (mock + sections + questions).
func (h *MockHandler) GetEditor(c *gin.Context) {
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

	view, err := h.mockService.GetEditorView(c.Request.Context(), mockID, claims.UserID)
	if err != nil {
		failMockAccess(c, err)
		return
	}

	response.Success(c, http.StatusOK, view)
}

// UpdateMock godoc
// PUT /api/v1/mocks/:mock_id
// Updates a mock's shell fields.
func (h *MockHandler) UpdateMock(c *gin.Context) {
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

	var req model.UpdateMockRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	existing, err := h.mockService.GetOwned(c.Request.Context(), mockID, claims.UserID)
	if err != nil {
		failMockAccess(c, err)
		return
	}

	applyMockUpdate(existing, &req)

	if err := h.mockService.Update(c.Request.Context(), claims.UserID, existing); err != nil {
		failMockAccess(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"mock": existing})
}

// DeleteMock godoc
// DELETE /api/v1/mocks/:mock_id
// Deletes a mock; sections and questions cascade.
func (h *MockHandler) DeleteMock(c *gin.Context) {
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

	if err := h.mockService.Delete(c.Request.Context(), mockID, claims.UserID); err != nil {
		failMockAccess(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// failMockAccess maps the shared mock-access errors onto HTTP responses.
func failMockAccess(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMockNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrNotMockOwner):
		response.Fail(c, http.StatusForbidden, response.ErrNotMockOwner)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

func applyMockUpdate(m *model.Mock, req *model.UpdateMockRequest) {
	if req.TestName != "" {
		m.TestName = req.TestName
	}
	if req.ExamType != "" {
		m.ExamType = req.ExamType
	}
	if req.ExamTimeMinutes != 0 {
		m.ExamTimeMinutes = req.ExamTimeMinutes
	}
	if req.TotalQuestions != 0 {
		m.TotalQuestions = req.TotalQuestions
	}
	if req.MarksPerQuestion != "" {
		m.MarksPerQuestion = req.MarksPerQuestion
	}
	if req.NegativeMarks != "" {
		m.NegativeMarks = req.NegativeMarks
	}
}
