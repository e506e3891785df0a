package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mockdesk/mockdesk-backend/internal/middleware"
	"github.com/mockdesk/mockdesk-backend/internal/model"
	"github.com/mockdesk/mockdesk-backend/internal/response"
	"github.com/mockdesk/mockdesk-backend/internal/service"
	"github.com/mockdesk/mockdesk-backend/internal/validator"
)

// SectionHandler handles section endpoints.
type SectionHandler struct {
	sectionService *service.SectionService
}

// NewSectionHandler creates a new SectionHandler.
func NewSectionHandler(sectionService *service.SectionService) *SectionHandler {
	return &SectionHandler{sectionService: sectionService}
}

// ListSections godoc
// GET /api/v1/mocks/:mock_id/sections
// Lists a mock's sections ordered by position.
func (h *SectionHandler) ListSections(c *gin.Context) {
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

	sections, err := h.sectionService.ListByMock(c.Request.Context(), claims.UserID, mockID)
	if err != nil {
		failMockAccess(c, err)
		return
	}

	if sections == nil {
		sections = []model.Section{}
	}

	response.Success(c, http.StatusOK, gin.H{"sections": sections})
}

// CreateSection godoc
// POST /api/v1/mocks/:mock_id/sections
// Adds a section to a mock; the assigned order is returned so the editor can
// place it without refetching.
func (h *SectionHandler) CreateSection(c *gin.Context) {
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

	var req model.CreateSectionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	section, err := h.sectionService.Create(c.Request.Context(), claims.UserID, mockID, req.Name)
	if err != nil {
		failMockAccess(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"section": section})
}
