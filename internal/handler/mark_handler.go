package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OAtulA/student-epr/internal/service"
	appErrors "github.com/OAtulA/student-epr/pkg/errors"
	"github.com/OAtulA/student-epr/pkg/response"
)

// MarkHandler exposes score entry endpoints for teachers.
type MarkHandler struct {
	marks *service.MarkService
	users *service.UserService
}

// NewMarkHandler constructs handler.
func NewMarkHandler(marks *service.MarkService, users *service.UserService) *MarkHandler {
	return &MarkHandler{marks: marks, users: users}
}

// Upsert godoc
// @Summary Enter or merge one student's scores
// @Tags Marks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.UpsertMarkRequest true "Mark payload"
// @Success 200 {object} response.Envelope
// @Router /teacher/marks [post]
func (h *MarkHandler) Upsert(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	teacher, err := h.users.TeacherProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.UpsertMarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	mark, err := h.marks.Upsert(c.Request.Context(), teacher.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, mark, nil)
}

// Bulk godoc
// @Summary Upload scores for many students of one assignment
// @Tags Marks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.BulkMarksRequest true "Bulk payload"
// @Success 200 {object} response.Envelope
// @Router /teacher/marks/bulk [post]
func (h *MarkHandler) Bulk(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	teacher, err := h.users.TeacherProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.BulkMarksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.marks.BulkUpsert(c.Request.Context(), teacher.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// ListByAssignment godoc
// @Summary List the marks entered for one assignment
// @Tags Marks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment id"
// @Success 200 {object} response.Envelope
// @Router /teacher/assignments/{id}/marks [get]
func (h *MarkHandler) ListByAssignment(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	teacher, err := h.users.TeacherProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	records, err := h.marks.ListByAssignment(c.Request.Context(), teacher.ID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}
