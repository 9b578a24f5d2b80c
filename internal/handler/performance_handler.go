package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OAtulA/student-epr/internal/service"
	appErrors "github.com/OAtulA/student-epr/pkg/errors"
	"github.com/OAtulA/student-epr/pkg/response"
)

// PerformanceHandler exposes analytics endpoints for teachers.
type PerformanceHandler struct {
	performance *service.PerformanceService
	exports     *service.ExportService
	users       *service.UserService
}

// NewPerformanceHandler constructs handler.
func NewPerformanceHandler(performance *service.PerformanceService, exports *service.ExportService, users *service.UserService) *PerformanceHandler {
	return &PerformanceHandler{performance: performance, exports: exports, users: users}
}

// Report godoc
// @Summary Performance report over the teacher's marks
// @Tags Performance
// @Produce json
// @Security BearerAuth
// @Param assignmentId query string false "Scope to one assignment"
// @Success 200 {object} response.Envelope
// @Router /teacher/performance [get]
func (h *PerformanceHandler) Report(c *gin.Context) {
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
	report, err := h.performance.Report(c.Request.Context(), teacher.ID, c.Query("assignmentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// LowPerformers godoc
// @Summary Students below the passing threshold
// @Tags Performance
// @Produce json
// @Security BearerAuth
// @Param assignmentId query string false "Scope to one assignment"
// @Success 200 {object} response.Envelope
// @Router /teacher/low-performers [get]
func (h *PerformanceHandler) LowPerformers(c *gin.Context) {
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
	report, err := h.performance.LowPerformers(c.Request.Context(), teacher.ID, c.Query("assignmentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// Export godoc
// @Summary Download the low-performer report
// @Tags Performance
// @Produce octet-stream
// @Security BearerAuth
// @Param format query string true "csv or pdf"
// @Param assignmentId query string false "Scope to one assignment"
// @Success 200 {file} binary
// @Router /teacher/low-performers/export [get]
func (h *PerformanceHandler) Export(c *gin.Context) {
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
	format := c.DefaultQuery("format", "csv")
	file, err := h.exports.LowPerformers(c.Request.Context(), teacher.ID, c.Query("assignmentId"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+file.FileName)
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
