package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OAtulA/student-epr/internal/service"
	appErrors "github.com/OAtulA/student-epr/pkg/errors"
	"github.com/OAtulA/student-epr/pkg/response"
)

// AssignmentHandler exposes teacher allocation endpoints.
type AssignmentHandler struct {
	assignments *service.AssignmentService
	roster      *service.RosterService
	users       *service.UserService
}

// NewAssignmentHandler constructs handler.
func NewAssignmentHandler(assignments *service.AssignmentService, roster *service.RosterService, users *service.UserService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments, roster: roster, users: users}
}

// ListAll godoc
// @Summary List all assignments
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/assignments [get]
func (h *AssignmentHandler) ListAll(c *gin.Context) {
	assignments, err := h.assignments.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignments, nil)
}

// Create godoc
// @Summary Allocate a teacher to a roll range
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateAssignmentRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope "roll range already assigned"
// @Router /admin/assignments [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req service.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	assignment, err := h.assignments.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// ListMine godoc
// @Summary List the authenticated teacher's assignments
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /teacher/assignments [get]
func (h *AssignmentHandler) ListMine(c *gin.Context) {
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
	assignments, err := h.assignments.ListByTeacher(c.Request.Context(), teacher.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignments, nil)
}

// CoveredStudents godoc
// @Summary List the students covered by one assignment
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Assignment id"
// @Success 200 {object} response.Envelope
// @Router /teacher/assignments/{id}/students [get]
func (h *AssignmentHandler) CoveredStudents(c *gin.Context) {
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
	students, err := h.roster.CoveredStudents(c.Request.Context(), teacher.ID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, nil)
}

// Roster godoc
// @Summary Roster of every student under the teacher's assignments
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /teacher/students [get]
func (h *AssignmentHandler) Roster(c *gin.Context) {
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
	roster, err := h.roster.Roster(c.Request.Context(), teacher.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roster, nil)
}
