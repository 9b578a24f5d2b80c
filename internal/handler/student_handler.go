package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OAtulA/student-epr/internal/models"
	"github.com/OAtulA/student-epr/internal/service"
	appErrors "github.com/OAtulA/student-epr/pkg/errors"
	"github.com/OAtulA/student-epr/pkg/response"
)

// StudentHandler exposes the student-facing curriculum and results views.
type StudentHandler struct {
	students *service.StudentService
}

// NewStudentHandler constructs handler.
func NewStudentHandler(students *service.StudentService) *StudentHandler {
	return &StudentHandler{students: students}
}

func (h *StudentHandler) profile(c *gin.Context) (*models.Student, bool) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return nil, false
	}
	student, err := h.students.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return student, true
}

// Subjects godoc
// @Summary Curriculum of the student's discipline
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /student/subjects [get]
func (h *StudentHandler) Subjects(c *gin.Context) {
	student, ok := h.profile(c)
	if !ok {
		return
	}
	subjects, err := h.students.Subjects(c.Request.Context(), student)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil)
}

// Results godoc
// @Summary The student's marks across semesters
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /student/results [get]
func (h *StudentHandler) Results(c *gin.Context) {
	student, ok := h.profile(c)
	if !ok {
		return
	}
	results, err := h.students.Results(c.Request.Context(), student)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results, nil)
}
