package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OAtulA/student-epr/internal/models"
	"github.com/OAtulA/student-epr/internal/service"
	appErrors "github.com/OAtulA/student-epr/pkg/errors"
	"github.com/OAtulA/student-epr/pkg/response"
)

// AdviceHandler exposes the peer advice pool and its AI endpoints.
type AdviceHandler struct {
	advice   *service.AdviceService
	students *service.StudentService
}

// NewAdviceHandler constructs handler.
func NewAdviceHandler(advice *service.AdviceService, students *service.StudentService) *AdviceHandler {
	return &AdviceHandler{advice: advice, students: students}
}

func (h *AdviceHandler) profile(c *gin.Context) (*models.Student, bool) {
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

// Feed godoc
// @Summary Advice shared within the student's discipline
// @Tags Advice
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /student/advice [get]
func (h *AdviceHandler) Feed(c *gin.Context) {
	student, ok := h.profile(c)
	if !ok {
		return
	}
	feed, err := h.advice.Feed(c.Request.Context(), student)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, feed, nil)
}

// Create godoc
// @Summary Share advice with juniors
// @Tags Advice
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateAdviceRequest true "Advice payload"
// @Success 201 {object} response.Envelope
// @Router /student/advice [post]
func (h *AdviceHandler) Create(c *gin.Context) {
	student, ok := h.profile(c)
	if !ok {
		return
	}
	var req service.CreateAdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	advice, err := h.advice.Create(c.Request.Context(), student.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, advice)
}

// Stats godoc
// @Summary Advice pool statistics
// @Tags Advice
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /student/advice/stats [get]
func (h *AdviceHandler) Stats(c *gin.Context) {
	student, ok := h.profile(c)
	if !ok {
		return
	}
	stats, err := h.advice.Stats(c.Request.Context(), student)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// ToggleLike godoc
// @Summary Like or unlike an advice entry
// @Tags Advice
// @Produce json
// @Security BearerAuth
// @Param id path string true "Advice id"
// @Success 200 {object} response.Envelope
// @Router /student/advice/{id}/like [post]
func (h *AdviceHandler) ToggleLike(c *gin.Context) {
	student, ok := h.profile(c)
	if !ok {
		return
	}
	result, err := h.advice.ToggleLike(c.Request.Context(), student.ID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Summarize godoc
// @Summary AI summary of the discipline's advice pool
// @Tags Advice
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /student/advice/ai/summary [get]
func (h *AdviceHandler) Summarize(c *gin.Context) {
	student, ok := h.profile(c)
	if !ok {
		return
	}
	answer, err := h.advice.Summarize(c.Request.Context(), student)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, answer, nil)
}

// AskRequest is the question payload for the AI endpoint.
type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

// Ask godoc
// @Summary Ask a question over the advice pool
// @Tags Advice
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body handler.AskRequest true "Question payload"
// @Success 200 {object} response.Envelope
// @Router /student/advice/ai/ask [post]
func (h *AdviceHandler) Ask(c *gin.Context) {
	student, ok := h.profile(c)
	if !ok {
		return
	}
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	answer, err := h.advice.Ask(c.Request.Context(), student, req.Question)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, answer, nil)
}
