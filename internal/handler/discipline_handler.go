package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OAtulA/student-epr/internal/service"
	appErrors "github.com/OAtulA/student-epr/pkg/errors"
	"github.com/OAtulA/student-epr/pkg/response"
)

// DisciplineHandler exposes discipline administration endpoints.
type DisciplineHandler struct {
	disciplines *service.DisciplineService
}

// NewDisciplineHandler constructs handler.
func NewDisciplineHandler(disciplines *service.DisciplineService) *DisciplineHandler {
	return &DisciplineHandler{disciplines: disciplines}
}

// List godoc
// @Summary List disciplines
// @Tags Disciplines
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/disciplines [get]
func (h *DisciplineHandler) List(c *gin.Context) {
	disciplines, err := h.disciplines.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, disciplines, nil)
}

// Create godoc
// @Summary Create a discipline
// @Tags Disciplines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateDisciplineRequest true "Discipline payload"
// @Success 201 {object} response.Envelope
// @Router /admin/disciplines [post]
func (h *DisciplineHandler) Create(c *gin.Context) {
	var req service.CreateDisciplineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	discipline, err := h.disciplines.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, discipline)
}
