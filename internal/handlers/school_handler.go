package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codeverse-academy/academy-service/internal/services"
	"github.com/codeverse-academy/academy-service/internal/utils"
)

type SchoolHandler struct {
	BaseHandler
	schoolService services.SchoolService
}

func NewSchoolHandler(schoolService services.SchoolService, logger utils.Logger) *SchoolHandler {
	return &SchoolHandler{
		BaseHandler:   NewBaseHandler(logger),
		schoolService: schoolService,
	}
}

// CreateSchool creates a new school
// @Summary Create school
// @Tags schools
// @Accept json
// @Produce json
// @Param school body services.CreateSchoolRequest true "School data"
// @Success 201 {object} models.School
// @Failure 400 {object} ErrorResponse
// @Router /admin/schools [post]
func (h *SchoolHandler) CreateSchool(c *gin.Context) {
	var req services.CreateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	school, err := h.schoolService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, school)
}

// ListSchools lists all schools
// @Summary List schools
// @Tags schools
// @Produce json
// @Success 200 {array} models.School
// @Router /admin/schools [get]
func (h *SchoolHandler) ListSchools(c *gin.Context) {
	schools, err := h.schoolService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, schools)
}

// GetSchool retrieves a school with its groups
// @Summary Get school
// @Tags schools
// @Produce json
// @Param id path string true "School ID"
// @Success 200 {object} models.School
// @Failure 404 {object} ErrorResponse
// @Router /admin/schools/{id} [get]
func (h *SchoolHandler) GetSchool(c *gin.Context) {
	id := h.requireParam(c, "id")
	if id == "" {
		return
	}

	school, err := h.schoolService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, school)
}

// UpdateSchool renames a school
// @Summary Update school
// @Tags schools
// @Accept json
// @Produce json
// @Param id path string true "School ID"
// @Param school body services.UpdateSchoolRequest true "Fields to update"
// @Success 200 {object} models.School
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/schools/{id} [put]
func (h *SchoolHandler) UpdateSchool(c *gin.Context) {
	id := h.requireParam(c, "id")
	if id == "" {
		return
	}

	var req services.UpdateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	school, err := h.schoolService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, school)
}

// DeleteSchool deletes a school
// @Summary Delete school
// @Tags schools
// @Produce json
// @Param id path string true "School ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/schools/{id} [delete]
func (h *SchoolHandler) DeleteSchool(c *gin.Context) {
	id := h.requireParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Deleting school", "school_id", id)

	if err := h.schoolService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "School deleted"})
}
