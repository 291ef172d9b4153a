package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codeverse-academy/academy-service/internal/services"
	"github.com/codeverse-academy/academy-service/internal/utils"
)

type AbsenceHandler struct {
	BaseHandler
	absenceService services.AbsenceService
}

func NewAbsenceHandler(absenceService services.AbsenceService, logger utils.Logger) *AbsenceHandler {
	return &AbsenceHandler{
		BaseHandler:    NewBaseHandler(logger),
		absenceService: absenceService,
	}
}

// CreateReason creates an absence reason
// @Summary Create absence reason
// @Tags absences
// @Accept json
// @Produce json
// @Param reason body services.CreateAbsenceReasonRequest true "Reason data"
// @Success 201 {object} models.AbsenceReason
// @Failure 400 {object} ErrorResponse
// @Router /admin/absence-reasons [post]
func (h *AbsenceHandler) CreateReason(c *gin.Context) {
	var req services.CreateAbsenceReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	reason, err := h.absenceService.CreateReason(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reason)
}

// ListReasons lists absence reasons
// @Summary List absence reasons
// @Tags absences
// @Produce json
// @Success 200 {array} models.AbsenceReason
// @Router /absence-reasons [get]
func (h *AbsenceHandler) ListReasons(c *gin.Context) {
	reasons, err := h.absenceService.ListReasons(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reasons)
}

// DeleteReason deletes an unused absence reason
// @Summary Delete absence reason
// @Tags absences
// @Produce json
// @Param id path string true "Reason ID"
// @Success 200 {object} SuccessResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/absence-reasons/{id} [delete]
func (h *AbsenceHandler) DeleteReason(c *gin.Context) {
	id := h.requireParam(c, "id")
	if id == "" {
		return
	}

	if err := h.absenceService.DeleteReason(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Reason deleted"})
}

// CreateRequest files an absence request for the logged-in teacher
// @Summary File absence request
// @Tags absences
// @Accept json
// @Produce json
// @Param request body services.CreateAbsenceRequest true "Request data"
// @Success 201 {object} models.AbsenceRequest
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /teacher/absences [post]
func (h *AbsenceHandler) CreateRequest(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.CreateAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	request, err := h.absenceService.CreateRequest(c.Request.Context(), principal.UserID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

// MyRequests lists the logged-in teacher's absence requests
// @Summary My absence requests
// @Tags absences
// @Produce json
// @Success 200 {array} models.AbsenceRequest
// @Router /teacher/absences [get]
func (h *AbsenceHandler) MyRequests(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	requests, err := h.absenceService.RequestsForTeacher(c.Request.Context(), principal.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// AllRequests lists every absence request for admins
// @Summary All absence requests
// @Tags absences
// @Produce json
// @Success 200 {array} models.AbsenceRequest
// @Router /admin/absences [get]
func (h *AbsenceHandler) AllRequests(c *gin.Context) {
	requests, err := h.absenceService.AllRequests(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// Decide approves or rejects a pending absence request
// @Summary Decide absence request
// @Tags absences
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param decision body services.AbsenceDecisionRequest true "Decision"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/absences/{id}/decision [put]
func (h *AbsenceHandler) Decide(c *gin.Context) {
	id := h.requireParam(c, "id")
	if id == "" {
		return
	}

	var req services.AbsenceDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Deciding absence request", "request_id", id, "status", req.Status)

	if err := h.absenceService.Decide(c.Request.Context(), id, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Request resolved"})
}
