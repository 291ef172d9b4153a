package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codeverse-academy/academy-service/internal/repositories"
	"github.com/codeverse-academy/academy-service/internal/services"
	"github.com/codeverse-academy/academy-service/internal/utils"
)

type TimeClockHandler struct {
	BaseHandler
	timeClockService services.TimeClockService
	exportService    services.ExportService
}

func NewTimeClockHandler(timeClockService services.TimeClockService, exportService services.ExportService, logger utils.Logger) *TimeClockHandler {
	return &TimeClockHandler{
		BaseHandler:      NewBaseHandler(logger),
		timeClockService: timeClockService,
		exportService:    exportService,
	}
}

// ClockIn punches the logged-in user in
// @Summary Clock in
// @Tags timeclock
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 409 {object} ErrorResponse
// @Router /teacher/clock-in [post]
func (h *TimeClockHandler) ClockIn(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	if err := h.timeClockService.ClockIn(c.Request.Context(), principal.UserID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Clocked in"})
}

// ClockOut punches the logged-in user out
// @Summary Clock out
// @Tags timeclock
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 409 {object} ErrorResponse
// @Router /teacher/clock-out [post]
func (h *TimeClockHandler) ClockOut(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	if err := h.timeClockService.ClockOut(c.Request.Context(), principal.UserID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Clocked out"})
}

// Status returns the derived clock state and punch history
// @Summary Clock status
// @Tags timeclock
// @Produce json
// @Success 200 {object} services.TimeClockResponse
// @Router /teacher/clock-status [get]
func (h *TimeClockHandler) Status(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	status, err := h.timeClockService.Status(c.Request.Context(), principal.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// AllLogs lists punches across all users with filters, for admins
// @Summary All time logs
// @Tags timeclock
// @Produce json
// @Param user query string false "Substring match on worker name"
// @Param day query string false "Calendar day (YYYY-MM-DD)"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.TimeLog
// @Failure 400 {object} ErrorResponse
// @Router /admin/timelogs [get]
func (h *TimeClockHandler) AllLogs(c *gin.Context) {
	filters, ok := h.parseTimeLogFilters(c)
	if !ok {
		return
	}

	logs, err := h.timeClockService.AllLogs(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// ExportTimeLogs downloads the filtered punch list as XLSX
// @Summary Export time logs
// @Tags timeclock
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param user query string false "Substring match on worker name"
// @Param day query string false "Calendar day (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Router /admin/timelogs/export [get]
func (h *TimeClockHandler) ExportTimeLogs(c *gin.Context) {
	filters, ok := h.parseTimeLogFilters(c)
	if !ok {
		return
	}

	workbook, err := h.exportService.ExportTimeLogs(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.serveWorkbook(c, "timelogs", workbook)
}

// ExportEnrollments downloads the full enrollment audit log as XLSX
// @Summary Export enrollment log
// @Tags dashboards
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /admin/enrollments/export [get]
func (h *TimeClockHandler) ExportEnrollments(c *gin.Context) {
	workbook, err := h.exportService.ExportEnrollmentLog(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.serveWorkbook(c, "enrollments", workbook)
}

func (h *TimeClockHandler) parseTimeLogFilters(c *gin.Context) (repositories.TimeLogFilters, bool) {
	filters := repositories.TimeLogFilters{}

	if user := c.Query("user"); user != "" {
		filters.UserName = &user
	}
	if day := c.Query("day"); day != "" {
		parsed, err := time.Parse("2006-01-02", day)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid day filter, expected YYYY-MM-DD"})
			return filters, false
		}
		filters.Day = &parsed
	}
	if limit := c.Query("limit"); limit != "" {
		filters.Limit, _ = strconv.Atoi(limit)
	}
	if offset := c.Query("offset"); offset != "" {
		filters.Offset, _ = strconv.Atoi(offset)
	}
	return filters, true
}

func (h *TimeClockHandler) serveWorkbook(c *gin.Context, name string, workbook []byte) {
	filename := fmt.Sprintf("%s-%s.xlsx", name, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}
