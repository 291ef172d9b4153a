package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codeverse-academy/academy-service/internal/services"
	"github.com/codeverse-academy/academy-service/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	dashboardService services.DashboardService
	groupService     services.GroupService
}

func NewDashboardHandler(dashboardService services.DashboardService, groupService services.GroupService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      NewBaseHandler(logger),
		dashboardService: dashboardService,
		groupService:     groupService,
	}
}

// StudentDashboard returns the gamified home view of the logged-in student
// @Summary Student dashboard
// @Tags dashboards
// @Produce json
// @Success 200 {object} services.StudentDashboardResponse
// @Failure 401 {object} ErrorResponse
// @Router /student/dashboard [get]
func (h *DashboardHandler) StudentDashboard(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.StudentDashboard(c.Request.Context(), principal.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// TeacherDashboard returns the teacher's groups and clock state
// @Summary Teacher dashboard
// @Tags dashboards
// @Produce json
// @Success 200 {object} services.TeacherDashboardResponse
// @Failure 401 {object} ErrorResponse
// @Router /teacher/dashboard [get]
func (h *DashboardHandler) TeacherDashboard(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.TeacherDashboard(c.Request.Context(), principal.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// TeacherGroups lists the groups assigned to the logged-in teacher
// @Summary Teacher groups
// @Tags dashboards
// @Produce json
// @Success 200 {array} services.TeacherGroupResponse
// @Router /teacher/groups [get]
func (h *DashboardHandler) TeacherGroups(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	groups, err := h.groupService.GroupsForTeacher(c.Request.Context(), principal.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// EnrollmentDashboard returns the alta/baja aggregations for admins
// @Summary Enrollment dashboard
// @Tags dashboards
// @Produce json
// @Success 200 {object} services.EnrollmentDashboardResponse
// @Router /admin/dashboard/enrollments [get]
func (h *DashboardHandler) EnrollmentDashboard(c *gin.Context) {
	dashboard, err := h.dashboardService.EnrollmentDashboard(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
