package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/repositories"
	"github.com/codeverse-academy/academy-service/internal/services"
	"github.com/codeverse-academy/academy-service/internal/utils"
)

type RosterHandler struct {
	BaseHandler
	rosterService services.RosterService
}

func NewRosterHandler(rosterService services.RosterService, logger utils.Logger) *RosterHandler {
	return &RosterHandler{
		BaseHandler:   NewBaseHandler(logger),
		rosterService: rosterService,
	}
}

// CreateTeacher creates a teacher account
// @Summary Create teacher
// @Tags roster
// @Accept json
// @Produce json
// @Param teacher body services.CreateTeacherRequest true "Teacher data"
// @Success 201 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/teachers [post]
func (h *RosterHandler) CreateTeacher(c *gin.Context) {
	var req services.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	teacher, err := h.rosterService.CreateTeacher(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, teacher)
}

// CreateStudent creates a student, optionally enrolling them into a group
// @Summary Create student
// @Tags roster
// @Accept json
// @Produce json
// @Param student body services.CreateStudentRequest true "Student data"
// @Success 201 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/students [post]
func (h *RosterHandler) CreateStudent(c *gin.Context) {
	var req services.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	student, err := h.rosterService.CreateStudent(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, student)
}

// ListUsers lists users with optional role and search filters
// @Summary List users
// @Tags roster
// @Produce json
// @Param role query string false "Filter by role"
// @Param q query string false "Search name or username"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.User
// @Router /admin/users [get]
func (h *RosterHandler) ListUsers(c *gin.Context) {
	filters := repositories.UserFilters{}

	if role := c.Query("role"); role != "" {
		r := models.UserRole(role)
		if !r.Valid() {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid role filter"})
			return
		}
		filters.Role = &r
	}
	if q := c.Query("q"); q != "" {
		filters.Query = &q
	}
	if limit := c.Query("limit"); limit != "" {
		filters.Limit, _ = strconv.Atoi(limit)
	}
	if offset := c.Query("offset"); offset != "" {
		filters.Offset, _ = strconv.Atoi(offset)
	}

	users, total, err := h.rosterService.ListUsers(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": total,
	})
}

// EnrollStudent enrolls a student into a group, logging the alta
// @Summary Enroll student
// @Tags roster
// @Produce json
// @Param id path string true "Group ID"
// @Param student_id path string true "Student ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/groups/{id}/students/{student_id} [post]
func (h *RosterHandler) EnrollStudent(c *gin.Context) {
	groupID := h.requireParam(c, "id")
	if groupID == "" {
		return
	}
	studentID := h.requireParam(c, "student_id")
	if studentID == "" {
		return
	}

	h.LogRequest(c, "Enrolling student", "group_id", groupID, "student_id", studentID)

	if err := h.rosterService.EnrollStudent(c.Request.Context(), groupID, studentID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Student enrolled"})
}

// UnenrollStudent removes a student from a group, logging the baja
// @Summary Unenroll student
// @Tags roster
// @Produce json
// @Param id path string true "Group ID"
// @Param student_id path string true "Student ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/groups/{id}/students/{student_id} [delete]
func (h *RosterHandler) UnenrollStudent(c *gin.Context) {
	groupID := h.requireParam(c, "id")
	if groupID == "" {
		return
	}
	studentID := h.requireParam(c, "student_id")
	if studentID == "" {
		return
	}

	h.LogRequest(c, "Unenrolling student", "group_id", groupID, "student_id", studentID)

	if err := h.rosterService.UnenrollStudent(c.Request.Context(), groupID, studentID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Student unenrolled"})
}

// StudentEnrollments lists every student-group link with evaluation state
// @Summary Student enrollments
// @Tags roster
// @Produce json
// @Param q query string false "Search name or username"
// @Success 200 {array} services.StudentEnrollmentRow
// @Router /admin/enrollments [get]
func (h *RosterHandler) StudentEnrollments(c *gin.Context) {
	rows, err := h.rosterService.StudentEnrollments(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
