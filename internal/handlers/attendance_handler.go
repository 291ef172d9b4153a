package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/services"
	"github.com/codeverse-academy/academy-service/internal/utils"
)

type AttendanceHandler struct {
	BaseHandler
	attendanceService services.AttendanceService
	evaluationService services.EvaluationService
	groupService      services.GroupService
}

func NewAttendanceHandler(attendanceService services.AttendanceService, evaluationService services.EvaluationService, groupService services.GroupService, logger utils.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		BaseHandler:       NewBaseHandler(logger),
		attendanceService: attendanceService,
		evaluationService: evaluationService,
		groupService:      groupService,
	}
}

// MarkAttendance records presence for one (student, session) cell
// @Summary Mark attendance
// @Tags attendance
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param attendance body services.MarkAttendanceRequest true "Attendance data"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /teacher/groups/{id}/attendance [post]
func (h *AttendanceHandler) MarkAttendance(c *gin.Context) {
	groupID := h.requireParam(c, "id")
	if groupID == "" {
		return
	}

	var req services.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.attendanceService.Mark(c.Request.Context(), groupID, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Attendance saved"})
}

// GetAttendance lists all attendance records of a group
// @Summary Group attendance
// @Tags attendance
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {array} models.Attendance
// @Router /teacher/groups/{id}/attendance [get]
func (h *AttendanceHandler) GetAttendance(c *gin.Context) {
	groupID := h.requireParam(c, "id")
	if groupID == "" {
		return
	}

	records, err := h.attendanceService.ForGroup(c.Request.Context(), groupID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// SaveNote saves the per-session teacher note
// @Summary Save session note
// @Tags attendance
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param note body services.SaveSessionNoteRequest true "Note data"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /teacher/groups/{id}/notes [post]
func (h *AttendanceHandler) SaveNote(c *gin.Context) {
	groupID := h.requireParam(c, "id")
	if groupID == "" {
		return
	}

	var req services.SaveSessionNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.attendanceService.SaveNote(c.Request.Context(), groupID, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Note saved"})
}

// GetNotes lists the session notes of a group
// @Summary Group session notes
// @Tags attendance
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {array} models.SessionNote
// @Router /teacher/groups/{id}/notes [get]
func (h *AttendanceHandler) GetNotes(c *gin.Context) {
	groupID := h.requireParam(c, "id")
	if groupID == "" {
		return
	}

	notes, err := h.attendanceService.Notes(c.Request.Context(), groupID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

// UpdateEvaluation saves the full evaluation snapshot of a student
// @Summary Update evaluation
// @Tags evaluations
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param student_id path string true "Student ID"
// @Param evaluation body services.UpdateEvaluationRequest true "Evaluation snapshot"
// @Success 200 {object} models.Evaluation
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /teacher/groups/{id}/evaluations/{student_id} [put]
func (h *AttendanceHandler) UpdateEvaluation(c *gin.Context) {
	groupID := h.requireParam(c, "id")
	if groupID == "" {
		return
	}
	studentID := h.requireParam(c, "student_id")
	if studentID == "" {
		return
	}

	var req services.UpdateEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	evaluation, err := h.evaluationService.Update(c.Request.Context(), groupID, studentID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, evaluation)
}

// GetEvaluation retrieves a student's evaluation within a group
// @Summary Get evaluation
// @Tags evaluations
// @Produce json
// @Param id path string true "Group ID"
// @Param student_id path string true "Student ID"
// @Success 200 {object} models.Evaluation
// @Failure 404 {object} ErrorResponse
// @Router /teacher/groups/{id}/evaluations/{student_id} [get]
func (h *AttendanceHandler) GetEvaluation(c *gin.Context) {
	groupID := h.requireParam(c, "id")
	if groupID == "" {
		return
	}
	studentID := h.requireParam(c, "student_id")
	if studentID == "" {
		return
	}

	evaluation, err := h.evaluationService.Get(c.Request.Context(), groupID, studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, evaluation)
}

// GetLeaderboard returns the group's top students by XP
// @Summary Group leaderboard
// @Tags evaluations
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {array} services.LeaderboardEntry
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /groups/{id}/leaderboard [get]
func (h *AttendanceHandler) GetLeaderboard(c *gin.Context) {
	groupID := h.requireParam(c, "id")
	if groupID == "" {
		return
	}

	// Students only see the leaderboard of groups they belong to.
	if roleFromContext(c) == models.RoleStudent {
		member, err := h.groupService.IsMember(c.Request.Context(), groupID, c.GetString("user_id"))
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		if !member {
			c.JSON(http.StatusForbidden, ErrorResponse{Message: "Insufficient permissions"})
			return
		}
	}

	leaderboard, err := h.evaluationService.Leaderboard(c.Request.Context(), groupID, c.GetString("user_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, leaderboard)
}
