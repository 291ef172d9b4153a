package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codeverse-academy/academy-service/internal/services"
	"github.com/codeverse-academy/academy-service/internal/utils"
)

type GroupHandler struct {
	BaseHandler
	groupService services.GroupService
}

func NewGroupHandler(groupService services.GroupService, logger utils.Logger) *GroupHandler {
	return &GroupHandler{
		BaseHandler:  NewBaseHandler(logger),
		groupService: groupService,
	}
}

// CreateGroup creates a new group
// @Summary Create group
// @Tags groups
// @Accept json
// @Produce json
// @Param group body services.CreateGroupRequest true "Group data"
// @Success 201 {object} models.Group
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/groups [post]
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req services.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	group, err := h.groupService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, group)
}

// ListGroups lists all groups
// @Summary List groups
// @Tags groups
// @Produce json
// @Success 200 {array} models.Group
// @Router /admin/groups [get]
func (h *GroupHandler) ListGroups(c *gin.Context) {
	groups, err := h.groupService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// GetGroup retrieves a group with roster, tracks and derived schedule
// @Summary Get group detail
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} services.GroupDetailResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/groups/{id} [get]
func (h *GroupHandler) GetGroup(c *gin.Context) {
	id := h.requireParam(c, "id")
	if id == "" {
		return
	}

	group, err := h.groupService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

// UpdateGroup updates group attributes
// @Summary Update group
// @Tags groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param group body services.UpdateGroupRequest true "Fields to update"
// @Success 200 {object} models.Group
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/groups/{id} [put]
func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	id := h.requireParam(c, "id")
	if id == "" {
		return
	}

	var req services.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	group, err := h.groupService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

// DeleteGroup deletes a group
// @Summary Delete group
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/groups/{id} [delete]
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	id := h.requireParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Deleting group", "group_id", id)

	if err := h.groupService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Group deleted"})
}

// AssignTeacher links a teacher to the group
// @Summary Assign teacher
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Param teacher_id path string true "Teacher ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/groups/{id}/teachers/{teacher_id} [post]
func (h *GroupHandler) AssignTeacher(c *gin.Context) {
	groupID := h.requireParam(c, "id")
	if groupID == "" {
		return
	}
	teacherID := h.requireParam(c, "teacher_id")
	if teacherID == "" {
		return
	}

	if err := h.groupService.AssignTeacher(c.Request.Context(), groupID, teacherID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Teacher assigned"})
}

// RemoveTeacher unlinks a teacher from the group
// @Summary Remove teacher
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Param teacher_id path string true "Teacher ID"
// @Success 200 {object} SuccessResponse
// @Router /admin/groups/{id}/teachers/{teacher_id} [delete]
func (h *GroupHandler) RemoveTeacher(c *gin.Context) {
	groupID := h.requireParam(c, "id")
	if groupID == "" {
		return
	}
	teacherID := h.requireParam(c, "teacher_id")
	if teacherID == "" {
		return
	}

	if err := h.groupService.RemoveTeacher(c.Request.Context(), groupID, teacherID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Teacher removed"})
}

// AddTrack assigns a track to the group at a start date
// @Summary Assign track
// @Tags groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param assignment body services.AddGroupTrackRequest true "Track assignment"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/groups/{id}/tracks [post]
func (h *GroupHandler) AddTrack(c *gin.Context) {
	groupID := h.requireParam(c, "id")
	if groupID == "" {
		return
	}

	var req services.AddGroupTrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.groupService.AddTrack(c.Request.Context(), groupID, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Message: "Track assigned"})
}

// RemoveTrack removes a track assignment from the group
// @Summary Remove track assignment
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Param group_track_id path string true "Group track ID"
// @Success 200 {object} SuccessResponse
// @Router /admin/groups/{id}/tracks/{group_track_id} [delete]
func (h *GroupHandler) RemoveTrack(c *gin.Context) {
	groupID := h.requireParam(c, "id")
	if groupID == "" {
		return
	}
	groupTrackID := h.requireParam(c, "group_track_id")
	if groupTrackID == "" {
		return
	}

	if err := h.groupService.RemoveTrack(c.Request.Context(), groupID, groupTrackID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Track assignment removed"})
}

// GetSchedule returns the merged chronological schedule of the group
// @Summary Group schedule
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {array} services.ScheduledSession
// @Router /groups/{id}/schedule [get]
func (h *GroupHandler) GetSchedule(c *gin.Context) {
	id := h.requireParam(c, "id")
	if id == "" {
		return
	}

	schedule, err := h.groupService.Schedule(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// GetSummary returns session completion totals for the group
// @Summary Group summary
// @Tags groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} services.GroupSummaryResponse
// @Failure 404 {object} ErrorResponse
// @Router /groups/{id}/summary [get]
func (h *GroupHandler) GetSummary(c *gin.Context) {
	id := h.requireParam(c, "id")
	if id == "" {
		return
	}

	summary, err := h.groupService.Summary(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
