package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codeverse-academy/academy-service/internal/services"
	"github.com/codeverse-academy/academy-service/internal/utils"
)

type TrackHandler struct {
	BaseHandler
	trackService services.TrackService
}

func NewTrackHandler(trackService services.TrackService, logger utils.Logger) *TrackHandler {
	return &TrackHandler{
		BaseHandler:  NewBaseHandler(logger),
		trackService: trackService,
	}
}

// CreateTrack creates a curriculum track
// @Summary Create track
// @Tags tracks
// @Accept json
// @Produce json
// @Param track body services.CreateTrackRequest true "Track data"
// @Success 201 {object} models.Track
// @Failure 400 {object} ErrorResponse
// @Router /admin/tracks [post]
func (h *TrackHandler) CreateTrack(c *gin.Context) {
	var req services.CreateTrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	track, err := h.trackService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, track)
}

// ListTracks lists all tracks with their sessions
// @Summary List tracks
// @Tags tracks
// @Produce json
// @Success 200 {array} models.Track
// @Router /admin/tracks [get]
func (h *TrackHandler) ListTracks(c *gin.Context) {
	tracks, err := h.trackService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tracks)
}

// GetTrack retrieves a track with ordered sessions
// @Summary Get track
// @Tags tracks
// @Produce json
// @Param id path string true "Track ID"
// @Success 200 {object} models.Track
// @Failure 404 {object} ErrorResponse
// @Router /admin/tracks/{id} [get]
func (h *TrackHandler) GetTrack(c *gin.Context) {
	id := h.requireParam(c, "id")
	if id == "" {
		return
	}

	track, err := h.trackService.Get(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, track)
}

// UpdateTrack updates track attributes
// @Summary Update track
// @Tags tracks
// @Accept json
// @Produce json
// @Param id path string true "Track ID"
// @Param track body services.UpdateTrackRequest true "Fields to update"
// @Success 200 {object} models.Track
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/tracks/{id} [put]
func (h *TrackHandler) UpdateTrack(c *gin.Context) {
	id := h.requireParam(c, "id")
	if id == "" {
		return
	}

	var req services.UpdateTrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	track, err := h.trackService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, track)
}

// DeleteTrack deletes a track and its sessions
// @Summary Delete track
// @Tags tracks
// @Produce json
// @Param id path string true "Track ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/tracks/{id} [delete]
func (h *TrackHandler) DeleteTrack(c *gin.Context) {
	id := h.requireParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Deleting track", "track_id", id)

	if err := h.trackService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Track deleted"})
}

// AddSession appends a session to the track
// @Summary Add session
// @Tags tracks
// @Accept json
// @Produce json
// @Param id path string true "Track ID"
// @Param session body services.CreateSessionRequest true "Session data"
// @Success 201 {object} models.Session
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/tracks/{id}/sessions [post]
func (h *TrackHandler) AddSession(c *gin.Context) {
	trackID := h.requireParam(c, "id")
	if trackID == "" {
		return
	}

	var req services.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	session, err := h.trackService.AddSession(c.Request.Context(), trackID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// UpdateSession edits a session title or link
// @Summary Update session
// @Tags tracks
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param session body services.UpdateSessionRequest true "Fields to update"
// @Success 200 {object} models.Session
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/sessions/{session_id} [put]
func (h *TrackHandler) UpdateSession(c *gin.Context) {
	sessionID := h.requireParam(c, "session_id")
	if sessionID == "" {
		return
	}

	var req services.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	session, err := h.trackService.UpdateSession(c.Request.Context(), sessionID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// DeleteSession removes a session; attendance history stays intact
// @Summary Delete session
// @Tags tracks
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/sessions/{session_id} [delete]
func (h *TrackHandler) DeleteSession(c *gin.Context) {
	sessionID := h.requireParam(c, "session_id")
	if sessionID == "" {
		return
	}

	if err := h.trackService.DeleteSession(c.Request.Context(), sessionID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Session deleted"})
}
