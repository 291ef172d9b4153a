package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codeverse-academy/academy-service/internal/services"
	"github.com/codeverse-academy/academy-service/internal/utils"
	"github.com/codeverse-academy/academy-service/internal/validator"
)

// ErrorResponse is the error envelope returned by all endpoints.
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// SuccessResponse wraps endpoints that return no entity body.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// BaseHandler carries shared handler helpers.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs with the request-scoped logger when available.
func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c, h.logger).Info(msg, args...)
}

// requireParam aborts with 400 when the named path parameter is empty.
func (h *BaseHandler) requireParam(c *gin.Context, name string) string {
	value := c.Param(name)
	if value == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Missing path parameter: " + name,
		})
	}
	return value
}

// principal returns the authenticated identity set by the session
// middleware, aborting with 401 when it is absent.
func (h *BaseHandler) principal(c *gin.Context) (*services.Principal, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return nil, false
	}
	return &services.Principal{
		UserID: userID,
		Role:   roleFromContext(c),
		Name:   c.GetString("user_name"),
	}, true
}

// handleServiceError translates service errors into HTTP status codes.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrs,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Invalid username or password"})
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrSchoolNotFound),
		errors.Is(err, services.ErrGroupNotFound),
		errors.Is(err, services.ErrTrackNotFound),
		errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, services.ErrGroupTrackNotFound),
		errors.Is(err, services.ErrEvaluationNotFound),
		errors.Is(err, services.ErrReasonNotFound),
		errors.Is(err, services.ErrAbsenceNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrReasonInUse),
		errors.Is(err, services.ErrAbsenceResolved),
		errors.Is(err, services.ErrAlreadyClockedIn),
		errors.Is(err, services.ErrAlreadyClockedOut),
		errors.Is(err, services.ErrNotEnrolled):
		c.JSON(http.StatusConflict, ErrorResponse{Message: err.Error()})
	default:
		utils.FromContext(c, h.logger).Error("Unhandled service error", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
	}
}
