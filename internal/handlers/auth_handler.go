package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codeverse-academy/academy-service/internal/services"
	"github.com/codeverse-academy/academy-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
	session     *SessionAuthMiddleware
}

func NewAuthHandler(authService services.AuthService, session *SessionAuthMiddleware, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
		session:     session,
	}
}

// Login authenticates a user
// @Summary Log in
// @Description Checks credentials and sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body services.LoginRequest true "Credentials"
// @Success 200 {object} services.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	response, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.session.SetSessionCookie(c, response.Token)
	c.JSON(http.StatusOK, response)
}

// Logout clears the session cookie
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.session.ClearSessionCookie(c)
	c.JSON(http.StatusOK, SuccessResponse{Message: "Logged out"})
}

// Me returns the authenticated principal
// @Summary Current session
// @Tags auth
// @Produce json
// @Success 200 {object} services.Principal
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, principal)
}
