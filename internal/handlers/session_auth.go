package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codeverse-academy/academy-service/internal/config"
	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/services"
)

// SessionAuthMiddleware authenticates requests from the signed session
// cookie issued at login.
type SessionAuthMiddleware struct {
	auth    services.AuthService
	session config.SessionConfig
}

func NewSessionAuthMiddleware(auth services.AuthService, session config.SessionConfig) *SessionAuthMiddleware {
	return &SessionAuthMiddleware{
		auth:    auth,
		session: session,
	}
}

// AuthMiddleware parses the session cookie and injects the principal into
// the request context. A missing, expired or tampered cookie aborts with
// 401 and clears the cookie.
func (m *SessionAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.session.CookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authentication required",
			})
			return
		}

		principal, err := m.auth.ParseToken(token)
		if err != nil {
			m.clearCookie(c)
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid or expired session",
			})
			return
		}

		c.Set("user_id", principal.UserID)
		c.Set("user_role", string(principal.Role))
		c.Set("user_name", principal.Name)
		c.Next()
	}
}

// RequireRoleMiddleware allows only the listed roles past.
func (m *SessionAuthMiddleware) RequireRoleMiddleware(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := roleFromContext(c)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
			Message: "Insufficient permissions",
		})
	}
}

// SetSessionCookie writes the session token as an http-only cookie.
func (m *SessionAuthMiddleware) SetSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.session.CookieName, token, int(m.session.TTL.Seconds()), "/", "", m.session.Secure, true)
}

func (m *SessionAuthMiddleware) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.session.CookieName, "", -1, "/", "", m.session.Secure, true)
}

// ClearSessionCookie removes the cookie at logout.
func (m *SessionAuthMiddleware) ClearSessionCookie(c *gin.Context) {
	m.clearCookie(c)
}

func roleFromContext(c *gin.Context) models.UserRole {
	return models.UserRole(c.GetString("user_role"))
}
