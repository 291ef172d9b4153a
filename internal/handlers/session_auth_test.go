package handlers

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codeverse-academy/academy-service/internal/config"
	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/services"
	"github.com/codeverse-academy/academy-service/internal/validator"
)

func newTestMiddleware(t *testing.T) (*SessionAuthMiddleware, services.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	session := config.SessionConfig{
		Secret:     "test-secret",
		CookieName: "session",
		TTL:        time.Hour,
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	auth := services.NewAuthService(nil, logger, validator.New(), session)
	return NewSessionAuthMiddleware(auth, session), auth
}

func protectedRouter(m *SessionAuthMiddleware, roles ...models.UserRole) *gin.Engine {
	router := gin.New()
	group := router.Group("/", m.AuthMiddleware())
	if len(roles) > 0 {
		group.Use(m.RequireRoleMiddleware(roles...))
	}
	group.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("user_id"),
			"role":    c.GetString("user_role"),
			"name":    c.GetString("user_name"),
		})
	})
	return router
}

func TestAuthMiddlewareMissingCookie(t *testing.T) {
	middleware, _ := newTestMiddleware(t)
	router := protectedRouter(middleware)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareValidCookie(t *testing.T) {
	middleware, auth := newTestMiddleware(t)
	router := protectedRouter(middleware)

	token, err := auth.IssueToken(services.Principal{
		UserID: "u1",
		Role:   models.RoleTeacher,
		Name:   "John Teacher",
	})
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	body := w.Body.String()
	for _, want := range []string{"u1", "TEACHER", "John Teacher"} {
		if !strings.Contains(body, want) {
			t.Errorf("response %s missing %q", body, want)
		}
	}
}

func TestAuthMiddlewareTamperedCookie(t *testing.T) {
	middleware, auth := newTestMiddleware(t)
	router := protectedRouter(middleware)

	token, err := auth.IssueToken(services.Principal{UserID: "u1", Role: models.RoleAdmin, Name: "Admin"})
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: token + "x"})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}

	// The bad cookie is cleared on rejection.
	cleared := false
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "session" && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected the session cookie to be cleared")
	}
}

func TestRequireRoleMiddleware(t *testing.T) {
	middleware, auth := newTestMiddleware(t)
	router := protectedRouter(middleware, models.RoleAdmin)

	tests := []struct {
		name string
		role models.UserRole
		want int
	}{
		{name: "admin allowed", role: models.RoleAdmin, want: http.StatusOK},
		{name: "teacher forbidden", role: models.RoleTeacher, want: http.StatusForbidden},
		{name: "student forbidden", role: models.RoleStudent, want: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := auth.IssueToken(services.Principal{UserID: "u1", Role: tt.role, Name: "User"})
			if err != nil {
				t.Fatalf("IssueToken() error = %v", err)
			}

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			req.AddCookie(&http.Cookie{Name: "session", Value: token})
			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
