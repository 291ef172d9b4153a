package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codeverse-academy/academy-service/internal/config"
	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/services"
	"github.com/codeverse-academy/academy-service/internal/utils"
)

type HandlerManager struct {
	authHandler       *AuthHandler
	schoolHandler     *SchoolHandler
	groupHandler      *GroupHandler
	trackHandler      *TrackHandler
	rosterHandler     *RosterHandler
	attendanceHandler *AttendanceHandler
	dashboardHandler  *DashboardHandler
	absenceHandler    *AbsenceHandler
	timeClockHandler  *TimeClockHandler
	sessionMiddleware *SessionAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	sessionConfig config.SessionConfig,
) *HandlerManager {
	sessionMiddleware := NewSessionAuthMiddleware(serviceManager.Auth(), sessionConfig)

	return &HandlerManager{
		authHandler:       NewAuthHandler(serviceManager.Auth(), sessionMiddleware, logger),
		schoolHandler:     NewSchoolHandler(serviceManager.School(), logger),
		groupHandler:      NewGroupHandler(serviceManager.Group(), logger),
		trackHandler:      NewTrackHandler(serviceManager.Track(), logger),
		rosterHandler:     NewRosterHandler(serviceManager.Roster(), logger),
		attendanceHandler: NewAttendanceHandler(serviceManager.Attendance(), serviceManager.Evaluation(), serviceManager.Group(), logger),
		dashboardHandler:  NewDashboardHandler(serviceManager.Dashboard(), serviceManager.Group(), logger),
		absenceHandler:    NewAbsenceHandler(serviceManager.Absence(), logger),
		timeClockHandler:  NewTimeClockHandler(serviceManager.TimeClock(), serviceManager.Export(), logger),
		sessionMiddleware: sessionMiddleware,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   "academy-service",
		})
	})

	v1 := router.Group("/api/v1")

	// Authentication endpoints; login is the only unauthenticated route.
	auth := v1.Group("/auth")
	{
		auth.POST("/login", hm.authHandler.Login)
		auth.POST("/logout", hm.authHandler.Logout)
		auth.GET("/me", hm.sessionMiddleware.AuthMiddleware(), hm.authHandler.Me)
	}

	authed := v1.Group("")
	authed.Use(hm.sessionMiddleware.AuthMiddleware())
	{
		// Views shared by staff and students
		groups := authed.Group("/groups")
		{
			groups.GET("/:id/leaderboard", hm.attendanceHandler.GetLeaderboard)
			groups.GET("/:id/schedule", hm.sessionMiddleware.RequireRoleMiddleware(models.RoleAdmin, models.RoleTeacher), hm.groupHandler.GetSchedule)
			groups.GET("/:id/summary", hm.sessionMiddleware.RequireRoleMiddleware(models.RoleAdmin, models.RoleTeacher), hm.groupHandler.GetSummary)
			groups.GET("/:id", hm.sessionMiddleware.RequireRoleMiddleware(models.RoleAdmin, models.RoleTeacher), hm.groupHandler.GetGroup)
		}

		authed.GET("/absence-reasons", hm.sessionMiddleware.RequireRoleMiddleware(models.RoleAdmin, models.RoleTeacher), hm.absenceHandler.ListReasons)

		// Admin routes
		admin := authed.Group("/admin")
		admin.Use(hm.sessionMiddleware.RequireRoleMiddleware(models.RoleAdmin))
		{
			admin.POST("/schools", hm.schoolHandler.CreateSchool)
			admin.GET("/schools", hm.schoolHandler.ListSchools)
			admin.GET("/schools/:id", hm.schoolHandler.GetSchool)
			admin.PUT("/schools/:id", hm.schoolHandler.UpdateSchool)
			admin.DELETE("/schools/:id", hm.schoolHandler.DeleteSchool)

			admin.POST("/groups", hm.groupHandler.CreateGroup)
			admin.GET("/groups", hm.groupHandler.ListGroups)
			admin.GET("/groups/:id", hm.groupHandler.GetGroup)
			admin.PUT("/groups/:id", hm.groupHandler.UpdateGroup)
			admin.DELETE("/groups/:id", hm.groupHandler.DeleteGroup)
			admin.POST("/groups/:id/teachers/:teacher_id", hm.groupHandler.AssignTeacher)
			admin.DELETE("/groups/:id/teachers/:teacher_id", hm.groupHandler.RemoveTeacher)
			admin.POST("/groups/:id/students/:student_id", hm.rosterHandler.EnrollStudent)
			admin.DELETE("/groups/:id/students/:student_id", hm.rosterHandler.UnenrollStudent)
			admin.POST("/groups/:id/tracks", hm.groupHandler.AddTrack)
			admin.DELETE("/groups/:id/tracks/:group_track_id", hm.groupHandler.RemoveTrack)

			admin.POST("/tracks", hm.trackHandler.CreateTrack)
			admin.GET("/tracks", hm.trackHandler.ListTracks)
			admin.GET("/tracks/:id", hm.trackHandler.GetTrack)
			admin.PUT("/tracks/:id", hm.trackHandler.UpdateTrack)
			admin.DELETE("/tracks/:id", hm.trackHandler.DeleteTrack)
			admin.POST("/tracks/:id/sessions", hm.trackHandler.AddSession)
			admin.PUT("/sessions/:session_id", hm.trackHandler.UpdateSession)
			admin.DELETE("/sessions/:session_id", hm.trackHandler.DeleteSession)

			admin.POST("/teachers", hm.rosterHandler.CreateTeacher)
			admin.POST("/students", hm.rosterHandler.CreateStudent)
			admin.GET("/users", hm.rosterHandler.ListUsers)
			admin.GET("/enrollments", hm.rosterHandler.StudentEnrollments)
			admin.GET("/enrollments/export", hm.timeClockHandler.ExportEnrollments)
			admin.GET("/dashboard/enrollments", hm.dashboardHandler.EnrollmentDashboard)

			admin.POST("/absence-reasons", hm.absenceHandler.CreateReason)
			admin.DELETE("/absence-reasons/:id", hm.absenceHandler.DeleteReason)
			admin.GET("/absences", hm.absenceHandler.AllRequests)
			admin.PUT("/absences/:id/decision", hm.absenceHandler.Decide)

			admin.GET("/timelogs", hm.timeClockHandler.AllLogs)
			admin.GET("/timelogs/export", hm.timeClockHandler.ExportTimeLogs)
		}

		// Teacher routes
		teacher := authed.Group("/teacher")
		teacher.Use(hm.sessionMiddleware.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin))
		{
			teacher.GET("/dashboard", hm.dashboardHandler.TeacherDashboard)
			teacher.GET("/groups", hm.dashboardHandler.TeacherGroups)

			teacher.POST("/groups/:id/attendance", hm.attendanceHandler.MarkAttendance)
			teacher.GET("/groups/:id/attendance", hm.attendanceHandler.GetAttendance)
			teacher.POST("/groups/:id/notes", hm.attendanceHandler.SaveNote)
			teacher.GET("/groups/:id/notes", hm.attendanceHandler.GetNotes)
			teacher.PUT("/groups/:id/evaluations/:student_id", hm.attendanceHandler.UpdateEvaluation)
			teacher.GET("/groups/:id/evaluations/:student_id", hm.attendanceHandler.GetEvaluation)

			teacher.POST("/absences", hm.absenceHandler.CreateRequest)
			teacher.GET("/absences", hm.absenceHandler.MyRequests)

			teacher.POST("/clock-in", hm.timeClockHandler.ClockIn)
			teacher.POST("/clock-out", hm.timeClockHandler.ClockOut)
			teacher.GET("/clock-status", hm.timeClockHandler.Status)
		}

		// Student routes
		student := authed.Group("/student")
		student.Use(hm.sessionMiddleware.RequireRoleMiddleware(models.RoleStudent))
		{
			student.GET("/dashboard", hm.dashboardHandler.StudentDashboard)
		}
	}
}
