package services

import (
	"context"
	"errors"
	"time"

	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/repositories"
	"github.com/codeverse-academy/academy-service/internal/validator"
)

// ===== SENTINEL ERRORS =====

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")

	ErrSchoolNotFound     = errors.New("school not found")
	ErrGroupNotFound      = errors.New("group not found")
	ErrTrackNotFound      = errors.New("track not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrGroupTrackNotFound = errors.New("group track not found")

	ErrEvaluationNotFound = errors.New("evaluation not found")

	ErrReasonNotFound  = errors.New("absence reason not found")
	ErrReasonInUse     = errors.New("absence reason is referenced by requests")
	ErrAbsenceNotFound = errors.New("absence request not found")
	ErrAbsenceResolved = errors.New("absence request already resolved")

	ErrAlreadyClockedIn  = errors.New("already clocked in")
	ErrAlreadyClockedOut = errors.New("already clocked out")

	ErrNotEnrolled = errors.New("student is not enrolled in the group")
)

// ===== REQUEST DTOs (validated shapes live in the validator package) =====

type LoginRequest = validator.LoginRequest
type CreateSchoolRequest = validator.SchoolCreateRequest
type UpdateSchoolRequest = validator.SchoolUpdateRequest
type CreateGroupRequest = validator.GroupCreateRequest
type UpdateGroupRequest = validator.GroupUpdateRequest
type CreateTrackRequest = validator.TrackCreateRequest
type UpdateTrackRequest = validator.TrackUpdateRequest
type CreateSessionRequest = validator.SessionCreateRequest
type UpdateSessionRequest = validator.SessionUpdateRequest
type AddGroupTrackRequest = validator.GroupTrackRequest
type CreateTeacherRequest = validator.TeacherCreateRequest
type CreateStudentRequest = validator.StudentCreateRequest
type MarkAttendanceRequest = validator.AttendanceMarkRequest
type SaveSessionNoteRequest = validator.SessionNoteRequest
type UpdateEvaluationRequest = validator.EvaluationUpdateRequest
type CreateAbsenceReasonRequest = validator.AbsenceReasonRequest
type CreateAbsenceRequest = validator.AbsenceCreateRequest
type AbsenceDecisionRequest = validator.AbsenceDecisionRequest

// ===== RESPONSE DTOs =====

// Principal is the authenticated identity injected into every request.
type Principal struct {
	UserID string          `json:"user_id"`
	Role   models.UserRole `json:"role"`
	Name   string          `json:"name"`
}

type LoginResponse struct {
	Token string          `json:"-"`
	Role  models.UserRole `json:"role"`
	Name  string          `json:"name"`
}

// ScheduledSession is one session with its derived calendar date and the
// track it came from.
type ScheduledSession struct {
	SessionID  string    `json:"session_id"`
	Title      string    `json:"title"`
	Link       *string   `json:"link,omitempty"`
	OrderIndex int       `json:"order_index"`
	TrackID    string    `json:"track_id"`
	TrackTitle string    `json:"track_title"`
	Date       time.Time `json:"date"`
}

type GroupDetailResponse struct {
	*models.Group
	Schedule []ScheduledSession `json:"schedule"`
}

type GroupSummaryResponse struct {
	Group             *models.Group `json:"group"`
	TotalSessions     int           `json:"total_sessions"`
	CompletedSessions int           `json:"completed_sessions"`
}

type LeaderboardEntry struct {
	StudentID     string `json:"student_id"`
	Name          string `json:"name"`
	XP            int    `json:"xp"`
	Rank          int    `json:"rank"`
	IsCurrentUser bool   `json:"is_current_user"`
}

type SkillScore struct {
	Subject  string `json:"subject"`
	Score    int    `json:"score"`
	FullMark int    `json:"full_mark"`
}

type MissionProgress struct {
	TrackName string `json:"track_name"`
	Progress  int    `json:"progress"` // percent, clamped to [0,100]
}

type StudentDashboardResponse struct {
	User struct {
		Name     string `json:"name"`
		Username string `json:"username"`
		Initials string `json:"initials"`
	} `json:"user"`
	Group         *GroupRef          `json:"group"`
	XP            int                `json:"xp"`
	Level         int                `json:"level"`
	LevelProgress float64            `json:"level_progress"`
	Mission       *MissionProgress   `json:"mission"`
	Skills        []SkillScore       `json:"skills"`
	Leaderboard   []LeaderboardEntry `json:"leaderboard"`
}

type GroupRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TeacherGroupResponse struct {
	*models.Group
	SchoolName   string `json:"school_name"`
	StudentCount int64  `json:"student_count"`
}

type TeacherDashboardResponse struct {
	Groups     []TeacherGroupResponse `json:"groups"`
	ClockState models.TimeLogType     `json:"clock_state"`
}

// EnrollmentBucket is one aggregation bucket of the alta/baja log.
type EnrollmentBucket struct {
	Name  string `json:"name"`
	Altas int    `json:"altas"`
	Bajas int    `json:"bajas"`
}

type EnrollmentDashboardResponse struct {
	TotalActiveStudents int64                   `json:"total_active_students"`
	TotalAltas          int                     `json:"total_altas"`
	TotalBajas          int                     `json:"total_bajas"`
	Logs                []*models.EnrollmentLog `json:"logs"`
	BySchool            []EnrollmentBucket      `json:"by_school"`
	ByTeacher           []EnrollmentBucket      `json:"by_teacher"`
	ByMonth             []EnrollmentBucket      `json:"by_month"` // sorted YYYY-MM descending
}

type StudentEnrollmentRow struct {
	UserID     string             `json:"user_id"`
	GroupID    string             `json:"group_id"`
	Name       string             `json:"name"`
	Username   string             `json:"username"`
	GroupName  string             `json:"group_name"`
	SchoolName string             `json:"school_name"`
	Teachers   []string           `json:"teachers"`
	Evaluation *models.Evaluation `json:"evaluation"`
}

type TimeClockResponse struct {
	State models.TimeLogType `json:"state"`
	Logs  []*models.TimeLog  `json:"logs"`
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	// IssueToken signs a session token for the user; exposed separately so
	// the seed command and tests can mint sessions.
	IssueToken(principal Principal) (string, error)
	// ParseToken validates a session token and returns the principal.
	ParseToken(token string) (*Principal, error)
}

type SchoolService interface {
	Create(ctx context.Context, req *CreateSchoolRequest) (*models.School, error)
	Get(ctx context.Context, id string) (*models.School, error)
	List(ctx context.Context) ([]*models.School, error)
	Update(ctx context.Context, id string, req *UpdateSchoolRequest) (*models.School, error)
	Delete(ctx context.Context, id string) error
}

type GroupService interface {
	Create(ctx context.Context, req *CreateGroupRequest) (*models.Group, error)
	Get(ctx context.Context, id string) (*GroupDetailResponse, error)
	List(ctx context.Context) ([]*models.Group, error)
	Update(ctx context.Context, id string, req *UpdateGroupRequest) (*models.Group, error)
	Delete(ctx context.Context, id string) error

	AssignTeacher(ctx context.Context, groupID, teacherID string) error
	RemoveTeacher(ctx context.Context, groupID, teacherID string) error

	AddTrack(ctx context.Context, groupID string, req *AddGroupTrackRequest) error
	RemoveTrack(ctx context.Context, groupID, groupTrackID string) error

	// Schedule merges every assigned track's derived session dates into one
	// chronological list.
	Schedule(ctx context.Context, groupID string) ([]ScheduledSession, error)
	// Summary reports how many scheduled sessions already have attendance
	// records.
	Summary(ctx context.Context, groupID string) (*GroupSummaryResponse, error)

	GroupsForTeacher(ctx context.Context, teacherID string) ([]TeacherGroupResponse, error)
	// IsMember reports whether the student is enrolled in the group.
	IsMember(ctx context.Context, groupID, studentID string) (bool, error)
}

type TrackService interface {
	Create(ctx context.Context, req *CreateTrackRequest) (*models.Track, error)
	Get(ctx context.Context, id string) (*models.Track, error)
	List(ctx context.Context) ([]*models.Track, error)
	Update(ctx context.Context, id string, req *UpdateTrackRequest) (*models.Track, error)
	Delete(ctx context.Context, id string) error

	AddSession(ctx context.Context, trackID string, req *CreateSessionRequest) (*models.Session, error)
	UpdateSession(ctx context.Context, sessionID string, req *UpdateSessionRequest) (*models.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type RosterService interface {
	CreateTeacher(ctx context.Context, req *CreateTeacherRequest) (*models.User, error)
	CreateStudent(ctx context.Context, req *CreateStudentRequest) (*models.User, error)
	ListUsers(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error)

	// EnrollStudent links a student to a group, seeds the zero evaluation
	// and appends the ALTA audit row, all in one transaction.
	EnrollStudent(ctx context.Context, groupID, studentID string) error
	// UnenrollStudent removes the link and appends the BAJA audit row.
	UnenrollStudent(ctx context.Context, groupID, studentID string) error

	StudentEnrollments(ctx context.Context, query string) ([]StudentEnrollmentRow, error)
}

type AttendanceService interface {
	Mark(ctx context.Context, groupID string, req *MarkAttendanceRequest) error
	ForGroup(ctx context.Context, groupID string) ([]*models.Attendance, error)
	SaveNote(ctx context.Context, groupID string, req *SaveSessionNoteRequest) error
	Notes(ctx context.Context, groupID string) ([]*models.SessionNote, error)
}

type EvaluationService interface {
	Update(ctx context.Context, groupID, studentID string, req *UpdateEvaluationRequest) (*models.Evaluation, error)
	Get(ctx context.Context, groupID, studentID string) (*models.Evaluation, error)
	// Leaderboard returns the top 5 of the group by XP, stable on ties.
	Leaderboard(ctx context.Context, groupID, currentUserID string) ([]LeaderboardEntry, error)
}

type DashboardService interface {
	StudentDashboard(ctx context.Context, studentID string) (*StudentDashboardResponse, error)
	TeacherDashboard(ctx context.Context, teacherID string) (*TeacherDashboardResponse, error)
	EnrollmentDashboard(ctx context.Context) (*EnrollmentDashboardResponse, error)
}

type AbsenceService interface {
	CreateReason(ctx context.Context, req *CreateAbsenceReasonRequest) (*models.AbsenceReason, error)
	ListReasons(ctx context.Context) ([]*models.AbsenceReason, error)
	DeleteReason(ctx context.Context, id string) error

	CreateRequest(ctx context.Context, teacherID string, req *CreateAbsenceRequest) (*models.AbsenceRequest, error)
	RequestsForTeacher(ctx context.Context, teacherID string) ([]*models.AbsenceRequest, error)
	AllRequests(ctx context.Context) ([]*models.AbsenceRequest, error)
	Decide(ctx context.Context, requestID string, req *AbsenceDecisionRequest) error
}

type TimeClockService interface {
	ClockIn(ctx context.Context, userID string) error
	ClockOut(ctx context.Context, userID string) error
	Status(ctx context.Context, userID string) (*TimeClockResponse, error)
	AllLogs(ctx context.Context, filters repositories.TimeLogFilters) ([]*models.TimeLog, error)
}

type ExportService interface {
	// ExportEnrollmentLog renders the full audit log as an XLSX workbook.
	ExportEnrollmentLog(ctx context.Context) ([]byte, error)
	// ExportTimeLogs renders the filtered punch list as an XLSX workbook.
	ExportTimeLogs(ctx context.Context, filters repositories.TimeLogFilters) ([]byte, error)
}

// ServiceManager aggregates all services and manages their lifecycle.
type ServiceManager interface {
	Auth() AuthService
	School() SchoolService
	Group() GroupService
	Track() TrackService
	Roster() RosterService
	Attendance() AttendanceService
	Evaluation() EvaluationService
	Dashboard() DashboardService
	Absence() AbsenceService
	TimeClock() TimeClockService
	Export() ExportService

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
	HealthCheck(ctx context.Context) error
}
