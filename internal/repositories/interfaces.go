package repositories

import (
	"context"
	"time"

	"github.com/codeverse-academy/academy-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type UserFilters struct {
	Role      *models.UserRole `json:"role"`
	Query     *string          `json:"query"` // matches name or username
	Limit     int              `json:"limit"`
	Offset    int              `json:"offset"`
	SortBy    string           `json:"sort_by"`    // "name", "username", "created_at"
	SortOrder string           `json:"sort_order"` // "asc", "desc"
}

type EnrollmentFilters struct {
	Type     *models.EnrollmentType `json:"type"`
	GroupID  *string                `json:"group_id"`
	DateFrom *time.Time             `json:"date_from"`
	DateTo   *time.Time             `json:"date_to"`
	Limit    int                    `json:"limit"`
	Offset   int                    `json:"offset"`
}

type TimeLogFilters struct {
	UserID   *string    `json:"user_id"`
	UserName *string    `json:"user_name"` // substring match on the worker's name
	Day      *time.Time `json:"day"`       // all punches within that calendar day
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
}

type AbsenceFilters struct {
	TeacherID *string               `json:"teacher_id"`
	Status    *models.AbsenceStatus `json:"status"`
	Limit     int                   `json:"limit"`
	Offset    int                   `json:"offset"`
}

// ===== ENTITY REPOSITORIES =====

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error

	// CountActiveStudents counts students currently linked to at least one
	// group. Deliberately independent of the enrollment log.
	CountActiveStudents(ctx context.Context) (int64, error)
}

type SchoolRepository interface {
	Create(ctx context.Context, school *models.School) error
	GetByID(ctx context.Context, id string) (*models.School, error)
	List(ctx context.Context) ([]*models.School, error)
	Update(ctx context.Context, school *models.School) error
	Delete(ctx context.Context, id string) error
}

type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id string) (*models.Group, error)
	// GetByIDWithDetails preloads school, teachers, students and group
	// tracks (tracks with sessions ordered by order index, group tracks by
	// start date ascending).
	GetByIDWithDetails(ctx context.Context, id string) (*models.Group, error)
	List(ctx context.Context) ([]*models.Group, error)
	Update(ctx context.Context, group *models.Group) error
	Delete(ctx context.Context, id string) error

	GetBySchool(ctx context.Context, schoolID string) ([]*models.Group, error)
	GetByTeacher(ctx context.Context, teacherID string) ([]*models.Group, error)
	GetByStudent(ctx context.Context, studentID string) ([]*models.Group, error)

	AddTeacher(ctx context.Context, groupID, teacherID string) error
	RemoveTeacher(ctx context.Context, groupID, teacherID string) error
	AddStudent(ctx context.Context, groupID, studentID string) error
	RemoveStudent(ctx context.Context, groupID, studentID string) error
	CountStudents(ctx context.Context, groupID string) (int64, error)

	AddTrack(ctx context.Context, gt *models.GroupTrack) error
	RemoveTrack(ctx context.Context, groupTrackID string) error
	GetTracks(ctx context.Context, groupID string) ([]*models.GroupTrack, error)
}

type TrackRepository interface {
	Create(ctx context.Context, track *models.Track) error
	GetByID(ctx context.Context, id string) (*models.Track, error)
	GetByIDWithSessions(ctx context.Context, id string) (*models.Track, error)
	List(ctx context.Context) ([]*models.Track, error)
	Update(ctx context.Context, track *models.Track) error
	Delete(ctx context.Context, id string) error

	CreateSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	UpdateSession(ctx context.Context, session *models.Session) error
	DeleteSession(ctx context.Context, id string) error
	// NextOrderIndex returns max(order_index)+1 for the track, starting at 1.
	NextOrderIndex(ctx context.Context, trackID string) (int, error)
}

type AttendanceRepository interface {
	// Upsert inserts or overwrites the single record for the (group,
	// student, session) cell atomically.
	Upsert(ctx context.Context, attendance *models.Attendance) error
	GetByGroup(ctx context.Context, groupID string) ([]*models.Attendance, error)
	GetPresentByStudent(ctx context.Context, groupID, studentID string) ([]*models.Attendance, error)
	// CountPresentInSessions counts present records for the student limited
	// to the given session set.
	CountPresentInSessions(ctx context.Context, groupID, studentID string, sessionIDs []string) (int64, error)
	// SessionsWithRecords returns the distinct session ids of the group
	// that have at least one attendance record.
	SessionsWithRecords(ctx context.Context, groupID string) ([]string, error)

	UpsertNote(ctx context.Context, note *models.SessionNote) error
	GetNotes(ctx context.Context, groupID string) ([]*models.SessionNote, error)
}

type EvaluationRepository interface {
	// Upsert overwrites the full snapshot keyed on (group, student).
	Upsert(ctx context.Context, evaluation *models.Evaluation) error
	// EnsureExists creates the zero-valued row for a fresh enrollment and
	// leaves an existing row untouched.
	EnsureExists(ctx context.Context, groupID, studentID string) error
	Get(ctx context.Context, groupID, studentID string) (*models.Evaluation, error)
	GetByGroup(ctx context.Context, groupID string) ([]*models.Evaluation, error)
}

type EnrollmentRepository interface {
	// Append writes one immutable audit row.
	Append(ctx context.Context, log *models.EnrollmentLog) error
	List(ctx context.Context, filters EnrollmentFilters) ([]*models.EnrollmentLog, error)
}

type AbsenceRepository interface {
	CreateReason(ctx context.Context, reason *models.AbsenceReason) error
	ListReasons(ctx context.Context) ([]*models.AbsenceReason, error)
	DeleteReason(ctx context.Context, id string) error
	CountRequestsByReason(ctx context.Context, reasonID string) (int64, error)

	CreateRequest(ctx context.Context, request *models.AbsenceRequest) error
	GetRequest(ctx context.Context, id string) (*models.AbsenceRequest, error)
	ListRequests(ctx context.Context, filters AbsenceFilters) ([]*models.AbsenceRequest, error)
	UpdateRequest(ctx context.Context, request *models.AbsenceRequest) error
}

type TimeLogRepository interface {
	Append(ctx context.Context, log *models.TimeLog) error
	// Latest returns the most recent punch for a user, or
	// gorm.ErrRecordNotFound when the user never clocked in.
	Latest(ctx context.Context, userID string) (*models.TimeLog, error)
	ListByUser(ctx context.Context, userID string) ([]*models.TimeLog, error)
	List(ctx context.Context, filters TimeLogFilters) ([]*models.TimeLog, error)
}
