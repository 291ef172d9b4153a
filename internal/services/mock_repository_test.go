package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/repositories"
)

var errNotFound = gorm.ErrRecordNotFound

// mockRepository is a hand-wired aggregate for tests; sub-repositories are
// filled in only where a test exercises them.
type mockRepository struct {
	user       repositories.UserRepository
	school     repositories.SchoolRepository
	group      repositories.GroupRepository
	track      repositories.TrackRepository
	attendance repositories.AttendanceRepository
	evaluation repositories.EvaluationRepository
	enrollment repositories.EnrollmentRepository
	absence    repositories.AbsenceRepository
	timeLog    repositories.TimeLogRepository
}

func (m *mockRepository) User() repositories.UserRepository             { return m.user }
func (m *mockRepository) School() repositories.SchoolRepository         { return m.school }
func (m *mockRepository) Group() repositories.GroupRepository           { return m.group }
func (m *mockRepository) Track() repositories.TrackRepository           { return m.track }
func (m *mockRepository) Attendance() repositories.AttendanceRepository { return m.attendance }
func (m *mockRepository) Evaluation() repositories.EvaluationRepository { return m.evaluation }
func (m *mockRepository) Enrollment() repositories.EnrollmentRepository { return m.enrollment }
func (m *mockRepository) Absence() repositories.AbsenceRepository       { return m.absence }
func (m *mockRepository) TimeLog() repositories.TimeLogRepository       { return m.timeLog }

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}
func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

// mockUserRepo overrides only the lookups a test needs; calling anything
// else panics loudly.
type mockUserRepo struct {
	repositories.UserRepository
	getByID       func(ctx context.Context, id string) (*models.User, error)
	getByUsername func(ctx context.Context, username string) (*models.User, error)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return m.getByID(ctx, id)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.getByUsername(ctx, username)
}

type mockGroupRepo struct {
	repositories.GroupRepository
	getByID            func(ctx context.Context, id string) (*models.Group, error)
	getByIDWithDetails func(ctx context.Context, id string) (*models.Group, error)
	getByStudent       func(ctx context.Context, studentID string) ([]*models.Group, error)
	getTracks          func(ctx context.Context, groupID string) ([]*models.GroupTrack, error)
	addStudent         func(ctx context.Context, groupID, studentID string) error
	removeStudent      func(ctx context.Context, groupID, studentID string) error
}

func (m *mockGroupRepo) GetByID(ctx context.Context, id string) (*models.Group, error) {
	return m.getByID(ctx, id)
}

func (m *mockGroupRepo) GetByIDWithDetails(ctx context.Context, id string) (*models.Group, error) {
	return m.getByIDWithDetails(ctx, id)
}

func (m *mockGroupRepo) GetByStudent(ctx context.Context, studentID string) ([]*models.Group, error) {
	return m.getByStudent(ctx, studentID)
}

func (m *mockGroupRepo) GetTracks(ctx context.Context, groupID string) ([]*models.GroupTrack, error) {
	return m.getTracks(ctx, groupID)
}

func (m *mockGroupRepo) AddStudent(ctx context.Context, groupID, studentID string) error {
	return m.addStudent(ctx, groupID, studentID)
}

func (m *mockGroupRepo) RemoveStudent(ctx context.Context, groupID, studentID string) error {
	return m.removeStudent(ctx, groupID, studentID)
}

type mockAttendanceRepo struct {
	repositories.AttendanceRepository
	upserted     []*models.Attendance
	countPresent func(ctx context.Context, groupID, studentID string, sessionIDs []string) (int64, error)
}

func (m *mockAttendanceRepo) CountPresentInSessions(ctx context.Context, groupID, studentID string, sessionIDs []string) (int64, error) {
	return m.countPresent(ctx, groupID, studentID, sessionIDs)
}

func (m *mockAttendanceRepo) Upsert(ctx context.Context, attendance *models.Attendance) error {
	for i, existing := range m.upserted {
		if existing.GroupID == attendance.GroupID &&
			existing.StudentID == attendance.StudentID &&
			existing.SessionID == attendance.SessionID {
			m.upserted[i] = attendance
			return nil
		}
	}
	m.upserted = append(m.upserted, attendance)
	return nil
}

type mockEvaluationRepo struct {
	repositories.EvaluationRepository
	ensureExists func(ctx context.Context, groupID, studentID string) error
	get          func(ctx context.Context, groupID, studentID string) (*models.Evaluation, error)
	getByGroup   func(ctx context.Context, groupID string) ([]*models.Evaluation, error)
}

func (m *mockEvaluationRepo) EnsureExists(ctx context.Context, groupID, studentID string) error {
	return m.ensureExists(ctx, groupID, studentID)
}

func (m *mockEvaluationRepo) Get(ctx context.Context, groupID, studentID string) (*models.Evaluation, error) {
	return m.get(ctx, groupID, studentID)
}

func (m *mockEvaluationRepo) GetByGroup(ctx context.Context, groupID string) ([]*models.Evaluation, error) {
	return m.getByGroup(ctx, groupID)
}

type mockEnrollmentRepo struct {
	repositories.EnrollmentRepository
	appended []*models.EnrollmentLog
}

func (m *mockEnrollmentRepo) Append(ctx context.Context, log *models.EnrollmentLog) error {
	m.appended = append(m.appended, log)
	return nil
}

type mockTimeLogRepo struct {
	repositories.TimeLogRepository
	logs []*models.TimeLog
}

func (m *mockTimeLogRepo) Latest(ctx context.Context, userID string) (*models.TimeLog, error) {
	for i := len(m.logs) - 1; i >= 0; i-- {
		if m.logs[i].UserID == userID {
			return m.logs[i], nil
		}
	}
	return nil, errNotFound
}

func (m *mockTimeLogRepo) Append(ctx context.Context, log *models.TimeLog) error {
	m.logs = append(m.logs, log)
	return nil
}

func (m *mockTimeLogRepo) ListByUser(ctx context.Context, userID string) ([]*models.TimeLog, error) {
	var out []*models.TimeLog
	for _, log := range m.logs {
		if log.UserID == userID {
			out = append(out, log)
		}
	}
	return out, nil
}
