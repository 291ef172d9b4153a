package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/codeverse-academy/academy-service/internal/cache"
	"github.com/codeverse-academy/academy-service/internal/events"
	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/validator"
)

func newRosterFixture() (*models.Group, *models.User) {
	group := &models.Group{
		ID:   "g1",
		Name: "Python Group A",
		School: models.School{
			ID:   "sch1",
			Name: "Tech Academy Main",
		},
		Teachers: []models.User{
			{ID: "t1", Name: "John Teacher", Role: models.RoleTeacher},
		},
	}
	student := &models.User{
		ID:   "s1",
		Name: "Alice Student",
		Role: models.RoleStudent,
	}
	return group, student
}

func TestEnrollStudent(t *testing.T) {
	group, student := newRosterFixture()

	var addedGroup, addedStudent string
	var evaluationSeeded bool
	enrollments := &mockEnrollmentRepo{}

	repo := &mockRepository{
		group: &mockGroupRepo{
			getByIDWithDetails: func(ctx context.Context, id string) (*models.Group, error) {
				if id != group.ID {
					return nil, errNotFound
				}
				return group, nil
			},
			addStudent: func(ctx context.Context, groupID, studentID string) error {
				addedGroup, addedStudent = groupID, studentID
				return nil
			},
		},
		user: &mockUserRepo{
			getByID: func(ctx context.Context, id string) (*models.User, error) {
				if id != student.ID {
					return nil, errNotFound
				}
				return student, nil
			},
		},
		evaluation: &mockEvaluationRepo{
			ensureExists: func(ctx context.Context, groupID, studentID string) error {
				evaluationSeeded = true
				return nil
			},
		},
		enrollment: enrollments,
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	publisher := events.NewMockEventPublisher(logger)
	service := NewRosterService(repo, logger, validator.New(), cache.NewCacheManager(nil), publisher)

	if err := service.EnrollStudent(context.Background(), "g1", "s1"); err != nil {
		t.Fatalf("EnrollStudent() error = %v", err)
	}

	if addedGroup != "g1" || addedStudent != "s1" {
		t.Errorf("AddStudent called with (%s, %s)", addedGroup, addedStudent)
	}
	if !evaluationSeeded {
		t.Error("expected the evaluation row to be seeded")
	}

	if len(enrollments.appended) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(enrollments.appended))
	}
	entry := enrollments.appended[0]
	if entry.Type != models.EnrollmentAlta {
		t.Errorf("entry.Type = %v, want ALTA", entry.Type)
	}
	if entry.StudentName != "Alice Student" || entry.GroupName != "Python Group A" || entry.SchoolName != "Tech Academy Main" {
		t.Errorf("snapshot = %+v", entry)
	}
	refs := entry.TeacherRefs()
	if len(refs) != 1 || refs[0].Name != "John Teacher" {
		t.Errorf("teacher snapshot = %+v", refs)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventEnrollmentAlta {
		t.Errorf("published events = %+v, want one enrollment.alta", published)
	}
}

func TestEnrollStudentGroupNotFound(t *testing.T) {
	_, student := newRosterFixture()

	repo := &mockRepository{
		group: &mockGroupRepo{
			getByIDWithDetails: func(ctx context.Context, id string) (*models.Group, error) {
				return nil, errNotFound
			},
		},
		user: &mockUserRepo{
			getByID: func(ctx context.Context, id string) (*models.User, error) {
				return student, nil
			},
		},
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	service := NewRosterService(repo, logger, validator.New(), cache.NewCacheManager(nil), events.NewMockEventPublisher(logger))

	if err := service.EnrollStudent(context.Background(), "missing", "s1"); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("EnrollStudent() error = %v, want ErrGroupNotFound", err)
	}
}

func TestEnrollStudentRejectsNonStudent(t *testing.T) {
	group, _ := newRosterFixture()
	teacher := &models.User{ID: "t1", Name: "John Teacher", Role: models.RoleTeacher}

	repo := &mockRepository{
		group: &mockGroupRepo{
			getByIDWithDetails: func(ctx context.Context, id string) (*models.Group, error) {
				return group, nil
			},
		},
		user: &mockUserRepo{
			getByID: func(ctx context.Context, id string) (*models.User, error) {
				return teacher, nil
			},
		},
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	service := NewRosterService(repo, logger, validator.New(), cache.NewCacheManager(nil), events.NewMockEventPublisher(logger))

	if err := service.EnrollStudent(context.Background(), "g1", "t1"); err == nil {
		t.Error("EnrollStudent() accepted a teacher as the student")
	}
}

func TestUnenrollStudent(t *testing.T) {
	group, student := newRosterFixture()
	enrollments := &mockEnrollmentRepo{}
	var removed bool

	repo := &mockRepository{
		group: &mockGroupRepo{
			getByIDWithDetails: func(ctx context.Context, id string) (*models.Group, error) {
				return group, nil
			},
			getByStudent: func(ctx context.Context, studentID string) ([]*models.Group, error) {
				return []*models.Group{group}, nil
			},
			removeStudent: func(ctx context.Context, groupID, studentID string) error {
				removed = true
				return nil
			},
		},
		user: &mockUserRepo{
			getByID: func(ctx context.Context, id string) (*models.User, error) {
				return student, nil
			},
		},
		enrollment: enrollments,
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	publisher := events.NewMockEventPublisher(logger)
	service := NewRosterService(repo, logger, validator.New(), cache.NewCacheManager(nil), publisher)

	if err := service.UnenrollStudent(context.Background(), "g1", "s1"); err != nil {
		t.Fatalf("UnenrollStudent() error = %v", err)
	}
	if !removed {
		t.Error("expected RemoveStudent to be called")
	}
	if len(enrollments.appended) != 1 || enrollments.appended[0].Type != models.EnrollmentBaja {
		t.Errorf("audit entries = %+v, want one BAJA", enrollments.appended)
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventEnrollmentBaja {
		t.Errorf("published events = %+v, want one enrollment.baja", published)
	}
}

func TestUnenrollStudentNotEnrolled(t *testing.T) {
	group, student := newRosterFixture()

	repo := &mockRepository{
		group: &mockGroupRepo{
			getByIDWithDetails: func(ctx context.Context, id string) (*models.Group, error) {
				return group, nil
			},
			getByStudent: func(ctx context.Context, studentID string) ([]*models.Group, error) {
				return nil, nil
			},
		},
		user: &mockUserRepo{
			getByID: func(ctx context.Context, id string) (*models.User, error) {
				return student, nil
			},
		},
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	service := NewRosterService(repo, logger, validator.New(), cache.NewCacheManager(nil), events.NewMockEventPublisher(logger))

	if err := service.UnenrollStudent(context.Background(), "g1", "s1"); !errors.Is(err, ErrNotEnrolled) {
		t.Errorf("UnenrollStudent() error = %v, want ErrNotEnrolled", err)
	}
}
