package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/codeverse-academy/academy-service/internal/cache"
	"github.com/codeverse-academy/academy-service/internal/events"
	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/repositories"
	"github.com/codeverse-academy/academy-service/internal/validator"
)

type rosterService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	cache     *cache.CacheManager
	publisher events.EventPublisher
}

func NewRosterService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, cacheManager *cache.CacheManager, publisher events.EventPublisher) RosterService {
	return &rosterService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		cache:     cacheManager,
		publisher: publisher,
	}
}

func (s *rosterService) CreateTeacher(ctx context.Context, req *CreateTeacherRequest) (*models.User, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}
	return s.createUser(ctx, req.Username, req.Password, req.Name, models.RoleTeacher)
}

// CreateStudent creates the account and, when a group id is supplied,
// enrolls the student in the same call.
func (s *rosterService) CreateStudent(ctx context.Context, req *CreateStudentRequest) (*models.User, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	user, err := s.createUser(ctx, req.Username, req.Password, req.Name, models.RoleStudent)
	if err != nil {
		return nil, err
	}

	if req.GroupID != "" {
		if err := s.EnrollStudent(ctx, req.GroupID, user.ID); err != nil {
			return nil, err
		}
	}
	return user, nil
}

func (s *rosterService) createUser(ctx context.Context, username, password, name string, role models.UserRole) (*models.User, error) {
	if _, err := s.repo.User().GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
	}
	if err := s.repo.User().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User created", "user_id", user.ID, "role", role)
	return user, nil
}

func (s *rosterService) ListUsers(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	users, total, err := s.repo.User().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// EnrollStudent links the student to the group, seeds the zero-valued
// evaluation row and appends the ALTA audit entry in one transaction. The
// audit row snapshots names so it survives later renames and deletions.
func (s *rosterService) EnrollStudent(ctx context.Context, groupID, studentID string) error {
	group, student, err := s.loadEnrollmentPair(ctx, groupID, studentID)
	if err != nil {
		return err
	}

	logEntry, err := buildEnrollmentLog(models.EnrollmentAlta, group, student)
	if err != nil {
		return err
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Group().AddStudent(ctx, groupID, studentID); err != nil {
			return fmt.Errorf("failed to add student to group: %w", err)
		}
		if err := tx.Evaluation().EnsureExists(ctx, groupID, studentID); err != nil {
			return fmt.Errorf("failed to seed evaluation: %w", err)
		}
		return tx.Enrollment().Append(ctx, logEntry)
	})
	if err != nil {
		return err
	}

	s.afterEnrollmentChange(ctx, events.EventEnrollmentAlta, logEntry)
	s.logger.Info("Student enrolled", "group_id", groupID, "student_id", studentID)
	return nil
}

// UnenrollStudent removes the link and appends the BAJA audit entry. The
// evaluation row is kept so a returning student resumes their XP.
func (s *rosterService) UnenrollStudent(ctx context.Context, groupID, studentID string) error {
	group, student, err := s.loadEnrollmentPair(ctx, groupID, studentID)
	if err != nil {
		return err
	}

	enrolled, err := s.isEnrolled(ctx, groupID, studentID)
	if err != nil {
		return err
	}
	if !enrolled {
		return ErrNotEnrolled
	}

	logEntry, err := buildEnrollmentLog(models.EnrollmentBaja, group, student)
	if err != nil {
		return err
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Group().RemoveStudent(ctx, groupID, studentID); err != nil {
			return fmt.Errorf("failed to remove student from group: %w", err)
		}
		return tx.Enrollment().Append(ctx, logEntry)
	})
	if err != nil {
		return err
	}

	s.afterEnrollmentChange(ctx, events.EventEnrollmentBaja, logEntry)
	s.logger.Info("Student unenrolled", "group_id", groupID, "student_id", studentID)
	return nil
}

// StudentEnrollments is the admin roster view: every (student, group) link
// with the school, the teacher names and the evaluation state.
func (s *rosterService) StudentEnrollments(ctx context.Context, query string) ([]StudentEnrollmentRow, error) {
	role := models.RoleStudent
	filters := repositories.UserFilters{Role: &role}
	if query != "" {
		filters.Query = &query
	}

	students, _, err := s.repo.User().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	rows := make([]StudentEnrollmentRow, 0)
	for _, student := range students {
		groups, err := s.repo.Group().GetByStudent(ctx, student.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load groups for student: %w", err)
		}
		for _, group := range groups {
			teachers := make([]string, 0, len(group.Teachers))
			for _, t := range group.Teachers {
				teachers = append(teachers, t.Name)
			}

			evaluation, err := s.repo.Evaluation().Get(ctx, group.ID, student.ID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to load evaluation: %w", err)
			}

			rows = append(rows, StudentEnrollmentRow{
				UserID:     student.ID,
				GroupID:    group.ID,
				Name:       student.Name,
				Username:   student.Username,
				GroupName:  group.Name,
				SchoolName: group.School.Name,
				Teachers:   teachers,
				Evaluation: evaluation,
			})
		}
	}
	return rows, nil
}

func (s *rosterService) loadEnrollmentPair(ctx context.Context, groupID, studentID string) (*models.Group, *models.User, error) {
	group, err := s.repo.Group().GetByIDWithDetails(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrGroupNotFound
		}
		return nil, nil, fmt.Errorf("failed to get group: %w", err)
	}

	student, err := s.repo.User().GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("failed to get student: %w", err)
	}
	if student.Role != models.RoleStudent {
		return nil, nil, fmt.Errorf("user %s is not a student", studentID)
	}
	return group, student, nil
}

func (s *rosterService) isEnrolled(ctx context.Context, groupID, studentID string) (bool, error) {
	groups, err := s.repo.Group().GetByStudent(ctx, studentID)
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}
	for _, g := range groups {
		if g.ID == groupID {
			return true, nil
		}
	}
	return false, nil
}

// afterEnrollmentChange drops the dashboard caches and emits the audit
// event. Event publish failures are logged, never surfaced; the database
// row is the source of truth.
func (s *rosterService) afterEnrollmentChange(ctx context.Context, eventType string, logEntry *models.EnrollmentLog) {
	cache.InvalidateGroupCache(ctx, s.cache, logEntry.GroupID)
	cache.InvalidateEnrollmentCache(ctx, s.cache)

	event := events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now(),
		Data: events.EnrollmentEvent{
			StudentID:   logEntry.StudentID,
			StudentName: logEntry.StudentName,
			GroupID:     logEntry.GroupID,
			GroupName:   logEntry.GroupName,
			SchoolName:  logEntry.SchoolName,
		},
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish enrollment event", "error", err, "type", eventType)
	}
}

// buildEnrollmentLog snapshots the names involved at the moment of the
// event.
func buildEnrollmentLog(eventType models.EnrollmentType, group *models.Group, student *models.User) (*models.EnrollmentLog, error) {
	refs := make([]models.TeacherRef, 0, len(group.Teachers))
	for _, t := range group.Teachers {
		refs = append(refs, models.TeacherRef{ID: t.ID, Name: t.Name})
	}
	teachers, err := models.MarshalTeacherRefs(refs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode teacher snapshot: %w", err)
	}

	return &models.EnrollmentLog{
		Type:        eventType,
		StudentID:   student.ID,
		StudentName: student.Name,
		GroupID:     group.ID,
		GroupName:   group.Name,
		SchoolName:  group.School.Name,
		Teachers:    teachers,
		Date:        time.Now(),
	}, nil
}
