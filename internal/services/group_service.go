package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/codeverse-academy/academy-service/internal/cache"
	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/repositories"
	"github.com/codeverse-academy/academy-service/internal/validator"
)

type groupService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	cache     *cache.CacheManager
}

func NewGroupService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, cacheManager *cache.CacheManager) GroupService {
	return &groupService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		cache:     cacheManager,
	}
}

func (s *groupService) Create(ctx context.Context, req *CreateGroupRequest) (*models.Group, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if _, err := s.repo.School().GetByID(ctx, req.SchoolID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchoolNotFound
		}
		return nil, fmt.Errorf("failed to check school: %w", err)
	}

	group := &models.Group{
		Name:      req.Name,
		DayOfWeek: req.DayOfWeek,
		TimeSlot:  req.TimeSlot,
		Subject:   req.Subject,
		AgeRange:  req.AgeRange,
		SchoolID:  req.SchoolID,
	}
	if err := s.repo.Group().Create(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	s.logger.Info("Group created", "group_id", group.ID, "school_id", group.SchoolID)
	return group, nil
}

func (s *groupService) Get(ctx context.Context, id string) (*GroupDetailResponse, error) {
	var response GroupDetailResponse

	key := fmt.Sprintf("id:%s", id)
	err := s.cache.Group.CacheOrExecute(ctx, key, &response, cache.GroupCacheConfig.TTL, func() (interface{}, error) {
		group, err := s.repo.Group().GetByIDWithDetails(ctx, id)
		if err != nil {
			return nil, err
		}

		count, err := s.repo.Group().CountStudents(ctx, id)
		if err != nil {
			return nil, err
		}
		group.StudentCount = int(count)

		return &GroupDetailResponse{
			Group:    group,
			Schedule: scheduleFromGroup(group),
		}, nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return &response, nil
}

func (s *groupService) List(ctx context.Context) ([]*models.Group, error) {
	groups, err := s.repo.Group().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	for _, group := range groups {
		count, err := s.repo.Group().CountStudents(ctx, group.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count students: %w", err)
		}
		group.StudentCount = int(count)
	}
	return groups, nil
}

func (s *groupService) Update(ctx context.Context, id string, req *UpdateGroupRequest) (*models.Group, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	group, err := s.repo.Group().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.DayOfWeek != nil {
		group.DayOfWeek = *req.DayOfWeek
	}
	if req.TimeSlot != nil {
		group.TimeSlot = *req.TimeSlot
	}
	if req.Subject != nil {
		group.Subject = *req.Subject
	}
	if req.AgeRange != nil {
		group.AgeRange = *req.AgeRange
	}

	if err := s.repo.Group().Update(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to update group: %w", err)
	}

	cache.InvalidateGroupCache(ctx, s.cache, id)
	s.logger.Info("Group updated", "group_id", id)
	return group, nil
}

func (s *groupService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Group().GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return fmt.Errorf("failed to get group: %w", err)
	}

	if err := s.repo.Group().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	cache.InvalidateGroupCache(ctx, s.cache, id)
	s.logger.Info("Group deleted", "group_id", id)
	return nil
}

// ===== TEACHER ASSIGNMENT =====

func (s *groupService) AssignTeacher(ctx context.Context, groupID, teacherID string) error {
	if err := s.checkGroupAndUser(ctx, groupID, teacherID, models.RoleTeacher); err != nil {
		return err
	}

	if err := s.repo.Group().AddTeacher(ctx, groupID, teacherID); err != nil {
		return fmt.Errorf("failed to assign teacher: %w", err)
	}

	cache.InvalidateGroupCache(ctx, s.cache, groupID)
	s.logger.Info("Teacher assigned to group", "group_id", groupID, "teacher_id", teacherID)
	return nil
}

func (s *groupService) RemoveTeacher(ctx context.Context, groupID, teacherID string) error {
	if err := s.repo.Group().RemoveTeacher(ctx, groupID, teacherID); err != nil {
		return fmt.Errorf("failed to remove teacher: %w", err)
	}

	cache.InvalidateGroupCache(ctx, s.cache, groupID)
	s.logger.Info("Teacher removed from group", "group_id", groupID, "teacher_id", teacherID)
	return nil
}

// ===== TRACK ASSIGNMENT =====

func (s *groupService) AddTrack(ctx context.Context, groupID string, req *AddGroupTrackRequest) error {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return errs
	}

	if _, err := s.repo.Group().GetByID(ctx, groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return fmt.Errorf("failed to get group: %w", err)
	}
	if _, err := s.repo.Track().GetByID(ctx, req.TrackID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTrackNotFound
		}
		return fmt.Errorf("failed to get track: %w", err)
	}

	gt := &models.GroupTrack{
		GroupID:   groupID,
		TrackID:   req.TrackID,
		StartDate: req.StartDate,
	}
	if err := s.repo.Group().AddTrack(ctx, gt); err != nil {
		return fmt.Errorf("failed to add track to group: %w", err)
	}

	cache.InvalidateGroupCache(ctx, s.cache, groupID)
	s.logger.Info("Track assigned to group", "group_id", groupID, "track_id", req.TrackID)
	return nil
}

func (s *groupService) RemoveTrack(ctx context.Context, groupID, groupTrackID string) error {
	if err := s.repo.Group().RemoveTrack(ctx, groupTrackID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupTrackNotFound
		}
		return fmt.Errorf("failed to remove track from group: %w", err)
	}

	cache.InvalidateGroupCache(ctx, s.cache, groupID)
	s.logger.Info("Track removed from group", "group_id", groupID, "group_track_id", groupTrackID)
	return nil
}

// ===== DERIVED VIEWS =====

func (s *groupService) Schedule(ctx context.Context, groupID string) ([]ScheduledSession, error) {
	var schedule []ScheduledSession

	key := fmt.Sprintf("schedule:%s", groupID)
	err := s.cache.Group.CacheOrExecute(ctx, key, &schedule, cache.GroupCacheConfig.TTL, func() (interface{}, error) {
		groupTracks, err := s.repo.Group().GetTracks(ctx, groupID)
		if err != nil {
			return nil, err
		}
		return buildSchedule(groupTracks), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build schedule: %w", err)
	}
	return schedule, nil
}

// Summary reports scheduled session totals against the sessions that
// already carry at least one attendance record.
func (s *groupService) Summary(ctx context.Context, groupID string) (*GroupSummaryResponse, error) {
	group, err := s.repo.Group().GetByIDWithDetails(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	schedule := scheduleFromGroup(group)
	recorded, err := s.repo.Attendance().SessionsWithRecords(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recorded sessions: %w", err)
	}

	recordedSet := make(map[string]struct{}, len(recorded))
	for _, id := range recorded {
		recordedSet[id] = struct{}{}
	}

	completed := 0
	for _, entry := range schedule {
		if _, ok := recordedSet[entry.SessionID]; ok {
			completed++
		}
	}

	return &GroupSummaryResponse{
		Group:             group,
		TotalSessions:     len(schedule),
		CompletedSessions: completed,
	}, nil
}

func (s *groupService) IsMember(ctx context.Context, groupID, studentID string) (bool, error) {
	groups, err := s.repo.Group().GetByStudent(ctx, studentID)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	for _, g := range groups {
		if g.ID == groupID {
			return true, nil
		}
	}
	return false, nil
}

func (s *groupService) GroupsForTeacher(ctx context.Context, teacherID string) ([]TeacherGroupResponse, error) {
	groups, err := s.repo.Group().GetByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teacher groups: %w", err)
	}

	responses := make([]TeacherGroupResponse, 0, len(groups))
	for _, group := range groups {
		count, err := s.repo.Group().CountStudents(ctx, group.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count students: %w", err)
		}
		responses = append(responses, TeacherGroupResponse{
			Group:        group,
			SchoolName:   group.School.Name,
			StudentCount: count,
		})
	}
	return responses, nil
}

func (s *groupService) checkGroupAndUser(ctx context.Context, groupID, userID string, role models.UserRole) error {
	if _, err := s.repo.Group().GetByID(ctx, groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return fmt.Errorf("failed to get group: %w", err)
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user.Role != role {
		return fmt.Errorf("user %s is not a %s", userID, role)
	}
	return nil
}
