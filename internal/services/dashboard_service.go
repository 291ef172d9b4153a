package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"gorm.io/gorm"

	"github.com/codeverse-academy/academy-service/internal/cache"
	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/repositories"
)

type dashboardService struct {
	repo        repositories.Repository
	logger      *slog.Logger
	cache       *cache.CacheManager
	groups      GroupService
	evaluations EvaluationService
}

func NewDashboardService(repo repositories.Repository, logger *slog.Logger, cacheManager *cache.CacheManager, groups GroupService, evaluations EvaluationService) DashboardService {
	return &dashboardService{
		repo:        repo,
		logger:      logger,
		cache:       cacheManager,
		groups:      groups,
		evaluations: evaluations,
	}
}

// StudentDashboard assembles the gamified home view: XP, level, the active
// mission, the skill radar and the group leaderboard. A student without a
// group or evaluation gets the zero-valued defaults, never an error.
func (s *dashboardService) StudentDashboard(ctx context.Context, studentID string) (*StudentDashboardResponse, error) {
	student, err := s.repo.User().GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	response := &StudentDashboardResponse{
		Level:         models.Level(0),
		LevelProgress: models.LevelProgress(0),
		Skills:        skillRadar(nil),
		Leaderboard:   []LeaderboardEntry{},
	}
	response.User.Name = student.Name
	response.User.Username = student.Username
	response.User.Initials = student.Initials()

	groups, err := s.repo.Group().GetByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load student groups: %w", err)
	}
	if len(groups) == 0 {
		return response, nil
	}
	group := groups[0]
	response.Group = &GroupRef{ID: group.ID, Name: group.Name}

	evaluation, err := s.repo.Evaluation().Get(ctx, group.ID, studentID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load evaluation: %w", err)
	}
	if evaluation != nil {
		response.XP = evaluation.XP
		response.Level = models.Level(evaluation.XP)
		response.LevelProgress = models.LevelProgress(evaluation.XP)
		response.Skills = skillRadar(evaluation)
	}

	mission, err := s.missionProgress(ctx, group.ID, studentID)
	if err != nil {
		return nil, err
	}
	response.Mission = mission

	leaderboard, err := s.evaluations.Leaderboard(ctx, group.ID, studentID)
	if err != nil {
		return nil, err
	}
	response.Leaderboard = leaderboard

	return response, nil
}

// missionProgress reports completion of the group's latest-started track,
// the active mission: sessions the student attended over the track's total,
// as a clamped percentage. Only attendance for that track's sessions counts.
func (s *dashboardService) missionProgress(ctx context.Context, groupID, studentID string) (*MissionProgress, error) {
	groupTracks, err := s.repo.Group().GetTracks(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group tracks: %w", err)
	}
	if len(groupTracks) == 0 {
		return nil, nil
	}

	// Tracks come back ordered by start date; the last one is current.
	gt := groupTracks[len(groupTracks)-1]
	if len(gt.Track.Sessions) == 0 {
		return &MissionProgress{TrackName: gt.Track.Title, Progress: 0}, nil
	}

	sessionIDs := make([]string, 0, len(gt.Track.Sessions))
	for _, session := range gt.Track.Sessions {
		sessionIDs = append(sessionIDs, session.ID)
	}

	attended, err := s.repo.Attendance().CountPresentInSessions(ctx, groupID, studentID, sessionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count attendance: %w", err)
	}

	progress := int(math.Round(float64(attended) / float64(len(sessionIDs)) * 100))
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	return &MissionProgress{TrackName: gt.Track.Title, Progress: progress}, nil
}

func (s *dashboardService) TeacherDashboard(ctx context.Context, teacherID string) (*TeacherDashboardResponse, error) {
	groups, err := s.groups.GroupsForTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	latest, err := s.repo.TimeLog().Latest(ctx, teacherID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load clock state: %w", err)
	}

	return &TeacherDashboardResponse{
		Groups:     groups,
		ClockState: models.ClockState(latest),
	}, nil
}

// EnrollmentDashboard aggregates the full alta/baja log by school, by
// teacher and by month, on top of the raw log and the live active-student
// count.
func (s *dashboardService) EnrollmentDashboard(ctx context.Context) (*EnrollmentDashboardResponse, error) {
	var response EnrollmentDashboardResponse

	err := s.cache.Dashboard.CacheOrExecute(ctx, "enrollments", &response, cache.DashboardCacheConfig.TTL, func() (interface{}, error) {
		logs, err := s.repo.Enrollment().List(ctx, repositories.EnrollmentFilters{})
		if err != nil {
			return nil, fmt.Errorf("failed to load enrollment log: %w", err)
		}

		active, err := s.repo.User().CountActiveStudents(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count active students: %w", err)
		}

		return aggregateEnrollments(logs, active), nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func aggregateEnrollments(logs []*models.EnrollmentLog, activeStudents int64) *EnrollmentDashboardResponse {
	response := &EnrollmentDashboardResponse{
		TotalActiveStudents: activeStudents,
		Logs:                logs,
		BySchool:            []EnrollmentBucket{},
		ByTeacher:           []EnrollmentBucket{},
		ByMonth:             []EnrollmentBucket{},
	}

	bySchool := make(map[string]*EnrollmentBucket)
	byTeacher := make(map[string]*EnrollmentBucket)
	byMonth := make(map[string]*EnrollmentBucket)

	bump := func(m map[string]*EnrollmentBucket, name string, entryType models.EnrollmentType) {
		bucket, ok := m[name]
		if !ok {
			bucket = &EnrollmentBucket{Name: name}
			m[name] = bucket
		}
		if entryType == models.EnrollmentAlta {
			bucket.Altas++
		} else {
			bucket.Bajas++
		}
	}

	for _, log := range logs {
		if log.Type == models.EnrollmentAlta {
			response.TotalAltas++
		} else {
			response.TotalBajas++
		}

		bump(bySchool, log.SchoolName, log.Type)
		bump(byMonth, log.Date.Format("2006-01"), log.Type)

		// Every snapshotted teacher gets credited individually.
		for _, ref := range log.TeacherRefs() {
			bump(byTeacher, ref.Name, log.Type)
		}
	}

	response.BySchool = sortBuckets(bySchool, func(a, b EnrollmentBucket) bool { return a.Name < b.Name })
	response.ByTeacher = sortBuckets(byTeacher, func(a, b EnrollmentBucket) bool { return a.Name < b.Name })

	// Months read newest first; the dashboard chart shows the last five.
	response.ByMonth = sortBuckets(byMonth, func(a, b EnrollmentBucket) bool { return a.Name > b.Name })
	if len(response.ByMonth) > 5 {
		response.ByMonth = response.ByMonth[:5]
	}
	return response
}

func sortBuckets(m map[string]*EnrollmentBucket, less func(a, b EnrollmentBucket) bool) []EnrollmentBucket {
	buckets := make([]EnrollmentBucket, 0, len(m))
	for _, b := range m {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool { return less(buckets[i], buckets[j]) })
	return buckets
}

func skillRadar(evaluation *models.Evaluation) []SkillScore {
	scores := [6]int{}
	if evaluation != nil {
		scores = [6]int{
			evaluation.SkillLogic,
			evaluation.SkillCreativity,
			evaluation.SkillTeamwork,
			evaluation.SkillProblemSolving,
			evaluation.SkillAutonomy,
			evaluation.SkillCommunication,
		}
	}

	subjects := [6]string{"Logic", "Creativity", "Teamwork", "Problem Solving", "Autonomy", "Communication"}
	radar := make([]SkillScore, 0, len(subjects))
	for i, subject := range subjects {
		radar = append(radar, SkillScore{Subject: subject, Score: scores[i], FullMark: 10})
	}
	return radar
}
