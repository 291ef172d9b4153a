package services

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/codeverse-academy/academy-service/internal/cache"
	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/repositories"
	"github.com/codeverse-academy/academy-service/internal/validator"
)

func TestNewDashboardService(t *testing.T) {
	type args struct {
		repo        repositories.Repository
		logger      *slog.Logger
		cache       *cache.CacheManager
		groups      GroupService
		evaluations EvaluationService
	}
	tests := []struct {
		name string
		args args
		want DashboardService
	}{
		{name: "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			NewDashboardService(tt.args.repo, tt.args.logger, tt.args.cache, tt.args.groups, tt.args.evaluations)
		})
	}
}

func newTestDashboardService(repo *mockRepository) DashboardService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cacheManager := cache.NewCacheManager(nil)
	evaluations := NewEvaluationService(repo, logger, validator.New(), cacheManager)
	return NewDashboardService(repo, logger, cacheManager, nil, evaluations)
}

func TestStudentDashboardNoEvaluation(t *testing.T) {
	student := &models.User{ID: "s1", Username: "alice", Name: "Alice Student", Role: models.RoleStudent}
	group := &models.Group{
		ID:       "g1",
		Name:     "Python Group A",
		Students: []models.User{*student},
	}

	repo := &mockRepository{
		user: &mockUserRepo{
			getByID: func(ctx context.Context, id string) (*models.User, error) {
				return student, nil
			},
		},
		group: &mockGroupRepo{
			getByStudent: func(ctx context.Context, studentID string) ([]*models.Group, error) {
				return []*models.Group{group}, nil
			},
			getByIDWithDetails: func(ctx context.Context, id string) (*models.Group, error) {
				return group, nil
			},
			getTracks: func(ctx context.Context, groupID string) ([]*models.GroupTrack, error) {
				return nil, nil
			},
		},
		evaluation: &mockEvaluationRepo{
			get: func(ctx context.Context, groupID, studentID string) (*models.Evaluation, error) {
				return nil, errNotFound
			},
			getByGroup: func(ctx context.Context, groupID string) ([]*models.Evaluation, error) {
				return nil, nil
			},
		},
	}

	response, err := newTestDashboardService(repo).StudentDashboard(context.Background(), "s1")
	if err != nil {
		t.Fatalf("StudentDashboard() error = %v", err)
	}

	// No evaluation row means the zero-valued defaults, never an error.
	if response.XP != 0 || response.Level != 1 || response.LevelProgress != 0 {
		t.Errorf("xp/level/progress = %d/%d/%.1f, want 0/1/0", response.XP, response.Level, response.LevelProgress)
	}
	for _, skill := range response.Skills {
		if skill.Score != 0 {
			t.Errorf("%s score = %d, want 0", skill.Subject, skill.Score)
		}
	}
	if response.Group == nil || response.Group.ID != "g1" {
		t.Errorf("response.Group = %+v", response.Group)
	}
	if response.Mission != nil {
		t.Errorf("Mission = %+v, want nil without tracks", response.Mission)
	}

	// The student still shows up on their own leaderboard at zero XP.
	if len(response.Leaderboard) != 1 {
		t.Fatalf("Leaderboard has %d entries, want 1", len(response.Leaderboard))
	}
	entry := response.Leaderboard[0]
	if entry.StudentID != "s1" || entry.XP != 0 || entry.Rank != 1 || !entry.IsCurrentUser {
		t.Errorf("leaderboard entry = %+v", entry)
	}
}

func TestStudentDashboardNoGroup(t *testing.T) {
	student := &models.User{ID: "s1", Username: "alice", Name: "Alice Student", Role: models.RoleStudent}

	repo := &mockRepository{
		user: &mockUserRepo{
			getByID: func(ctx context.Context, id string) (*models.User, error) {
				return student, nil
			},
		},
		group: &mockGroupRepo{
			getByStudent: func(ctx context.Context, studentID string) ([]*models.Group, error) {
				return nil, nil
			},
		},
	}

	response, err := newTestDashboardService(repo).StudentDashboard(context.Background(), "s1")
	if err != nil {
		t.Fatalf("StudentDashboard() error = %v", err)
	}
	if response.Group != nil {
		t.Errorf("response.Group = %+v, want nil", response.Group)
	}
	if response.Level != 1 || response.LevelProgress != 0 {
		t.Errorf("level/progress = %d/%.1f, want 1/0", response.Level, response.LevelProgress)
	}
	if len(response.Leaderboard) != 0 {
		t.Errorf("Leaderboard = %+v, want empty", response.Leaderboard)
	}
	if response.User.Name != "Alice Student" || response.User.Username != "alice" {
		t.Errorf("response.User = %+v", response.User)
	}
}

func TestMissionProgress(t *testing.T) {
	// Two tracks; the later-started one is the active mission and only its
	// sessions count toward the percentage.
	groupTracks := []*models.GroupTrack{
		{
			TrackID:   "track-old",
			StartDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			Track: models.Track{
				ID:    "track-old",
				Title: "Scratch",
				Sessions: []models.Session{
					{ID: "old1", OrderIndex: 1},
				},
			},
		},
		{
			TrackID:   "track-new",
			StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			Track: models.Track{
				ID:    "track-new",
				Title: "Python",
				Sessions: []models.Session{
					{ID: "n1", OrderIndex: 1},
					{ID: "n2", OrderIndex: 2},
					{ID: "n3", OrderIndex: 3},
				},
			},
		},
	}

	tests := []struct {
		name         string
		attended     int64
		wantProgress int
	}{
		{name: "two of three attended", attended: 2, wantProgress: 67},
		{name: "none attended", attended: 0, wantProgress: 0},
		{name: "all attended", attended: 3, wantProgress: 100},
		{name: "overcounted attendance clamps", attended: 5, wantProgress: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var countedSessions []string
			repo := &mockRepository{
				group: &mockGroupRepo{
					getTracks: func(ctx context.Context, groupID string) ([]*models.GroupTrack, error) {
						return groupTracks, nil
					},
				},
				attendance: &mockAttendanceRepo{
					countPresent: func(ctx context.Context, groupID, studentID string, sessionIDs []string) (int64, error) {
						countedSessions = sessionIDs
						return tt.attended, nil
					},
				},
			}

			service := newTestDashboardService(repo).(*dashboardService)
			mission, err := service.missionProgress(context.Background(), "g1", "s1")
			if err != nil {
				t.Fatalf("missionProgress() error = %v", err)
			}

			if mission.TrackName != "Python" {
				t.Errorf("TrackName = %s, want the latest-started track", mission.TrackName)
			}
			if mission.Progress != tt.wantProgress {
				t.Errorf("Progress = %d, want %d", mission.Progress, tt.wantProgress)
			}

			want := []string{"n1", "n2", "n3"}
			if len(countedSessions) != len(want) {
				t.Fatalf("counted sessions = %v, want %v", countedSessions, want)
			}
			for i, id := range want {
				if countedSessions[i] != id {
					t.Errorf("counted sessions = %v, want %v", countedSessions, want)
					break
				}
			}
		})
	}
}

func enrollmentLog(t *testing.T, entryType models.EnrollmentType, school, month string, teachers ...string) *models.EnrollmentLog {
	t.Helper()

	refs := make([]models.TeacherRef, 0, len(teachers))
	for _, name := range teachers {
		refs = append(refs, models.TeacherRef{ID: name, Name: name})
	}
	encoded, err := models.MarshalTeacherRefs(refs)
	if err != nil {
		t.Fatalf("MarshalTeacherRefs() error = %v", err)
	}

	date, err := time.Parse("2006-01", month)
	if err != nil {
		t.Fatalf("bad month %q: %v", month, err)
	}

	return &models.EnrollmentLog{
		Type:       entryType,
		SchoolName: school,
		Teachers:   encoded,
		Date:       date,
	}
}

func TestAggregateEnrollments(t *testing.T) {
	logs := []*models.EnrollmentLog{
		enrollmentLog(t, models.EnrollmentAlta, "North Campus", "2025-09", "John Teacher"),
		enrollmentLog(t, models.EnrollmentAlta, "North Campus", "2025-10", "John Teacher"),
		enrollmentLog(t, models.EnrollmentAlta, "South Campus", "2025-10", "Jane Teacher"),
		enrollmentLog(t, models.EnrollmentBaja, "North Campus", "2025-10", "John Teacher"),
	}

	response := aggregateEnrollments(logs, 7)

	if response.TotalActiveStudents != 7 {
		t.Errorf("TotalActiveStudents = %d, want 7", response.TotalActiveStudents)
	}
	if response.TotalAltas != 3 || response.TotalBajas != 1 {
		t.Errorf("totals = %d altas / %d bajas, want 3/1", response.TotalAltas, response.TotalBajas)
	}

	if len(response.BySchool) != 2 {
		t.Fatalf("BySchool has %d buckets, want 2", len(response.BySchool))
	}
	north := response.BySchool[0]
	if north.Name != "North Campus" || north.Altas != 2 || north.Bajas != 1 {
		t.Errorf("BySchool[0] = %+v", north)
	}

	if len(response.ByTeacher) != 2 {
		t.Fatalf("ByTeacher has %d buckets, want 2", len(response.ByTeacher))
	}
	jane := response.ByTeacher[0]
	if jane.Name != "Jane Teacher" || jane.Altas != 1 || jane.Bajas != 0 {
		t.Errorf("ByTeacher[0] = %+v", jane)
	}

	// Months are reported newest first.
	if len(response.ByMonth) != 2 {
		t.Fatalf("ByMonth has %d buckets, want 2", len(response.ByMonth))
	}
	if response.ByMonth[0].Name != "2025-10" || response.ByMonth[1].Name != "2025-09" {
		t.Errorf("ByMonth order = [%s, %s], want newest first", response.ByMonth[0].Name, response.ByMonth[1].Name)
	}
	if response.ByMonth[0].Altas != 2 || response.ByMonth[0].Bajas != 1 {
		t.Errorf("ByMonth[0] = %+v", response.ByMonth[0])
	}
}

func TestAggregateEnrollmentsEmpty(t *testing.T) {
	response := aggregateEnrollments(nil, 0)
	if response.TotalAltas != 0 || response.TotalBajas != 0 {
		t.Errorf("totals = %d/%d, want 0/0", response.TotalAltas, response.TotalBajas)
	}
	if len(response.BySchool) != 0 || len(response.ByTeacher) != 0 || len(response.ByMonth) != 0 {
		t.Errorf("expected empty buckets, got %+v", response)
	}
}

func TestSkillRadarDefaults(t *testing.T) {
	radar := skillRadar(nil)
	if len(radar) != 6 {
		t.Fatalf("skillRadar(nil) has %d entries, want 6", len(radar))
	}
	for _, entry := range radar {
		if entry.Score != 0 {
			t.Errorf("%s score = %d, want 0", entry.Subject, entry.Score)
		}
		if entry.FullMark != 10 {
			t.Errorf("%s full mark = %d, want 10", entry.Subject, entry.FullMark)
		}
	}
}

func TestSkillRadarFromEvaluation(t *testing.T) {
	evaluation := &models.Evaluation{
		SkillLogic:          8,
		SkillCreativity:     5,
		SkillTeamwork:       7,
		SkillProblemSolving: 6,
		SkillAutonomy:       4,
		SkillCommunication:  9,
	}

	radar := skillRadar(evaluation)
	want := map[string]int{
		"Logic":           8,
		"Creativity":      5,
		"Teamwork":        7,
		"Problem Solving": 6,
		"Autonomy":        4,
		"Communication":   9,
	}
	for _, entry := range radar {
		if want[entry.Subject] != entry.Score {
			t.Errorf("%s score = %d, want %d", entry.Subject, entry.Score, want[entry.Subject])
		}
	}
}
