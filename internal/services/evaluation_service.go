package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"gorm.io/gorm"

	"github.com/codeverse-academy/academy-service/internal/cache"
	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/repositories"
	"github.com/codeverse-academy/academy-service/internal/validator"
)

// leaderboardSize is how many students the podium view shows.
const leaderboardSize = 5

type evaluationService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	cache     *cache.CacheManager
}

func NewEvaluationService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, cacheManager *cache.CacheManager) EvaluationService {
	return &evaluationService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		cache:     cacheManager,
	}
}

// Update overwrites the full seven-field snapshot for the (group, student)
// cell. Partial updates are not supported; callers resend all values.
func (s *evaluationService) Update(ctx context.Context, groupID, studentID string, req *UpdateEvaluationRequest) (*models.Evaluation, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if _, err := s.repo.Group().GetByID(ctx, groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	evaluation := &models.Evaluation{
		GroupID:             groupID,
		StudentID:           studentID,
		XP:                  req.XP,
		SkillLogic:          req.SkillLogic,
		SkillCreativity:     req.SkillCreativity,
		SkillTeamwork:       req.SkillTeamwork,
		SkillProblemSolving: req.SkillProblemSolving,
		SkillAutonomy:       req.SkillAutonomy,
		SkillCommunication:  req.SkillCommunication,
	}
	if err := s.repo.Evaluation().Upsert(ctx, evaluation); err != nil {
		return nil, fmt.Errorf("failed to save evaluation: %w", err)
	}

	cache.SafeDelete(ctx, s.cache.Leaderboard, fmt.Sprintf("group:%s", groupID))
	cache.SafeInvalidatePattern(ctx, s.cache.Dashboard, fmt.Sprintf("student:%s*", studentID))

	s.logger.Info("Evaluation updated", "group_id", groupID, "student_id", studentID, "xp", req.XP)
	return evaluation, nil
}

func (s *evaluationService) Get(ctx context.Context, groupID, studentID string) (*models.Evaluation, error) {
	evaluation, err := s.repo.Evaluation().Get(ctx, groupID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEvaluationNotFound
		}
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}
	return evaluation, nil
}

// Leaderboard ranks the group's students by XP descending and returns the
// top five. Ranks are positional; students on equal XP keep their relative
// name order so the view is stable between refreshes.
func (s *evaluationService) Leaderboard(ctx context.Context, groupID, currentUserID string) ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry

	key := fmt.Sprintf("group:%s", groupID)
	err := s.cache.Leaderboard.CacheOrExecute(ctx, key, &entries, cache.LeaderboardCacheConfig.TTL, func() (interface{}, error) {
		return s.buildLeaderboard(ctx, groupID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to build leaderboard: %w", err)
	}

	// The current-user flag is personal, applied after the shared cache.
	for i := range entries {
		entries[i].IsCurrentUser = entries[i].StudentID == currentUserID
	}
	return entries, nil
}

func (s *evaluationService) buildLeaderboard(ctx context.Context, groupID string) ([]LeaderboardEntry, error) {
	group, err := s.repo.Group().GetByIDWithDetails(ctx, groupID)
	if err != nil {
		return nil, err
	}

	evaluations, err := s.repo.Evaluation().GetByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	xpByStudent := make(map[string]int, len(evaluations))
	for _, e := range evaluations {
		xpByStudent[e.StudentID] = e.XP
	}

	entries := make([]LeaderboardEntry, 0, len(group.Students))
	for _, student := range group.Students {
		entries = append(entries, LeaderboardEntry{
			StudentID: student.ID,
			Name:      student.Name,
			XP:        xpByStudent[student.ID],
		})
	}

	return rankEntries(entries), nil
}

// rankEntries sorts by XP descending with name as the tie-break, truncates
// to the podium size and assigns positional 1-based ranks.
func rankEntries(entries []LeaderboardEntry) []LeaderboardEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].XP != entries[j].XP {
			return entries[i].XP > entries[j].XP
		}
		return entries[i].Name < entries[j].Name
	})

	if len(entries) > leaderboardSize {
		entries = entries[:leaderboardSize]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
