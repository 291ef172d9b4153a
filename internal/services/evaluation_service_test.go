package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/codeverse-academy/academy-service/internal/cache"
	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/repositories"
	"github.com/codeverse-academy/academy-service/internal/validator"
)

func TestNewEvaluationService(t *testing.T) {
	type args struct {
		repo      repositories.Repository
		logger    *slog.Logger
		validator *validator.Validator
		cache     *cache.CacheManager
	}
	tests := []struct {
		name string
		args args
		want EvaluationService
	}{
		{name: "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			NewEvaluationService(tt.args.repo, tt.args.logger, tt.args.validator, tt.args.cache)
		})
	}
}

func TestLeaderboardDefaultsMissingEvaluations(t *testing.T) {
	group := &models.Group{
		ID: "g1",
		Students: []models.User{
			{ID: "s1", Name: "Alice", Role: models.RoleStudent},
			{ID: "s2", Name: "Bob", Role: models.RoleStudent},
		},
	}

	repo := &mockRepository{
		group: &mockGroupRepo{
			getByIDWithDetails: func(ctx context.Context, id string) (*models.Group, error) {
				return group, nil
			},
		},
		evaluation: &mockEvaluationRepo{
			getByGroup: func(ctx context.Context, groupID string) ([]*models.Evaluation, error) {
				// Only Alice has an evaluation row.
				return []*models.Evaluation{{GroupID: "g1", StudentID: "s1", XP: 300}}, nil
			},
		},
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	service := NewEvaluationService(repo, logger, validator.New(), cache.NewCacheManager(nil))

	entries, err := service.Leaderboard(context.Background(), "g1", "s2")
	if err != nil {
		t.Fatalf("Leaderboard() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Leaderboard() returned %d entries, want 2", len(entries))
	}

	// Bob is still listed at zero XP below Alice.
	if entries[0].StudentID != "s1" || entries[0].XP != 300 || entries[0].Rank != 1 {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].StudentID != "s2" || entries[1].XP != 0 || entries[1].Rank != 2 {
		t.Errorf("entries[1] = %+v", entries[1])
	}
	if entries[0].IsCurrentUser || !entries[1].IsCurrentUser {
		t.Errorf("current-user flags = %v, %v", entries[0].IsCurrentUser, entries[1].IsCurrentUser)
	}
}

func TestRankEntries(t *testing.T) {
	entries := []LeaderboardEntry{
		{StudentID: "s1", Name: "Alice", XP: 50},
		{StudentID: "s2", Name: "Bob", XP: 200},
		{StudentID: "s3", Name: "Carol", XP: 200},
		{StudentID: "s4", Name: "Dave", XP: 10},
	}

	ranked := rankEntries(entries)

	wantIDs := []string{"s2", "s3", "s1", "s4"}
	for i, want := range wantIDs {
		if ranked[i].StudentID != want {
			t.Errorf("ranked[%d].StudentID = %s, want %s", i, ranked[i].StudentID, want)
		}
		if ranked[i].Rank != i+1 {
			t.Errorf("ranked[%d].Rank = %d, want %d", i, ranked[i].Rank, i+1)
		}
	}

	// Students on equal XP occupy adjacent positional ranks.
	if ranked[0].XP != ranked[1].XP {
		t.Errorf("expected tie between ranks 1 and 2, got %d and %d", ranked[0].XP, ranked[1].XP)
	}
}

func TestRankEntriesTruncatesToPodium(t *testing.T) {
	entries := make([]LeaderboardEntry, 0, 8)
	names := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	for i, name := range names {
		entries = append(entries, LeaderboardEntry{
			StudentID: name,
			Name:      name,
			XP:        (len(names) - i) * 100,
		})
	}

	ranked := rankEntries(entries)
	if len(ranked) != leaderboardSize {
		t.Fatalf("rankEntries() kept %d entries, want %d", len(ranked), leaderboardSize)
	}
	if ranked[0].StudentID != "A" || ranked[len(ranked)-1].StudentID != "E" {
		t.Errorf("unexpected podium: first %s last %s", ranked[0].StudentID, ranked[len(ranked)-1].StudentID)
	}
}

func TestRankEntriesEmpty(t *testing.T) {
	if ranked := rankEntries(nil); len(ranked) != 0 {
		t.Errorf("rankEntries(nil) = %v, want empty", ranked)
	}
}
