package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/codeverse-academy/academy-service/internal/cache"
	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/validator"
)

func newTestGroupService(repo *mockRepository) GroupService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewGroupService(repo, logger, validator.New(), cache.NewCacheManager(nil))
}

func TestIsMember(t *testing.T) {
	repo := &mockRepository{
		group: &mockGroupRepo{
			getByStudent: func(ctx context.Context, studentID string) ([]*models.Group, error) {
				if studentID == "s1" {
					return []*models.Group{{ID: "g1"}, {ID: "g2"}}, nil
				}
				return nil, nil
			},
		},
	}
	service := newTestGroupService(repo)
	ctx := context.Background()

	tests := []struct {
		name      string
		groupID   string
		studentID string
		want      bool
	}{
		{name: "enrolled", groupID: "g1", studentID: "s1", want: true},
		{name: "other group of same student", groupID: "g2", studentID: "s1", want: true},
		{name: "foreign group", groupID: "g9", studentID: "s1", want: false},
		{name: "student with no groups", groupID: "g1", studentID: "s2", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.IsMember(ctx, tt.groupID, tt.studentID)
			if err != nil {
				t.Fatalf("IsMember() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IsMember(%s, %s) = %v, want %v", tt.groupID, tt.studentID, got, tt.want)
			}
		})
	}
}
