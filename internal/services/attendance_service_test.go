package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/codeverse-academy/academy-service/internal/cache"
	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/validator"
)

func newTestAttendanceService(repo *mockRepository) AttendanceService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewAttendanceService(repo, logger, validator.New(), cache.NewCacheManager(nil))
}

func TestMarkAttendanceOverwrites(t *testing.T) {
	attendance := &mockAttendanceRepo{}
	repo := &mockRepository{
		group: &mockGroupRepo{
			getByID: func(ctx context.Context, id string) (*models.Group, error) {
				return &models.Group{ID: id}, nil
			},
		},
		attendance: attendance,
	}
	service := newTestAttendanceService(repo)
	ctx := context.Background()

	date := time.Date(2025, 9, 1, 17, 0, 0, 0, time.UTC)
	req := &MarkAttendanceRequest{StudentID: "s1", SessionID: "sess1", Date: date, Present: true}
	if err := service.Mark(ctx, "g1", req); err != nil {
		t.Fatalf("Mark() error = %v", err)
	}

	// Re-marking the same cell replaces the record instead of adding one.
	req.Present = false
	if err := service.Mark(ctx, "g1", req); err != nil {
		t.Fatalf("second Mark() error = %v", err)
	}

	if len(attendance.upserted) != 1 {
		t.Fatalf("expected 1 attendance row, got %d", len(attendance.upserted))
	}
	row := attendance.upserted[0]
	if row.Present {
		t.Error("re-mark did not overwrite present flag")
	}
	if row.GroupID != "g1" || row.StudentID != "s1" || row.SessionID != "sess1" {
		t.Errorf("attendance row = %+v", row)
	}

	// A different session is a separate row.
	if err := service.Mark(ctx, "g1", &MarkAttendanceRequest{StudentID: "s1", SessionID: "sess2", Date: date, Present: true}); err != nil {
		t.Fatalf("Mark() for second session error = %v", err)
	}
	if len(attendance.upserted) != 2 {
		t.Errorf("expected 2 attendance rows, got %d", len(attendance.upserted))
	}
}

func TestMarkAttendanceGroupNotFound(t *testing.T) {
	repo := &mockRepository{
		group: &mockGroupRepo{
			getByID: func(ctx context.Context, id string) (*models.Group, error) {
				return nil, errNotFound
			},
		},
		attendance: &mockAttendanceRepo{},
	}
	service := newTestAttendanceService(repo)

	req := &MarkAttendanceRequest{StudentID: "s1", SessionID: "sess1", Date: time.Now(), Present: true}
	if err := service.Mark(context.Background(), "missing", req); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("Mark() error = %v, want ErrGroupNotFound", err)
	}
}

func TestMarkAttendanceValidation(t *testing.T) {
	service := newTestAttendanceService(&mockRepository{})

	// Missing student and session ids never reach the repository.
	if err := service.Mark(context.Background(), "g1", &MarkAttendanceRequest{Date: time.Now()}); err == nil {
		t.Error("Mark() accepted an empty request")
	}
}
