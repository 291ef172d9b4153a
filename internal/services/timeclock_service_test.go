package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/codeverse-academy/academy-service/internal/models"
)

func newTestTimeClockService(repo *mockRepository) TimeClockService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewTimeClockService(repo, logger)
}

func TestTimeClockPunchSequence(t *testing.T) {
	timeLogs := &mockTimeLogRepo{}
	service := newTestTimeClockService(&mockRepository{timeLog: timeLogs})
	ctx := context.Background()

	if err := service.ClockIn(ctx, "u1"); err != nil {
		t.Fatalf("first ClockIn() error = %v", err)
	}

	// A second clock in without an intervening clock out is rejected.
	if err := service.ClockIn(ctx, "u1"); !errors.Is(err, ErrAlreadyClockedIn) {
		t.Errorf("second ClockIn() error = %v, want ErrAlreadyClockedIn", err)
	}

	if err := service.ClockOut(ctx, "u1"); err != nil {
		t.Fatalf("ClockOut() error = %v", err)
	}
	if err := service.ClockOut(ctx, "u1"); !errors.Is(err, ErrAlreadyClockedOut) {
		t.Errorf("second ClockOut() error = %v, want ErrAlreadyClockedOut", err)
	}

	if len(timeLogs.logs) != 2 {
		t.Fatalf("expected 2 punches recorded, got %d", len(timeLogs.logs))
	}
	if timeLogs.logs[0].Type != models.ClockIn || timeLogs.logs[1].Type != models.ClockOut {
		t.Errorf("unexpected punch sequence: %v, %v", timeLogs.logs[0].Type, timeLogs.logs[1].Type)
	}
}

func TestTimeClockClockOutWithoutHistory(t *testing.T) {
	service := newTestTimeClockService(&mockRepository{timeLog: &mockTimeLogRepo{}})

	// A worker who never clocked in is already in the clocked-out state.
	if err := service.ClockOut(context.Background(), "u1"); !errors.Is(err, ErrAlreadyClockedOut) {
		t.Errorf("ClockOut() error = %v, want ErrAlreadyClockedOut", err)
	}
}

func TestTimeClockStatus(t *testing.T) {
	timeLogs := &mockTimeLogRepo{}
	service := newTestTimeClockService(&mockRepository{timeLog: timeLogs})
	ctx := context.Background()

	status, err := service.Status(ctx, "u1")
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status.State != models.ClockOut {
		t.Errorf("fresh Status().State = %v, want ClockOut", status.State)
	}

	if err := service.ClockIn(ctx, "u1"); err != nil {
		t.Fatalf("ClockIn() error = %v", err)
	}

	status, err = service.Status(ctx, "u1")
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status.State != models.ClockIn {
		t.Errorf("Status().State = %v, want ClockIn", status.State)
	}
	if len(status.Logs) != 1 {
		t.Errorf("Status().Logs has %d entries, want 1", len(status.Logs))
	}
}
