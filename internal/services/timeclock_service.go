package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/repositories"
)

type timeClockService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewTimeClockService(repo repositories.Repository, logger *slog.Logger) TimeClockService {
	return &timeClockService{
		repo:   repo,
		logger: logger,
	}
}

func (s *timeClockService) ClockIn(ctx context.Context, userID string) error {
	return s.punch(ctx, userID, models.ClockIn)
}

func (s *timeClockService) ClockOut(ctx context.Context, userID string) error {
	return s.punch(ctx, userID, models.ClockOut)
}

// punch appends the record only when it flips the derived state; two
// consecutive punches of the same kind are rejected. The transaction keeps
// the check and the append together; at default isolation two truly
// concurrent punches of the same kind can still both land, which the
// derived-state read tolerates.
func (s *timeClockService) punch(ctx context.Context, userID string, punchType models.TimeLogType) error {
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		latest, err := tx.TimeLog().Latest(ctx, userID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to load clock state: %w", err)
		}

		state := models.ClockState(latest)
		if state == punchType {
			if punchType == models.ClockIn {
				return ErrAlreadyClockedIn
			}
			return ErrAlreadyClockedOut
		}

		return tx.TimeLog().Append(ctx, &models.TimeLog{
			UserID:    userID,
			Type:      punchType,
			Timestamp: time.Now(),
		})
	})
	if err != nil {
		return err
	}

	s.logger.Info("Time punch recorded", "user_id", userID, "type", punchType)
	return nil
}

func (s *timeClockService) Status(ctx context.Context, userID string) (*TimeClockResponse, error) {
	latest, err := s.repo.TimeLog().Latest(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load clock state: %w", err)
	}

	logs, err := s.repo.TimeLog().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list time logs: %w", err)
	}

	return &TimeClockResponse{
		State: models.ClockState(latest),
		Logs:  logs,
	}, nil
}

func (s *timeClockService) AllLogs(ctx context.Context, filters repositories.TimeLogFilters) ([]*models.TimeLog, error) {
	logs, err := s.repo.TimeLog().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list time logs: %w", err)
	}
	return logs, nil
}
