package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/repositories"
)

type TimeLogPostgreSQL struct {
	db *gorm.DB
}

func NewTimeLogPostgreSQL(db *gorm.DB) repositories.TimeLogRepository {
	return &TimeLogPostgreSQL{db: db}
}

func (t *TimeLogPostgreSQL) Append(ctx context.Context, log *models.TimeLog) error {
	return t.db.WithContext(ctx).Create(log).Error
}

func (t *TimeLogPostgreSQL) Latest(ctx context.Context, userID string) (*models.TimeLog, error) {
	var log models.TimeLog
	err := t.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp desc").
		First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (t *TimeLogPostgreSQL) ListByUser(ctx context.Context, userID string) ([]*models.TimeLog, error) {
	var logs []*models.TimeLog
	err := t.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp desc").
		Find(&logs).Error
	return logs, err
}

func (t *TimeLogPostgreSQL) List(ctx context.Context, filters repositories.TimeLogFilters) ([]*models.TimeLog, error) {
	var logs []*models.TimeLog

	query := t.db.WithContext(ctx).Model(&models.TimeLog{}).Preload("User")
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.UserName != nil && *filters.UserName != "" {
		query = query.
			Joins("JOIN users ON users.id = time_logs.user_id").
			Where("users.name ILIKE ?", "%"+*filters.UserName+"%")
	}
	if filters.Day != nil {
		day := *filters.Day
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		end := start.AddDate(0, 0, 1)
		query = query.Where("timestamp >= ? AND timestamp < ?", start, end)
	}

	query = query.Order("timestamp desc")
	if filters.Limit > 0 {
		query = applyPagination(query, filters.Limit, filters.Offset)
	}

	err := query.Find(&logs).Error
	return logs, err
}
