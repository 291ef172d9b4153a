package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/repositories"
)

type EnrollmentPostgreSQL struct {
	db *gorm.DB
}

func NewEnrollmentPostgreSQL(db *gorm.DB) repositories.EnrollmentRepository {
	return &EnrollmentPostgreSQL{db: db}
}

// Append writes one audit row. There is no update or delete path; the log
// is immutable by construction.
func (e *EnrollmentPostgreSQL) Append(ctx context.Context, log *models.EnrollmentLog) error {
	return e.db.WithContext(ctx).Create(log).Error
}

func (e *EnrollmentPostgreSQL) List(ctx context.Context, filters repositories.EnrollmentFilters) ([]*models.EnrollmentLog, error) {
	var logs []*models.EnrollmentLog

	query := e.db.WithContext(ctx).Model(&models.EnrollmentLog{})
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}
	if filters.GroupID != nil {
		query = query.Where("group_id = ?", *filters.GroupID)
	}
	if filters.DateFrom != nil {
		query = query.Where("date >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("date < ?", *filters.DateTo)
	}

	query = query.Order("date desc")
	if filters.Limit > 0 {
		query = applyPagination(query, filters.Limit, filters.Offset)
	}

	err := query.Find(&logs).Error
	return logs, err
}
