package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/repositories"
)

type AbsencePostgreSQL struct {
	db *gorm.DB
}

func NewAbsencePostgreSQL(db *gorm.DB) repositories.AbsenceRepository {
	return &AbsencePostgreSQL{db: db}
}

func (a *AbsencePostgreSQL) CreateReason(ctx context.Context, reason *models.AbsenceReason) error {
	return a.db.WithContext(ctx).Create(reason).Error
}

func (a *AbsencePostgreSQL) ListReasons(ctx context.Context) ([]*models.AbsenceReason, error) {
	var reasons []*models.AbsenceReason
	err := a.db.WithContext(ctx).Order("name asc").Find(&reasons).Error
	return reasons, err
}

func (a *AbsencePostgreSQL) DeleteReason(ctx context.Context, id string) error {
	return a.db.WithContext(ctx).Delete(&models.AbsenceReason{}, "id = ?", id).Error
}

func (a *AbsencePostgreSQL) CountRequestsByReason(ctx context.Context, reasonID string) (int64, error) {
	var count int64
	err := a.db.WithContext(ctx).Model(&models.AbsenceRequest{}).
		Where("reason_id = ?", reasonID).
		Count(&count).Error
	return count, err
}

func (a *AbsencePostgreSQL) CreateRequest(ctx context.Context, request *models.AbsenceRequest) error {
	return a.db.WithContext(ctx).Create(request).Error
}

func (a *AbsencePostgreSQL) GetRequest(ctx context.Context, id string) (*models.AbsenceRequest, error) {
	var request models.AbsenceRequest
	err := a.db.WithContext(ctx).
		Preload("Reason").
		First(&request, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (a *AbsencePostgreSQL) ListRequests(ctx context.Context, filters repositories.AbsenceFilters) ([]*models.AbsenceRequest, error) {
	var requests []*models.AbsenceRequest

	query := a.db.WithContext(ctx).
		Preload("Reason").
		Preload("Teacher")
	if filters.TeacherID != nil {
		query = query.Where("teacher_id = ?", *filters.TeacherID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	query = query.Order("created_at desc")
	if filters.Limit > 0 {
		query = applyPagination(query, filters.Limit, filters.Offset)
	}

	err := query.Find(&requests).Error
	return requests, err
}

func (a *AbsencePostgreSQL) UpdateRequest(ctx context.Context, request *models.AbsenceRequest) error {
	return a.db.WithContext(ctx).Save(request).Error
}
