package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/repositories"
)

type SchoolPostgreSQL struct {
	db *gorm.DB
}

func NewSchoolPostgreSQL(db *gorm.DB) repositories.SchoolRepository {
	return &SchoolPostgreSQL{db: db}
}

func (s *SchoolPostgreSQL) Create(ctx context.Context, school *models.School) error {
	return s.db.WithContext(ctx).Create(school).Error
}

func (s *SchoolPostgreSQL) GetByID(ctx context.Context, id string) (*models.School, error) {
	var school models.School
	if err := s.db.WithContext(ctx).Preload("Groups").First(&school, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &school, nil
}

func (s *SchoolPostgreSQL) List(ctx context.Context) ([]*models.School, error) {
	var schools []*models.School
	if err := s.db.WithContext(ctx).Preload("Groups").Order("name asc").Find(&schools).Error; err != nil {
		return nil, err
	}
	return schools, nil
}

func (s *SchoolPostgreSQL) Update(ctx context.Context, school *models.School) error {
	return s.db.WithContext(ctx).Save(school).Error
}

func (s *SchoolPostgreSQL) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.School{}, "id = ?", id).Error
}
