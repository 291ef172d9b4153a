package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/repositories"
	"github.com/codeverse-academy/academy-service/internal/validator"
)

type schoolService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewSchoolService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) SchoolService {
	return &schoolService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *schoolService) Create(ctx context.Context, req *CreateSchoolRequest) (*models.School, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	school := &models.School{Name: req.Name}
	if err := s.repo.School().Create(ctx, school); err != nil {
		return nil, fmt.Errorf("failed to create school: %w", err)
	}

	s.logger.Info("School created", "school_id", school.ID, "name", school.Name)
	return school, nil
}

func (s *schoolService) Get(ctx context.Context, id string) (*models.School, error) {
	school, err := s.repo.School().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchoolNotFound
		}
		return nil, fmt.Errorf("failed to get school: %w", err)
	}
	return school, nil
}

func (s *schoolService) Update(ctx context.Context, id string, req *UpdateSchoolRequest) (*models.School, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	school, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		school.Name = *req.Name
	}

	if err := s.repo.School().Update(ctx, school); err != nil {
		return nil, fmt.Errorf("failed to update school: %w", err)
	}

	s.logger.Info("School updated", "school_id", id)
	return school, nil
}

func (s *schoolService) List(ctx context.Context) ([]*models.School, error) {
	schools, err := s.repo.School().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list schools: %w", err)
	}
	return schools, nil
}

// Delete removes a school and, through the database cascade, its groups.
func (s *schoolService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.repo.School().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete school: %w", err)
	}

	s.logger.Info("School deleted", "school_id", id)
	return nil
}
