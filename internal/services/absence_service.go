package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/codeverse-academy/academy-service/internal/events"
	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/repositories"
	"github.com/codeverse-academy/academy-service/internal/validator"
)

type absenceService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewAbsenceService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) AbsenceService {
	return &absenceService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

// ===== REASONS =====

func (s *absenceService) CreateReason(ctx context.Context, req *CreateAbsenceReasonRequest) (*models.AbsenceReason, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	reason := &models.AbsenceReason{Name: req.Name}
	if err := s.repo.Absence().CreateReason(ctx, reason); err != nil {
		return nil, fmt.Errorf("failed to create absence reason: %w", err)
	}

	s.logger.Info("Absence reason created", "reason_id", reason.ID, "name", reason.Name)
	return reason, nil
}

func (s *absenceService) ListReasons(ctx context.Context) ([]*models.AbsenceReason, error) {
	reasons, err := s.repo.Absence().ListReasons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list absence reasons: %w", err)
	}
	return reasons, nil
}

// DeleteReason refuses to delete a reason any request still references.
func (s *absenceService) DeleteReason(ctx context.Context, id string) error {
	count, err := s.repo.Absence().CountRequestsByReason(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check reason usage: %w", err)
	}
	if count > 0 {
		return ErrReasonInUse
	}

	if err := s.repo.Absence().DeleteReason(ctx, id); err != nil {
		return fmt.Errorf("failed to delete absence reason: %w", err)
	}

	s.logger.Info("Absence reason deleted", "reason_id", id)
	return nil
}

// ===== REQUESTS =====

func (s *absenceService) CreateRequest(ctx context.Context, teacherID string, req *CreateAbsenceRequest) (*models.AbsenceRequest, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}
	if errs := s.validator.ValidateDateRange(req.StartDate, req.EndDate); len(errs) > 0 {
		return nil, errs
	}

	reasons, err := s.repo.Absence().ListReasons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check reason: %w", err)
	}
	found := false
	for _, r := range reasons {
		if r.ID == req.ReasonID {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrReasonNotFound
	}

	request := &models.AbsenceRequest{
		TeacherID:   teacherID,
		ReasonID:    req.ReasonID,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      models.AbsencePending,
	}
	if err := s.repo.Absence().CreateRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create absence request: %w", err)
	}

	s.publishAbsenceEvent(ctx, events.EventAbsenceRequested, request)
	s.logger.Info("Absence request created", "request_id", request.ID, "teacher_id", teacherID)
	return request, nil
}

func (s *absenceService) RequestsForTeacher(ctx context.Context, teacherID string) ([]*models.AbsenceRequest, error) {
	requests, err := s.repo.Absence().ListRequests(ctx, repositories.AbsenceFilters{TeacherID: &teacherID})
	if err != nil {
		return nil, fmt.Errorf("failed to list absence requests: %w", err)
	}
	return requests, nil
}

func (s *absenceService) AllRequests(ctx context.Context) ([]*models.AbsenceRequest, error) {
	requests, err := s.repo.Absence().ListRequests(ctx, repositories.AbsenceFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list absence requests: %w", err)
	}
	return requests, nil
}

// Decide resolves a pending request. Approval and rejection are both
// terminal; a second decision on the same request is rejected.
func (s *absenceService) Decide(ctx context.Context, requestID string, req *AbsenceDecisionRequest) error {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return errs
	}

	request, err := s.repo.Absence().GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAbsenceNotFound
		}
		return fmt.Errorf("failed to get absence request: %w", err)
	}
	if request.Status != models.AbsencePending {
		return ErrAbsenceResolved
	}

	request.Status = models.AbsenceStatus(req.Status)
	if err := s.repo.Absence().UpdateRequest(ctx, request); err != nil {
		return fmt.Errorf("failed to update absence request: %w", err)
	}

	s.publishAbsenceEvent(ctx, events.EventAbsenceStatusChanged, request)
	s.logger.Info("Absence request resolved", "request_id", requestID, "status", request.Status)
	return nil
}

func (s *absenceService) publishAbsenceEvent(ctx context.Context, eventType string, request *models.AbsenceRequest) {
	event := events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now(),
		Data: events.AbsenceEvent{
			RequestID: request.ID,
			TeacherID: request.TeacherID,
			Status:    string(request.Status),
		},
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish absence event", "error", err, "type", eventType)
	}
}
