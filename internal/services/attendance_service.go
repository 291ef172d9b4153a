package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/codeverse-academy/academy-service/internal/cache"
	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/repositories"
	"github.com/codeverse-academy/academy-service/internal/validator"
)

type attendanceService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	cache     *cache.CacheManager
}

func NewAttendanceService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, cacheManager *cache.CacheManager) AttendanceService {
	return &attendanceService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		cache:     cacheManager,
	}
}

// Mark records whether the student was present in a session. Re-marking the
// same cell overwrites the previous record; the composite unique index
// keeps concurrent marks from duplicating it.
func (s *attendanceService) Mark(ctx context.Context, groupID string, req *MarkAttendanceRequest) error {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return errs
	}

	if _, err := s.repo.Group().GetByID(ctx, groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return fmt.Errorf("failed to get group: %w", err)
	}

	attendance := &models.Attendance{
		GroupID:   groupID,
		StudentID: req.StudentID,
		SessionID: req.SessionID,
		Date:      req.Date,
		Present:   req.Present,
	}
	if err := s.repo.Attendance().Upsert(ctx, attendance); err != nil {
		return fmt.Errorf("failed to mark attendance: %w", err)
	}

	cache.InvalidateGroupCache(ctx, s.cache, groupID)
	s.logger.Info("Attendance marked",
		"group_id", groupID,
		"student_id", req.StudentID,
		"session_id", req.SessionID,
		"present", req.Present)
	return nil
}

func (s *attendanceService) ForGroup(ctx context.Context, groupID string) ([]*models.Attendance, error) {
	records, err := s.repo.Attendance().GetByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance: %w", err)
	}
	return records, nil
}

// SaveNote stores the single free-text note per (group, session). Saving
// again replaces the previous text.
func (s *attendanceService) SaveNote(ctx context.Context, groupID string, req *SaveSessionNoteRequest) error {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return errs
	}

	note := &models.SessionNote{
		GroupID:   groupID,
		SessionID: req.SessionID,
		Notes:     req.Notes,
		Date:      time.Now(),
	}
	if err := s.repo.Attendance().UpsertNote(ctx, note); err != nil {
		return fmt.Errorf("failed to save session note: %w", err)
	}

	s.logger.Info("Session note saved", "group_id", groupID, "session_id", req.SessionID)
	return nil
}

func (s *attendanceService) Notes(ctx context.Context, groupID string) ([]*models.SessionNote, error) {
	notes, err := s.repo.Attendance().GetNotes(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session notes: %w", err)
	}
	return notes, nil
}
