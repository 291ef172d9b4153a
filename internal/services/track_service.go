package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/codeverse-academy/academy-service/internal/cache"
	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/repositories"
	"github.com/codeverse-academy/academy-service/internal/validator"
)

type trackService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	cache     *cache.CacheManager
}

func NewTrackService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, cacheManager *cache.CacheManager) TrackService {
	return &trackService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		cache:     cacheManager,
	}
}

func (s *trackService) Create(ctx context.Context, req *CreateTrackRequest) (*models.Track, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	track := &models.Track{
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.repo.Track().Create(ctx, track); err != nil {
		return nil, fmt.Errorf("failed to create track: %w", err)
	}

	s.logger.Info("Track created", "track_id", track.ID, "title", track.Title)
	return track, nil
}

func (s *trackService) Get(ctx context.Context, id string) (*models.Track, error) {
	track, err := s.repo.Track().GetByIDWithSessions(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrackNotFound
		}
		return nil, fmt.Errorf("failed to get track: %w", err)
	}
	track.SessionCount = len(track.Sessions)
	return track, nil
}

func (s *trackService) List(ctx context.Context) ([]*models.Track, error) {
	tracks, err := s.repo.Track().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}
	for _, track := range tracks {
		track.SessionCount = len(track.Sessions)
	}
	return tracks, nil
}

func (s *trackService) Update(ctx context.Context, id string, req *UpdateTrackRequest) (*models.Track, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	track, err := s.repo.Track().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrackNotFound
		}
		return nil, fmt.Errorf("failed to get track: %w", err)
	}

	if req.Title != nil {
		track.Title = *req.Title
	}
	if req.Description != nil {
		track.Description = req.Description
	}

	if err := s.repo.Track().Update(ctx, track); err != nil {
		return nil, fmt.Errorf("failed to update track: %w", err)
	}

	cache.InvalidateTrackCache(ctx, s.cache, id)
	s.logger.Info("Track updated", "track_id", id)
	return track, nil
}

func (s *trackService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Track().GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTrackNotFound
		}
		return fmt.Errorf("failed to get track: %w", err)
	}

	if err := s.repo.Track().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete track: %w", err)
	}

	cache.InvalidateTrackCache(ctx, s.cache, id)
	s.logger.Info("Track deleted", "track_id", id)
	return nil
}

// AddSession appends the session at the end of the track; the order index
// is always assigned server-side so the per-track sequence stays dense.
func (s *trackService) AddSession(ctx context.Context, trackID string, req *CreateSessionRequest) (*models.Session, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if _, err := s.repo.Track().GetByID(ctx, trackID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrackNotFound
		}
		return nil, fmt.Errorf("failed to get track: %w", err)
	}

	var session *models.Session
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		next, err := tx.Track().NextOrderIndex(ctx, trackID)
		if err != nil {
			return fmt.Errorf("failed to compute order index: %w", err)
		}

		session = &models.Session{
			TrackID:    trackID,
			Title:      req.Title,
			Link:       req.Link,
			OrderIndex: next,
		}
		return tx.Track().CreateSession(ctx, session)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add session: %w", err)
	}

	cache.InvalidateTrackCache(ctx, s.cache, trackID)
	s.logger.Info("Session added", "track_id", trackID, "session_id", session.ID, "order_index", session.OrderIndex)
	return session, nil
}

func (s *trackService) UpdateSession(ctx context.Context, sessionID string, req *UpdateSessionRequest) (*models.Session, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	session, err := s.repo.Track().GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if req.Title != nil {
		session.Title = *req.Title
	}
	if req.Link != nil {
		session.Link = req.Link
	}

	if err := s.repo.Track().UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	cache.InvalidateTrackCache(ctx, s.cache, session.TrackID)
	s.logger.Info("Session updated", "session_id", sessionID, "track_id", session.TrackID)
	return session, nil
}

// DeleteSession removes the session but keeps its attendance records and
// notes; history stays intact even when the curriculum changes.
func (s *trackService) DeleteSession(ctx context.Context, sessionID string) error {
	session, err := s.repo.Track().GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to get session: %w", err)
	}

	if err := s.repo.Track().DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	cache.InvalidateTrackCache(ctx, s.cache, session.TrackID)
	s.logger.Info("Session deleted", "session_id", sessionID, "track_id", session.TrackID)
	return nil
}
