package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/codeverse-academy/academy-service/internal/cache"
	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/repositories"
)

type TrackPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewTrackPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.TrackRepository {
	return &TrackPostgreSQL{db: db, cacheManager: cacheManager}
}

func (t *TrackPostgreSQL) Create(ctx context.Context, track *models.Track) error {
	return t.db.WithContext(ctx).Create(track).Error
}

func (t *TrackPostgreSQL) GetByID(ctx context.Context, id string) (*models.Track, error) {
	var track models.Track
	if err := t.db.WithContext(ctx).First(&track, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &track, nil
}

func (t *TrackPostgreSQL) GetByIDWithSessions(ctx context.Context, id string) (*models.Track, error) {
	var track models.Track
	cacheKey := fmt.Sprintf("id:%s", id)

	err := t.cacheManager.Track.CacheOrExecute(ctx, cacheKey, &track, cache.TrackCacheConfig.TTL, func() (interface{}, error) {
		var dbTrack models.Track
		if err := t.db.WithContext(ctx).
			Preload("Sessions", func(db *gorm.DB) *gorm.DB {
				return db.Order("sessions.order_index asc")
			}).
			First(&dbTrack, "id = ?", id).Error; err != nil {
			return nil, err
		}
		dbTrack.SessionCount = len(dbTrack.Sessions)
		return &dbTrack, nil
	})
	if err != nil {
		return nil, err
	}
	return &track, nil
}

func (t *TrackPostgreSQL) List(ctx context.Context) ([]*models.Track, error) {
	var tracks []*models.Track
	if err := t.db.WithContext(ctx).
		Preload("Sessions").
		Order("title asc").
		Find(&tracks).Error; err != nil {
		return nil, err
	}
	for _, track := range tracks {
		track.SessionCount = len(track.Sessions)
	}
	return tracks, nil
}

func (t *TrackPostgreSQL) Update(ctx context.Context, track *models.Track) error {
	if err := t.db.WithContext(ctx).Save(track).Error; err != nil {
		return err
	}
	cache.InvalidateTrackCache(ctx, t.cacheManager, track.ID)
	return nil
}

func (t *TrackPostgreSQL) Delete(ctx context.Context, id string) error {
	if err := t.db.WithContext(ctx).Delete(&models.Track{}, "id = ?", id).Error; err != nil {
		return err
	}
	cache.InvalidateTrackCache(ctx, t.cacheManager, id)
	return nil
}

func (t *TrackPostgreSQL) CreateSession(ctx context.Context, session *models.Session) error {
	if err := t.db.WithContext(ctx).Create(session).Error; err != nil {
		return err
	}
	cache.InvalidateTrackCache(ctx, t.cacheManager, session.TrackID)
	return nil
}

func (t *TrackPostgreSQL) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	if err := t.db.WithContext(ctx).First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (t *TrackPostgreSQL) UpdateSession(ctx context.Context, session *models.Session) error {
	if err := t.db.WithContext(ctx).Save(session).Error; err != nil {
		return err
	}
	cache.InvalidateTrackCache(ctx, t.cacheManager, session.TrackID)
	return nil
}

func (t *TrackPostgreSQL) DeleteSession(ctx context.Context, id string) error {
	var session models.Session
	if err := t.db.WithContext(ctx).First(&session, "id = ?", id).Error; err != nil {
		return err
	}
	// Attendance and notes referencing the session are kept; schedule reads
	// simply stop producing the session.
	if err := t.db.WithContext(ctx).Delete(&models.Session{}, "id = ?", id).Error; err != nil {
		return err
	}
	cache.InvalidateTrackCache(ctx, t.cacheManager, session.TrackID)
	return nil
}

func (t *TrackPostgreSQL) NextOrderIndex(ctx context.Context, trackID string) (int, error) {
	var max *int
	err := t.db.WithContext(ctx).Model(&models.Session{}).
		Where("track_id = ?", trackID).
		Select("MAX(order_index)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 1, nil
	}
	return *max + 1, nil
}
