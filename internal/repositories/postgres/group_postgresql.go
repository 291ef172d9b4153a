package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/codeverse-academy/academy-service/internal/cache"
	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/repositories"
)

type GroupPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewGroupPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.GroupRepository {
	return &GroupPostgreSQL{db: db, cacheManager: cacheManager}
}

func (g *GroupPostgreSQL) Create(ctx context.Context, group *models.Group) error {
	return g.db.WithContext(ctx).Create(group).Error
}

func (g *GroupPostgreSQL) GetByID(ctx context.Context, id string) (*models.Group, error) {
	var group models.Group
	if err := g.db.WithContext(ctx).First(&group, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (g *GroupPostgreSQL) GetByIDWithDetails(ctx context.Context, id string) (*models.Group, error) {
	var group models.Group
	err := g.db.WithContext(ctx).
		Preload("School").
		Preload("Teachers").
		Preload("Students").
		Preload("GroupTracks", func(db *gorm.DB) *gorm.DB {
			return db.Order("group_tracks.start_date asc")
		}).
		Preload("GroupTracks.Track").
		Preload("GroupTracks.Track.Sessions", func(db *gorm.DB) *gorm.DB {
			return db.Order("sessions.order_index asc")
		}).
		First(&group, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (g *GroupPostgreSQL) List(ctx context.Context) ([]*models.Group, error) {
	var groups []*models.Group
	if err := g.db.WithContext(ctx).Preload("School").Order("name asc").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (g *GroupPostgreSQL) Update(ctx context.Context, group *models.Group) error {
	if err := g.db.WithContext(ctx).Save(group).Error; err != nil {
		return err
	}
	cache.InvalidateGroupCache(ctx, g.cacheManager, group.ID)
	return nil
}

func (g *GroupPostgreSQL) Delete(ctx context.Context, id string) error {
	if err := g.db.WithContext(ctx).Delete(&models.Group{}, "id = ?", id).Error; err != nil {
		return err
	}
	cache.InvalidateGroupCache(ctx, g.cacheManager, id)
	return nil
}

func (g *GroupPostgreSQL) GetBySchool(ctx context.Context, schoolID string) ([]*models.Group, error) {
	var groups []*models.Group
	err := g.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Order("name asc").
		Find(&groups).Error
	return groups, err
}

func (g *GroupPostgreSQL) GetByTeacher(ctx context.Context, teacherID string) ([]*models.Group, error) {
	var groups []*models.Group
	err := g.db.WithContext(ctx).
		Preload("School").
		Joins("JOIN group_teachers gt ON gt.group_id = groups.id").
		Where("gt.user_id = ?", teacherID).
		Order("groups.day_of_week asc").
		Find(&groups).Error
	return groups, err
}

func (g *GroupPostgreSQL) GetByStudent(ctx context.Context, studentID string) ([]*models.Group, error) {
	var groups []*models.Group
	err := g.db.WithContext(ctx).
		Preload("School").
		Preload("Teachers").
		Preload("GroupTracks", func(db *gorm.DB) *gorm.DB {
			return db.Order("group_tracks.start_date asc")
		}).
		Preload("GroupTracks.Track").
		Preload("GroupTracks.Track.Sessions", func(db *gorm.DB) *gorm.DB {
			return db.Order("sessions.order_index asc")
		}).
		Joins("JOIN group_students gs ON gs.group_id = groups.id").
		Where("gs.user_id = ?", studentID).
		Find(&groups).Error
	return groups, err
}

func (g *GroupPostgreSQL) AddTeacher(ctx context.Context, groupID, teacherID string) error {
	group := models.Group{ID: groupID}
	err := g.db.WithContext(ctx).Model(&group).
		Association("Teachers").
		Append(&models.User{ID: teacherID})
	if err != nil {
		return fmt.Errorf("failed to assign teacher: %w", err)
	}
	cache.InvalidateGroupCache(ctx, g.cacheManager, groupID)
	return nil
}

func (g *GroupPostgreSQL) RemoveTeacher(ctx context.Context, groupID, teacherID string) error {
	group := models.Group{ID: groupID}
	err := g.db.WithContext(ctx).Model(&group).
		Association("Teachers").
		Delete(&models.User{ID: teacherID})
	if err != nil {
		return fmt.Errorf("failed to remove teacher: %w", err)
	}
	cache.InvalidateGroupCache(ctx, g.cacheManager, groupID)
	return nil
}

func (g *GroupPostgreSQL) AddStudent(ctx context.Context, groupID, studentID string) error {
	group := models.Group{ID: groupID}
	err := g.db.WithContext(ctx).Model(&group).
		Association("Students").
		Append(&models.User{ID: studentID})
	if err != nil {
		return fmt.Errorf("failed to add student: %w", err)
	}
	cache.InvalidateGroupCache(ctx, g.cacheManager, groupID)
	return nil
}

func (g *GroupPostgreSQL) RemoveStudent(ctx context.Context, groupID, studentID string) error {
	group := models.Group{ID: groupID}
	err := g.db.WithContext(ctx).Model(&group).
		Association("Students").
		Delete(&models.User{ID: studentID})
	if err != nil {
		return fmt.Errorf("failed to remove student: %w", err)
	}
	cache.InvalidateGroupCache(ctx, g.cacheManager, groupID)
	return nil
}

func (g *GroupPostgreSQL) CountStudents(ctx context.Context, groupID string) (int64, error) {
	group := models.Group{ID: groupID}
	return g.db.WithContext(ctx).Model(&group).Association("Students").Count(), nil
}

func (g *GroupPostgreSQL) AddTrack(ctx context.Context, gt *models.GroupTrack) error {
	if err := g.db.WithContext(ctx).Create(gt).Error; err != nil {
		return err
	}
	cache.InvalidateGroupCache(ctx, g.cacheManager, gt.GroupID)
	return nil
}

func (g *GroupPostgreSQL) RemoveTrack(ctx context.Context, groupTrackID string) error {
	var gt models.GroupTrack
	if err := g.db.WithContext(ctx).First(&gt, "id = ?", groupTrackID).Error; err != nil {
		return err
	}
	if err := g.db.WithContext(ctx).Delete(&models.GroupTrack{}, "id = ?", groupTrackID).Error; err != nil {
		return err
	}
	cache.InvalidateGroupCache(ctx, g.cacheManager, gt.GroupID)
	return nil
}

func (g *GroupPostgreSQL) GetTracks(ctx context.Context, groupID string) ([]*models.GroupTrack, error) {
	var tracks []*models.GroupTrack
	err := g.db.WithContext(ctx).
		Preload("Track").
		Preload("Track.Sessions", func(db *gorm.DB) *gorm.DB {
			return db.Order("sessions.order_index asc")
		}).
		Where("group_id = ?", groupID).
		Order("start_date asc").
		Find(&tracks).Error
	return tracks, err
}
