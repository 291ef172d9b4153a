package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Track is a named curriculum plan composed of ordered sessions.
type Track struct {
	ID          string  `json:"id" gorm:"primaryKey;size:36"`
	Title       string  `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description *string `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Sessions []Session `json:"sessions,omitempty" gorm:"foreignKey:TrackID"`

	// Computed fields (not stored)
	SessionCount int `json:"session_count" gorm:"-"`
}

func (Track) TableName() string {
	return "tracks"
}

func (t *Track) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// Session is one ordered lesson unit within a track. OrderIndex is 1-based
// and unique per track.
type Session struct {
	ID         string  `json:"id" gorm:"primaryKey;size:36"`
	TrackID    string  `json:"track_id" gorm:"not null;index;uniqueIndex:idx_track_order,priority:1;size:36" validate:"required"`
	Title      string  `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Link       *string `json:"link" gorm:"size:500" validate:"omitempty,max=500"`
	OrderIndex int     `json:"order_index" gorm:"not null;uniqueIndex:idx_track_order,priority:2" validate:"required,min=1"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Session) TableName() string {
	return "sessions"
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
