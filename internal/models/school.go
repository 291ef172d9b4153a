package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type School struct {
	ID   string `json:"id" gorm:"primaryKey;size:36"`
	Name string `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Groups []Group `json:"groups,omitempty" gorm:"foreignKey:SchoolID"`
}

func (School) TableName() string {
	return "schools"
}

func (s *School) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type Group struct {
	ID        string `json:"id" gorm:"primaryKey;size:36"`
	Name      string `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	DayOfWeek string `json:"day_of_week" gorm:"not null;size:20" validate:"required"`
	TimeSlot  string `json:"time_slot" gorm:"not null;size:50" validate:"required"`
	Subject   string `json:"subject" gorm:"not null;size:200" validate:"required"`
	AgeRange  string `json:"age_range" gorm:"not null;size:50" validate:"required"`
	SchoolID  string `json:"school_id" gorm:"not null;index;size:36" validate:"required"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	School      School       `json:"school,omitempty" gorm:"foreignKey:SchoolID"`
	Teachers    []User       `json:"teachers,omitempty" gorm:"many2many:group_teachers"`
	Students    []User       `json:"students,omitempty" gorm:"many2many:group_students"`
	GroupTracks []GroupTrack `json:"group_tracks,omitempty" gorm:"foreignKey:GroupID"`

	// Computed fields (not stored)
	StudentCount int `json:"student_count" gorm:"-"`
}

func (Group) TableName() string {
	return "groups"
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

// GroupTrack assigns a Track to a Group anchored at a start date. Session
// calendar dates are derived from this anchor, never stored.
type GroupTrack struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	GroupID   string    `json:"group_id" gorm:"not null;index;size:36" validate:"required"`
	TrackID   string    `json:"track_id" gorm:"not null;index;size:36" validate:"required"`
	StartDate time.Time `json:"start_date" gorm:"not null" validate:"required"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Track Track `json:"track,omitempty" gorm:"foreignKey:TrackID"`
}

func (GroupTrack) TableName() string {
	return "group_tracks"
}

func (gt *GroupTrack) BeforeCreate(tx *gorm.DB) error {
	if gt.ID == "" {
		gt.ID = uuid.NewString()
	}
	return nil
}
