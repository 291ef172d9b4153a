package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attendance records whether a student was present in one session of a
// group. The composite unique index is what makes the mark-attendance
// upsert safe under concurrent writes.
type Attendance struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	GroupID   string    `json:"group_id" gorm:"not null;uniqueIndex:idx_attendance_cell,priority:1;size:36" validate:"required"`
	StudentID string    `json:"student_id" gorm:"not null;uniqueIndex:idx_attendance_cell,priority:2;index;size:36" validate:"required"`
	SessionID string    `json:"session_id" gorm:"not null;uniqueIndex:idx_attendance_cell,priority:3;size:36" validate:"required"`
	Date      time.Time `json:"date" gorm:"not null"`
	Present   bool      `json:"present" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Attendance) TableName() string {
	return "attendance"
}

func (a *Attendance) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// SessionNote is the single free-text note a teacher keeps per session of a
// group.
type SessionNote struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	GroupID   string    `json:"group_id" gorm:"not null;uniqueIndex:idx_session_note,priority:1;size:36" validate:"required"`
	SessionID string    `json:"session_id" gorm:"not null;uniqueIndex:idx_session_note,priority:2;size:36" validate:"required"`
	Notes     string    `json:"notes" gorm:"type:text" validate:"max=5000"`
	Date      time.Time `json:"date" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SessionNote) TableName() string {
	return "session_notes"
}

func (n *SessionNote) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
