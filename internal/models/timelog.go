package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TimeLogType string

const (
	ClockIn  TimeLogType = "CLOCK_IN"
	ClockOut TimeLogType = "CLOCK_OUT"
)

// TimeLog is an append-only punch record. A worker's current clock state is
// derived from the most recent row, never stored.
type TimeLog struct {
	ID        string      `json:"id" gorm:"primaryKey;size:36"`
	UserID    string      `json:"user_id" gorm:"not null;index;size:36" validate:"required"`
	Type      TimeLogType `json:"type" gorm:"not null;size:20" validate:"required,timelog_type"`
	Timestamp time.Time   `json:"timestamp" gorm:"not null;index"`

	// Relations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (TimeLog) TableName() string {
	return "time_logs"
}

func (t *TimeLog) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// ClockState derives the current state from the latest punch. A nil latest
// row means the worker has never clocked in.
func ClockState(latest *TimeLog) TimeLogType {
	if latest == nil || latest.Type != ClockIn {
		return ClockOut
	}
	return ClockIn
}
