package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AbsenceStatus string

const (
	AbsencePending  AbsenceStatus = "PENDING"
	AbsenceApproved AbsenceStatus = "APPROVED"
	AbsenceRejected AbsenceStatus = "REJECTED"
)

// AbsenceReason is an admin-configured tag absence requests reference.
type AbsenceReason struct {
	ID   string `json:"id" gorm:"primaryKey;size:36"`
	Name string `json:"name" gorm:"uniqueIndex;not null;size:100" validate:"required,min=1,max=100"`

	CreatedAt time.Time `json:"created_at"`
}

func (AbsenceReason) TableName() string {
	return "absence_reasons"
}

func (r *AbsenceReason) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// AbsenceRequest starts PENDING and transitions once to APPROVED or
// REJECTED. Both transitions are terminal.
type AbsenceRequest struct {
	ID          string        `json:"id" gorm:"primaryKey;size:36"`
	TeacherID   string        `json:"teacher_id" gorm:"not null;index;size:36" validate:"required"`
	ReasonID    string        `json:"reason_id" gorm:"not null;index;size:36" validate:"required"`
	Description string        `json:"description" gorm:"type:text" validate:"max=1000"`
	StartDate   time.Time     `json:"start_date" gorm:"not null" validate:"required"`
	EndDate     time.Time     `json:"end_date" gorm:"not null" validate:"required"`
	Status      AbsenceStatus `json:"status" gorm:"not null;size:20;default:PENDING;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Reason  AbsenceReason `json:"reason,omitempty" gorm:"foreignKey:ReasonID"`
	Teacher User          `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
}

func (AbsenceRequest) TableName() string {
	return "absence_requests"
}

func (a *AbsenceRequest) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
