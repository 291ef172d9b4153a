package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EnrollmentType string

const (
	EnrollmentAlta EnrollmentType = "ALTA"
	EnrollmentBaja EnrollmentType = "BAJA"
)

// TeacherRef is the denormalized (id, name) pair snapshotted into an
// enrollment log entry so the audit trail survives later renames.
type TeacherRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EnrollmentLog is an immutable audit row written whenever a student joins
// (ALTA) or leaves (BAJA) a group. Names are snapshots taken at the moment
// of the event, not foreign-key lookups.
type EnrollmentLog struct {
	ID          string         `json:"id" gorm:"primaryKey;size:36"`
	Type        EnrollmentType `json:"type" gorm:"not null;size:10;index" validate:"required,enrollment_type"`
	StudentID   string         `json:"student_id" gorm:"not null;index;size:36"`
	StudentName string         `json:"student_name" gorm:"not null;size:100"`
	GroupID     string         `json:"group_id" gorm:"not null;index;size:36"`
	GroupName   string         `json:"group_name" gorm:"not null;size:200"`
	SchoolName  string         `json:"school_name" gorm:"not null;size:200;index"`
	Teachers    datatypes.JSON `json:"teachers" gorm:"type:jsonb"`
	Date        time.Time      `json:"date" gorm:"not null;index"`
}

func (EnrollmentLog) TableName() string {
	return "enrollment_logs"
}

func (l *EnrollmentLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// TeacherRefs decodes the snapshotted teacher list. A missing or malformed
// column yields an empty list rather than an error; audit reads must not
// fail on old rows.
func (l *EnrollmentLog) TeacherRefs() []TeacherRef {
	if len(l.Teachers) == 0 {
		return nil
	}
	var refs []TeacherRef
	if err := json.Unmarshal(l.Teachers, &refs); err != nil {
		return nil
	}
	return refs
}

// MarshalTeacherRefs encodes a teacher snapshot for storage.
func MarshalTeacherRefs(refs []TeacherRef) (datatypes.JSON, error) {
	data, err := json.Marshal(refs)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}
