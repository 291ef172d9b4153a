package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleTeacher UserRole = "TEACHER"
	RoleStudent UserRole = "STUDENT"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

type User struct {
	ID           string   `json:"id" gorm:"primaryKey;size:36"`
	Username     string   `json:"username" gorm:"uniqueIndex;not null;size:100" validate:"required,min=3,max=100"`
	PasswordHash string   `json:"-" gorm:"not null;size:255"`
	Name         string   `json:"name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	Role         UserRole `json:"role" gorm:"not null;size:20;index" validate:"required,user_role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	GroupsAsStudent []Group `json:"groups_as_student,omitempty" gorm:"many2many:group_students"`
	GroupsAsTeacher []Group `json:"groups_as_teacher,omitempty" gorm:"many2many:group_teachers"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Initials returns the two-letter avatar label shown on dashboards.
func (u *User) Initials() string {
	runes := []rune(u.Name)
	if len(runes) < 2 {
		runes = append(runes, ' ', ' ')
	}
	initials := string(runes[:2])
	out := make([]rune, 0, 2)
	for _, r := range initials {
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}
