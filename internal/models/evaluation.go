package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// XPPerLevel is the amount of XP needed to advance one level.
const XPPerLevel = 1000

// Evaluation holds the gamification state of one student in one group:
// a single XP scalar plus six skill scores. Exactly one row exists per
// (group, student); saves overwrite the full snapshot.
type Evaluation struct {
	ID        string `json:"id" gorm:"primaryKey;size:36"`
	GroupID   string `json:"group_id" gorm:"not null;uniqueIndex:idx_evaluation_cell,priority:1;size:36" validate:"required"`
	StudentID string `json:"student_id" gorm:"not null;uniqueIndex:idx_evaluation_cell,priority:2;index;size:36" validate:"required"`

	XP                  int `json:"xp" gorm:"not null;default:0" validate:"min=0"`
	SkillLogic          int `json:"skill_logic" gorm:"not null;default:0" validate:"skill_score"`
	SkillCreativity     int `json:"skill_creativity" gorm:"not null;default:0" validate:"skill_score"`
	SkillTeamwork       int `json:"skill_teamwork" gorm:"not null;default:0" validate:"skill_score"`
	SkillProblemSolving int `json:"skill_problem_solving" gorm:"not null;default:0" validate:"skill_score"`
	SkillAutonomy       int `json:"skill_autonomy" gorm:"not null;default:0" validate:"skill_score"`
	SkillCommunication  int `json:"skill_communication" gorm:"not null;default:0" validate:"skill_score"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}

func (e *Evaluation) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// Level derives the 1-based level from XP. Level 1 covers 0-999 XP.
func Level(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// LevelProgress derives the percentage of progress within the current
// level, in [0, 100).
func LevelProgress(xp int) float64 {
	if xp < 0 {
		xp = 0
	}
	return float64(xp%XPPerLevel) / 10
}
