package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/repositories"
)

type EvaluationPostgreSQL struct {
	db *gorm.DB
}

func NewEvaluationPostgreSQL(db *gorm.DB) repositories.EvaluationRepository {
	return &EvaluationPostgreSQL{db: db}
}

// Upsert overwrites the full seven-field snapshot keyed on the composite
// (group_id, student_id) unique index.
func (e *EvaluationPostgreSQL) Upsert(ctx context.Context, evaluation *models.Evaluation) error {
	return e.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "group_id"},
			{Name: "student_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"xp",
			"skill_logic",
			"skill_creativity",
			"skill_teamwork",
			"skill_problem_solving",
			"skill_autonomy",
			"skill_communication",
			"updated_at",
		}),
	}).Create(evaluation).Error
}

// EnsureExists inserts the zero-valued enrollment row and leaves an
// existing row untouched.
func (e *EvaluationPostgreSQL) EnsureExists(ctx context.Context, groupID, studentID string) error {
	evaluation := &models.Evaluation{
		GroupID:   groupID,
		StudentID: studentID,
	}
	return e.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "group_id"},
			{Name: "student_id"},
		},
		DoNothing: true,
	}).Create(evaluation).Error
}

func (e *EvaluationPostgreSQL) Get(ctx context.Context, groupID, studentID string) (*models.Evaluation, error) {
	var evaluation models.Evaluation
	err := e.db.WithContext(ctx).
		First(&evaluation, "group_id = ? AND student_id = ?", groupID, studentID).Error
	if err != nil {
		return nil, err
	}
	return &evaluation, nil
}

func (e *EvaluationPostgreSQL) GetByGroup(ctx context.Context, groupID string) ([]*models.Evaluation, error) {
	var evaluations []*models.Evaluation
	err := e.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Find(&evaluations).Error
	return evaluations, err
}
