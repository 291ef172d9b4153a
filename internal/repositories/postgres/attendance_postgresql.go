package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/repositories"
)

type AttendancePostgreSQL struct {
	db *gorm.DB
}

func NewAttendancePostgreSQL(db *gorm.DB) repositories.AttendanceRepository {
	return &AttendancePostgreSQL{db: db}
}

// Upsert writes the attendance cell atomically. ON CONFLICT on the
// composite natural key replaces the racy find-then-branch pattern: two
// concurrent toggles both land, last write wins, never a duplicate row.
func (a *AttendancePostgreSQL) Upsert(ctx context.Context, attendance *models.Attendance) error {
	return a.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "group_id"},
			{Name: "student_id"},
			{Name: "session_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"present", "date", "updated_at"}),
	}).Create(attendance).Error
}

func (a *AttendancePostgreSQL) GetByGroup(ctx context.Context, groupID string) ([]*models.Attendance, error) {
	var records []*models.Attendance
	err := a.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("date asc").
		Find(&records).Error
	return records, err
}

func (a *AttendancePostgreSQL) GetPresentByStudent(ctx context.Context, groupID, studentID string) ([]*models.Attendance, error) {
	var records []*models.Attendance
	err := a.db.WithContext(ctx).
		Where("group_id = ? AND student_id = ? AND present = ?", groupID, studentID, true).
		Find(&records).Error
	return records, err
}

func (a *AttendancePostgreSQL) CountPresentInSessions(ctx context.Context, groupID, studentID string, sessionIDs []string) (int64, error) {
	if len(sessionIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := a.db.WithContext(ctx).Model(&models.Attendance{}).
		Where("group_id = ? AND student_id = ? AND present = ?", groupID, studentID, true).
		Where("session_id IN ?", sessionIDs).
		Count(&count).Error
	return count, err
}

func (a *AttendancePostgreSQL) SessionsWithRecords(ctx context.Context, groupID string) ([]string, error) {
	var sessionIDs []string
	err := a.db.WithContext(ctx).Model(&models.Attendance{}).
		Where("group_id = ?", groupID).
		Distinct("session_id").
		Pluck("session_id", &sessionIDs).Error
	return sessionIDs, err
}

func (a *AttendancePostgreSQL) UpsertNote(ctx context.Context, note *models.SessionNote) error {
	return a.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "group_id"},
			{Name: "session_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"notes", "date", "updated_at"}),
	}).Create(note).Error
}

func (a *AttendancePostgreSQL) GetNotes(ctx context.Context, groupID string) ([]*models.SessionNote, error) {
	var notes []*models.SessionNote
	err := a.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Find(&notes).Error
	return notes, err
}
