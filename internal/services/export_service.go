package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/codeverse-academy/academy-service/internal/models"
	"github.com/codeverse-academy/academy-service/internal/repositories"
)

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

// ExportEnrollmentLog renders the full audit log as a one-sheet XLSX
// workbook, newest entries first.
func (s *exportService) ExportEnrollmentLog(ctx context.Context) ([]byte, error) {
	logs, err := s.repo.Enrollment().List(ctx, repositories.EnrollmentFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to load enrollment log: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Enrollments"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Type", "Student", "Group", "School", "Teachers"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, log := range logs {
		values := []interface{}{
			log.Date.Format("2006-01-02"),
			string(log.Type),
			log.StudentName,
			log.GroupName,
			log.SchoolName,
			teacherNames(log),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	s.logger.Info("Enrollment log exported", "rows", len(logs))
	return buf.Bytes(), nil
}

// ExportTimeLogs renders the filtered punch list as a one-sheet XLSX
// workbook.
func (s *exportService) ExportTimeLogs(ctx context.Context, filters repositories.TimeLogFilters) ([]byte, error) {
	logs, err := s.repo.TimeLog().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to load time logs: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "TimeLogs"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Timestamp", "User", "Type"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, log := range logs {
		values := []interface{}{
			log.Timestamp.Format("2006-01-02 15:04:05"),
			log.User.Name,
			string(log.Type),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	s.logger.Info("Time logs exported", "rows", len(logs))
	return buf.Bytes(), nil
}

func teacherNames(log *models.EnrollmentLog) string {
	names := ""
	for i, ref := range log.TeacherRefs() {
		if i > 0 {
			names += ", "
		}
		names += ref.Name
	}
	return names
}
