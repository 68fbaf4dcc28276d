package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/campuskit/attendance-api/internal/models"
	appErrors "github.com/campuskit/attendance-api/pkg/errors"
	"github.com/campuskit/attendance-api/pkg/export"
)

// ExportFormat selects the rendered output of an attendance sheet.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

type rosterReader interface {
	Roster(ctx context.Context, semesterID, departmentID string) ([]models.RosterEntry, error)
}

// ReportService renders attendance sheets for download. Sheets are built
// straight off the record store, same as the JSON read path.
type ReportService struct {
	attendance attendanceRepository
	subjects   subjectReader
	roster     rosterReader
	csv        *export.CSVExporter
	pdf        *export.PDFExporter
	logger     *zap.Logger
}

// NewReportService constructs the exporter.
func NewReportService(attendance attendanceRepository, subjects subjectReader, roster rosterReader, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		attendance: attendance,
		subjects:   subjects,
		roster:     roster,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		logger:     logger,
	}
}

// ExportResult carries rendered bytes with download metadata.
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

// AttendanceSheet renders the stored decisions for one subject and date.
// Student names come from the subject's roster; records for students who
// have since left the roster still appear, keyed by id.
func (s *ReportService) AttendanceSheet(ctx context.Context, subjectID, date string, format ExportFormat) (*ExportResult, error) {
	if subjectID == "" || date == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subject id and date required")
	}
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}

	subject, err := s.subjects.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}

	records, err := s.attendance.ListByDate(ctx, subjectID, day, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance records")
	}

	names := map[string]models.RosterEntry{}
	if roster, err := s.roster.Roster(ctx, subject.SemesterID, subject.DepartmentID); err != nil {
		s.logger.Warn("roster lookup failed for export", zap.String("subject_id", subjectID), zap.Error(err))
	} else {
		for _, entry := range roster {
			names[entry.ID] = entry
		}
	}

	sheet := export.Sheet{
		Headers: []string{"Enrollment No", "Student", "Period", "Status", "Marked By"},
		Rows:    make([]map[string]string, 0, len(records)),
	}
	for _, record := range records {
		enrollmentNo, fullName := record.StudentID, ""
		if entry, ok := names[record.StudentID]; ok {
			enrollmentNo, fullName = entry.EnrollmentNo, entry.FullName
		}
		sheet.Rows = append(sheet.Rows, map[string]string{
			"Enrollment No": enrollmentNo,
			"Student":       fullName,
			"Period":        strconv.Itoa(record.Period),
			"Status":        string(record.Status),
			"Marked By":     record.MarkedBy,
		})
	}

	title := fmt.Sprintf("%s attendance %s", subject.Name, date)
	switch format {
	case ExportFormatCSV:
		data, err := s.csv.Render(sheet)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("attendance-%s-%s.csv", subject.Code, date),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	case ExportFormatPDF:
		data, err := s.pdf.Render(sheet, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("attendance-%s-%s.pdf", subject.Code, date),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}
