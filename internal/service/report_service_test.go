package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/attendance-api/internal/models"
	appErrors "github.com/campuskit/attendance-api/pkg/errors"
)

type mockRosterReader struct {
	roster []models.RosterEntry
}

func (m *mockRosterReader) Roster(ctx context.Context, semesterID, departmentID string) ([]models.RosterEntry, error) {
	return m.roster, nil
}

func newReportFixture() *ReportService {
	date := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	repo := &mockAttendanceRepo{records: map[string]models.AttendanceRecord{
		"r1": {StudentID: "stu-1", SubjectID: "sub-1", Date: date, Period: 1, Status: models.AttendanceStatusPresent, MarkedBy: "fac-1"},
		"r2": {StudentID: "stu-2", SubjectID: "sub-1", Date: date, Period: 1, Status: models.AttendanceStatusAbsent, MarkedBy: "fac-1"},
	}}
	subjects := &mockSubjectReader{subjects: map[string]*models.Subject{
		"sub-1": {ID: "sub-1", Name: "Physics", Code: "PHY101", SemesterID: "sem-1", DepartmentID: "dep-1"},
	}}
	roster := &mockRosterReader{roster: []models.RosterEntry{
		{ID: "stu-1", EnrollmentNo: "EN-001", FullName: "Ada Lovelace"},
		{ID: "stu-2", EnrollmentNo: "EN-002", FullName: "Alan Turing"},
	}}
	return NewReportService(repo, subjects, roster, nil)
}

func TestAttendanceSheetCSV(t *testing.T) {
	svc := newReportFixture()

	result, err := svc.AttendanceSheet(context.Background(), "sub-1", "2026-03-02", ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "attendance-PHY101-2026-03-02.csv", result.FileName)

	body := string(result.Data)
	assert.True(t, strings.HasPrefix(body, "Enrollment No,Student,Period,Status,Marked By"))
	assert.Contains(t, body, "EN-001,Ada Lovelace,1,PRESENT,fac-1")
	assert.Contains(t, body, "EN-002,Alan Turing,1,ABSENT,fac-1")
}

func TestAttendanceSheetPDF(t *testing.T) {
	svc := newReportFixture()

	result, err := svc.AttendanceSheet(context.Background(), "sub-1", "2026-03-02", ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Data), "%PDF"))
}

func TestAttendanceSheetValidation(t *testing.T) {
	svc := newReportFixture()

	_, err := svc.AttendanceSheet(context.Background(), "sub-1", "2026-03-02", ExportFormat("xlsx"))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION", appErrors.FromError(err).Code)

	_, err = svc.AttendanceSheet(context.Background(), "sub-1", "not-a-date", ExportFormatCSV)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION", appErrors.FromError(err).Code)

	_, err = svc.AttendanceSheet(context.Background(), "missing", "2026-03-02", ExportFormatCSV)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", appErrors.FromError(err).Code)
}
