package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/attendance-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAttendanceUpsertBatchCommitsOnce(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	date := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	entries := []models.AttendanceEntry{
		{StudentID: "stu-1", Period: 1, Status: models.AttendanceStatusPresent},
		{StudentID: "stu-2", Period: 1, Status: models.AttendanceStatusAbsent},
	}

	mock.ExpectBegin()
	for range entries {
		mock.ExpectExec("INSERT INTO attendance_records").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "sub-1", date, 1, sqlmock.AnyArg(), "sem-1", "fac-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()

	err := repo.UpsertBatch(context.Background(), "sub-1", date, "sem-1", "fac-1", entries)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceUpsertBatchRollsBackOnFailure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	date := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	entries := []models.AttendanceEntry{
		{StudentID: "stu-1", Period: 1, Status: models.AttendanceStatusPresent},
		{StudentID: "stu-2", Period: 2, Status: models.AttendanceStatusPresent},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO attendance_records").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO attendance_records").
		WillReturnError(errors.New("constraint failure"))
	mock.ExpectRollback()

	err := repo.UpsertBatch(context.Background(), "sub-1", date, "sem-1", "fac-1", entries)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stu-2")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceUpsertBatchEmptyIsNoop(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	err := repo.UpsertBatch(context.Background(), "sub-1", time.Now(), "sem-1", "fac-1", nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceListByDateFiltersMarker(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	date := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	columns := []string{"id", "student_id", "subject_id", "date", "period", "status", "semester_id", "marked_by", "created_at", "updated_at"}

	mock.ExpectQuery("SELECT .+ FROM attendance_records").
		WithArgs("sub-1", date, "fac-1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("rec-1", "stu-1", "sub-1", date, 1, "PRESENT", "sem-1", "fac-1", time.Now(), time.Now()))

	records, err := repo.ListByDate(context.Background(), "sub-1", date, "fac-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.AttendanceStatusPresent, records[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceStudentSubjectCounts(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("COUNT(*) FILTER (WHERE status = 'PRESENT')")).
		WithArgs("stu-1", "sub-1").
		WillReturnRows(sqlmock.NewRows([]string{"total", "present"}).AddRow(10, 7))

	total, present, err := repo.StudentSubjectCounts(context.Background(), "stu-1", "sub-1")
	require.NoError(t, err)
	assert.Equal(t, 10, total)
	assert.Equal(t, 7, present)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceCalendarRowsOrderedByUpdate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	now := time.Now()
	mock.ExpectQuery("ORDER BY updated_at ASC, period ASC").
		WithArgs("stu-1", "sem-1").
		WillReturnRows(sqlmock.NewRows([]string{"date", "status", "updated_at"}).
			AddRow(now, "PRESENT", now).
			AddRow(now, "ABSENT", now.Add(time.Minute)))

	rows, err := repo.CalendarRows(context.Background(), "stu-1", "sem-1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, models.AttendanceStatusAbsent, rows[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
