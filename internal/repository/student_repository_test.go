package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/attendance-api/internal/models"
)

func TestStudentCreateMapsUniqueViolation(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("INSERT INTO students").
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &models.Student{
		UserID:        "user-1",
		EnrollmentNo:  "EN-001",
		DepartmentID:  "dep-1",
		SemesterID:    "sem-1",
		AdmissionYear: 2026,
		CurrentYear:   1,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUniqueViolation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentUserIDs(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("SELECT id, user_id FROM students").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).
			AddRow("stu-1", "user-1").
			AddRow("stu-2", "user-2"))

	accounts, err := repo.UserIDs(context.Background(), []string{"stu-1", "stu-2", "unknown"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"stu-1": "user-1", "stu-2": "user-2"}, accounts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentUserIDsEmptyInput(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	accounts, err := repo.UserIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, accounts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRosterExcludesDeleted(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("s.deleted_at IS NULL").
		WithArgs("sem-1", "dep-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "enrollment_no", "full_name"}).
			AddRow("stu-1", "EN-001", "Ada Lovelace"))

	roster, err := repo.Roster(context.Background(), "sem-1", "dep-1")
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "EN-001", roster[0].EnrollmentNo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentGetByIDIncludesDeleted(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	deleted := time.Now()
	columns := []string{"id", "user_id", "enrollment_no", "department_id", "semester_id", "admission_year", "current_year", "deleted_at", "created_at", "updated_at"}
	mock.ExpectQuery("SELECT .+ FROM students WHERE id").
		WithArgs("stu-1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("stu-1", "user-1", "EN-001", "dep-1", "sem-1", 2026, 1, deleted, time.Now(), time.Now()))

	student, err := repo.GetByID(context.Background(), "stu-1")
	require.NoError(t, err)
	require.NotNil(t, student.DeletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
