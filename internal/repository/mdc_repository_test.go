package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/attendance-api/internal/models"
)

func TestMDCCreateDefaultsEmptyRoster(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMDCRepository(db)

	mock.ExpectExec("INSERT INTO mdc_courses").
		WillReturnResult(sqlmock.NewResult(1, 1))

	course := &models.MDCCourse{
		CourseName:       "Intro to Robotics",
		HomeDepartmentID: "dep-cs",
		MDCDepartmentID:  "dep-mech",
		Year:             2,
		Semester:         3,
	}
	err := repo.Create(context.Background(), course)
	require.NoError(t, err)
	assert.NotEmpty(t, course.ID)
	assert.NotNil(t, course.StudentIDs)
	assert.Empty(t, course.StudentIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMDCEligibleCoursesExcludesOwnDepartment(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMDCRepository(db)

	now := time.Now()
	columns := []string{"id", "course_name", "home_department_id", "mdc_department_id", "year", "semester", "student_ids", "faculty_id", "created_at", "updated_at"}
	mock.ExpectQuery(regexp.QuoteMeta("WHERE home_department_id = $1 AND mdc_department_id <> $1")).
		WithArgs("dep-cs").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("mdc-1", "Intro to Robotics", "dep-cs", "dep-mech", 2, 3, pq.StringArray{"stu-1"}, nil, now, now))

	courses, err := repo.EligibleCourses(context.Background(), "dep-cs")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "dep-mech", courses[0].MDCDepartmentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMDCAddStudentGuardsDuplicates(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMDCRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("array_append(student_ids, $2)")).
		WithArgs("mdc-1", "stu-2", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AddStudent(context.Background(), "mdc-1", "stu-2")
	require.NoError(t, err)

	// Already on the roster: the guard matches no rows.
	mock.ExpectExec(regexp.QuoteMeta("array_append(student_ids, $2)")).
		WithArgs("mdc-1", "stu-2", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.AddStudent(context.Background(), "mdc-1", "stu-2")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMDCRemoveStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMDCRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("array_remove(student_ids, $2)")).
		WithArgs("mdc-1", "stu-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.RemoveStudent(context.Background(), "mdc-1", "stu-1")
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("array_remove(student_ids, $2)")).
		WithArgs("missing", "stu-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.RemoveStudent(context.Background(), "missing", "stu-1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMDCAssignFaculty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewMDCRepository(db)

	mock.ExpectExec("UPDATE mdc_courses SET faculty_id").
		WithArgs("mdc-1", "fac-mech", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AssignFaculty(context.Background(), "mdc-1", "fac-mech")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
